package generator

import (
	"context"

	"github.com/shouni/gemini-logo-studio/pkg/domain"
	"google.golang.org/genai"
)

// ImageModel は画像生成モデルとの通信を抽象化するポートです。
// adapters.GeminiModel が genai SDK を使って実装します。
type ImageModel interface {
	// GenerateWithParts は parts を1つのユーザーコンテンツとして送信し、生のレスポンスを返します。
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts ImageOptions) (*genai.GenerateContentResponse, error)
}

// LogoGenerator はビューステート層が利用する統合窓口です。
type LogoGenerator interface {
	Generate(ctx context.Context, req domain.LogoRequest) (*domain.LogoResult, error)
}

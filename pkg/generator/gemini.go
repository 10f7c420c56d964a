package generator

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shouni/gemini-logo-studio/pkg/domain"
	"github.com/shouni/gemini-logo-studio/pkg/utils"
	"google.golang.org/genai"
)

// GeminiGenerator はブリーフからロゴ画像を1枚生成するクライアントです。
// 1回の Generate につきモデル呼び出しは高々1回で、リトライはしません。
type GeminiGenerator struct {
	aiClient ImageModel
	model    string
}

// NewGeminiGenerator は GeminiGenerator を初期化します。model が空なら DefaultModel を使います。
func NewGeminiGenerator(aiClient ImageModel, model string) (*GeminiGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (ImageModel) is required")
	}
	if model == "" {
		model = DefaultModel
	}

	return &GeminiGenerator{
		aiClient: aiClient,
		model:    model,
	}, nil
}

// Model は使用するモデル名を返します。
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate はリクエストのブリーフをプロンプトに展開してモデルを呼び出し、最初の画像パーツを LogoResult にして返します。
// 失敗時は常に *GenerationError を返します。
func (g *GeminiGenerator) Generate(ctx context.Context, req domain.LogoRequest) (*domain.LogoResult, error) {
	brief := req.Brief
	if utils.IsBlank(brief) {
		return nil, &GenerationError{Kind: KindEmptyBrief, Err: ErrEmptyBrief}
	}

	prompt := ResolvePrompt(brief)
	parts := []*genai.Part{{Text: prompt}}

	start := time.Now()
	resp, err := g.aiClient.GenerateWithParts(ctx, g.model, parts, ImageOptions{AspectRatio: AspectRatioSquare})
	if err != nil {
		return nil, &GenerationError{Kind: KindTransport, Err: err}
	}

	out, err := FindImagePart(resp)
	if err != nil {
		return nil, &GenerationError{Kind: KindNoImageData, Err: err}
	}

	log.Debug().
		Str("model", g.model).
		Int("part_index", out.PartIndex).
		Str("mime_type", out.MimeType).
		Int("bytes", len(out.Data)).
		Dur("duration", time.Since(start)).
		Msg("logo image extracted")

	b64 := base64.StdEncoding.EncodeToString(out.Data)
	return &domain.LogoResult{
		ImageURL: utils.DataURI(ResultMimeType, b64),
		Base64:   b64,
		Prompt:   prompt,
		MimeType: out.MimeType,
		Data:     out.Data,
	}, nil
}

package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shouni/gemini-logo-studio/pkg/generator"
	"google.golang.org/genai"
)

// GeminiConfig は GeminiModel の接続設定です。
type GeminiConfig struct {
	APIKey     string
	BaseURL    string // 空なら SDK のデフォルト
	APIVersion string // 空なら SDK のデフォルト
	HTTPClient *http.Client
}

// GeminiModel は genai SDK を使って generator.ImageModel を実装するアダプターです。
type GeminiModel struct {
	client *genai.Client
}

var _ generator.ImageModel = (*GeminiModel)(nil)

// NewGeminiModel は Gemini API バックエンドの genai.Client を生成します。
func NewGeminiModel(ctx context.Context, cfg GeminiConfig) (*GeminiModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("APIKey is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiModel{client: client}, nil
}

// GenerateWithParts は parts を1つのユーザーコンテンツとして generateContent を1回呼び出します。
func (m *GeminiModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts generator.ImageOptions) (*genai.GenerateContentResponse, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}
	if opts.AspectRatio != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: opts.AspectRatio}
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}

	start := time.Now()
	log.Info().
		Str("model", model).
		Int("parts", len(parts)).
		Str("aspect_ratio", opts.AspectRatio).
		Msg("Sending generateContent request to Gemini")

	resp, err := m.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		if apiErr, ok := asAPIError(err); ok {
			log.Error().
				Int("code", apiErr.Code).
				Str("status", apiErr.Status).
				Dur("duration", time.Since(start)).
				Msg("Gemini API returned error")
			return nil, fmt.Errorf("gemini API %d %s: %w", apiErr.Code, apiErr.Status, err)
		}
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("Gemini request failed")
		return nil, fmt.Errorf("gemini request: %w", err)
	}

	log.Info().
		Int("candidates", len(resp.Candidates)).
		Dur("duration", time.Since(start)).
		Msg("Gemini generateContent complete")

	return resp, nil
}

// asAPIError は err の連鎖から genai.APIError を取り出します。ポインタと値の両方を見ます。
func asAPIError(err error) (*genai.APIError, bool) {
	var ptr *genai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		return ptr, true
	}
	var val genai.APIError
	if errors.As(err, &val) {
		return &val, true
	}
	return nil, false
}

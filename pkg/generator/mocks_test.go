package generator

import (
	"context"

	"google.golang.org/genai"
)

// --- Mocks ---

// mockAIClient は ImageModel のテスト用モックなのだ。
type mockAIClient struct {
	calls                 int
	lastModel             string
	lastParts             []*genai.Part
	lastOpts              ImageOptions
	generateWithPartsFunc func(ctx context.Context, model string, parts []*genai.Part, opts ImageOptions) (*genai.GenerateContentResponse, error)
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts ImageOptions) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastParts = parts
	m.lastOpts = opts
	if m.generateWithPartsFunc != nil {
		return m.generateWithPartsFunc(ctx, model, parts, opts)
	}
	return nil, nil
}

// responseWithParts は1候補だけのレスポンスを組み立てるヘルパーなのだ。
func responseWithParts(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: parts},
		}},
	}
}

func imagePart(data string) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte(data)}}
}

func textPart(text string) *genai.Part {
	return &genai.Part{Text: text}
}

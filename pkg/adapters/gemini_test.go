package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shouni/gemini-logo-studio/pkg/domain"
	"github.com/shouni/gemini-logo-studio/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeGemini は generateContent エンドポイントだけを持つテスト用サーバーです。
type fakeGemini struct {
	status   int
	body     string
	lastPath string
	lastBody string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	f.lastPath = r.URL.Path
	f.lastBody = string(raw)

	if !strings.HasSuffix(r.URL.Path, ":generateContent") {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.body)
}

func newTestModel(t *testing.T, fake *fakeGemini) *GeminiModel {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	m, err := NewGeminiModel(context.Background(), GeminiConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL + "/",
		APIVersion: "v1beta",
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return m
}

func TestNewGeminiModel(t *testing.T) {
	t.Run("APIキーが空ならエラー", func(t *testing.T) {
		_, err := NewGeminiModel(context.Background(), GeminiConfig{APIKey: "  "})
		assert.Error(t, err)
	})
}

func TestGeminiModel_GenerateWithParts(t *testing.T) {
	ctx := context.Background()

	t.Run("成功: 3番目のパーツの画像をデコードして返す", func(t *testing.T) {
		fake := &fakeGemini{
			status: http.StatusOK,
			body: `{"candidates":[{"content":{"role":"model","parts":[
				{"text":"Here is"},
				{"text":"your logo"},
				{"inlineData":{"mimeType":"image/png","data":"QUJD"}}
			]},"finishReason":"STOP"}]}`,
		}
		m := newTestModel(t, fake)

		resp, err := m.GenerateWithParts(ctx, "gemini-2.5-flash-image",
			[]*genai.Part{{Text: "logo prompt"}},
			generator.ImageOptions{AspectRatio: "1:1"})
		require.NoError(t, err)

		out, err := generator.FindImagePart(resp)
		require.NoError(t, err)
		assert.Equal(t, []byte("ABC"), out.Data)
		assert.Equal(t, 2, out.PartIndex)

		assert.Contains(t, fake.lastPath, "gemini-2.5-flash-image")
		assert.Contains(t, fake.lastBody, `"aspectRatio":"1:1"`)
		assert.Contains(t, fake.lastBody, "logo prompt")
	})

	t.Run("失敗: APIエラーはエラーとして返す", func(t *testing.T) {
		fake := &fakeGemini{
			status: http.StatusBadRequest,
			body:   `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`,
		}
		m := newTestModel(t, fake)

		_, err := m.GenerateWithParts(ctx, "gemini-2.5-flash-image",
			[]*genai.Part{{Text: "logo prompt"}}, generator.ImageOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gemini API 400 INVALID_ARGUMENT")

		apiErr, ok := asAPIError(err)
		require.True(t, ok, "APIError が連鎖に残っていること")
		assert.Equal(t, http.StatusBadRequest, apiErr.Code)
	})
}

func TestAsAPIError(t *testing.T) {
	t.Run("ポインタでラップされたAPIError", func(t *testing.T) {
		err := fmt.Errorf("wrap: %w", &genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"})
		apiErr, ok := asAPIError(err)
		require.True(t, ok)
		assert.Equal(t, 429, apiErr.Code)
	})

	t.Run("値でラップされたAPIError", func(t *testing.T) {
		err := fmt.Errorf("wrap: %w", genai.APIError{Code: 503, Status: "UNAVAILABLE"})
		apiErr, ok := asAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "UNAVAILABLE", apiErr.Status)
	})

	t.Run("APIError以外", func(t *testing.T) {
		_, ok := asAPIError(errors.New("dial tcp: timeout"))
		assert.False(t, ok)
	})
}

func TestGeminiModel_WithGenerator(t *testing.T) {
	fake := &fakeGemini{
		status: http.StatusOK,
		body:   `{"candidates":[{"content":{"parts":[{"text":"I can only describe it."}]},"finishReason":"STOP"}]}`,
	}
	m := newTestModel(t, fake)

	gen, err := generator.NewGeminiGenerator(m, "")
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), domain.LogoRequest{Brief: "Helios"})
	require.Error(t, err)
	assert.ErrorIs(t, err, generator.ErrNoImageData)
	assert.Equal(t, generator.KindNoImageData, generator.KindOf(err))
}

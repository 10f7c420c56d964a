package generator

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// FindImagePart はレスポンスから最初の画像パーツを探します。
//
// 画像出力モデルは画像をどのパーツ位置にも置き得る（先頭がテキストのことも多い）ため、
// 候補を順に、各候補内のパーツを順に走査し、InlineData に中身があるものを最初に見つけた時点で返します。
// MIME タイプが明示されていて image/* でないパーツは飛ばします。
func FindImagePart(resp *genai.GenerateContentResponse) (*ImageOutput, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: response has no candidates", ErrNoImageData)
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for i, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			if mt := part.InlineData.MIMEType; mt != "" && !strings.HasPrefix(mt, "image/") {
				continue
			}
			return &ImageOutput{
				Data:      part.InlineData.Data,
				MimeType:  part.InlineData.MIMEType,
				PartIndex: i,
			}, nil
		}
	}

	// 安全フィルター等によるブロックの確認
	if first := resp.Candidates[0]; first != nil && abnormalFinish(first.FinishReason) {
		return nil, fmt.Errorf("%w (FinishReason: %s)", ErrNoImageData, first.FinishReason)
	}
	return nil, ErrNoImageData
}

func abnormalFinish(reason genai.FinishReason) bool {
	switch reason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
		return false
	}
	return true
}

package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/webp"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// IsPNG はデータが PNG シグネチャで始まるかを判定します。
func IsPNG(data []byte) bool {
	return bytes.HasPrefix(data, pngSignature)
}

// ToPNG は画像データ（JPEG, GIF, WebP 等）を PNG に変換します。
// 既に PNG の場合は再エンコードせずそのまま返します。
func ToPNG(data []byte) ([]byte, error) {
	if IsPNG(data) {
		return data, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("encode %s as png: %w", format, err)
	}
	return buf.Bytes(), nil
}

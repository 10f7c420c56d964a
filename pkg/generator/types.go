package generator

const (
	// DefaultModel は画像出力に対応した Gemini モデルです。
	DefaultModel = "gemini-2.5-flash-image"
	// AspectRatioSquare はロゴ用の正方形アスペクト比です。
	AspectRatioSquare = "1:1"
	// ResultMimeType は data URI に使う MIME タイプ。モデル出力は暗黙に PNG として扱う。
	ResultMimeType = "image/png"
)

// ImageOptions はモデル呼び出し時の生成オプションです。
type ImageOptions struct {
	AspectRatio string
}

// ImageOutput は Core の内部解析結果
type ImageOutput struct {
	Data     []byte
	MimeType string
	// PartIndex は画像が見つかったパーツの位置（ログ用）
	PartIndex int
}

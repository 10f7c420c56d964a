package domain

// LogoRequest はユーザーが入力したブリーフ（会社・ブランドの説明文）による単一のロゴ生成要求です。
type LogoRequest struct {
	Brief string
}

// LogoResult は生成されたロゴ画像とそのメタデータです。
// 次の送信で丸ごと置き換えられ、リセットで破棄されます。
type LogoResult struct {
	// ImageURL は Base64 を "data:image/png;base64," で包んだ data URI です。
	ImageURL string
	// Base64 はモデルが返した画像バイト列の base64 表現です。
	Base64 string
	// Prompt はテンプレート展開後、実際にモデルへ送ったプロンプトです。
	Prompt string
	// MimeType はモデルが申告した MIME タイプ（空の場合あり）
	MimeType string
	// Data はデコード済みの画像バイト列です。
	Data []byte
}

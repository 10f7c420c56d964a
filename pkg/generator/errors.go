package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBrief はブリーフが空または空白のみの場合のエラーです。
	ErrEmptyBrief = errors.New("brief is empty")
	// ErrNoImageData はレスポンスに画像パーツが1つも無い場合のエラーです。
	ErrNoImageData = errors.New("no image data returned")
)

// ErrorKind は GenerationError の分類です。
type ErrorKind int

const (
	// KindEmptyBrief はローカルでの入力検証エラー。通信は発生しません。
	KindEmptyBrief ErrorKind = iota + 1
	// KindTransport は通信・API レベルのエラー。
	KindTransport
	// KindNoImageData は API 呼び出しは成功したが画像が無かったケース。
	KindNoImageData
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyBrief:
		return "empty_brief"
	case KindTransport:
		return "transport"
	case KindNoImageData:
		return "no_image_data"
	default:
		return "unknown"
	}
}

// GenerationError は Generate が返すすべてのエラーの型です。
type GenerationError struct {
	Kind ErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("logo generation failed (%s)", e.Kind)
	}
	return fmt.Sprintf("logo generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// KindOf は err の連鎖から GenerationError を探し、その分類を返します。見つからなければ 0 です。
func KindOf(err error) ErrorKind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return 0
}

package utils

import "strings"

// IsBlank は、文字列が空または空白文字のみで構成されているかを返します。
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// DataURI は、base64 文字列を data URI に包みます。
func DataURI(mimeType, b64 string) string {
	return "data:" + mimeType + ";base64," + b64
}

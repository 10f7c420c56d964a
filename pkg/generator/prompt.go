package generator

import "fmt"

const logoPromptTemplate = "High-end professional corporate logo design for: %s. Minimalist, vector style, clean lines, white background, high contrast, centered."

// ResolvePrompt はブリーフを固定テンプレートに埋め込みます。ブリーフは加工せずそのまま使います。
func ResolvePrompt(brief string) string {
	return fmt.Sprintf(logoPromptTemplate, brief)
}

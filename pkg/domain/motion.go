package domain

import (
	"fmt"
	"strings"
)

// MotionPreset はロゴ表示に適用する装飾アニメーションの種類です。
// 生成結果のデータには一切影響しません。
type MotionPreset string

const (
	MotionReveal MotionPreset = "reveal"
	MotionFloat  MotionPreset = "float"
	MotionPulse  MotionPreset = "pulse"
)

// DefaultMotion は初期状態で選択されているプリセットです。
const DefaultMotion = MotionReveal

// MotionPresets は UI に並べる順序でプリセットを返します。
func MotionPresets() []MotionPreset {
	return []MotionPreset{MotionReveal, MotionFloat, MotionPulse}
}

// ParseMotionPreset は文字列をプリセットに変換します。大文字小文字と前後の空白は無視します。
func ParseMotionPreset(s string) (MotionPreset, error) {
	p := MotionPreset(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown motion preset: %q", s)
	}
	return p, nil
}

// Valid は既知のプリセットかどうかを返します。
func (p MotionPreset) Valid() bool {
	switch p {
	case MotionReveal, MotionFloat, MotionPulse:
		return true
	}
	return false
}

// CSSClass はプリセットに対応するアニメーションの CSS クラス名です。
func (p MotionPreset) CSSClass() string {
	switch p {
	case MotionReveal:
		return "animate-reveal"
	case MotionFloat:
		return "animate-float"
	case MotionPulse:
		return "animate-pulse-glow"
	default:
		return ""
	}
}

package server

import (
	"html/template"

	"github.com/shouni/gemini-logo-studio/pkg/domain"
	"github.com/shouni/gemini-logo-studio/pkg/viewstate"
)

var loadingMessages = []string{
	"Interpreting your brand vision...",
	"Drafting minimalist silhouettes...",
	"Perfecting geometric balance...",
	"Synthesizing high-contrast vectors...",
	"Almost ready...",
}

type presetView struct {
	Name   string
	Active bool
}

type pageView struct {
	Step            string
	Input           bool
	Generating      bool
	Result          bool
	Brief           string
	Error           string
	Motion          string
	MotionClass     string
	Presets         []presetView
	ImageURL        template.URL
	Prompt          string
	Model           string
	LoadingMessages []string
}

func newPageView(s viewstate.State, model string) pageView {
	v := pageView{
		Step:            string(s.Step),
		Input:           s.Step == viewstate.StepInput,
		Generating:      s.Step == viewstate.StepGenerating,
		Result:          s.Step == viewstate.StepResult && s.Result != nil,
		Brief:           s.Brief,
		Error:           s.LastError,
		Motion:          string(s.Motion),
		MotionClass:     s.Motion.CSSClass(),
		Model:           model,
		LoadingMessages: loadingMessages,
	}
	for _, p := range domain.MotionPresets() {
		v.Presets = append(v.Presets, presetView{Name: string(p), Active: p == s.Motion})
	}
	if s.Result != nil {
		// base64 から自前で組み立てた data URI なのでそのまま出力してよい
		v.ImageURL = template.URL(s.Result.ImageURL)
		v.Prompt = s.Result.Prompt
	}
	return v
}

// Package viewstate はロゴ生成画面の3状態モデル (Input → Generating → Result) を扱います。
//
// 状態遷移は副作用の無い純関数 Transition で表現し、非同期の生成呼び出しは Controller が受け持ちます。
package viewstate

import (
	"github.com/shouni/gemini-logo-studio/pkg/domain"
	"github.com/shouni/gemini-logo-studio/pkg/utils"
)

// GenericErrorMessage は生成失敗時にユーザーへ見せる唯一のメッセージです。
const GenericErrorMessage = "Generation failed. Please try a different description."

// Step は画面の段階です。
type Step string

const (
	StepInput      Step = "design-input"
	StepGenerating Step = "logo-generating"
	StepResult     Step = "logo-result"
)

// State はセッションごとに1つだけ存在するビューステートです。
// Result は Step == StepResult のときに限り非 nil です。
type State struct {
	Step      Step
	Brief     string
	Result    *domain.LogoResult
	LastError string
	Motion    domain.MotionPreset
	// RequestID は直近に発行した生成リクエストの識別子。単調増加し、遅れて届いた応答の破棄に使う。
	RequestID uint64
}

// Initial は初期状態を返します。
func Initial() State {
	return State{
		Step:   StepInput,
		Motion: domain.DefaultMotion,
	}
}

// Event は状態を変化させる入力です。
type Event interface {
	isEvent()
}

// Submit はブリーフの送信です。
type Submit struct {
	Brief string
}

// GenerateSucceeded は RequestID の生成が成功したことを表します。
type GenerateSucceeded struct {
	RequestID uint64
	Result    *domain.LogoResult
}

// GenerateFailed は RequestID の生成が失敗したことを表します。
type GenerateFailed struct {
	RequestID uint64
	Err       error
}

// SelectMotion はアニメーションプリセットの選択です。
type SelectMotion struct {
	Preset domain.MotionPreset
}

// Reset はどの状態からでも入力画面へ戻します。
type Reset struct{}

func (Submit) isEvent()            {}
func (GenerateSucceeded) isEvent() {}
func (GenerateFailed) isEvent()    {}
func (SelectMotion) isEvent()      {}
func (Reset) isEvent()             {}

// Transition は (state, event) から次の状態を計算します。
// ガードを満たさないイベントは無視され、s がそのまま返ります。
func Transition(s State, ev Event) State {
	switch e := ev.(type) {
	case Submit:
		if s.Step != StepInput || utils.IsBlank(e.Brief) {
			return s
		}
		s.Step = StepGenerating
		s.Brief = e.Brief
		s.LastError = ""
		s.Result = nil
		s.RequestID++
		return s

	case GenerateSucceeded:
		if !s.awaiting(e.RequestID) {
			return s
		}
		if e.Result == nil {
			return Transition(s, GenerateFailed{RequestID: e.RequestID})
		}
		s.Step = StepResult
		s.Result = e.Result
		return s

	case GenerateFailed:
		if !s.awaiting(e.RequestID) {
			return s
		}
		s.Step = StepInput
		s.Result = nil
		s.LastError = GenericErrorMessage
		return s

	case SelectMotion:
		if s.Step != StepResult || !e.Preset.Valid() {
			return s
		}
		s.Motion = e.Preset
		return s

	case Reset:
		s.Step = StepInput
		s.Brief = ""
		s.Result = nil
		s.LastError = ""
		return s
	}
	return s
}

// awaiting は id の応答を今まさに待っているかを返します。
func (s State) awaiting(id uint64) bool {
	return s.Step == StepGenerating && s.RequestID == id
}

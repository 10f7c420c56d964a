package viewstate

import (
	"errors"
	"testing"

	"github.com/shouni/gemini-logo-studio/pkg/domain"
	"github.com/stretchr/testify/assert"
)

var sampleResult = &domain.LogoResult{
	ImageURL: "data:image/png;base64,QUJD",
	Base64:   "QUJD",
	Prompt:   "prompt",
}

func TestInitial(t *testing.T) {
	s := Initial()
	assert.Equal(t, StepInput, s.Step)
	assert.Nil(t, s.Result)
	assert.Empty(t, s.LastError)
	assert.Equal(t, domain.MotionReveal, s.Motion)
}

func TestTransition_Submit(t *testing.T) {
	t.Run("空白のみのブリーフは何もしない", func(t *testing.T) {
		for _, brief := range []string{"", "  ", "\n"} {
			got := Transition(Initial(), Submit{Brief: brief})
			assert.Equal(t, Initial(), got)
		}
	})

	t.Run("Inputから送信するとGeneratingになりエラーが消える", func(t *testing.T) {
		s := Initial()
		s.LastError = GenericErrorMessage

		got := Transition(s, Submit{Brief: "Helios"})

		assert.Equal(t, StepGenerating, got.Step)
		assert.Equal(t, "Helios", got.Brief)
		assert.Empty(t, got.LastError)
		assert.Equal(t, uint64(1), got.RequestID)
	})

	t.Run("Generating中とResult中の送信は無視される", func(t *testing.T) {
		generating := Transition(Initial(), Submit{Brief: "Helios"})
		assert.Equal(t, generating, Transition(generating, Submit{Brief: "Other"}))

		result := Transition(generating, GenerateSucceeded{RequestID: generating.RequestID, Result: sampleResult})
		assert.Equal(t, result, Transition(result, Submit{Brief: "Other"}))
	})
}

func TestTransition_Completion(t *testing.T) {
	generating := Transition(Initial(), Submit{Brief: "Helios"})

	t.Run("成功でResultになり結果を保持する", func(t *testing.T) {
		got := Transition(generating, GenerateSucceeded{RequestID: generating.RequestID, Result: sampleResult})
		assert.Equal(t, StepResult, got.Step)
		assert.Same(t, sampleResult, got.Result)
	})

	t.Run("失敗でInputに戻り汎用メッセージが入る", func(t *testing.T) {
		got := Transition(generating, GenerateFailed{RequestID: generating.RequestID, Err: errors.New("boom")})
		assert.Equal(t, StepInput, got.Step)
		assert.Nil(t, got.Result)
		assert.Equal(t, GenericErrorMessage, got.LastError)
	})

	t.Run("結果がnilの成功は失敗として扱う", func(t *testing.T) {
		got := Transition(generating, GenerateSucceeded{RequestID: generating.RequestID})
		assert.Equal(t, StepInput, got.Step)
		assert.Equal(t, GenericErrorMessage, got.LastError)
	})

	t.Run("RequestIDが一致しない応答は無視する", func(t *testing.T) {
		got := Transition(generating, GenerateSucceeded{RequestID: generating.RequestID + 1, Result: sampleResult})
		assert.Equal(t, generating, got)

		got = Transition(generating, GenerateFailed{RequestID: generating.RequestID - 1})
		assert.Equal(t, generating, got)
	})

	t.Run("リセット後に届いた応答は無視する", func(t *testing.T) {
		reset := Transition(generating, Reset{})
		got := Transition(reset, GenerateSucceeded{RequestID: generating.RequestID, Result: sampleResult})
		assert.Equal(t, StepInput, got.Step)
		assert.Nil(t, got.Result)
	})
}

func TestTransition_SelectMotion(t *testing.T) {
	generating := Transition(Initial(), Submit{Brief: "Helios"})
	result := Transition(generating, GenerateSucceeded{RequestID: generating.RequestID, Result: sampleResult})

	t.Run("同じプリセットを何度選んでも結果とブリーフは変わらない", func(t *testing.T) {
		s := result
		for i := 0; i < 3; i++ {
			s = Transition(s, SelectMotion{Preset: domain.MotionFloat})
			assert.Equal(t, domain.MotionFloat, s.Motion)
			assert.Same(t, sampleResult, s.Result)
			assert.Equal(t, "Helios", s.Brief)
			assert.Equal(t, StepResult, s.Step)
		}
	})

	t.Run("不正なプリセットやResult以外では無視する", func(t *testing.T) {
		assert.Equal(t, result, Transition(result, SelectMotion{Preset: "spin"}))
		assert.Equal(t, generating, Transition(generating, SelectMotion{Preset: domain.MotionPulse}))
	})
}

func TestTransition_Reset(t *testing.T) {
	generating := Transition(Initial(), Submit{Brief: "Helios"})
	result := Transition(generating, GenerateSucceeded{RequestID: generating.RequestID, Result: sampleResult})
	result = Transition(result, SelectMotion{Preset: domain.MotionPulse})
	failed := Transition(generating, GenerateFailed{RequestID: generating.RequestID})

	for name, s := range map[string]State{"result": result, "generating": generating, "failed": failed, "input": Initial()} {
		t.Run(name, func(t *testing.T) {
			got := Transition(s, Reset{})
			assert.Equal(t, StepInput, got.Step)
			assert.Empty(t, got.Brief)
			assert.Nil(t, got.Result)
			assert.Empty(t, got.LastError)
			assert.Equal(t, s.RequestID, got.RequestID, "request ids are never reused")
			assert.Equal(t, s.Motion, got.Motion)
		})
	}
}

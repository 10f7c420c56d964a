package viewstate

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shouni/gemini-logo-studio/pkg/domain"
	"github.com/shouni/gemini-logo-studio/pkg/generator"
)

// Controller は1セッション分の State を保持し、イベントを原子的に適用します。
//
// Submit で Generating に入ると生成呼び出しをバックグラウンドで1つだけ起動し、
// 完了時に RequestID 付きのイベントとして State に戻します。Reset 後に届いた応答や
// 古いリクエストの応答は RequestID が一致しないため捨てられます。
type Controller struct {
	gen    generator.LogoGenerator
	logger zerolog.Logger

	mu       sync.Mutex
	state    State
	inflight *task
	base     context.Context
	cancel   context.CancelFunc
	closed   bool
	wg       sync.WaitGroup
}

type task struct {
	id     uint64
	cancel context.CancelFunc
}

// Option は Controller の設定を変更します。
type Option func(*Controller)

// WithLogger はログ出力先を差し替えます。
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController は初期状態 (Input) の Controller を生成します。
func NewController(gen generator.LogoGenerator, opts ...Option) (*Controller, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}

	base, cancel := context.WithCancel(context.Background())
	c := &Controller{
		gen:    gen,
		logger: log.Logger,
		state:  Initial(),
		base:   base,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Snapshot は現在の State のコピーを返します。
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit はブリーフを送信します。生成を開始した場合に true を返します。
// ブリーフが空白のみ、または Input 以外の状態では何もしません。
func (c *Controller) Submit(brief string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	prev := c.state
	next := Transition(prev, Submit{Brief: brief})
	if next.RequestID == prev.RequestID {
		return false
	}
	c.state = next

	// Reset で切り離された古い呼び出しがまだ走っていれば止める。結果はどのみち捨てられる。
	if c.inflight != nil {
		c.inflight.cancel()
	}

	ctx, cancel := context.WithCancel(c.base)
	c.inflight = &task{id: next.RequestID, cancel: cancel}
	c.wg.Add(1)
	go c.run(ctx, next.RequestID, brief)

	c.logger.Info().Uint64("request_id", next.RequestID).Int("brief_len", len(brief)).Msg("logo generation started")
	return true
}

// Reset はどの状態からでも Input に戻します。実行中の呼び出しは中断しませんが、その結果は無視されます。
func (c *Controller) Reset() State {
	return c.dispatch(Reset{})
}

// SelectMotion は Result 表示中のアニメーションを切り替えます。
func (c *Controller) SelectMotion(p domain.MotionPreset) State {
	return c.dispatch(SelectMotion{Preset: p})
}

// wait は実行中の生成呼び出しがすべて終わるまで待ちます。
func (c *Controller) wait() {
	c.wg.Wait()
}

// Close は実行中の呼び出しをキャンセルし、終了を待ちます。以降の Submit は無視されます。
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.cancel()
	c.mu.Unlock()

	c.wait()
}

func (c *Controller) dispatch(ev Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Transition(c.state, ev)
	return c.state
}

func (c *Controller) run(ctx context.Context, id uint64, brief string) {
	defer c.wg.Done()

	res, err := c.gen.Generate(ctx, domain.LogoRequest{Brief: brief})

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inflight != nil && c.inflight.id == id {
		c.inflight.cancel()
		c.inflight = nil
	}

	stale := !c.state.awaiting(id)
	if err != nil {
		c.logger.Error().
			Err(err).
			Uint64("request_id", id).
			Str("kind", generator.KindOf(err).String()).
			Bool("stale", stale).
			Msg("logo generation failed")
		c.state = Transition(c.state, GenerateFailed{RequestID: id, Err: err})
		return
	}

	if stale {
		c.logger.Info().Uint64("request_id", id).Msg("discarding stale logo result")
		return
	}
	c.logger.Info().Uint64("request_id", id).Int("bytes", len(res.Data)).Msg("logo generation complete")
	c.state = Transition(c.state, GenerateSucceeded{RequestID: id, Result: res})
}

package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shouni/gemini-logo-studio/pkg/viewstate"
)

// ControllerFactory は新しいブラウザセッション用の Controller を生成します。
type ControllerFactory func() (*viewstate.Controller, error)

type session struct {
	ctrl         *viewstate.Controller
	lastActivity time.Time
}

// SessionStore はブラウザセッションごとに Controller を1つメモリ上に保持します。永続化はしません。
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	factory  ControllerFactory
	now      func() time.Time
}

func NewSessionStore(factory ControllerFactory) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		factory:  factory,
		now:      time.Now,
	}
}

// Get は id のセッションの Controller を返し、最終アクセス時刻を更新します。
func (s *SessionStore) Get(id string) (*viewstate.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastActivity = s.now()
	return sess.ctrl, true
}

// Create は Input 状態の Controller を持つ新しいセッションを作成します。
func (s *SessionStore) Create() (string, *viewstate.Controller, error) {
	ctrl, err := s.factory()
	if err != nil {
		return "", nil, err
	}
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = &session{ctrl: ctrl, lastActivity: s.now()}
	s.mu.Unlock()

	return id, ctrl, nil
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune は maxIdle 以上アクセスのないセッションを閉じて破棄し、破棄した数を返します。
// 生成中のセッションは残します。
func (s *SessionStore) Prune(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	var stale []*viewstate.Controller
	for id, sess := range s.sessions {
		if sess.lastActivity.After(cutoff) {
			continue
		}
		if sess.ctrl.Snapshot().Step == viewstate.StepGenerating {
			continue
		}
		stale = append(stale, sess.ctrl)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, ctrl := range stale {
		ctrl.Close()
	}
	return len(stale)
}

// RunPruner は ctx が終了するまで interval ごとに Prune を実行します。
func (s *SessionStore) RunPruner(ctx context.Context, interval, maxIdle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Prune(maxIdle); n > 0 {
				log.Debug().Int("pruned", n).Int("remaining", s.Len()).Msg("idle sessions pruned")
			}
		}
	}
}

// CloseAll は実行中の生成をすべてキャンセルし、ストアを空にします。
func (s *SessionStore) CloseAll() {
	s.mu.Lock()
	ctrls := make([]*viewstate.Controller, 0, len(s.sessions))
	for id, sess := range s.sessions {
		ctrls = append(ctrls, sess.ctrl)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, ctrl := range ctrls {
		ctrl.Close()
	}
}

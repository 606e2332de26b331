package memory

import (
	"context"
	"sync"
	"time"

	"quizflow/internal/app"
	"quizflow/internal/domain"
)

// RunStore is an in-memory implementation of app.RunStore. Runs expire
// after the TTL so abandoned respondents do not accumulate.
type RunStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu   sync.RWMutex
	runs map[string]storedRun
}

type storedRun struct {
	run       app.Run
	expiresAt time.Time
}

func NewRunStore(ttl time.Duration) *RunStore {
	return &RunStore{
		ttl:   ttl,
		clock: time.Now,
		runs:  make(map[string]storedRun),
	}
}

func (s *RunStore) Put(_ context.Context, run app.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expires := time.Time{}
	if s.ttl > 0 {
		expires = s.clock().Add(s.ttl)
	}
	s.runs[run.ID] = storedRun{run: run, expiresAt: expires}
	return nil
}

func (s *RunStore) Get(_ context.Context, id string) (app.Run, error) {
	s.mu.RLock()
	entry, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		return app.Run{}, domain.ErrRunNotFound
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(s.clock()) {
		s.mu.Lock()
		delete(s.runs, id)
		s.mu.Unlock()
		return app.Run{}, domain.ErrRunNotFound
	}
	return entry.run, nil
}

func (s *RunStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, id)
	return nil
}

package memory

import (
	"sync"
	"time"

	"quizflow/internal/app"
)

// EditorStore holds open editor sessions in memory. Sessions idle longer
// than the TTL are dropped by PurgeIdle, discarding unsaved edits.
type EditorStore struct {
	idleTTL time.Duration
	clock   func() time.Time

	mu      sync.RWMutex
	editors map[string]*app.Editor
}

func NewEditorStore(idleTTL time.Duration) *EditorStore {
	return &EditorStore{
		idleTTL: idleTTL,
		clock:   time.Now,
		editors: make(map[string]*app.Editor),
	}
}

func (s *EditorStore) Put(ed *app.Editor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editors[ed.ID()] = ed
}

func (s *EditorStore) Get(id string) (*app.Editor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ed, ok := s.editors[id]
	return ed, ok
}

func (s *EditorStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.editors, id)
}

// PurgeIdle drops sessions untouched for longer than the idle TTL and
// returns how many were removed.
func (s *EditorStore) PurgeIdle() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.clock().Add(-s.idleTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, ed := range s.editors {
		if ed.IdleSince().Before(cutoff) {
			delete(s.editors, id)
			removed++
		}
	}
	return removed
}

// StartJanitor purges idle sessions on the interval until stop is closed.
func (s *EditorStore) StartJanitor(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.PurgeIdle()
			case <-stop:
				return
			}
		}
	}()
}

// Package memory holds the in-process implementations of the app's storage
// interfaces. They back tests and the no-Postgres development mode; the
// persistence-backed path is authoritative in production.
package memory

import (
	"context"
	"sort"
	"sync"

	"quizflow/internal/domain"
)

// QuizStore is an in-memory quiz repository and public loader.
type QuizStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.Quiz
	bySlug  map[string]string
}

func NewQuizStore(seed ...domain.Quiz) *QuizStore {
	s := &QuizStore{
		byID:   make(map[string]domain.Quiz),
		bySlug: make(map[string]string),
	}
	for _, quiz := range seed {
		s.byID[quiz.ID] = quiz
		s.bySlug[quiz.ShareSlug] = quiz.ID
	}
	return s
}

func (s *QuizStore) Create(_ context.Context, quiz *domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[quiz.ID] = *quiz
	s.bySlug[quiz.ShareSlug] = quiz.ID
	return nil
}

func (s *QuizStore) GetByID(_ context.Context, id string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.byID[id]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *QuizStore) ListByOwner(_ context.Context, ownerID string) ([]domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Quiz
	for _, quiz := range s.byID {
		if quiz.OwnerID == ownerID {
			out = append(out, quiz)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *QuizStore) Update(_ context.Context, quiz *domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[quiz.ID]; !ok {
		return domain.ErrQuizNotFound
	}
	s.byID[quiz.ID] = *quiz
	s.bySlug[quiz.ShareSlug] = quiz.ID
	return nil
}

func (s *QuizStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz, ok := s.byID[id]
	if !ok {
		return domain.ErrQuizNotFound
	}
	delete(s.bySlug, quiz.ShareSlug)
	delete(s.byID, id)
	return nil
}

// LoadQuizBySlug implements the public loader fronted by QuizCache.
func (s *QuizStore) LoadQuizBySlug(_ context.Context, slug string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.bySlug[slug]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return s.byID[id], nil
}

// GetBySlug lets the store double as an uncached QuizReader in tests.
func (s *QuizStore) GetBySlug(ctx context.Context, slug string) (domain.Quiz, error) {
	return s.LoadQuizBySlug(ctx, slug)
}

// DocumentStore is an in-memory completion document repository.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]domain.CompletionDocument
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]domain.CompletionDocument)}
}

func (s *DocumentStore) Get(_ context.Context, quizID string) (domain.CompletionDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[quizID]
	if !ok {
		return domain.CompletionDocument{}, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *DocumentStore) Save(_ context.Context, quizID string, doc domain.CompletionDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[quizID] = doc
	return nil
}

// ResponseStore records completed runs in memory.
type ResponseStore struct {
	mu        sync.RWMutex
	responses []domain.Response
}

func NewResponseStore() *ResponseStore {
	return &ResponseStore{}
}

func (s *ResponseStore) Save(_ context.Context, resp domain.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, resp)
	return nil
}

// ByQuiz returns recorded responses for assertions in tests.
func (s *ResponseStore) ByQuiz(quizID string) []domain.Response {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Response
	for _, r := range s.responses {
		if r.QuizID == quizID {
			out = append(out, r)
		}
	}
	return out
}

// UserStore is an in-memory user repository.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[user.Email]; taken {
		return domain.ErrEmailTaken
	}
	s.byID[user.ID] = *user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return s.byID[id], nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

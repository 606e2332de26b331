package memory

import (
	"context"
	"testing"
	"time"

	"quizflow/internal/domain"
)

func TestQuizCacheCaches(t *testing.T) {
	loader := &countingLoader{
		QuizLoader: NewQuizStore(sampleQuiz()),
	}
	cache := NewQuizCache(loader, time.Minute)

	if _, err := cache.GetBySlug(context.Background(), "quiz_abc123"); err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := cache.GetBySlug(context.Background(), "quiz_abc123"); err != nil {
		t.Fatalf("get quiz 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}

	cache.Invalidate("quiz_abc123")
	if _, err := cache.GetBySlug(context.Background(), "quiz_abc123"); err != nil {
		t.Fatalf("get quiz 3: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls %d", loader.calls)
	}
}

func TestQuizCacheMissPropagates(t *testing.T) {
	cache := NewQuizCache(NewQuizStore(), time.Minute)
	if _, err := cache.GetBySlug(context.Background(), "quiz_missing"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

type countingLoader struct {
	QuizLoader
	calls int
}

func (l *countingLoader) LoadQuizBySlug(ctx context.Context, slug string) (domain.Quiz, error) {
	l.calls++
	return l.QuizLoader.LoadQuizBySlug(ctx, slug)
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:        "q-1",
		Title:     "Product Feedback Survey",
		OwnerID:   "u-1",
		Active:    true,
		ShareSlug: "quiz_abc123",
		Questions: []domain.Question{
			{
				Prompt:  "How large is your team?",
				Options: []string{"1-5 people", "6-15 people", "16-50 people"},
			},
			{
				Prompt:  "How did you hear about us?",
				Options: []string{"Social media", "Referral"},
			},
		},
	}
}

package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"quizflow/internal/app"
	"quizflow/internal/domain"
	"quizflow/internal/infra/memory"
)

type countingDocs struct {
	app.DocumentRepository
	gets int
}

func (d *countingDocs) Get(ctx context.Context, quizID string) (domain.CompletionDocument, error) {
	d.gets++
	return d.DocumentRepository.Get(ctx, quizID)
}

func TestDocumentCacheReadThrough(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	inner := &countingDocs{DocumentRepository: memory.NewDocumentStore()}
	cache := NewDocumentCache(newClient(mr), inner, time.Minute)
	ctx := context.Background()

	doc := domain.NewDefaultDocument()
	doc.PrimaryButtonURL = "https://example.com/after"
	if err := cache.Save(ctx, "q-1", doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Save filled the cache, so reads never touch the repository.
	got, err := cache.Get(ctx, "q-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PrimaryButtonURL != "https://example.com/after" {
		t.Fatalf("unexpected document %+v", got)
	}
	if inner.gets != 0 {
		t.Fatalf("expected cached read, repository gets=%d", inner.gets)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := cache.Get(ctx, "q-1"); err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if inner.gets != 1 {
		t.Fatalf("expected fallthrough after expiry, gets=%d", inner.gets)
	}
}

func TestDocumentCacheMiss(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	cache := NewDocumentCache(newClient(mr), memory.NewDocumentStore(), time.Minute)
	if _, err := cache.Get(context.Background(), "missing"); err != domain.ErrDocumentNotFound {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

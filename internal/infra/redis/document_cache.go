package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"quizflow/internal/app"
	"quizflow/internal/domain"
)

// DocumentCache fronts the document repository for the public read path.
// Saves write through and refresh the cached entry so the published page
// updates immediately.
type DocumentCache struct {
	client *redis.Client
	inner  app.DocumentRepository
	ttl    time.Duration
}

func NewDocumentCache(client *redis.Client, inner app.DocumentRepository, ttl time.Duration) *DocumentCache {
	return &DocumentCache{client: client, inner: inner, ttl: ttl}
}

func (c *DocumentCache) Get(ctx context.Context, quizID string) (domain.CompletionDocument, error) {
	if data, err := c.client.Get(ctx, c.key(quizID)).Bytes(); err == nil {
		var doc domain.CompletionDocument
		if err := json.Unmarshal(data, &doc); err == nil {
			return doc, nil
		}
	}

	doc, err := c.inner.Get(ctx, quizID)
	if err != nil {
		return domain.CompletionDocument{}, err
	}
	c.fill(ctx, quizID, doc)
	return doc, nil
}

func (c *DocumentCache) Save(ctx context.Context, quizID string, doc domain.CompletionDocument) error {
	if err := c.inner.Save(ctx, quizID, doc); err != nil {
		return err
	}
	c.fill(ctx, quizID, doc)
	return nil
}

func (c *DocumentCache) fill(ctx context.Context, quizID string, doc domain.CompletionDocument) {
	if data, err := json.Marshal(doc); err == nil {
		// best-effort fill
		_ = c.client.Set(ctx, c.key(quizID), data, c.ttl).Err()
	}
}

func (c *DocumentCache) key(quizID string) string {
	return "doc:quiz:" + quizID
}

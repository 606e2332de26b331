package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quizflow/internal/domain"
)

// QuizLoader resolves a share slug to the quiz in the backing store.
type QuizLoader interface {
	LoadQuizBySlug(ctx context.Context, slug string) (domain.Quiz, error)
}

// QuizCache caches quizzes in Redis keyed by share slug and falls back to a
// loader on cache miss. Misses are collapsed per slug so a cold slug under
// load produces one backing read, and the TTL carries jitter so entries do
// not expire in lockstep.
type QuizCache struct {
	client *redis.Client
	loader QuizLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuizCache(client *redis.Client, loader QuizLoader, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuizCache) GetBySlug(ctx context.Context, slug string) (domain.Quiz, error) {
	if quiz, ok := c.fromCache(ctx, slug); ok {
		return quiz, nil
	}

	result, err, _ := c.sf.Do(slug, func() (interface{}, error) {
		// Re-check in case another goroutine filled it.
		if quiz, ok := c.fromCache(ctx, slug); ok {
			return quiz, nil
		}

		quiz, err := c.loader.LoadQuizBySlug(ctx, slug)
		if err != nil {
			return domain.Quiz{}, err
		}

		if data, err := json.Marshal(quiz); err == nil {
			// best-effort fill
			_ = c.client.Set(ctx, c.key(slug), data, c.ttlWithJitter()).Err()
		}
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

// Invalidate drops the cached entry after admin edits so respondents see
// the new state on the next read.
func (c *QuizCache) Invalidate(ctx context.Context, slug string) {
	_ = c.client.Del(ctx, c.key(slug)).Err()
}

func (c *QuizCache) fromCache(ctx context.Context, slug string) (domain.Quiz, bool) {
	data, err := c.client.Get(ctx, c.key(slug)).Bytes()
	if err != nil {
		return domain.Quiz{}, false
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		return domain.Quiz{}, false
	}
	return quiz, true
}

func (c *QuizCache) key(slug string) string {
	return "quiz:slug:" + slug
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

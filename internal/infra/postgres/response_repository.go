package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"quizflow/internal/domain"
)

type responseRow struct {
	bun.BaseModel `bun:"table:responses"`

	ID          string    `bun:"id,pk"`
	QuizID      string    `bun:"quiz_id"`
	RunID       string    `bun:"run_id"`
	Answers     []byte    `bun:"answers,type:jsonb"`
	CompletedAt time.Time `bun:"completed_at"`
}

// ResponseRepository appends completed-run records.
type ResponseRepository struct {
	db *bun.DB
}

func NewResponseRepository(db *bun.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

func (r *ResponseRepository) Save(ctx context.Context, resp domain.Response) error {
	answers, err := json.Marshal(resp.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	row := responseRow{
		ID:          resp.ID,
		QuizID:      resp.QuizID,
		RunID:       resp.RunID,
		Answers:     answers,
		CompletedAt: resp.CompletedAt,
	}
	// Re-submits of the same run must not duplicate the record.
	_, err = r.db.NewInsert().
		Model(&row).
		On("CONFLICT (run_id) DO NOTHING").
		Exec(ctx)
	return err
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"quizflow/internal/domain"
)

type documentRow struct {
	bun.BaseModel `bun:"table:completion_documents"`

	QuizID    string    `bun:"quiz_id,pk"`
	Data      []byte    `bun:"data,type:jsonb"`
	UpdatedAt time.Time `bun:"updated_at"`
}

// DocumentRepository stores one completion document per quiz, replaced
// whole on every save.
type DocumentRepository struct {
	db *bun.DB
}

func NewDocumentRepository(db *bun.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Get(ctx context.Context, quizID string) (domain.CompletionDocument, error) {
	var row documentRow
	err := r.db.NewSelect().Model(&row).Where("quiz_id = ?", quizID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CompletionDocument{}, domain.ErrDocumentNotFound
	}
	if err != nil {
		return domain.CompletionDocument{}, err
	}
	var doc domain.CompletionDocument
	if err := json.Unmarshal(row.Data, &doc); err != nil {
		return domain.CompletionDocument{}, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}

func (r *DocumentRepository) Save(ctx context.Context, quizID string, doc domain.CompletionDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	row := documentRow{QuizID: quizID, Data: data, UpdatedAt: time.Now()}
	_, err = r.db.NewInsert().
		Model(&row).
		On("CONFLICT (quiz_id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

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

// quizRow keeps the full quiz document as JSONB next to the columns the
// admin queries filter on.
type quizRow struct {
	bun.BaseModel `bun:"table:quizzes"`

	ID        string    `bun:"id,pk"`
	OwnerID   string    `bun:"owner_id"`
	ShareSlug string    `bun:"share_slug"`
	Active    bool      `bun:"active"`
	CreatedAt time.Time `bun:"created_at"`
	UpdatedAt time.Time `bun:"updated_at"`
	Data      []byte    `bun:"data,type:jsonb"`
}

func rowFromQuiz(quiz domain.Quiz) (quizRow, error) {
	data, err := json.Marshal(quiz)
	if err != nil {
		return quizRow{}, fmt.Errorf("marshal quiz: %w", err)
	}
	return quizRow{
		ID:        quiz.ID,
		OwnerID:   quiz.OwnerID,
		ShareSlug: quiz.ShareSlug,
		Active:    quiz.Active,
		CreatedAt: quiz.CreatedAt,
		UpdatedAt: quiz.UpdatedAt,
		Data:      data,
	}, nil
}

func (r quizRow) quiz() (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := json.Unmarshal(r.Data, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return quiz, nil
}

// QuizRepository is the bun-backed quiz store for the admin surfaces.
type QuizRepository struct {
	db *bun.DB
}

func NewQuizRepository(db *bun.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *domain.Quiz) error {
	row, err := rowFromQuiz(*quiz)
	if err != nil {
		return err
	}
	_, err = r.db.NewInsert().Model(&row).Exec(ctx)
	return err
}

func (r *QuizRepository) GetByID(ctx context.Context, id string) (domain.Quiz, error) {
	var row quizRow
	err := r.db.NewSelect().Model(&row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, err
	}
	return row.quiz()
}

func (r *QuizRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Quiz, error) {
	var rows []quizRow
	err := r.db.NewSelect().
		Model(&rows).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Quiz, 0, len(rows))
	for _, row := range rows {
		quiz, err := row.quiz()
		if err != nil {
			return nil, err
		}
		out = append(out, quiz)
	}
	return out, nil
}

func (r *QuizRepository) Update(ctx context.Context, quiz *domain.Quiz) error {
	row, err := rowFromQuiz(*quiz)
	if err != nil {
		return err
	}
	res, err := r.db.NewUpdate().Model(&row).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().Model((*quizRow)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

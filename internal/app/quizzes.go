package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"quizflow/internal/domain"
	"quizflow/internal/urlgen"
)

// QuizRepository persists quizzes for the admin surfaces.
type QuizRepository interface {
	Create(ctx context.Context, quiz *domain.Quiz) error
	GetByID(ctx context.Context, id string) (domain.Quiz, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Quiz, error)
	Update(ctx context.Context, quiz *domain.Quiz) error
	Delete(ctx context.Context, id string) error
}

// QuizReader is the public read path: quizzes addressed by share slug.
type QuizReader interface {
	GetBySlug(ctx context.Context, slug string) (domain.Quiz, error)
}

// DocumentRepository persists completion documents, one per quiz,
// replaced whole on every save.
type DocumentRepository interface {
	Get(ctx context.Context, quizID string) (domain.CompletionDocument, error)
	Save(ctx context.Context, quizID string, doc domain.CompletionDocument) error
}

// ResponseRepository records completed quiz runs.
type ResponseRepository interface {
	Save(ctx context.Context, resp domain.Response) error
}

// CreateQuizInput carries the admin-provided fields for a new quiz.
type CreateQuizInput struct {
	Title       string
	Description string
	Questions   []domain.Question
}

// UpdateQuizInput patches quiz fields; nil pointers leave fields unchanged.
type UpdateQuizInput struct {
	Title       *string
	Description *string
	Questions   *[]domain.Question
}

// QuizService contains the quiz management use cases for admins.
type QuizService struct {
	quizzes QuizRepository
	baseURL string
	now     func() time.Time
}

func NewQuizService(quizzes QuizRepository, baseURL string) *QuizService {
	return &QuizService{quizzes: quizzes, baseURL: baseURL, now: time.Now}
}

// Create stores a new quiz owned by ownerID with a freshly generated share
// slug and URL.
func (s *QuizService) Create(ctx context.Context, ownerID string, in CreateQuizInput) (domain.Quiz, error) {
	if err := validateQuizInput(in.Title, in.Questions); err != nil {
		return domain.Quiz{}, err
	}

	slug := urlgen.NewToken(urlgen.DefaultTokenLength)
	now := s.now()
	quiz := domain.Quiz{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		OwnerID:     ownerID,
		Active:      true,
		ShareSlug:   slug,
		ShareURL:    urlgen.QuizURL(s.baseURL, slug),
		Questions:   in.Questions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.quizzes.Create(ctx, &quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// List returns the owner's quizzes, newest first.
func (s *QuizService) List(ctx context.Context, ownerID string) ([]domain.Quiz, error) {
	return s.quizzes.ListByOwner(ctx, ownerID)
}

// Get returns a quiz after checking ownership.
func (s *QuizService) Get(ctx context.Context, id, ownerID string) (domain.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		return domain.Quiz{}, err
	}
	if quiz.OwnerID != ownerID {
		return domain.Quiz{}, domain.ErrNotOwner
	}
	return quiz, nil
}

// Update patches the quiz and bumps its updated timestamp.
func (s *QuizService) Update(ctx context.Context, id, ownerID string, in UpdateQuizInput) (domain.Quiz, error) {
	quiz, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return domain.Quiz{}, err
	}
	if in.Title != nil {
		quiz.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		quiz.Description = *in.Description
	}
	if in.Questions != nil {
		quiz.Questions = *in.Questions
	}
	if err := validateQuizInput(quiz.Title, quiz.Questions); err != nil {
		return domain.Quiz{}, err
	}
	quiz.UpdatedAt = s.now()
	if err := s.quizzes.Update(ctx, &quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// SetActive toggles whether respondents can reach the quiz.
func (s *QuizService) SetActive(ctx context.Context, id, ownerID string, active bool) (domain.Quiz, error) {
	quiz, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz.Active = active
	quiz.UpdatedAt = s.now()
	if err := s.quizzes.Update(ctx, &quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// Delete removes the quiz after checking ownership.
func (s *QuizService) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := s.Get(ctx, id, ownerID); err != nil {
		return err
	}
	return s.quizzes.Delete(ctx, id)
}

func validateQuizInput(title string, questions []domain.Question) error {
	if strings.TrimSpace(title) == "" {
		return domain.ErrInvalidQuiz
	}
	for _, q := range questions {
		if strings.TrimSpace(q.Prompt) == "" || len(q.Options) < 2 {
			return domain.ErrInvalidQuiz
		}
	}
	return nil
}

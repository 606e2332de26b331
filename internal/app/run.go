package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"quizflow/internal/domain"
	"quizflow/internal/urlgen"
)

// RunStore holds in-flight quiz runs (in-memory or Redis with TTL).
type RunStore interface {
	Put(ctx context.Context, run Run) error
	Get(ctx context.Context, id string) (Run, error)
	Delete(ctx context.Context, id string) error
}

// Run is the state of one respondent stepping through a quiz: an index into
// the fixed question list, the current (uncommitted) selection, and the
// answers committed so far. There is no backward navigation or branching.
type Run struct {
	ID           string    `json:"id"`
	QuizID       string    `json:"quizId"`
	Slug         string    `json:"slug"`
	CurrentIndex int       `json:"currentIndex"`
	Selected     *string   `json:"selected,omitempty"`
	Answers      []string  `json:"answers"`
	Completed    bool      `json:"completed"`
	StartedAt    time.Time `json:"startedAt"`
}

// Step is the respondent-facing view of a run after an operation.
type Step struct {
	Run       Run              `json:"run"`
	Question  *domain.Question `json:"question,omitempty"`
	Total     int              `json:"total"`
	Completed bool             `json:"completed"`
	// CompletionURL points at the rendered completion page once the run is done.
	CompletionURL string `json:"completionUrl,omitempty"`
	// RedirectURL is the completion document's primary button destination.
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// RunService drives the linear quiz-taking flow.
type RunService struct {
	runs      RunStore
	quizzes   QuizReader
	docs      DocumentRepository
	responses ResponseRepository
	baseURL   string
	now       func() time.Time
}

func NewRunService(runs RunStore, quizzes QuizReader, docs DocumentRepository, responses ResponseRepository, baseURL string) *RunService {
	return &RunService{
		runs:      runs,
		quizzes:   quizzes,
		docs:      docs,
		responses: responses,
		baseURL:   baseURL,
		now:       time.Now,
	}
}

// Start creates a run for the quiz behind slug and returns the first step.
func (s *RunService) Start(ctx context.Context, slug string) (Step, error) {
	quiz, err := s.quizzes.GetBySlug(ctx, slug)
	if err != nil {
		return Step{}, err
	}
	if !quiz.Active {
		return Step{}, domain.ErrQuizInactive
	}

	run := Run{
		ID:        uuid.NewString(),
		QuizID:    quiz.ID,
		Slug:      slug,
		Answers:   []string{},
		StartedAt: s.now(),
	}
	if err := s.runs.Put(ctx, run); err != nil {
		return Step{}, err
	}
	return s.step(ctx, run, quiz), nil
}

// Step returns the current state of a run.
func (s *RunService) Step(ctx context.Context, runID string) (Step, error) {
	run, err := s.runs.Get(ctx, runID)
	if err != nil {
		return Step{}, err
	}
	quiz, err := s.quizzes.GetBySlug(ctx, run.Slug)
	if err != nil {
		return Step{}, err
	}
	return s.step(ctx, run, quiz), nil
}

// Select records the option for the current question, overwriting any prior
// selection. It never advances the run.
func (s *RunService) Select(ctx context.Context, runID, option string) (Step, error) {
	run, err := s.runs.Get(ctx, runID)
	if err != nil {
		return Step{}, err
	}
	if run.Completed {
		return Step{}, domain.ErrRunCompleted
	}
	quiz, err := s.quizzes.GetBySlug(ctx, run.Slug)
	if err != nil {
		return Step{}, err
	}
	if run.CurrentIndex >= len(quiz.Questions) {
		return Step{}, domain.ErrRunCompleted
	}
	if !optionOf(quiz.Questions[run.CurrentIndex], option) {
		return Step{}, domain.ErrUnknownOption
	}

	run.Selected = &option
	if err := s.runs.Put(ctx, run); err != nil {
		return Step{}, err
	}
	return s.step(ctx, run, quiz), nil
}

// Advance commits the current selection and moves to the next question, or
// completes the run after the last one. Advancing without a selection is
// rejected with the run unchanged. Completion happens exactly once and
// persists the accumulated answers as a response record.
func (s *RunService) Advance(ctx context.Context, runID string) (Step, error) {
	run, err := s.runs.Get(ctx, runID)
	if err != nil {
		return Step{}, err
	}
	if run.Completed {
		return Step{}, domain.ErrRunCompleted
	}
	if run.Selected == nil {
		return Step{}, domain.ErrSelectionRequired
	}
	quiz, err := s.quizzes.GetBySlug(ctx, run.Slug)
	if err != nil {
		return Step{}, err
	}

	run.Answers = append(run.Answers, *run.Selected)
	run.Selected = nil

	if run.CurrentIndex+1 < len(quiz.Questions) {
		run.CurrentIndex++
		if err := s.runs.Put(ctx, run); err != nil {
			return Step{}, err
		}
		return s.step(ctx, run, quiz), nil
	}

	run.Completed = true
	resp := domain.Response{
		ID:          uuid.NewString(),
		QuizID:      run.QuizID,
		RunID:       run.ID,
		Answers:     run.Answers,
		CompletedAt: s.now(),
	}
	// Record the response before committing the terminal state so a failed
	// write leaves the run retryable.
	if err := s.responses.Save(ctx, resp); err != nil {
		return Step{}, err
	}
	if err := s.runs.Put(ctx, run); err != nil {
		return Step{}, err
	}
	return s.step(ctx, run, quiz), nil
}

func (s *RunService) step(ctx context.Context, run Run, quiz domain.Quiz) Step {
	st := Step{
		Run:       run,
		Total:     len(quiz.Questions),
		Completed: run.Completed,
	}
	if run.Completed {
		st.CompletionURL = urlgen.CompletionURL(s.baseURL, run.Slug)
		st.RedirectURL = s.redirectURL(ctx, run.QuizID)
		return st
	}
	if run.CurrentIndex < len(quiz.Questions) {
		q := quiz.Questions[run.CurrentIndex]
		st.Question = &q
	}
	return st
}

// redirectURL resolves the completion document's primary button destination;
// a quiz without a saved document falls back to no redirect.
func (s *RunService) redirectURL(ctx context.Context, quizID string) string {
	doc, err := s.docs.Get(ctx, quizID)
	if err != nil {
		return ""
	}
	return doc.PrimaryButtonURL
}

func optionOf(q domain.Question, option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

package app_test

import (
	"context"
	"testing"
	"time"

	"quizflow/internal/app"
	"quizflow/internal/domain"
	"quizflow/internal/infra/memory"
)

func newRunFixture(t *testing.T) (*app.RunService, *memory.ResponseStore, *memory.DocumentStore) {
	t.Helper()
	quiz := domain.Quiz{
		ID:        "q-1",
		Title:     "Product Feedback Survey",
		OwnerID:   "u-1",
		Active:    true,
		ShareSlug: "quiz_fixture",
		Questions: []domain.Question{
			{Prompt: "Team size?", Options: []string{"1-5", "6-15"}},
			{Prompt: "Budget?", Options: []string{"low", "high"}},
			{Prompt: "Heard from?", Options: []string{"search", "referral"}},
		},
	}
	quizzes := memory.NewQuizStore(quiz)
	docs := memory.NewDocumentStore()
	responses := memory.NewResponseStore()
	runs := memory.NewRunStore(time.Hour)
	svc := app.NewRunService(runs, memory.NewQuizCache(quizzes, time.Minute), docs, responses, testBaseURL)
	return svc, responses, docs
}

func TestStartReturnsFirstQuestion(t *testing.T) {
	svc, _, _ := newRunFixture(t)

	step, err := svc.Start(context.Background(), "quiz_fixture")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if step.Question == nil || step.Question.Prompt != "Team size?" {
		t.Fatalf("expected first question, got %+v", step)
	}
	if step.Total != 3 || step.Run.CurrentIndex != 0 || step.Completed {
		t.Fatalf("unexpected initial step: %+v", step)
	}
}

func TestStartUnknownSlug(t *testing.T) {
	svc, _, _ := newRunFixture(t)
	if _, err := svc.Start(context.Background(), "quiz_missing"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestStartInactiveQuiz(t *testing.T) {
	quiz := domain.Quiz{
		ID: "q-2", Title: "Paused", OwnerID: "u-1", Active: false, ShareSlug: "quiz_paused",
		Questions: []domain.Question{{Prompt: "?", Options: []string{"a", "b"}}},
	}
	quizzes := memory.NewQuizStore(quiz)
	svc := app.NewRunService(memory.NewRunStore(time.Hour), memory.NewQuizCache(quizzes, time.Minute), memory.NewDocumentStore(), memory.NewResponseStore(), testBaseURL)

	if _, err := svc.Start(context.Background(), "quiz_paused"); err != domain.ErrQuizInactive {
		t.Fatalf("expected ErrQuizInactive, got %v", err)
	}
}

func TestAdvanceRequiresSelection(t *testing.T) {
	svc, _, _ := newRunFixture(t)
	ctx := context.Background()

	step, _ := svc.Start(ctx, "quiz_fixture")
	if _, err := svc.Advance(ctx, step.Run.ID); err != domain.ErrSelectionRequired {
		t.Fatalf("expected ErrSelectionRequired, got %v", err)
	}

	// State unchanged after the rejection.
	cur, err := svc.Step(ctx, step.Run.ID)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if cur.Run.CurrentIndex != 0 || len(cur.Run.Answers) != 0 {
		t.Fatalf("run mutated by rejected advance: %+v", cur.Run)
	}
}

func TestSelectOverwritesWithoutAdvancing(t *testing.T) {
	svc, _, _ := newRunFixture(t)
	ctx := context.Background()

	step, _ := svc.Start(ctx, "quiz_fixture")
	if _, err := svc.Select(ctx, step.Run.ID, "1-5"); err != nil {
		t.Fatalf("select A: %v", err)
	}
	cur, err := svc.Select(ctx, step.Run.ID, "6-15")
	if err != nil {
		t.Fatalf("select B: %v", err)
	}
	if cur.Run.CurrentIndex != 0 {
		t.Fatalf("select must not advance: %+v", cur.Run)
	}
	if cur.Run.Selected == nil || *cur.Run.Selected != "6-15" {
		t.Fatalf("expected only the second selection kept, got %+v", cur.Run.Selected)
	}

	if _, err := svc.Select(ctx, step.Run.ID, "not an option"); err != domain.ErrUnknownOption {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
}

func TestFullRunRecordsAllAnswersOnce(t *testing.T) {
	svc, responses, docs := newRunFixture(t)
	ctx := context.Background()

	doc := domain.NewDefaultDocument()
	doc.PrimaryButtonURL = "https://example.com/after"
	if err := docs.Save(ctx, "q-1", doc); err != nil {
		t.Fatalf("seed doc: %v", err)
	}

	step, _ := svc.Start(ctx, "quiz_fixture")
	answers := []string{"1-5", "high", "referral"}
	var last app.Step
	for i, a := range answers {
		if _, err := svc.Select(ctx, step.Run.ID, a); err != nil {
			t.Fatalf("select %d: %v", i, err)
		}
		var err error
		last, err = svc.Advance(ctx, step.Run.ID)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	if !last.Completed {
		t.Fatalf("expected completion after last answer: %+v", last)
	}
	if last.RedirectURL != "https://example.com/after" {
		t.Fatalf("expected document redirect, got %q", last.RedirectURL)
	}
	if last.CompletionURL != testBaseURL+"/completion/quiz_fixture" {
		t.Fatalf("unexpected completion URL %q", last.CompletionURL)
	}

	recorded := responses.ByQuiz("q-1")
	if len(recorded) != 1 {
		t.Fatalf("expected exactly one response record, got %d", len(recorded))
	}
	if len(recorded[0].Answers) != 3 || recorded[0].Answers[1] != "high" {
		t.Fatalf("unexpected answers %+v", recorded[0].Answers)
	}

	// Advancing a completed run is rejected and records nothing new.
	if _, err := svc.Advance(ctx, step.Run.ID); err != domain.ErrRunCompleted {
		t.Fatalf("expected ErrRunCompleted, got %v", err)
	}
	if len(responses.ByQuiz("q-1")) != 1 {
		t.Fatalf("completion recorded more than once")
	}
}

func TestCompletedRunWithoutDocumentHasNoRedirect(t *testing.T) {
	svc, _, _ := newRunFixture(t)
	ctx := context.Background()

	step, _ := svc.Start(ctx, "quiz_fixture")
	for _, a := range []string{"1-5", "low", "search"} {
		if _, err := svc.Select(ctx, step.Run.ID, a); err != nil {
			t.Fatalf("select: %v", err)
		}
		var err error
		step2, err := svc.Advance(ctx, step.Run.ID)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if step2.Completed {
			if step2.RedirectURL != "" {
				t.Fatalf("expected empty redirect without a saved document, got %q", step2.RedirectURL)
			}
			return
		}
	}
	t.Fatalf("run never completed")
}

func TestUnknownRun(t *testing.T) {
	svc, _, _ := newRunFixture(t)
	if _, err := svc.Step(context.Background(), "missing"); err != domain.ErrRunNotFound {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"quizflow/internal/app"
	"quizflow/internal/domain"
	"quizflow/internal/infra/memory"
	"quizflow/internal/render"
)

const testBaseURL = "https://quizflow.example"

type testEnv struct {
	server  *httptest.Server
	token   string
	quizzes *memory.QuizStore
	docs    *memory.DocumentStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	quizzes := memory.NewQuizStore()
	cache := memory.NewQuizCache(quizzes, time.Minute)
	docs := memory.NewDocumentStore()
	responses := memory.NewResponseStore()
	runs := memory.NewRunStore(time.Hour)
	editors := memory.NewEditorStore(time.Hour)
	users := memory.NewUserStore()
	renderer := render.New()

	auth := app.NewAuthService(users, []byte("test-secret"), time.Hour)
	quizSvc := app.NewQuizService(quizzes, testBaseURL)
	editorSvc := app.NewEditorService(editors, docs, quizzes, renderer.Render, testBaseURL, 2<<20)
	runSvc := app.NewRunService(runs, cache, docs, responses, testBaseURL)

	router := NewRouter(RouterConfig{
		Auth:           auth,
		Quizzes:        quizSvc,
		Editors:        editorSvc,
		Runs:           runSvc,
		Reader:         cache,
		Docs:           docs,
		Renderer:       renderer,
		BaseURL:        testBaseURL,
		InvalidateQuiz: cache.Invalidate,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	env := &testEnv{server: server, quizzes: quizzes, docs: docs}
	body := env.doJSON(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"email":    "admin@example.com",
		"password": "long enough pw",
		"name":     "Alice",
	}, http.StatusCreated)
	env.token = body["token"].(string)
	return env
}

// doJSON issues a request and decodes the JSON body, failing the test on an
// unexpected status.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload any, wantStatus int) map[string]any {
	t.Helper()
	resp := e.do(t, method, path, token, payload)
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: status %d, want %d (%s)", method, path, resp.StatusCode, wantStatus, data)
	}
	var body map[string]any
	data, _ := io.ReadAll(resp.Body)
	if len(data) > 0 {
		_ = json.Unmarshal(data, &body)
	}
	return body
}

func (e *testEnv) do(t *testing.T, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.server.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func (e *testEnv) createQuiz(t *testing.T) map[string]any {
	t.Helper()
	return e.doJSON(t, http.MethodPost, "/api/v1/quizzes", e.token, map[string]any{
		"title":       "Product Feedback Survey",
		"description": "Quick pulse check",
		"questions": []map[string]any{
			{"prompt": "Team size?", "options": []string{"1-5", "6-15"}},
			{"prompt": "Budget?", "options": []string{"low", "high"}},
		},
	}, http.StatusCreated)
}

func seedDocument(t *testing.T, docs *memory.DocumentStore, quizID, redirect string) {
	t.Helper()
	doc := domain.NewDefaultDocument()
	doc.PrimaryButtonURL = redirect
	if err := docs.Save(context.Background(), quizID, doc); err != nil {
		t.Fatalf("seed doc: %v", err)
	}
}

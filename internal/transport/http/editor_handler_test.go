package http

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"net/http"
	"strings"
	"testing"
)

func (e *testEnv) openEditor(t *testing.T) (editorID, quizID string) {
	t.Helper()
	quiz := e.createQuiz(t)
	opened := e.doJSON(t, http.MethodPost, "/api/v1/quizzes/"+quiz["id"].(string)+"/editor",
		e.token, nil, http.StatusCreated)
	return opened["editorId"].(string), quiz["id"].(string)
}

func TestEditorPatchAndListOps(t *testing.T) {
	env := newTestEnv(t)
	editorID, _ := env.openEditor(t)
	base := "/api/v1/editors/" + editorID

	patched := env.doJSON(t, http.MethodPatch, base, env.token,
		map[string]any{"title": "All done", "headerEnabled": true, "headerText": "Hooray"}, http.StatusOK)
	doc := patched["document"].(map[string]any)
	if doc["title"] != "All done" || doc["header"].(map[string]any)["enabled"] != true {
		t.Fatalf("unexpected document %+v", doc)
	}

	block := env.doJSON(t, http.MethodPost, base+"/text-blocks", env.token,
		map[string]any{"kind": "heading"}, http.StatusCreated)
	if block["content"] != "New Heading" || block["id"] == "" {
		t.Fatalf("unexpected block %+v", block)
	}
	blockID := block["id"].(string)

	env.doJSON(t, http.MethodPatch, base+"/text-blocks/"+blockID, env.token,
		map[string]any{"content": "Edited"}, http.StatusOK)
	env.doJSON(t, http.MethodPatch, base+"/text-blocks/missing", env.token,
		map[string]any{"content": "x"}, http.StatusNotFound)

	env.doJSON(t, http.MethodDelete, base+"/text-blocks/"+blockID, env.token, nil, http.StatusNoContent)

	btn := env.doJSON(t, http.MethodPost, base+"/buttons", env.token, nil, http.StatusCreated)
	if btn["text"] != "New Button" || btn["style"] != "secondary" {
		t.Fatalf("unexpected button %+v", btn)
	}

	link := env.doJSON(t, http.MethodPost, base+"/footer-links", env.token, nil, http.StatusCreated)
	if link["text"] != "New Link" {
		t.Fatalf("unexpected link %+v", link)
	}
}

func TestEditorSaveRequiresRedirectURL(t *testing.T) {
	env := newTestEnv(t)
	editorID, _ := env.openEditor(t)
	base := "/api/v1/editors/" + editorID

	env.doJSON(t, http.MethodPost, base+"/save", env.token, nil, http.StatusBadRequest)

	shared := env.doJSON(t, http.MethodPost, base+"/share-url", env.token, nil, http.StatusOK)
	url := shared["url"].(string)
	if !strings.HasPrefix(url, testBaseURL+"/quiz/quiz_") {
		t.Fatalf("unexpected share URL %q", url)
	}

	saved := env.doJSON(t, http.MethodPost, base+"/save", env.token, nil, http.StatusOK)
	if saved["document"].(map[string]any)["primaryButtonUrl"] != url {
		t.Fatalf("saved document lost the share URL: %+v", saved)
	}
}

func TestEditorSaveFeedsCompletionPage(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t)
	opened := env.doJSON(t, http.MethodPost, "/api/v1/quizzes/"+quiz["id"].(string)+"/editor",
		env.token, nil, http.StatusCreated)
	base := "/api/v1/editors/" + opened["editorId"].(string)

	env.doJSON(t, http.MethodPatch, base, env.token,
		map[string]any{"title": "Custom finish line", "primaryButtonUrl": "https://example.com/after"},
		http.StatusOK)
	env.doJSON(t, http.MethodPost, base+"/save", env.token, nil, http.StatusOK)

	resp := env.do(t, http.MethodGet, "/completion/"+quiz["shareSlug"].(string), "", nil)
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), "Custom finish line") {
		t.Fatalf("published page missing saved content (status %d):\n%s", resp.StatusCode, data)
	}
}

func TestEditorPreviewReturnsHTML(t *testing.T) {
	env := newTestEnv(t)
	editorID, _ := env.openEditor(t)

	resp := env.do(t, http.MethodGet, "/api/v1/editors/"+editorID+"/preview", env.token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), `data-section="title"`) {
		t.Fatalf("expected rendered preview, got:\n%s", data)
	}
}

func TestEditorImageUpload(t *testing.T) {
	env := newTestEnv(t)
	editorID, _ := env.openEditor(t)
	base := "/api/v1/editors/" + editorID

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, env.server.URL+base+"/main-image", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+env.token)
	req.Header.Set("Content-Type", "application/octet-stream")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("upload status %d", resp.StatusCode)
	}

	got := env.doJSON(t, http.MethodGet, base, env.token, nil, http.StatusOK)
	url := got["document"].(map[string]any)["mainImage"].(map[string]any)["url"].(string)
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("expected data URI, got %q", url)
	}

	// Not an image at all.
	req, _ = http.NewRequest(http.MethodPost, env.server.URL+base+"/background-image", strings.NewReader("plain text"))
	req.Header.Set("Authorization", "Bearer "+env.token)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-image, got %d", resp.StatusCode)
	}
}

func TestEditorCloseDiscardsSession(t *testing.T) {
	env := newTestEnv(t)
	editorID, _ := env.openEditor(t)
	base := "/api/v1/editors/" + editorID

	env.doJSON(t, http.MethodDelete, base, env.token, nil, http.StatusNoContent)
	env.doJSON(t, http.MethodGet, base, env.token, nil, http.StatusNotFound)
}

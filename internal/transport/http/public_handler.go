package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quizflow/internal/app"
	"quizflow/internal/domain"
	"quizflow/internal/render"
)

// PublicHandler serves respondents: quiz metadata, the run state machine,
// and the rendered completion page.
type PublicHandler struct {
	Reader   app.QuizReader
	Runs     *app.RunService
	Docs     app.DocumentRepository
	Renderer *render.Renderer
	BaseURL  string
}

// CompletionPage renders the published completion document for the page id
// (the quiz share slug). Misses get a distinct terminal not-found page.
func (h *PublicHandler) CompletionPage(c *gin.Context) {
	pageID := c.Param("pageID")

	quiz, err := h.Reader.GetBySlug(c.Request.Context(), pageID)
	if err == nil {
		doc, derr := h.Docs.Get(c.Request.Context(), quiz.ID)
		if derr == nil {
			html, rerr := h.Renderer.Render(doc)
			if rerr != nil {
				c.String(http.StatusInternalServerError, "render failed")
				return
			}
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
			return
		}
		if !errors.Is(derr, domain.ErrDocumentNotFound) {
			c.String(http.StatusInternalServerError, "load failed")
			return
		}
	} else if !errors.Is(err, domain.ErrQuizNotFound) {
		c.String(http.StatusInternalServerError, "load failed")
		return
	}

	html, rerr := h.Renderer.RenderNotFound(h.BaseURL)
	if rerr != nil {
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(html))
}

// QuizInfo returns the metadata a respondent needs before starting a run.
func (h *PublicHandler) QuizInfo(c *gin.Context) {
	quiz, err := h.Reader.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !quiz.Active {
		writeError(c, domain.ErrQuizNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"slug":          quiz.ShareSlug,
		"title":         quiz.Title,
		"description":   quiz.Description,
		"questionCount": len(quiz.Questions),
	})
}

func (h *PublicHandler) StartRun(c *gin.Context) {
	step, err := h.Runs.Start(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrQuizInactive) {
			// Inactive and unknown quizzes are indistinguishable publicly.
			writeError(c, domain.ErrQuizNotFound)
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, step)
}

func (h *PublicHandler) RunStep(c *gin.Context) {
	step, err := h.Runs.Step(c.Request.Context(), c.Param("runID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, step)
}

type selectRequest struct {
	Option string `json:"option"`
}

func (h *PublicHandler) SelectOption(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	step, err := h.Runs.Select(c.Request.Context(), c.Param("runID"), req.Option)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, step)
}

func (h *PublicHandler) Advance(c *gin.Context) {
	step, err := h.Runs.Advance(c.Request.Context(), c.Param("runID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, step)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizflow/internal/app"
	"quizflow/internal/domain"
)

// QuizHandler is the JWT-gated quiz management surface.
type QuizHandler struct {
	Quizzes *app.QuizService
	Editors *app.EditorService
	// Invalidate drops the cached quiz by slug after edits; nil without a cache.
	Invalidate func(slug string)
}

type createQuizRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []domain.Question `json:"questions"`
}

type updateQuizRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Questions   *[]domain.Question `json:"questions"`
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (h *QuizHandler) invalidate(slug string) {
	if h.Invalidate != nil {
		h.Invalidate(slug)
	}
}

func (h *QuizHandler) List(c *gin.Context) {
	quizzes, err := h.Quizzes.List(c.Request.Context(), currentSession(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	if quizzes == nil {
		quizzes = []domain.Quiz{}
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) Create(c *gin.Context) {
	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	quiz, err := h.Quizzes.Create(c.Request.Context(), currentSession(c).UserID, app.CreateQuizInput{
		Title:       req.Title,
		Description: req.Description,
		Questions:   req.Questions,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *QuizHandler) Get(c *gin.Context) {
	quiz, err := h.Quizzes.Get(c.Request.Context(), c.Param("id"), currentSession(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) Update(c *gin.Context) {
	var req updateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	quiz, err := h.Quizzes.Update(c.Request.Context(), c.Param("id"), currentSession(c).UserID, app.UpdateQuizInput{
		Title:       req.Title,
		Description: req.Description,
		Questions:   req.Questions,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.invalidate(quiz.ShareSlug)
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) Delete(c *gin.Context) {
	ownerID := currentSession(c).UserID
	quiz, err := h.Quizzes.Get(c.Request.Context(), c.Param("id"), ownerID)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.Quizzes.Delete(c.Request.Context(), quiz.ID, ownerID); err != nil {
		writeError(c, err)
		return
	}
	h.invalidate(quiz.ShareSlug)
	c.Status(http.StatusNoContent)
}

func (h *QuizHandler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	quiz, err := h.Quizzes.SetActive(c.Request.Context(), c.Param("id"), currentSession(c).UserID, req.Active)
	if err != nil {
		writeError(c, err)
		return
	}
	h.invalidate(quiz.ShareSlug)
	c.JSON(http.StatusOK, quiz)
}

// OpenEditor starts an editor session over the quiz's completion document.
func (h *QuizHandler) OpenEditor(c *gin.Context) {
	ed, err := h.Editors.Open(c.Request.Context(), c.Param("id"), currentSession(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"editorId": ed.ID(),
		"quizId":   ed.QuizID(),
		"document": ed.Document(),
	})
}

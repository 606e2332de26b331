package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"quizflow/internal/app"
	"quizflow/internal/domain"
)

// EditorHandler exposes one editor session's operations. Every route takes
// the session id and goes through the service's ownership check.
type EditorHandler struct {
	Editors *app.EditorService
}

func (h *EditorHandler) editor(c *gin.Context) (*app.Editor, bool) {
	ed, err := h.Editors.Editor(c.Param("id"), currentSession(c).UserID)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return ed, true
}

func (h *EditorHandler) Get(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"editorId": ed.ID(),
		"quizId":   ed.QuizID(),
		"document": ed.Document(),
	})
}

func (h *EditorHandler) Patch(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	var patch app.DocumentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	ed.Apply(patch)
	c.JSON(http.StatusOK, gin.H{"document": ed.Document()})
}

func (h *EditorHandler) Close(c *gin.Context) {
	if err := h.Editors.Close(c.Param("id"), currentSession(c).UserID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addTextBlockRequest struct {
	Kind domain.BlockKind `json:"kind"`
}

func (h *EditorHandler) AddTextBlock(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	var req addTextBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusCreated, ed.AddTextBlock(req.Kind))
}

func (h *EditorHandler) UpdateTextBlock(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	var patch app.TextBlockPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := ed.UpdateTextBlock(c.Param("itemID"), patch); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": ed.Document()})
}

func (h *EditorHandler) RemoveTextBlock(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	ed.RemoveTextBlock(c.Param("itemID"))
	c.Status(http.StatusNoContent)
}

func (h *EditorHandler) AddButton(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, ed.AddButton())
}

func (h *EditorHandler) UpdateButton(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	var patch app.ButtonPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := ed.UpdateButton(c.Param("itemID"), patch); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": ed.Document()})
}

func (h *EditorHandler) RemoveButton(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	ed.RemoveButton(c.Param("itemID"))
	c.Status(http.StatusNoContent)
}

func (h *EditorHandler) AddFooterLink(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, ed.AddFooterLink())
}

func (h *EditorHandler) UpdateFooterLink(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	var patch app.FooterLinkPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := ed.UpdateFooterLink(c.Param("itemID"), patch); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": ed.Document()})
}

func (h *EditorHandler) RemoveFooterLink(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	ed.RemoveFooterLink(c.Param("itemID"))
	c.Status(http.StatusNoContent)
}

func (h *EditorHandler) SetBackgroundImage(c *gin.Context) {
	h.setImage(c, h.Editors.SetBackgroundImage)
}

func (h *EditorHandler) SetMainImage(c *gin.Context) {
	h.setImage(c, h.Editors.SetMainImage)
}

func (h *EditorHandler) setImage(c *gin.Context, set func(id, ownerID string, data []byte) error) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := set(c.Param("id"), currentSession(c).UserID, data); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EditorHandler) GenerateShareURL(c *gin.Context) {
	url, err := h.Editors.GenerateShareURL(c.Param("id"), currentSession(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *EditorHandler) Save(c *gin.Context) {
	doc, err := h.Editors.Save(c.Request.Context(), c.Param("id"), currentSession(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

func (h *EditorHandler) Preview(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}
	html, err := ed.Preview()
	if err != nil {
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

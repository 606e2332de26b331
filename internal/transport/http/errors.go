package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quizflow/internal/domain"
)

// writeError maps domain sentinels onto HTTP statuses with a JSON body.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrQuizInactive),
		errors.Is(err, domain.ErrRunNotFound),
		errors.Is(err, domain.ErrEditorNotFound),
		errors.Is(err, domain.ErrDocumentNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuiz),
		errors.Is(err, domain.ErrRedirectURLRequired),
		errors.Is(err, domain.ErrSelectionRequired),
		errors.Is(err, domain.ErrUnknownOption),
		errors.Is(err, domain.ErrNotImage):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRunCompleted),
		errors.Is(err, domain.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrSessionExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrImageTooLarge):
		status = http.StatusRequestEntityTooLarge
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

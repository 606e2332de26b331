package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quizflow/internal/app"
	"quizflow/internal/domain"
)

const sessionKey = "session"

// requireSession validates the bearer token (or a token query parameter,
// which websocket clients cannot avoid) and stores the session on the
// request context.
func requireSession(auth *app.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
			return
		}
		session, err := auth.CurrentSession(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

func currentSession(c *gin.Context) domain.Session {
	v, _ := c.Get(sessionKey)
	session, _ := v.(domain.Session)
	return session
}

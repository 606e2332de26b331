// Package http is the gin transport: public quiz-taking endpoints, the
// rendered completion page, the auth surface, and the JWT-gated admin API
// with its websocket preview.
package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"quizflow/internal/app"
	"quizflow/internal/render"
)

// RouterConfig carries the wired services and the knobs the router needs.
type RouterConfig struct {
	Auth     *app.AuthService
	Quizzes  *app.QuizService
	Editors  *app.EditorService
	Runs     *app.RunService
	Reader   app.QuizReader
	Docs     app.DocumentRepository
	Renderer *render.Renderer

	BaseURL     string
	CORSOrigins []string

	// InvalidateQuiz drops a cached quiz after admin edits; nil when no
	// cache sits in front of the reader.
	InvalidateQuiz func(slug string)
}

// NewRouter assembles the gin engine with all routes registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))

	public := &PublicHandler{
		Reader:   cfg.Reader,
		Runs:     cfg.Runs,
		Docs:     cfg.Docs,
		Renderer: cfg.Renderer,
		BaseURL:  cfg.BaseURL,
	}
	authH := &AuthHandler{Auth: cfg.Auth}
	quizH := &QuizHandler{Quizzes: cfg.Quizzes, Editors: cfg.Editors, Invalidate: cfg.InvalidateQuiz}
	editorH := &EditorHandler{Editors: cfg.Editors}

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.GET("/completion/:pageID", public.CompletionPage)

	v1 := r.Group("/api/v1")

	pub := v1.Group("/public")
	pub.GET("/quizzes/:slug", public.QuizInfo)
	pub.POST("/quizzes/:slug/runs", public.StartRun)
	pub.GET("/runs/:runID", public.RunStep)
	pub.POST("/runs/:runID/select", public.SelectOption)
	pub.POST("/runs/:runID/advance", public.Advance)

	auth := v1.Group("/auth")
	auth.POST("/signup", authH.SignUp)
	auth.POST("/signin", authH.SignIn)
	auth.POST("/signout", authH.SignOut)
	auth.POST("/reset-password", authH.ResetPassword)
	auth.GET("/me", requireSession(cfg.Auth), authH.Me)

	admin := v1.Group("", requireSession(cfg.Auth))
	admin.GET("/quizzes", quizH.List)
	admin.POST("/quizzes", quizH.Create)
	admin.GET("/quizzes/:id", quizH.Get)
	admin.PATCH("/quizzes/:id", quizH.Update)
	admin.DELETE("/quizzes/:id", quizH.Delete)
	admin.POST("/quizzes/:id/active", quizH.SetActive)
	admin.POST("/quizzes/:id/editor", quizH.OpenEditor)

	editors := admin.Group("/editors/:id")
	editors.GET("", editorH.Get)
	editors.PATCH("", editorH.Patch)
	editors.DELETE("", editorH.Close)
	editors.POST("/text-blocks", editorH.AddTextBlock)
	editors.PATCH("/text-blocks/:itemID", editorH.UpdateTextBlock)
	editors.DELETE("/text-blocks/:itemID", editorH.RemoveTextBlock)
	editors.POST("/buttons", editorH.AddButton)
	editors.PATCH("/buttons/:itemID", editorH.UpdateButton)
	editors.DELETE("/buttons/:itemID", editorH.RemoveButton)
	editors.POST("/footer-links", editorH.AddFooterLink)
	editors.PATCH("/footer-links/:itemID", editorH.UpdateFooterLink)
	editors.DELETE("/footer-links/:itemID", editorH.RemoveFooterLink)
	editors.POST("/background-image", editorH.SetBackgroundImage)
	editors.POST("/main-image", editorH.SetMainImage)
	editors.POST("/share-url", editorH.GenerateShareURL)
	editors.POST("/save", editorH.Save)
	editors.GET("/preview", editorH.Preview)
	editors.GET("/preview/ws", editorH.PreviewWS)

	return r
}

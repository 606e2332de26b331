package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizflow/internal/app"
	"quizflow/internal/config"
	"quizflow/internal/infra/memory"
	"quizflow/internal/infra/postgres"
	redisinfra "quizflow/internal/infra/redis"
	"quizflow/internal/render"
	transport "quizflow/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quizflow server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}
	baseURL := cfg.Server.PublicBaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + finalPort
	}

	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	// Storage: Postgres when configured, in-process otherwise.
	var (
		quizRepo  app.QuizRepository
		docs      app.DocumentRepository
		responses app.ResponseRepository
		users     app.UserRepository
		loader    memory.QuizLoader
	)
	if cfg.Postgres.URL != "" {
		pool, err := postgres.NewPool(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		db := postgres.NewDB(cfg.Postgres.URL)
		defer db.Close()

		quizRepo = postgres.NewQuizRepository(db)
		docs = postgres.NewDocumentRepository(db)
		responses = postgres.NewResponseRepository(db)
		users = postgres.NewUserRepository(db)
		loader = postgres.NewQuizLoader(pool)
	} else {
		slog.Warn("postgres not configured, using in-memory storage")
		store := memory.NewQuizStore()
		quizRepo = store
		loader = store
		docs = memory.NewDocumentStore()
		responses = memory.NewResponseStore()
		users = memory.NewUserStore()
	}

	// Public read path: quiz-by-slug cache in Redis when available, else
	// in-process singleflight cache.
	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var (
		reader     app.QuizReader
		invalidate func(slug string)
	)
	if redisClient != nil {
		cache := redisinfra.NewQuizCache(redisClient, loader, quizTTL)
		reader = cache
		invalidate = func(slug string) { cache.Invalidate(context.Background(), slug) }
		docs = redisinfra.NewDocumentCache(redisClient, docs, quizTTL)
	} else {
		cache := memory.NewQuizCache(loader, quizTTL)
		reader = cache
		invalidate = cache.Invalidate
	}

	runTTL := config.TTLDuration(cfg.Run.TTL, time.Hour)
	var runs app.RunStore
	if redisClient != nil {
		runs = redisinfra.NewRunStore(redisClient, runTTL)
	} else {
		runs = memory.NewRunStore(runTTL)
	}

	// Editor sessions are per-instance; the janitor drops idle ones.
	idleTTL := config.TTLDuration(cfg.Editor.IdleTTL, 30*time.Minute)
	editors := memory.NewEditorStore(idleTTL)
	janitorStop := make(chan struct{})
	editors.StartJanitor(time.Minute, janitorStop)
	defer close(janitorStop)

	renderer := render.New()
	sessionTTL := config.TTLDuration(cfg.Auth.SessionTTL, 24*time.Hour)

	router := transport.NewRouter(transport.RouterConfig{
		Auth:           app.NewAuthService(users, []byte(cfg.Auth.JWTSecret), sessionTTL),
		Quizzes:        app.NewQuizService(quizRepo, baseURL),
		Editors:        app.NewEditorService(editors, docs, quizRepo, renderer.Render, baseURL, cfg.MaxImageBytes()),
		Runs:           app.NewRunService(runs, reader, docs, responses, baseURL),
		Reader:         reader,
		Docs:           docs,
		Renderer:       renderer,
		BaseURL:        baseURL,
		CORSOrigins:    cfg.Server.CORSOrigins,
		InvalidateQuiz: invalidate,
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		slog.Info("starting quizflow server", slog.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server stopped", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		slog.Info("shutting down server")
	case <-ctx.Done():
		slog.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

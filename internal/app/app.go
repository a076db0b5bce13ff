package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	"github.com/orgball2608/social-post-scheduler/internal/generator"
	"github.com/orgball2608/social-post-scheduler/internal/generator/generatorimpl"
	"github.com/orgball2608/social-post-scheduler/internal/media"
	_ "github.com/orgball2608/social-post-scheduler/internal/migrations"
	"github.com/orgball2608/social-post-scheduler/internal/notifier/notifierimpl"
	"github.com/orgball2608/social-post-scheduler/internal/publisher/publisherimpl"
	"github.com/orgball2608/social-post-scheduler/internal/ratelimit"
	repositories "github.com/orgball2608/social-post-scheduler/internal/repositories/fx"
	"github.com/orgball2608/social-post-scheduler/internal/scheduler"
	"github.com/orgball2608/social-post-scheduler/internal/scheduler/schedulerimpl"
	"github.com/orgball2608/social-post-scheduler/pkg/config"
	apperrors "github.com/orgball2608/social-post-scheduler/pkg/errors"
	"github.com/orgball2608/social-post-scheduler/pkg/logger"
	"github.com/orgball2608/social-post-scheduler/pkg/pgx"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		newHTTPClient,
		fx.Annotate(
			newAPILimiter,
			fx.As(new(ratelimit.Limiter)),
		),
		fx.Annotate(
			media.NewHTTPFetcher,
			fx.As(new(media.Fetcher)),
		),
		notifierimpl.New,
		fx.Annotate(
			schedulerimpl.New,
			fx.As(new(scheduler.Client)),
		),
		fx.Annotate(
			generatorimpl.New,
			fx.As(new(generator.Client)),
		),
	),
	repositories.Module,
	publisherimpl.Module,
	fx.Invoke(migrateUp),
	fx.Invoke(run),
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

func newAPILimiter() *ratelimit.InMemoryLimiter {
	// Graph and LinkedIn publish calls are low volume, this only guards
	// against one account hammering the APIs within a tick.
	return ratelimit.NewInMemoryLimiter(10, time.Second, 20)
}

func migrateUp(c *config.Config) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return apperrors.Wrap(err, "failed to set migration dialect")
	}

	db, err := sql.Open("postgres", c.GetDSN())
	if err != nil {
		return apperrors.Wrap(err, "failed to open database for migrations")
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	return apperrors.Wrap(goose.Up(db, filepath.Join(wd, "internal", "migrations")), "failed to apply migrations")
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, schedClient scheduler.Client, genClient generator.Client) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, cfg, genClient)

			ctx := context.Background()
			if err := schedClient.SchedulePublishing(ctx); err != nil {
				log.Error("Failed to start publish scheduler", "Error", err)
				return err
			}

			return nil
		},
	})
}

func startHttpServer(log logger.Logger, cfg *config.Config, genClient generator.Client) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})
	http.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		generateHandler(w, r, log, genClient)
	})

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), nil); err != nil {
		log.Error("Server failed to start: %v", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Info("Health check request received", "Method", r.Method, "URL", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "Error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type generateRequest struct {
	Prompt  string `json:"prompt"`
	History []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"history"`
}

func generateHandler(w http.ResponseWriter, r *http.Request, log logger.Logger, genClient generator.Client) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Prompt == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	history := make([]generator.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, generator.Message{Role: m.Role, Content: m.Content})
	}

	post, err := genClient.GeneratePost(r.Context(), req.Prompt, history)
	if err != nil {
		log.Error("Failed to generate post content", "error", err)
		http.Error(w, "content generation failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(post); err != nil {
		log.Error("Failed to write response", "Error", err)
	}
}

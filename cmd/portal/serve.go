package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/only/profile-portal/internal/api"
	"github.com/only/profile-portal/internal/api/handler"
	"github.com/only/profile-portal/internal/core/ports"
	"github.com/only/profile-portal/internal/core/service"
	mongostore "github.com/only/profile-portal/internal/infrastructure/db/mongo"
	redisstore "github.com/only/profile-portal/internal/infrastructure/db/redis"
	"github.com/only/profile-portal/internal/infrastructure/queue"
	"github.com/only/profile-portal/internal/pkg/config"
	"github.com/only/profile-portal/internal/web"
	"github.com/only/profile-portal/internal/web/i18n"
	"github.com/only/profile-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Serve the login and profile pages, the JSON login endpoint, health
probes, Prometheus metrics and the API docs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "profile-portal",
	})

	health := make(map[string]handler.Pinger)

	// --- MongoDB (optional) ---
	var (
		mongoStore *mongostore.Store
		attempts   ports.AttemptRepository = queue.NewLogRepository(logger.For("attempts"))
	)
	if cfg.Mongo.URI != "" {
		mongoStore, err = mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := mongoStore.Close(closeCtx); err != nil {
				log.Error().Err(err).Msg("mongodb disconnect failed")
			}
		}()
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			return err
		}
		attempts = mongostore.NewAttemptRepository(mongoStore.Database())
		health["mongodb"] = mongoStore
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
	}

	creds, err := loadCredentials(ctx, mongoStore, cfg.Auth.HashCost, log)
	if err != nil {
		return err
	}

	// --- Redis (optional) ---
	var revoker ports.SessionRevoker
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		revoker = redisstore.NewRevocationList(rdb)
		health["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	secret, err := sessionSecret(cfg)
	if err != nil {
		return err
	}
	if cfg.Session.Secret == "" {
		log.Warn().Msg("SESSION_SECRET is empty, using a random secret; sessions will not survive a restart")
	}

	// --- Attempt journal ---
	journalCtx, stopJournal := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Journal.Workers, attempts, log)
	dispatcher.Start(journalCtx)
	defer func() {
		stopJournal()
		dispatcher.Wait()
	}()

	renderer, err := web.NewRenderer(log)
	if err != nil {
		return err
	}
	translator, err := i18n.New()
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Authenticator: service.NewAuthenticator(creds, log),
		Journal:       dispatcher,
		Sessions:      service.NewSessionService(secret, cfg.Session.TTL, cfg.Session.RememberTTL, revoker),
		Renderer:      renderer,
		Translator:    translator,
		Cookie: handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
		},
		AuthDelay: cfg.Auth.Delay,
		Health:    health,
		Log:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Int("credentials", creds.Len()).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// sessionSecret returns the configured signing secret. Outside production an
// empty secret is replaced by a random one.
func sessionSecret(cfg *config.Config) (string, error) {
	if cfg.Session.Secret != "" {
		return cfg.Session.Secret, nil
	}
	if cfg.IsProduction() {
		return "", errors.New("SESSION_SECRET is required in production")
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

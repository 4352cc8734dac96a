package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketplace/identity-api/internal/api"
	"github.com/marketplace/identity-api/internal/api/handler"
	"github.com/marketplace/identity-api/internal/core/credentials"
	"github.com/marketplace/identity-api/internal/core/domain"
	"github.com/marketplace/identity-api/internal/core/ports"
	"github.com/marketplace/identity-api/internal/core/service"
	"github.com/marketplace/identity-api/internal/infrastructure/config"
	"github.com/marketplace/identity-api/internal/infrastructure/db/memory"
	mongodb "github.com/marketplace/identity-api/internal/infrastructure/db/mongo"
	redisdb "github.com/marketplace/identity-api/internal/infrastructure/db/redis"
	"github.com/marketplace/identity-api/internal/infrastructure/queue"
	"github.com/marketplace/identity-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       Marketplace Identity API
// @version                     1.0
// @description                 Login, session and landing-route resolution for the marketplace UI.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "identity-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	records, err := loadRecords(cfg, log)
	if err != nil {
		return err
	}
	table, err := credentials.NewTable(records, cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("build credential table: %w", err)
	}
	log.Info().Int("accounts", table.Len()).Msg("credential table loaded")

	var probes []handler.Probe

	// --- Sessions ---
	var sessions ports.SessionStore
	switch cfg.Auth.SessionBackend {
	case config.SessionBackendRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Password: cfg.Redis.Password})
		if err != nil {
			return err
		}
		defer rdb.Close()
		sessions = redisdb.NewSessionStore(rdb)
		probes = append(probes, handler.Probe{
			Name:  "redis",
			Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	default:
		store := memory.NewSessionStore()
		go store.Start()
		defer store.Stop()
		sessions = store
	}
	log.Info().Str("backend", cfg.Auth.SessionBackend).Msg("session store ready")

	// --- Audit trail ---
	var recorder ports.LoginRecorder
	if cfg.Mongo.AuditEnabled {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()

		repo := mongodb.NewLoginEventRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("login event indexes not created")
		}

		// Workers outlive the request context so pending events are flushed
		// before the Mongo client disconnects.
		auditCtx, stopAudit := context.WithCancel(context.Background())
		dispatcher := queue.NewDispatcher(cfg.Mongo.AuditWorkers, repo, log)
		dispatcher.Start(auditCtx)
		defer func() {
			stopAudit()
			dispatcher.Wait()
		}()
		recorder = dispatcher

		probes = append(probes, handler.Probe{
			Name:  "mongodb",
			Check: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		})
	}

	authService := service.NewAuthService(
		credentials.NewResolver(table),
		sessions,
		recorder,
		cfg.JWTSecret,
		service.AuthOptions{TokenTTL: cfg.Auth.TokenTTL, LoginDelay: cfg.Auth.LoginDelay},
		log,
	)

	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		JWTSecret:   cfg.JWTSecret,
		Log:         log,
		Probes:      probes,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("HTTP server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("graceful shutdown completed")
	return nil
}

func loadRecords(cfg *config.Config, log zerolog.Logger) ([]domain.CredentialRecord, error) {
	if cfg.Auth.CredentialsFile != "" {
		return config.LoadCredentials(cfg.Auth.CredentialsFile)
	}
	if !cfg.IsDevelopment() {
		log.Warn().Msg("CREDENTIALS_FILE not set, serving the built-in demo accounts")
	}
	return credentials.DemoRecords(), nil
}

// Package app wires the tally server runtime: config, logging, database,
// HTTP routes and graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tally/internal/account"
	"tally/internal/httpapi"
	"tally/internal/identity"
	"tally/internal/session"
	"tally/internal/todo"
)

// App is the tally server runtime.
type App struct {
	cfg Config
	log Logger

	pool *pgxpool.Pool
	api  *httpapi.Handler
}

// New constructs a fully wired App instance from config and logger.
//
// The immutable security configuration (signing secret, token lifetime,
// password bounds) is established here, once, and read-only afterward.
func New(ctx context.Context, cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel, cfg.LogPretty)
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("app: TALLY_DATABASE_URL is required")
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("app: db pool: %w", err)
	}
	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("app: schema: %w", err)
	}

	users, err := identity.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	todoStore, err := todo.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}

	sessCfg, err := session.LoadConfigFromEnv()
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("app: session config: %w", err)
	}
	codec, err := session.NewCodec(sessCfg)
	if err != nil {
		pool.Close()
		return nil, err
	}

	accounts, err := account.NewService(users, codec)
	if err != nil {
		pool.Close()
		return nil, err
	}
	todos, err := todo.NewService(todoStore)
	if err != nil {
		pool.Close()
		return nil, err
	}
	resolver := session.NewResolver(codec, users)

	apiCfg := httpapi.DefaultConfig()
	if cfg.IsProduction() {
		apiCfg = httpapi.ProductionConfig()
	}
	apiCfg.CookieMaxAge = codec.TTL()

	api, err := httpapi.NewHandler(log, apiCfg, accounts, todos, resolver)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &App{
		cfg:  cfg,
		log:  log,
		pool: pool,
		api:  api,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal
// server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.pool, a.api)

	var handler http.Handler = mux
	handler = WithCORS(handler, a.cfg.CORSOrigins)
	handler = WithRequestLogging(handler, a.log)
	handler = WithMetrics(handler)
	handler = WithRequestID(handler)
	handler = WithRecovery(handler, a.log)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: a.cfg.ReadHeaderTimeout,
		ReadTimeout:       a.cfg.ReadTimeout,
		WriteTimeout:      a.cfg.WriteTimeout,
		IdleTimeout:       a.cfg.IdleTimeout,
		MaxHeaderBytes:    a.cfg.MaxHeaderBytes,
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "env", a.cfg.Environment)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	a.pool.Close()
	a.log.Info("server.stopped")
	return nil
}

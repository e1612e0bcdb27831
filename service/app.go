package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"simpleblog/app/config"
	"simpleblog/app/metrics"
	"simpleblog/app/routes"
	"simpleblog/app/services"
	"simpleblog/app/session"
	"simpleblog/app/views"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// RunAppServer starts the blog service and blocks until ctx is cancelled.
func RunAppServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CreateSchema(ctx); err != nil {
		return err
	}

	if cfg.SessionPath != "" {
		if err := os.MkdirAll(cfg.SessionPath, 0700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}
	sessions, err := session.Open(cfg.SessionPath, cfg.SessionTTL)
	if err != nil {
		return err
	}
	defer sessions.Close()

	templates, err := views.Load()
	if err != nil {
		return err
	}

	if cfg.AdminPasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH is not set, logging in is disabled")
	}

	router := routes.SetupRoutes(routes.Options{
		DB:                db,
		Sessions:          sessions,
		Templates:         templates,
		Metrics:           metrics.New(),
		Clock:             services.SystemClock,
		Logger:            logger,
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: cfg.AdminPasswordHash,
		CookieName:        cfg.SessionCookie,
		SessionTTL:        cfg.SessionTTL,
		SecureCookie:      !cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("starting blog service",
		zap.String("addr", srv.Addr),
		zap.String("driver", cfg.DBDriver))
	return serve(ctx, srv, logger)
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err == nil {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}

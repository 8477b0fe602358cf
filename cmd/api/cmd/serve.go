package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"eventregistration/config"
	_ "eventregistration/docs"
	"eventregistration/internal/adapters/email"
	"eventregistration/internal/clock"
	httpdelivery "eventregistration/internal/delivery/http"
	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/metrics"
	"eventregistration/internal/repository/postgres"
	"eventregistration/internal/services"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply pending migrations at start-up")
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	db, err := postgres.Open(startupCtx, cfg.DB.URL, postgres.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if !skipMigrate {
		if err := postgres.MigrateUp(cfg.DB.URL); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	metrics.Init()
	if err := metrics.RegisterDB(db, "eventregistration"); err != nil {
		return fmt.Errorf("register db metrics: %w", err)
	}

	mailer, err := email.NewMailer(cfg.Mailer, logger)
	if err != nil {
		return err
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}
	emailSvc := services.NewEmailService(mailer, renderer, logger)

	eventRepo := postgres.NewEventRepository(db)
	attendeeRepo := postgres.NewAttendeeRepository(db)
	txManager := postgres.NewTxManager(db)

	eventSvc := services.NewEventService(eventRepo, clock.NewSystem(), cfg.ContextTimeout)
	attendeeSvc := services.NewAttendeeService(eventRepo, attendeeRepo, txManager, emailSvc, logger, cfg.ContextTimeout)

	router := httpdelivery.NewRouter(
		controllers.NewEventController(logger, eventSvc),
		controllers.NewAttendeeController(logger, attendeeSvc),
		controllers.NewHealthController(logger, db),
	)

	server := &http.Server{
		Addr: cfg.Addr(),
		Handler: httpdelivery.NewHandler(ctx, logger, httpdelivery.HandlerConfig{
			AllowedOrigins:     cfg.CORSOrigins,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
		}, router),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("api listening", "addr", server.Addr, "env", cfg.Environment)
		srvErr <- server.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

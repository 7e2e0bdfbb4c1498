package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/Ramsey-B/fern/internal/repositories/canonicaljob"
	"github.com/Ramsey-B/fern/internal/repositories/estimate"
	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/hazardous"
	"github.com/Ramsey-B/fern/pkg/middleware"
	"github.com/Ramsey-B/fern/pkg/routes/customers"
	"github.com/Ramsey-B/fern/pkg/routes/estimates"
	hazardousroute "github.com/Ramsey-B/fern/pkg/routes/hazardous"
	"github.com/Ramsey-B/fern/pkg/routes/health"
	"github.com/Ramsey-B/fern/pkg/routes/jobs"
	"github.com/Ramsey-B/fern/pkg/routes/movejobs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		app, err := newApplication(cfg)
		if err != nil {
			return err
		}
		return app.serve(cmd.Context())
	},
}

func (a *application) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := a.start(ctx, "tracing", "database", "migrations", "kafka")
	if err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := deps.Stop(stopCtx); err != nil {
			a.logger.WithError(err).Error("Failed to stop dependencies")
		}
	}()

	e, checker, err := a.newServer(ctx)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Port),
		Handler:           e,
		ReadTimeout:       time.Duration(a.cfg.HttpServerReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(a.cfg.HttpServerWriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(a.cfg.HttpServerIdleTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(a.cfg.ReadHeaderTimeoutSeconds) * time.Second,
		MaxHeaderBytes:    a.cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	checker.SetReady(true)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down")
	checker.SetReady(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (a *application) newServer(ctx context.Context) (*echo.Echo, *health.Checker, error) {
	cfg := a.cfg

	schedule, err := hazardous.Load(cfg.HazardousSchedulePath)
	if err != nil {
		return nil, nil, err
	}

	var protect []echo.MiddlewareFunc
	if cfg.AuthEnabled {
		verifier, err := middleware.NewOIDCVerifier(ctx, cfg.AuthIssuer, cfg.AuthClientID)
		if err != nil {
			return nil, nil, fmt.Errorf("oidc provider: %w", err)
		}
		protect = append(protect, middleware.Authentication(a.logger, verifier))
	}

	var emitter jobs.Emitter
	if a.producer != nil {
		emitter = events.NewEmitter(a.producer, a.logger)
	}

	store := canonicaljob.NewRepository(a.db, a.logger)
	service := a.reconcileService(store)
	checker := health.NewChecker(a.db, cfg.Version)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.Error(a.logger)
	e.Use(echomw.Recover())
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(a.logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	checker.Register(api.Group("/health"))
	movejobs.NewHandler(service, cfg.Location(), cfg.MoveJobTypes).Register(api.Group("/move-jobs", protect...))
	jobs.NewHandler(service, store, emitter, a.logger).Register(api.Group("/jobs", protect...))
	estimates.NewHandler(estimate.NewRepository(a.db, a.logger)).Register(api.Group("/estimates", protect...))
	customers.NewHandler(a.workizClient()).Register(api.Group("/customers", protect...))
	hazardousroute.NewHandler(schedule, cfg.Location()).Register(api.Group("/hazardous", protect...))

	return e, checker, nil
}

package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CreditLens/internal/service/cache"
	"CreditLens/internal/service/ratelimit"
	"CreditLens/pkg/config"
	xhttp "CreditLens/pkg/http"
	"CreditLens/pkg/http/middleware"
	applogger "CreditLens/pkg/logger"
	"CreditLens/pkg/util"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	limiter     *ratelimit.Limiter
	cache       cache.BytesCache
	l           *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	h xhttp.Handler,
	limiter *ratelimit.Limiter,
	c cache.BytesCache,
	l *applogger.Logger,
) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{
		cfg:         cfg,
		httpHandler: h,
		limiter:     limiter,
		cache:       c,
		l:           l,
	}
}

// Server builds the HTTP server on first use.
func (a *App) Server() *xhttp.Server {
	if a.httpServer != nil {
		return a.httpServer
	}
	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	opts := []xhttp.ServerOption{
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(metricsPath, a.cfg.Server.SlowThreshold),
		xhttp.WithLogger(a.l),
		xhttp.WithCORS(util.SplitList(a.cfg.Server.CORSOrigins)...),
	}
	if a.limiter != nil {
		opts = append(opts, xhttp.WithMiddleware(middleware.RateLimit(a.limiter.Allow)))
	}
	a.httpServer = xhttp.NewServer(a.httpHandler, opts...)
	return a.httpServer
}

// Run starts the application and blocks until interrupted or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := a.Server()
	if err := srv.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.l.Info("shutdown signal received")
	case runErr = <-srv.Errors():
	}

	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.l.Info("shutting down...")

	// the signal context is already cancelled; Stop applies its own timeout
	err := a.httpServer.Stop(context.Background())
	if err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.cache != nil {
		if cerr := a.cache.Close(); cerr != nil {
			a.l.Warn("cache close error", applogger.Error(cerr))
		}
	}

	a.l.Info("shutdown complete")
	return err
}

package di

import (
	"context"
	"fmt"
	"time"

	"CreditLens/internal/domain/repository"
	"CreditLens/internal/handler/api"
	internalrepo "CreditLens/internal/repository"
	"CreditLens/internal/service/cache"
	"CreditLens/internal/service/ratelimit"
	"CreditLens/internal/usecase"
	"CreditLens/pkg/config"
	xhttp "CreditLens/pkg/http"
	applogger "CreditLens/pkg/logger"
	"CreditLens/pkg/metrics"
	"CreditLens/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// Services bundles the use cases shared by the HTTP server and the CLI.
type Services struct {
	Logger    *applogger.Logger
	Catalog   *usecase.Catalog
	Loans     *usecase.LoanScoringUseCase
	Banknotes *usecase.BanknoteUseCase
	Cache     cache.BytesCache
}

// Close releases the cache connection.
func (s *Services) Close() error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Close()
}

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder. With metrics disabled it
// records into a private registry that is never exposed.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.New(prometheus.NewRegistry())
	}
	return metrics.New(nil)
}

// ProvideCache builds the prediction cache for the configured backend. An
// unreachable Redis degrades to the in-memory cache.
func ProvideCache(cfg *config.Config, l *applogger.Logger) cache.BytesCache {
	if !cfg.Cache.Enabled {
		return cache.Nop{}
	}
	memory := func() cache.BytesCache { return cache.NewTTLCache(cfg.Cache.MaxEntries) }
	if cfg.Cache.Backend == cache.BackendMemory {
		return memory()
	}

	rc := cache.NewRedisCache(cache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		Prefix:   cfg.Cache.Redis.Prefix,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		l.Warn("redis unavailable, using in-memory prediction cache",
			applogger.String("addr", cfg.Cache.Redis.Addr),
			applogger.Error(err),
		)
		_ = rc.Close()
		return memory()
	}

	if cfg.Cache.Backend == cache.BackendLayered {
		// a short L1 keeps hot keys local without outliving the shared entry
		l1TTL := cfg.Cache.TTL / 5
		return cache.NewLayeredCache(memory(), rc, l1TTL)
	}
	return rc
}

// ProvideAssetStore creates the file-backed asset store.
func ProvideAssetStore(cfg *config.Config, l *applogger.Logger) repository.AssetStore {
	store := internalrepo.NewFileAssetStore(cfg.Assets.Dir)
	store.SetLogger(l)
	return store
}

// ProvideCatalog loads every configured model variant.
func ProvideCatalog(cfg *config.Config, store repository.AssetStore, l *applogger.Logger) *usecase.Catalog {
	return usecase.NewCatalog(context.Background(), cfg, store, l)
}

// ProvideLoanScoring creates the loan scoring use case.
func ProvideLoanScoring(cfg *config.Config, catalog *usecase.Catalog, c cache.BytesCache, m repository.Metrics, l *applogger.Logger) *usecase.LoanScoringUseCase {
	return usecase.NewLoanScoringUseCase(catalog, c, cfg.Cache.TTL, m, l)
}

// ProvideBanknote creates the banknote authentication use case.
func ProvideBanknote(cfg *config.Config, catalog *usecase.Catalog, c cache.BytesCache, m repository.Metrics, l *applogger.Logger) *usecase.BanknoteUseCase {
	return usecase.NewBanknoteUseCase(catalog, c, cfg.Cache.TTL, m, l)
}

// ProvideServices bundles the use cases.
func ProvideServices(
	l *applogger.Logger,
	catalog *usecase.Catalog,
	loans *usecase.LoanScoringUseCase,
	notes *usecase.BanknoteUseCase,
	c cache.BytesCache,
) *Services {
	return &Services{Logger: l, Catalog: catalog, Loans: loans, Banknotes: notes, Cache: c}
}

// ProvideHandler creates the scoring HTTP handler.
func ProvideHandler(s *Services) xhttp.Handler {
	return api.NewScoringEchoHandler(s.Logger, s.Loans, s.Banknotes, s.Catalog)
}

// ProvideLimiter creates the per-client request limiter.
func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, s *Services, h xhttp.Handler, lim *ratelimit.Limiter) *server.App {
	return server.New(cfg, h, lim, s.Cache, s.Logger)
}

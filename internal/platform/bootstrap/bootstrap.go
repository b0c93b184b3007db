// Package bootstrap assembles storage, upstream sources, Redis and the service container
// shared by the API server, the worker and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marmotkit/asset-mgmt-accounting/internal/adapters/memory"
	"github.com/marmotkit/asset-mgmt-accounting/internal/adapters/redislock"
	upstreamclient "github.com/marmotkit/asset-mgmt-accounting/internal/adapters/upstream"
	portsrepo "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/repositories"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/upstream"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/config"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/metrics"
	"github.com/marmotkit/asset-mgmt-accounting/internal/repositories/database/pgsql"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils"
	"github.com/marmotkit/asset-mgmt-accounting/pkg/database"
)

const lockKeyPrefix = "aam:lock:"

// App holds the wired collaborators of one process.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Services *portssvc.ServiceContainer
	Metrics  *metrics.Metrics
	Posthog  *utils.PosthogClientWrapper
	// Redis is nil when REDIS_ADDR is not configured.
	Redis redis.UniversalClient

	probes  map[string]func(context.Context) error
	closers []func()
}

type options struct {
	store          *memory.Store
	sources        upstream.Sources
	redis          redis.UniversalClient
	skipMigrations bool
	serviceOpts    []services.ServiceOption
}

// Option overrides a collaborator, mostly for tests and the CLI.
type Option func(*options)

// WithMemoryStore uses store instead of the configured storage driver.
func WithMemoryStore(store *memory.Store) Option {
	return func(o *options) { o.store = store }
}

// WithSources replaces the upstream HTTP client.
func WithSources(sources upstream.Sources) Option {
	return func(o *options) { o.sources = sources }
}

// WithRedisClient replaces the client built from REDIS_ADDR.
func WithRedisClient(client redis.UniversalClient) Option {
	return func(o *options) { o.redis = client }
}

// WithoutMigrations skips the start-up migration run even when RUN_MIGRATIONS is set.
func WithoutMigrations() Option {
	return func(o *options) { o.skipMigrations = true }
}

// WithServiceOptions appends options passed to every service.
func WithServiceOptions(opts ...services.ServiceOption) Option {
	return func(o *options) { o.serviceOpts = append(o.serviceOpts, opts...) }
}

// New wires the application. On error everything opened so far is closed.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (app *App, err error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = slog.Default()
	}

	app = &App{Config: cfg, Logger: logger, Metrics: metrics.New()}
	defer func() {
		if err != nil {
			app.Close()
			app = nil
		}
	}()

	repos, err := app.openStorage(ctx, o)
	if err != nil {
		return nil, err
	}

	sources, err := app.openSources(ctx, o)
	if err != nil {
		return nil, err
	}

	serviceOpts := []services.ServiceOption{
		services.WithSyncObserver(app.Metrics),
		services.WithDefaultDueDays(cfg.Sync.DefaultDueDays),
	}
	if err := app.openRedis(ctx, o); err != nil {
		return nil, err
	}
	if app.Redis != nil {
		serviceOpts = append(serviceOpts, services.WithSyncLocker(redislock.New(app.Redis, lockKeyPrefix), cfg.Sync.LockTTL))
	} else {
		logger.Warn("Redis not configured, sync runs are only serialized inside this process")
	}
	serviceOpts = append(serviceOpts, o.serviceOpts...)

	authCfg := services.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		JWTExpiry: cfg.JWTExpiryDuration,
		JWTIssuer: cfg.JWTIssuer,
	}
	app.Services = services.NewServiceContainer(authCfg, repos, sources, serviceOpts...)

	app.Posthog = utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	app.closers = append(app.closers, app.Posthog.Close)

	return app, nil
}

func (a *App) openStorage(ctx context.Context, o options) (portsrepo.RepositoryProvider, error) {
	if o.store != nil {
		return o.store.Repositories(), nil
	}

	switch a.Config.StorageDriver {
	case config.StorageMemory:
		a.Logger.Warn("Using in-memory storage, data is lost on exit")
		return memory.NewStore().Repositories(), nil
	case config.StoragePostgres:
		if a.Config.RunMigrations && !o.skipMigrations {
			a.Logger.Info("Running database migrations...")
			if err := database.RunMigrations(a.Config.DatabaseURL, a.Config.MigrationsPath, database.MigrateUp, a.Logger); err != nil {
				return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}
		pool, err := database.NewPgxPool(ctx, a.Config.DatabaseURL, database.PoolOptions{
			MaxConns:        a.Config.DB.MaxConns,
			MinConns:        a.Config.DB.MinConns,
			MaxConnLifetime: a.Config.DB.MaxConnLifetime,
			Ping:            a.Config.EnableDBCheck,
		})
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		a.closers = append(a.closers, func() { database.ClosePgxPool(pool) })
		a.addProbe("database", pool.Ping)
		a.Logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(pool), nil
	default:
		return portsrepo.RepositoryProvider{}, fmt.Errorf("unknown storage driver %q", a.Config.StorageDriver)
	}
}

func (a *App) openSources(ctx context.Context, o options) (upstream.Sources, error) {
	if o.sources != nil {
		return o.sources, nil
	}
	up := a.Config.Upstream
	if up.BaseURL == "" {
		a.Logger.Warn("UPSTREAM_BASE_URL not set, sync runs will find no pending records")
		return memory.NewSources(), nil
	}
	client, err := upstreamclient.NewClient(ctx, upstreamclient.Config{
		BaseURL:      up.BaseURL,
		APIToken:     up.APIToken,
		TokenURL:     up.TokenURL,
		ClientID:     up.ClientID,
		ClientSecret: up.ClientSecret,
		Timeout:      up.Timeout,
	})
	if err != nil {
		return nil, err
	}
	a.Logger.Info("Upstream client configured", slog.String("base_url", up.BaseURL))
	return client, nil
}

func (a *App) openRedis(ctx context.Context, o options) error {
	if o.redis != nil {
		a.Redis = o.redis
		return nil
	}
	if !a.Config.Redis.Enabled() {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     a.Config.Redis.Addr,
		Password: a.Config.Redis.Password,
		DB:       a.Config.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	a.Redis = client
	a.addProbe("redis", func(ctx context.Context) error { return client.Ping(ctx).Err() })
	a.closers = append(a.closers, func() {
		if err := client.Close(); err != nil {
			a.Logger.Warn("Error closing Redis client", slog.String("error", err.Error()))
		}
	})
	a.Logger.Info("Redis client connected", slog.String("addr", a.Config.Redis.Addr))
	return nil
}

// Close releases everything New opened, in reverse order.
func (a *App) Close() {
	if a == nil {
		return
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) addProbe(name string, probe func(context.Context) error) {
	if a.probes == nil {
		a.probes = make(map[string]func(context.Context) error)
	}
	a.probes[name] = probe
}

// Probes returns a liveness check per external dependency the process connected to.
func (a *App) Probes() map[string]func(context.Context) error {
	return a.probes
}

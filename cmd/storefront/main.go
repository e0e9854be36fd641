package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"Storefront/internal/auth"
	"Storefront/internal/catalog"
	"Storefront/internal/config"
	"Storefront/internal/gateway"
	"Storefront/internal/settings"
	"Storefront/pkg/kit"
)

const service = "storefront"

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := kit.NewLogger(service, "info", false)
		boot.Fatal("load config failed", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogLevel, cfg.LogPretty)
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	settingsStore, catalogStore, ready, cleanup := openStores(cfg, log)
	defer cleanup()

	tokens := auth.NewTokenMaker(cfg.JWTSecret, cfg.AdminTokenTTL)
	if cfg.AdminPasswordHash == "" {
		log.Warn("ADMIN_PASSWORD_HASH not set, admin login disabled")
	}

	h := gateway.NewHandler(
		gateway.Deps{
			Auth: &auth.Server{
				Log:       log,
				JWT:       tokens,
				Passwords: auth.NewPasswordVerifier(cfg.AdminPasswordHash),
			},
			Tokens:  tokens,
			Catalog: catalog.NewServer(catalogStore, log, catalog.NewMetrics(reg)),
			Settings: &settings.Server{
				Service: settings.NewService(settingsStore, log, settings.NewMetrics(reg)),
				Log:     log,
			},
			Ready: ready,
		},
		gateway.HTTPDeps{
			Log:            log,
			Service:        service,
			Registry:       reg,
			MetricsEnabled: true,
			MetricsToken:   cfg.MetricsToken,
		},
	)

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log, cfg.ShutdownTimeout); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// openStores picks postgres when DATABASE_URL is set and in-memory stores
// otherwise, then layers the redis cache over the catalog when configured.
func openStores(cfg *config.Config, log *zap.Logger) (settings.Store, catalog.Store, []gateway.ReadyCheck, func()) {
	var (
		settingsStore settings.Store
		catalogStore  catalog.Store
		closers       []func()
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		settingsStore = settings.NewMemStore()
		catalogStore = catalog.NewMemStore(catalog.DemoCatalog())
	} else {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("open database failed", zap.Error(err))
		}
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
		db.SetMaxIdleConns(cfg.DBMaxOpenConns)
		db.SetConnMaxLifetime(30 * time.Minute)
		closers = append(closers, func() { _ = db.Close() })

		ss := settings.NewPostgresStore(db)
		if err := ss.EnsureSchema(ctx); err != nil {
			log.Fatal("settings schema failed", zap.Error(err))
		}
		cs := catalog.NewPostgresStore(db)
		if err := cs.EnsureSchema(ctx); err != nil {
			log.Fatal("catalog schema failed", zap.Error(err))
		}
		settingsStore, catalogStore = ss, cs
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable at startup, cache will retry per request",
				zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		closers = append(closers, func() { _ = rdb.Close() })
		catalogStore = catalog.NewCachedStore(catalogStore, rdb, cfg.CatalogCacheTTL, log)
	}

	ready := []gateway.ReadyCheck{
		{Name: "settings", Ping: settingsStore.Ping},
		{Name: "catalog", Ping: catalogStore.Ping},
	}

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return settingsStore, catalogStore, ready, cleanup
}

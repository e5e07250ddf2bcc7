// Package bootstrap arma la aplicación completa desde la config:
// logger, storage, cache, eventos, tokens, services y router.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gomart/gomart/internal/cache"
	"github.com/gomart/gomart/internal/config"
	"github.com/gomart/gomart/internal/events"
	httpx "github.com/gomart/gomart/internal/http"
	"github.com/gomart/gomart/internal/observability/logger"
	"github.com/gomart/gomart/internal/rate"
	"github.com/gomart/gomart/internal/security/password"
	"github.com/gomart/gomart/internal/security/token"
	"github.com/gomart/gomart/internal/service"
	"github.com/gomart/gomart/internal/store"

	// Backends de storage disponibles
	_ "github.com/gomart/gomart/internal/store/memory"
	_ "github.com/gomart/gomart/internal/store/pg"
)

// App agrupa todo lo construido, listo para servir.
type App struct {
	Cfg      *config.Config
	Store    store.Store
	Cache    cache.Cache
	Emitter  events.Emitter
	Tokens   *token.Issuer
	Services *service.Services
	Handler  http.Handler
}

// NewApp construye la aplicación. El caller es dueño del Close.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "gomart",
	})
	log := logger.Named("bootstrap")

	st, err := store.Open(ctx, store.Config{
		Driver:   cfg.Storage.Driver,
		DSN:      cfg.Storage.DSN,
		MaxConns: int32(cfg.Storage.MaxConns),
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: open store: %w", err)
	}
	log.Info("storage ready", logger.Driver(cfg.Storage.Driver))

	ch := cache.New(cache.Config{
		Kind:       cfg.Cache.Kind,
		DefaultTTL: cfg.CacheTTL(),
		Addr:       cfg.Cache.Redis.Addr,
		DB:         cfg.Cache.Redis.DB,
		Prefix:     cfg.Cache.Redis.Prefix,
	})

	emitter := events.New(events.Config{
		Kind:    cfg.Events.Kind,
		Addr:    cfg.Events.Redis.Addr,
		DB:      cfg.Events.Redis.DB,
		Channel: cfg.Events.Channel,
	})

	issuer := token.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer)
	if ttl := cfg.AccessTTL(); ttl > 0 {
		issuer.TTL = ttl
	}

	svcs := service.New(service.Deps{
		Store:    st,
		Emitter:  emitter,
		Cache:    ch,
		Tokens:   issuer,
		Password: password.Params{Cost: cfg.Password.BcryptCost},
	})

	limiter := rate.New(rate.Config{
		Enabled: cfg.Rate.Enabled,
		Max:     cfg.Rate.Max,
		Window:  config.Dur(cfg.Rate.Window, 0),
		Addr:    cfg.Rate.Redis.Addr,
		DB:      cfg.Rate.Redis.DB,
		Prefix:  cfg.Rate.Redis.Prefix,
	})

	router := httpx.NewRouter(httpx.RouterConfig{
		Services:     svcs,
		Store:        st,
		Issuer:       issuer,
		CORSOrigins:  cfg.Server.CORSAllowedOrigins,
		LoginLimiter: limiter,
	})

	return &App{
		Cfg:      cfg,
		Store:    st,
		Cache:    ch,
		Emitter:  emitter,
		Tokens:   issuer,
		Services: svcs,
		Handler:  router,
	}, nil
}

// Close libera los recursos en orden inverso al arranque.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
	}
	_ = logger.Sync()
}

// Package app assembles the bot from configuration, storage and
// handlers, and exposes it to the shared command runner.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"assistbot/bot/config"
	"assistbot/bot/currency"
	"assistbot/bot/handlers"
	"assistbot/bot/history"
	"assistbot/bot/hotels"
	"assistbot/bot/session"
	"assistbot/bot/storage"
	"assistbot/bot/weather"
	"assistbot/core/bootstrap"
	"assistbot/core/httpx"
	tg "assistbot/core/telegram"
	"assistbot/core/telegram/router"
	"assistbot/core/telegram/ui"
)

// App holds the running bot's wiring.
type App struct {
	cfg      *config.Config
	db       *sqlx.DB
	handlers *handlers.Handlers
}

// Bootstrap initializes the logger, database and handler set.
func Bootstrap(cfg *config.Config) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	var provider bootstrap.ServiceProvider[*handlers.Handlers] = bootstrap.ServiceProviderFunc[*handlers.Handlers](buildHandlers)
	h, err := provider.Provide(context.Background(), cfg, res.DB)
	if err != nil {
		_ = res.DB.Close()
		return nil, fmt.Errorf("app: handler wiring failed: %w", err)
	}

	return &App{cfg: cfg, db: res.DB, handlers: h}, nil
}

func buildHandlers(_ context.Context, rawCfg interface{}, db *sqlx.DB) (*handlers.Handlers, error) {
	cfg, ok := rawCfg.(*config.Config)
	if !ok {
		return nil, fmt.Errorf("unexpected config type %T", rawCfg)
	}

	httpClient := httpx.NewClient(httpx.Options{Timeout: cfg.ProviderTimeout()})

	return handlers.New(handlers.Deps{
		Config:   cfg,
		Sessions: session.NewManager(),
		Users:    storage.NewUsers(db),
		Tasks:    storage.NewTasks(db),
		Habits:   storage.NewHabits(db),
		Weather:  weather.New(httpClient, cfg.Providers.Weather),
		Hotels:   hotels.New(httpClient, cfg.Providers.Hotels),
		Currency: currency.New(httpClient, cfg.Providers.Currency),
		History:  history.New(cfg.History.Path),
	}), nil
}

// TelegramRunOptions satisfies cmd.TelegramApp.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	a.handlers.Register(reg)

	var fallbacks ui.FallbackProvider = a.handlers
	reg.SetTextFallback(fallbacks.UnknownText())
	reg.SetCallbackNotFound(fallbacks.UnknownCallback())

	mws := tg.DefaultMiddlewares(a.cfg.CoreConfig(), nil)
	mws = append(mws, tg.Middleware{Name: "activity", Use: a.handlers.ActivityMiddleware})

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{
		Conversation:    a.handlers.Conversation,
		UnknownDocument: fallbacks.UnknownDocument(),
	})...)

	return tg.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: mws,
		Routes:      routes,
		OnError:     a.handlers.OnError,
		OnStop: func(context.Context, tg.Runtime) error {
			return a.db.Close()
		},
	}, nil
}

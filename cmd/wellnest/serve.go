package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/wellnest/internal/api"
	"github.com/terraincognita07/wellnest/internal/config"
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/session"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			log.Printf("close database: %v", err)
		}
	}()

	sessions, err := openSessionStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("session store init failed: %w", err)
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			log.Printf("close session store: %v", err)
		}
	}()

	handler, err := api.NewHandler(database, sessions, handlerOptions(cfg))
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newServerApp(cfg, handler)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Wellnest listening on http://0.0.0.0:%s%s (db: %s, sessions: %s, tz: %s)",
		cfg.Port, cfg.BasePath.Join("/"), cfg.Database.DSNForLog(), cfg.SessionStore, cfg.Location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func openSessionStore(ctx context.Context, cfg config.Config) (session.Store, error) {
	if cfg.SessionStore != config.SessionStoreRedis {
		return session.NewMemoryStore(cfg.SessionTTL), nil
	}

	client, err := session.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPass)
	if err != nil {
		return nil, err
	}
	return session.NewRedisStore(client, cfg.SessionTTL), nil
}

func handlerOptions(cfg config.Config) api.Options {
	return api.Options{
		BasePath:     cfg.BasePath,
		SecretKey:    cfg.SecretKey,
		TemplatesDir: cfg.TemplatesDir,
		StaticDir:    cfg.StaticDir,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
	}
}

func newFiberConfig(cfg config.Config) fiber.Config {
	fiberConfig := fiber.Config{
		AppName:               "Wellnest",
		DisableStartupMessage: true,
		ErrorHandler:          api.ErrorHandler,
		Immutable:             true,
		Network:               fiber.NetworkTCP,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		IdleTimeout:           60 * time.Second,
	}
	if cfg.TrustProxy {
		fiberConfig.ProxyHeader = fiber.HeaderXForwardedFor
	}
	return fiberConfig
}

// newServerApp wires the middleware stack and every route. CSRF runs before
// the session is loaded so a rejected form never touches the store.
func newServerApp(cfg config.Config, handler *api.Handler) *fiber.App {
	app := fiber.New(newFiberConfig(cfg))

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginEmbedderPolicy: "unsafe-none",
		ReferrerPolicy:            "same-origin",
	}))
	app.Use(csrf.New(csrfMiddlewareConfig(cfg)))
	app.Use(handler.LoadSession)

	api.RegisterRoutes(app, handler)
	return app
}

func csrfMiddlewareConfig(cfg config.Config) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:" + api.CSRFFormField,
		CookieName:     api.CSRFCookieName,
		CookiePath:     cfg.BasePath.CookiePath(),
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		ContextKey:     api.CSRFContextKey,
		Expiration:     cfg.SessionTTL,
	}
}

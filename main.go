package main

import (
	"context"
	"log"
	"net/http"

	"gotodo/auth"
	"gotodo/config"
	"gotodo/handlers"
	"gotodo/logger"
	"gotodo/service"
	"gotodo/sessions"
	"gotodo/store"
	"gotodo/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := store.OpenPostgres(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	sessionStore, err := sessions.OpenRedis(cfg.RedisDSN)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer sessionStore.Close()

	app := &handlers.App{
		Cfg:   cfg,
		Auth:  auth.NewService(db, sessionStore, cfg.SessionTTL),
		Todos: service.NewTodoService(db, cfg.Mode),
		Users: db,
	}

	if cfg.Mode == config.ModeOpen {
		guest, err := db.EnsureUser(ctx, "guest", "")
		if err != nil {
			logger.Log.Fatalf("Failed to seed guest user: %v", err)
		}
		app.GuestID = guest.ID
	}

	renderer, err := views.Load("./ui/html")
	if err != nil {
		logger.Log.Fatalf("Failed to load templates: %v", err)
	}
	app.Renderer = renderer

	logger.Log.Infow("starting server", "addr", cfg.Addr, "mode", cfg.Mode)
	logger.Log.Fatal(http.ListenAndServe(cfg.Addr, handlers.Router(app)))
}

package main

import (
	"log"

	"reclaim/backend/internal/config"
	"reclaim/backend/internal/db"
	"reclaim/backend/internal/handler"
	"reclaim/backend/internal/insight"
	"reclaim/backend/internal/repository"
	"reclaim/backend/internal/router"
	"reclaim/backend/internal/service"
)

func main() {
	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	usageRepo := repository.NewUsageRepository(database)
	focusRepo := repository.NewFocusRepository(database)
	insightRepo := repository.NewInsightRepository(database)

	engine := insight.NewEngine(insight.Config{
		APIKey:   cfg.AIAPIKey,
		Endpoint: cfg.AIEndpoint,
		Model:    cfg.AIModel,
		Timeout:  cfg.AITimeout,
	})

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	profileService := service.NewProfileService(userRepo)
	usageService := service.NewUsageService(usageRepo)
	focusService := service.NewFocusService(focusRepo)
	insightService := service.NewInsightService(userRepo, usageRepo, insightRepo, engine)

	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Profile: handler.NewProfileHandler(profileService),
		Usage:   handler.NewUsageHandler(usageService),
		Focus:   handler.NewFocusHandler(focusService),
		Insight: handler.NewInsightHandler(insightService),
	}

	server := router.New(authService, handlers, cfg.CORSOrigins)
	log.Printf("backend listening on :%s", cfg.Port)
	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

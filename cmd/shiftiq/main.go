package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shiftiq/internal/api"
	"shiftiq/internal/api/handlers"
	"shiftiq/internal/llm"
	"shiftiq/internal/repository"
	"shiftiq/internal/service"
	"shiftiq/pkg/auth"
	"shiftiq/pkg/config"
	"shiftiq/pkg/logger"
	"shiftiq/pkg/postgres"

	"go.uber.org/zap"
)

// @title ShiftIQ API
// @version 1.0
// @description Restaurant staff knowledge assistant with retrieval-grounded chat
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@shiftiq.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting ShiftIQ service")

	// Apply schema migrations before opening the pool
	if err := postgres.Migrate(&cfg.Database, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db, appLogger)
	docRepo := repository.NewDocumentRepository(db, appLogger)
	chunkRepo := repository.NewChunkRepository(db, appLogger)
	sessionRepo := repository.NewSessionRepository(db, appLogger)
	messageRepo := repository.NewMessageRepository(db, appLogger)
	beerRepo := repository.NewBeerRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize LLM provider
	llmClient, err := llm.NewClient(&cfg.OpenAI, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM client", zap.Error(err))
	}

	// Initialize services
	authService := service.NewAuthService(profileRepo, jwtManager, appLogger)
	ingestService := service.NewIngestService(docRepo, chunkRepo, llmClient, &cfg.RAG, appLogger)
	chatService := service.NewChatService(sessionRepo, chunkRepo, messageRepo, llmClient, &cfg.RAG, appLogger)
	docService := service.NewDocumentService(docRepo, ingestService, appLogger)
	sessionService := service.NewSessionService(sessionRepo, messageRepo, appLogger)
	beerService := service.NewBeerService(beerRepo, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	docHandler := handlers.NewDocumentHandler(docService, ingestService, appLogger)
	sessionHandler := handlers.NewSessionHandler(sessionService, appLogger)
	beerHandler := handlers.NewBeerHandler(beerService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, chatHandler, docHandler, sessionHandler, beerHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

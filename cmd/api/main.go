// @title MCQ Generator API
// @version 1.0
// @description Generates multiple-choice questions from uploaded documents and exports them as PDF.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "mcq-generator/cmd/api/docs"
	"mcq-generator/internal/app"
	"mcq-generator/internal/config"
	"mcq-generator/internal/handler"
	"mcq-generator/internal/logger"
	"mcq-generator/internal/middleware"
	"mcq-generator/internal/service"
	"mcq-generator/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	components, err := app.New(startupCtx, cfg)
	cancelStartup()
	if err != nil {
		appLogger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	validator := validation.NewValidator(cfg.Generation.MaxQuestions)
	mcqHandler := handler.NewMCQHandler(
		components.Generation,
		components.Export,
		components.Extractor,
		validator,
		cfg.Server.UploadDir,
	)
	healthHandler := handler.NewHealthHandler(components.Cache, components.Generator.ModelName())

	fiberApp := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	fiberApp.Use(middleware.RequestLogger())
	fiberApp.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	fiberApp.Use(recover.New())

	fiberApp.Get("/swagger/*", swagger.HandlerDefault)
	fiberApp.Get("/health", healthHandler.Health)

	var guards []fiber.Handler
	if cfg.Auth.JWTSecret != "" {
		authService, err := service.NewAuthService(cfg.Auth.JWTSecret)
		if err != nil {
			appLogger.Fatal("Failed to create AuthService", zap.Error(err))
		}
		guards = append(guards, middleware.Protected(authService))
		appLogger.Info("API routes require a bearer token")
	}
	apiGroup := fiberApp.Group("/api", guards...)
	mcqHandler.Register(apiGroup, middleware.NewValidationMiddleware(validator))

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := fiberApp.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fiberApp.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

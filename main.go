package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nikkes174/blph/pkg/api"
	"github.com/nikkes174/blph/pkg/clients/telegram"
	"github.com/nikkes174/blph/pkg/config"
	"github.com/nikkes174/blph/pkg/formtoken"
	"github.com/nikkes174/blph/pkg/logger"
	"github.com/nikkes174/blph/pkg/metrics"
	"github.com/nikkes174/blph/pkg/middleware"
	"github.com/nikkes174/blph/pkg/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	// Initialize configuration
	cfg := config.LoadConfig()
	logg := logger.New(cfg.LogLevel)

	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
		// The service still starts; every dispatch will fail with 502 until
		// the credentials are configured.
		logg.Warn("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is not set, lead delivery is disabled")
	}

	// Initialize API clients
	telegramClient := telegram.NewClient(
		cfg.TelegramBotToken,
		cfg.TelegramChatID,
		cfg.TelegramAPIBase,
		cfg.TelegramProxyURL,
	)

	// Initialize services
	leadService := services.NewLeadService(telegramClient)
	tokens := formtoken.New(cfg.FormTokenSecret)

	metrics.Register()

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(metrics.Middleware())

	router.LoadHTMLGlob("templates/*.html")
	router.Static("/static", "./static")

	// Initialize handlers
	handlers := api.NewHandlers(leadService, tokens, logg)

	// Register routes
	router.GET("/", handlers.Index)
	router.GET("/privacy", handlers.Privacy)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/api/lead", handlers.CreateLead)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // covers a slow Telegram round trip
		IdleTimeout:  120 * time.Second,
	}

	// Start the server
	go func() {
		logg.Info("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logg.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logg.Info("server shutdown complete")
}

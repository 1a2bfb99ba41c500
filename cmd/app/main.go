package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cleaning/cmd"
	"cleaning/internal/adapters/out/postgres/jobrepo"
	"cleaning/internal/adapters/out/postgres/notificationrepo"
	"cleaning/internal/adapters/out/postgres/settingsrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := getConfigs(logger)

	gormDB, err := openDatabase(config)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	root, err := cmd.NewCompositionRoot(config, gormDB, logger)
	if err != nil {
		log.Fatalf("Composition root failed: %v", err)
	}

	if err := root.WireNotifications(); err != nil {
		log.Fatalf("Notification wiring failed: %v", err)
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Background jobs failed to start: %v", err)
	}
	defer jobManager.StopAll()

	server, err := root.CreateHTTPServer()
	if err != nil {
		log.Fatalf("HTTP server wiring failed: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	server.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(
		root.Registry(), promhttp.HandlerOpts{Registry: root.Registry()})))

	go func() {
		if err := e.Start("0.0.0.0:" + config.HTTPPort); err != nil {
			logger.Info("HTTP server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&jobrepo.JobDTO{},
		&notificationrepo.NotificationDTO{},
		&settingsrepo.UserContactDTO{},
		&settingsrepo.PreferenceDTO{},
	)
	if err != nil {
		return nil, err
	}

	return gormDB, nil
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file, reading configuration from environment")
	}

	return cmd.Config{
		HTTPPort:   envOrDefault("HTTP_PORT", "8080"),
		DBHost:     mustEnv("DB_HOST"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     mustEnv("DB_USER"),
		DBPassword: mustEnv("DB_PASSWORD"),
		DBName:     mustEnv("DB_NAME"),
		DBSslMode:  envOrDefault("DB_SSLMODE", "disable"),

		EmailEndpoint: os.Getenv("EMAIL_ENDPOINT"),
		EmailAPIKey:   os.Getenv("EMAIL_API_KEY"),
		EmailFrom:     envOrDefault("EMAIL_FROM", "no-reply@cleaning.local"),
		EmailMockMode: boolEnv("EMAIL_MOCK_MODE", true),

		SMSEndpoint: os.Getenv("SMS_ENDPOINT"),
		SMSAPIKey:   os.Getenv("SMS_API_KEY"),
		SMSSender:   envOrDefault("SMS_SENDER", "CleanSvc"),
		SMSMockMode: boolEnv("SMS_MOCK_MODE", true),

		PushEndpoint: os.Getenv("PUSH_ENDPOINT"),
		PushAPIKey:   os.Getenv("PUSH_API_KEY"),
		PushMockMode: boolEnv("PUSH_MOCK_MODE", true),

		OfferExpiryWindow:   durationEnv("OFFER_EXPIRY_WINDOW", 30*time.Minute),
		VisitReminderWindow: durationEnv("VISIT_REMINDER_WINDOW", time.Hour),
	}
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Required environment variable %s is not set", key)
	}
	return value
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %q", key, value)
	}
	return parsed
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"orderdesk/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	config, err := getConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := cmd.OpenDatabase(config)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}

	root, err := cmd.NewCompositionRoot(config, db, logger)
	if err != nil {
		logger.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.Logger.SetLevel(log.INFO)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	root.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)))
}

func getConfig() (cmd.Config, error) {
	// Missing .env is fine in environments configured through real env vars.
	_ = godotenv.Load(".env")

	smtpPort, err := strconv.Atoi(envOr("SMTP_PORT", "587"))
	if err != nil {
		return cmd.Config{}, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	return cmd.Config{
		HTTPPort:        envOr("HTTP_PORT", "8080"),
		DBHost:          envOr("DB_HOST", "localhost"),
		DBPort:          envOr("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       envOr("DB_SSLMODE", "disable"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        smtpPort,
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		EmailFrom:       envOr("EMAIL_FROM", "orders@localhost"),
		TrackingBaseURL: envOr("TRACKING_BASE_URL", "http://localhost:8080/track"),
		SigningSecret:   os.Getenv("SIGNING_SECRET"),
	}, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

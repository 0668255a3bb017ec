package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/colorix/api/api"
	"github.com/colorix/api/datastore"
	"github.com/colorix/api/resolver"
	"github.com/colorix/api/scheduler"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Get configuration from environment
	config := api.Config{
		HTTPPort:             getEnv("HTTP_PORT", ":8080"),
		SessionSecret:        getEnv("SESSION_SECRET", "change-this-session-secret"),
		SessionMaxAge:        getEnvDuration("SESSION_MAX_AGE", 24*time.Hour),
		SessionIdleTimeout:   getEnvDuration("SESSION_IDLE_TIMEOUT", scheduler.DefaultIdleTimeout),
		SessionSweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", scheduler.DefaultSweepInterval),
		SessionDomain:        getEnv("SESSION_DOMAIN", ""),
		ColorAPIURL:          getEnv("COLOR_API_URL", resolver.DefaultColorAPIURL),
		ColorAPITimeout:      getEnvDuration("COLOR_API_TIMEOUT", 5*time.Second),
		ColorAPIDisabled:     getEnvBool("COLOR_API_DISABLED", false),
		AllowedOrigins:       getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		DevMode:              getEnvBool("DEV_MODE", true),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(config.LogLevel),
	}))
	slog.SetDefault(logger)

	// Pick the color naming service
	var names resolver.Resolver = resolver.NewColorAPI(config.ColorAPIURL, config.ColorAPITimeout, logger.With("component", "colorapi"))
	if config.ColorAPIDisabled {
		logger.Info("color API disabled, naming colors offline")
		names = resolver.Offline{}
	}

	sessionRepo := datastore.NewSessionMemory()

	app, err := api.NewApplication(config, sessionRepo, names, logger)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Start janitor for idle sessions
	janitor := scheduler.NewJanitor(sessionRepo, config.SessionIdleTimeout, config.SessionSweepInterval, logger.With("component", "janitor"))
	janitor.OnExpired = app.ForgetSessions
	janitor.Start()
	defer janitor.Stop()

	// Create and start server
	mux := http.NewServeMux()

	logger.Info("Colorix API starting", "dev_mode", config.DevMode)
	if err := app.Serve(mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
// Zero, negative and unparsable values fall back to defaultValue.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if seconds, atoiErr := strconv.Atoi(value); atoiErr == nil {
		d, err = time.Duration(seconds)*time.Second, nil
	}
	if err != nil || d <= 0 {
		log.Printf("ignoring %s=%q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvSlice(key, defaultValue string) []string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return strings.Split(value, ",")
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

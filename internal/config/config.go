package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	getFloatOr := func(key string, fallback float64) float64 {
		raw, ok := os.LookupEnv(key)
		if !ok {
			return fallback
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Fatalf("Error: Environment variable %s is not a number: %s", key, raw)
		}
		return value
	}

	getDurationOr := func(key string, fallback time.Duration) time.Duration {
		raw, ok := os.LookupEnv(key)
		if !ok {
			return fallback
		}
		value, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Error: Environment variable %s is not a duration: %s", key, raw)
		}
		return value
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: getEnvOr("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: getEnv("GCP_PROJECT"),
		Matchmaking: MatchmakingConfig{
			GameDuration:    getDurationOr("GAME_DURATION", time.Hour),
			InitialRadiusKm: getFloatOr("SEARCH_RADIUS_KM", 10),
			MaxRadiusKm:     getFloatOr("SEARCH_RADIUS_MAX_KM", 80),
			TravelSpeedKmh:  getFloatOr("TRAVEL_SPEED_KMH", 50),
		},
	}
	return cfg
}

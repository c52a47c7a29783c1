package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	ProjectID     string
	Matchmaking   MatchmakingConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// MatchmakingConfig holds the scheduling and matchmaking tunables.
type MatchmakingConfig struct {
	GameDuration    time.Duration
	InitialRadiusKm float64
	MaxRadiusKm     float64
	TravelSpeedKmh  float64
}

package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/database"
	"github.com/Koshercash/Sports-Queue-sub000/internal/fields"
	"github.com/Koshercash/Sports-Queue-sub000/internal/geo"
	"github.com/Koshercash/Sports-Queue-sub000/internal/players"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "sportsqueue.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	// Remote replication is optional for the seeder.
	config["TURSO_PRIMARY_URL"] = os.Getenv("TURSO_PRIMARY_URL")
	config["TURSO_AUTH_TOKEN"] = os.Getenv("TURSO_AUTH_TOKEN")
	return config
}

// The demo city center the seeded data clusters around.
var center = geo.Coordinate{Lat: 40.7128, Lon: -74.0060}

func jitter(r *rand.Rand, spreadDeg float64) geo.Coordinate {
	return geo.Coordinate{
		Lat: center.Lat + (r.Float64()-0.5)*spreadDeg,
		Lon: center.Lon + (r.Float64()-0.5)*spreadDeg,
	}
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	playerStore := players.New(db)
	fieldIndex := fields.New(db)

	// 30 real demo players plus a filler pool per category, so short queues
	// can still form full matches.
	var roster []players.PlayerInfo
	for i := 1; i <= 30; i++ {
		category := "adult"
		if i%5 == 0 {
			category = "teen"
		}
		roster = append(roster, players.PlayerInfo{
			ID:         uuid.NewString(),
			Name:       fmt.Sprintf("Demo Player %d", i),
			Category:   category,
			Coordinate: jitter(r, 0.2),
			SkillSmall: 30 + r.Float64()*40,
			SkillLarge: 30 + r.Float64()*40,
		})
	}
	for _, category := range []string{"adult", "teen"} {
		for i := 1; i <= 25; i++ {
			roster = append(roster, players.PlayerInfo{
				ID:         uuid.NewString(),
				Name:       fmt.Sprintf("Stand-in %s %d", category, i),
				Category:   category,
				Coordinate: jitter(r, 0.2),
				SkillSmall: 30 + r.Float64()*40,
				SkillLarge: 30 + r.Float64()*40,
				Filler:     true,
			})
		}
	}
	if err := playerStore.UpsertPlayers(roster); err != nil {
		log.Fatalf("Failed to seed players: %s", err)
	}
	log.Info("Seeded players.", "count", len(roster))

	catalog := []fields.Field{
		{ID: "field-riverside", Name: "Riverside Park", Coordinate: jitter(r, 0.1), Mode: fields.FieldModeBoth},
		{ID: "field-eastside", Name: "Eastside Turf", Coordinate: jitter(r, 0.1), Mode: fields.FieldModeSmall},
		{ID: "field-stadium", Name: "North Stadium", Coordinate: jitter(r, 0.1), Mode: fields.FieldModeLarge},
		{ID: "field-commons", Name: "Harbor Commons", Coordinate: jitter(r, 0.3), Mode: fields.FieldModeBoth},
	}
	if err := fieldIndex.UpsertFields(catalog); err != nil {
		log.Fatalf("Failed to seed fields: %s", err)
	}
	log.Info("Seeded fields.", "count", len(catalog))

	// Hourly slots from 08:00 to 22:00 for today and tomorrow.
	for _, field := range catalog {
		for dayOffset := 0; dayOffset < 2; dayOffset++ {
			day := time.Now().AddDate(0, 0, dayOffset)
			midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

			var slots []fields.Slot
			for hour := 8; hour < 22; hour++ {
				start := midnight.Add(time.Duration(hour) * time.Hour)
				slots = append(slots, fields.Slot{
					Start:     start,
					End:       start.Add(time.Hour),
					Available: true,
				})
			}
			availability := fields.AvailabilityDay{Date: midnight.Format("2006-01-02"), Slots: slots}
			if err := fieldIndex.UpsertAvailability(field.ID, availability); err != nil {
				log.Fatalf("Failed to seed availability for %s: %s", field.ID, err)
			}
		}
	}
	log.Info("Seeded availability days.", "fields", len(catalog), "days", 2)

	log.Info("Seeding complete.")
}

// Package config loads server configuration from the environment, with a
// .env file as a convenience for local runs.
package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBPath    string
	RosterSrc string
	ShiftsSrc string
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads configuration once. Missing variables fall back to defaults
// that match the legacy data file layout.
func Load() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, relying on environment variables")
		}
		cfg = &Config{
			Port:      getenv("PORT", "8080"),
			DBPath:    getenv("DB_PATH", "crewboard.db"),
			RosterSrc: getenv("ROSTER_SRC", "data/employees.json"),
			ShiftsSrc: getenv("SHIFTS_SRC", "data/weekly_shifts.json"),
		}
	})
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

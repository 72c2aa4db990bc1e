package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-VenueBooking/internal/config"
	"github.com/m04kA/SMC-VenueBooking/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
)

// Применение миграций схемы вручную:
//
//	migrate -config config.toml -direction up
//	migrate -config config.toml -direction down -steps 1
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 1, "number of migrations to roll back (down only)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	switch *direction {
	case "up":
		err = migrations.Up(db, log)
	case "down":
		err = migrations.Down(db, *steps, log)
	default:
		log.Fatal("Unknown direction %q, expected up or down", *direction)
	}
	if err != nil {
		log.Fatal("Migration failed: %v", err)
	}

	log.Info("Migrations finished (direction=%s)", *direction)
}

package main

import (
	"clinic-admin-service/internal/app/config"
	"clinic-admin-service/internal/app/drivers/database"
	"clinic-admin-service/internal/app/drivers/logger"
	"os"
	"path/filepath"

	migrate "github.com/rubenv/sql-migrate"
)

// Usage: migration [up|down|status]
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(internalConfig)

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Error getting working directory: %v", err)
	}

	dir := internalConfig.App.MigrationDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(wd, dir)
	}
	migrations := &migrate.FileMigrationSource{Dir: dir}

	db := database.NewPostgresDB(driverConfig)
	defer db.Close()

	switch direction {
	case "up":
		n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
		if err != nil {
			log.Fatalf("Error executing migration: %v", err)
		}
		log.Infof("Applied %d migrations", n)
	case "down":
		n, err := migrate.ExecMax(db, "postgres", migrations, migrate.Down, 1)
		if err != nil {
			log.Fatalf("Error rolling back migration: %v", err)
		}
		log.Infof("Rolled back %d migrations", n)
	case "status":
		records, err := migrate.GetMigrationRecords(db, "postgres")
		if err != nil {
			log.Fatalf("Error reading migration records: %v", err)
		}
		for _, record := range records {
			log.WithField("applied_at", record.AppliedAt).Info(record.Id)
		}
	default:
		log.Fatalf("Unknown migration direction %q, expected up, down or status", direction)
	}
}

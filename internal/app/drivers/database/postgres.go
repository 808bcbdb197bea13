package database

import (
	"clinic-admin-service/internal/app/config"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

func PostgresConnectionString(driverConfig *config.DriverConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		driverConfig.Postgres.Host,
		driverConfig.Postgres.Port,
		driverConfig.Postgres.Username,
		driverConfig.Postgres.Password,
		driverConfig.Postgres.DbName,
		driverConfig.Postgres.SslMode,
	)
}

func NewPostgresDB(driverConfig *config.DriverConfig) *sql.DB {
	db, err := sql.Open("postgres", PostgresConnectionString(driverConfig))
	if err != nil {
		log.Fatalf("Failed to open postgres database connection: %s", err.Error())
	}

	db.SetMaxOpenConns(driverConfig.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(driverConfig.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(driverConfig.Postgres.ConnMaxLifetime)

	err = db.Ping()
	if err != nil {
		log.Fatalf("Failed to connect to postgres database: %s", err.Error())
	}

	log.Println("Successfully connected to postgres database")

	return db
}

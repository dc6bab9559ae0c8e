package database

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib" // Register pgx driver

	"parlour.service/internal/config"
)

// NewConnection creates and verifies a new database connection pool.
func NewConnection(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		return nil, err
	}

	// Ping the database to verify the connection is alive
	return db, db.Ping()
}

package db

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var DB *sqlx.DB

// PostgresDSN builds the connection string from the environment. PG_DSN
// wins when set; otherwise the individual PG_* parts are assembled.
func PostgresDSN() string {
	if dsn := os.Getenv("PG_DSN"); dsn != "" {
		return dsn
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("PG_USER"),
		os.Getenv("PG_PASSWORD"),
		os.Getenv("PG_HOST"),
		os.Getenv("PG_PORT"),
		os.Getenv("PG_DB"),
	)
}

// InitPostgres opens the sqlx handle the repositories run on, retrying
// while the database is still coming up.
func InitPostgres() error {
	dsn := PostgresDSN()

	var err error
	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("connect postgres: %w", err)
}

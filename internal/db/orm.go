package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var PgDB *gorm.DB

// InitPostgresORM opens the GORM handle the batch jobs (EPP backfill,
// invoice recalculation) run on. Reads the same PG_* environment as
// InitPostgres.
func InitPostgresORM() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(PostgresDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres via gorm: %w", err)
	}

	PgDB = db
	return db, nil
}

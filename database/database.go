package database

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mbolis/formpilot/config"
	"github.com/pkg/errors"
)

func Open(cfg config.Config) (db *sqlx.DB, err error) {
	db, err = sqlx.Open(cfg.DBDriver, dsn(cfg))
	if err != nil {
		return
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	err = migrateDB(db, cfg.DBDriver)
	if err != nil {
		db.Close()
		return
	}

	return
}

// dsn turns on foreign keys for every SQLite connection in the pool,
// not only the first one.
func dsn(cfg config.Config) string {
	if cfg.DBDriver != config.DriverSQLite {
		return cfg.DBUrl
	}
	sep := "?"
	if strings.Contains(cfg.DBUrl, "?") {
		sep = "&"
	}
	return cfg.DBUrl + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Now asks the store for its current time; used by the health check.
func Now(ctx context.Context, db *sqlx.DB) (string, error) {
	var now string
	err := db.QueryRowContext(ctx, "SELECT CURRENT_TIMESTAMP").Scan(&now)
	return now, errors.Wrap(err, "health query")
}

package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/mbolis/formpilot/config"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	cfg := config.Config{
		DBDriver: config.DriverSQLite,
		DBUrl:    filepath.Join(t.TempDir(), "test.sqlite"),
	}
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func insertUser(t *testing.T, db *sqlx.DB, email string) string {
	t.Helper()
	u, err := NewUserRepository(db).Insert(context.Background(), email, "hash")
	if err != nil {
		t.Fatalf("insert user %s: %v", email, err)
	}
	return u.ID
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.sqlite")
	cfg := config.Config{DBDriver: config.DriverSQLite, DBUrl: path}
	for i := 0; i < 2; i++ {
		db, err := Open(cfg)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		db.Close()
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		cfg  config.Config
		want string
	}{
		{config.Config{DBDriver: config.DriverSQLite, DBUrl: "a.sqlite"}, "a.sqlite?_foreign_keys=on&_busy_timeout=5000"},
		{config.Config{DBDriver: config.DriverSQLite, DBUrl: "a.sqlite?cache=shared"}, "a.sqlite?cache=shared&_foreign_keys=on&_busy_timeout=5000"},
		{config.Config{DBDriver: config.DriverPostgres, DBUrl: "postgres://db/forms"}, "postgres://db/forms"},
	}
	for _, tc := range tests {
		if got := dsn(tc.cfg); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestNow(t *testing.T) {
	db := openTestDB(t)
	now, err := Now(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if now == "" {
		t.Errorf("expected a timestamp")
	}
}

package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS tutors (
	id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	avatar VARCHAR(255) NOT NULL,
	whatsapp VARCHAR(255) NOT NULL,
	bio TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS class_offerings (
	id UUID PRIMARY KEY,
	subject VARCHAR(255) NOT NULL,
	cost NUMERIC(10,2) NOT NULL CHECK (cost >= 0),
	tutor_id UUID NOT NULL REFERENCES tutors(id) ON UPDATE CASCADE ON DELETE CASCADE
)`,
	`CREATE INDEX IF NOT EXISTS idx_class_offerings_subject ON class_offerings (subject)`,
	`CREATE TABLE IF NOT EXISTS availability_windows (
	id UUID PRIMARY KEY,
	class_offering_id UUID NOT NULL REFERENCES class_offerings(id) ON UPDATE CASCADE ON DELETE CASCADE,
	weekday SMALLINT NOT NULL CHECK (weekday BETWEEN 0 AND 6),
	from_minute INTEGER NOT NULL CHECK (from_minute BETWEEN 0 AND 1439),
	to_minute INTEGER NOT NULL CHECK (to_minute BETWEEN 1 AND 1439),
	CHECK (from_minute < to_minute)
)`,
	`CREATE INDEX IF NOT EXISTS idx_availability_windows_offering_weekday ON availability_windows (class_offering_id, weekday)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS tutors (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	avatar TEXT NOT NULL,
	whatsapp TEXT NOT NULL,
	bio TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS class_offerings (
	id TEXT PRIMARY KEY,
	subject TEXT NOT NULL,
	cost REAL NOT NULL CHECK (cost >= 0),
	tutor_id TEXT NOT NULL REFERENCES tutors(id) ON UPDATE CASCADE ON DELETE CASCADE
)`,
	`CREATE INDEX IF NOT EXISTS idx_class_offerings_subject ON class_offerings (subject)`,
	`CREATE TABLE IF NOT EXISTS availability_windows (
	id TEXT PRIMARY KEY,
	class_offering_id TEXT NOT NULL REFERENCES class_offerings(id) ON UPDATE CASCADE ON DELETE CASCADE,
	weekday INTEGER NOT NULL CHECK (weekday BETWEEN 0 AND 6),
	from_minute INTEGER NOT NULL CHECK (from_minute BETWEEN 0 AND 1439),
	to_minute INTEGER NOT NULL CHECK (to_minute BETWEEN 1 AND 1439),
	CHECK (from_minute < to_minute)
)`,
	`CREATE INDEX IF NOT EXISTS idx_availability_windows_offering_weekday ON availability_windows (class_offering_id, weekday)`,
}

// Migrate creates the tutors, class_offerings and availability_windows tables
// for the connected driver. It is safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	var statements []string
	switch db.DriverName() {
	case "postgres":
		statements = postgresSchema
	case sqliteDriver:
		statements = sqliteSchema
	default:
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range statements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

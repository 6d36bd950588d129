package db

import (
	_ "embed"
	"log/slog"
)

//go:embed schema.sql
var schema string

// Migrate creates missing tables. The schema only uses IF NOT EXISTS
// statements so it is safe to run on every start.
func Migrate() error {
	if _, err := DB.Exec(schema); err != nil {
		return err
	}

	slog.Info("Database schema up to date")
	return nil
}

// Package sqlitemigrate applies embedded schema migrations to a sqlite
// database.
//
// Migrations are plain .sql files at the root of an fs.FS. They run in
// lexical filename order, one transaction each, and a schema_migrations
// ledger keeps every file from running twice. Only the -- +migrate Up
// section of a file executes; the Down section is kept for operators
// rolling back by hand.
package sqlitemigrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"
)

const ledgerTable = "schema_migrations"

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// ApplyMigrations runs every pending .sql migration found in migrationFS.
func ApplyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	if sqlDB == nil {
		return fmt.Errorf("sql db is required")
	}

	files, err := migrationOrder(migrationFS)
	if err != nil {
		return err
	}

	if _, err := sqlDB.Exec(
		"CREATE TABLE IF NOT EXISTS " + ledgerTable + " (name TEXT PRIMARY KEY, applied_at INTEGER NOT NULL)",
	); err != nil {
		return fmt.Errorf("ensure migration ledger: %w", err)
	}

	for _, name := range files {
		done, err := alreadyApplied(sqlDB, name)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(migrationFS, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		statements := upSection(string(content))
		if strings.TrimSpace(statements) == "" {
			continue
		}

		if err := applyOne(sqlDB, name, statements); err != nil {
			return err
		}
	}

	return nil
}

// migrationOrder lists the .sql files in lexical order.
func migrationOrder(migrationFS fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// applyOne executes one migration and records it in the same transaction.
func applyOne(sqlDB *sql.DB, name, statements string) error {
	tx, err := sqlDB.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}

	if _, err := tx.Exec(statements); err != nil {
		// DDL from a run that crashed before recording may already be present.
		if !alreadyExists(err) {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT OR IGNORE INTO "+ledgerTable+" (name, applied_at) VALUES (?, ?)",
		name, time.Now().UTC().UnixMilli(),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", name, err)
	}
	return nil
}

func alreadyApplied(sqlDB *sql.DB, name string) (bool, error) {
	var one int
	err := sqlDB.QueryRow("SELECT 1 FROM "+ledgerTable+" WHERE name = ?", name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// upSection cuts the migration text down to its Up statements.
func upSection(content string) string {
	up := strings.Index(content, upMarker)
	if up == -1 {
		return content
	}
	rest := content[up+len(upMarker):]
	if down := strings.Index(rest, downMarker); down != -1 {
		return rest[:down]
	}
	return rest
}

func alreadyExists(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column name")
}

// Package sqlite provides a SQLite-backed high-score store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/sweeplab/minesweeper/internal/platform/storage/sqlitemigrate"
	"github.com/sweeplab/minesweeper/internal/scoreboard"
	"github.com/sweeplab/minesweeper/internal/scoreboard/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists best completion times in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite high-score store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetScore returns the recorded best for one difficulty.
func (s *Store) GetScore(ctx context.Context, difficulty string) (scoreboard.Entry, error) {
	if err := ctx.Err(); err != nil {
		return scoreboard.Entry{}, err
	}
	if s == nil || s.sqlDB == nil {
		return scoreboard.Entry{}, fmt.Errorf("storage is not configured")
	}
	difficulty = strings.TrimSpace(difficulty)
	if difficulty == "" {
		return scoreboard.Entry{}, fmt.Errorf("difficulty is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT difficulty, best_seconds, achieved_at
		 FROM scores
		 WHERE difficulty = ?`,
		difficulty,
	)
	var entry scoreboard.Entry
	var achievedAt int64
	err := row.Scan(
		&entry.Difficulty,
		&entry.BestSeconds,
		&achievedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return scoreboard.Entry{}, scoreboard.ErrNotFound
		}
		return scoreboard.Entry{}, fmt.Errorf("get score: %w", err)
	}
	entry.AchievedAt = fromMillis(achievedAt)
	return entry, nil
}

// PutScore upserts one difficulty's best completion time.
func (s *Store) PutScore(ctx context.Context, entry scoreboard.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	difficulty := strings.TrimSpace(entry.Difficulty)
	if difficulty == "" {
		return fmt.Errorf("difficulty is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO scores (difficulty, best_seconds, achieved_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(difficulty) DO UPDATE SET
		   best_seconds = excluded.best_seconds,
		   achieved_at = excluded.achieved_at`,
		difficulty,
		entry.BestSeconds,
		toMillis(entry.AchievedAt),
	)
	if err != nil {
		return fmt.Errorf("put score: %w", err)
	}
	return nil
}

// ListScores returns every recorded best ordered by difficulty.
func (s *Store) ListScores(ctx context.Context) ([]scoreboard.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT difficulty, best_seconds, achieved_at
		 FROM scores
		 ORDER BY difficulty ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	entries := make([]scoreboard.Entry, 0)
	for rows.Next() {
		var (
			entry      scoreboard.Entry
			achievedAt int64
		)
		if err := rows.Scan(
			&entry.Difficulty,
			&entry.BestSeconds,
			&achievedAt,
		); err != nil {
			return nil, fmt.Errorf("list scores: %w", err)
		}
		entry.AchievedAt = fromMillis(achievedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	return entries, nil
}

var _ scoreboard.Store = (*Store)(nil)

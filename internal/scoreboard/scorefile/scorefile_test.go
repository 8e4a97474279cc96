package scorefile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sweeplab/minesweeper/internal/scoreboard"
)

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.json")

	if _, err := Open(path); err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("expected parent dir to exist: %v", err)
	}
}

func TestPutGetScoreRoundTrip(t *testing.T) {
	store := openTempStore(t)

	input := scoreboard.Entry{
		Difficulty:  "easy",
		BestSeconds: 95,
		AchievedAt:  time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
	}
	if err := store.PutScore(context.Background(), input); err != nil {
		t.Fatalf("put score: %v", err)
	}

	got, err := store.GetScore(context.Background(), "easy")
	if err != nil {
		t.Fatalf("get score: %v", err)
	}
	if got.Difficulty != "easy" || got.BestSeconds != 95 {
		t.Fatalf("unexpected entry: %+v", got)
	}
	// The file layout has no timestamp column.
	if !got.AchievedAt.IsZero() {
		t.Fatalf("expected zero achieved at, got %v", got.AchievedAt)
	}
}

func TestGetScoreNotFound(t *testing.T) {
	store := openTempStore(t)

	_, err := store.GetScore(context.Background(), "missing")
	if !errors.Is(err, scoreboard.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetScoreMissingFile(t *testing.T) {
	store := openTempStore(t)

	_, err := store.GetScore(context.Background(), "easy")
	if !errors.Is(err, scoreboard.ErrNotFound) {
		t.Fatalf("expected not found for missing file, got %v", err)
	}
}

func TestLoadLegacyNullEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	legacy := []byte(`{"easy": 95, "medium": null, "hard": null}`)
	if err := os.WriteFile(path, legacy, 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	got, err := store.GetScore(context.Background(), "easy")
	if err != nil {
		t.Fatalf("get easy score: %v", err)
	}
	if got.BestSeconds != 95 {
		t.Fatalf("expected best seconds 95, got %d", got.BestSeconds)
	}

	if _, err := store.GetScore(context.Background(), "medium"); !errors.Is(err, scoreboard.ErrNotFound) {
		t.Fatalf("expected not found for null entry, got %v", err)
	}

	entries, err := store.ListScores(context.Background())
	if err != nil {
		t.Fatalf("list scores: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	if _, err := store.GetScore(context.Background(), "easy"); !errors.Is(err, scoreboard.ErrNotFound) {
		t.Fatalf("expected not found for corrupt file, got %v", err)
	}

	input := scoreboard.Entry{Difficulty: "easy", BestSeconds: 42}
	if err := store.PutScore(context.Background(), input); err != nil {
		t.Fatalf("put score over corrupt file: %v", err)
	}
	got, err := store.GetScore(context.Background(), "easy")
	if err != nil {
		t.Fatalf("get score after rewrite: %v", err)
	}
	if got.BestSeconds != 42 {
		t.Fatalf("expected best seconds 42, got %d", got.BestSeconds)
	}
}

func TestPutScoreUpsertsExisting(t *testing.T) {
	store := openTempStore(t)

	if err := store.PutScore(context.Background(), scoreboard.Entry{Difficulty: "medium", BestSeconds: 240}); err != nil {
		t.Fatalf("put first score: %v", err)
	}
	if err := store.PutScore(context.Background(), scoreboard.Entry{Difficulty: "medium", BestSeconds: 180}); err != nil {
		t.Fatalf("put second score: %v", err)
	}

	got, err := store.GetScore(context.Background(), "medium")
	if err != nil {
		t.Fatalf("get score: %v", err)
	}
	if got.BestSeconds != 180 {
		t.Fatalf("expected upserted seconds 180, got %d", got.BestSeconds)
	}
}

func TestPutScorePreservesOtherDifficulties(t *testing.T) {
	store := openTempStore(t)

	if err := store.PutScore(context.Background(), scoreboard.Entry{Difficulty: "easy", BestSeconds: 60}); err != nil {
		t.Fatalf("put easy score: %v", err)
	}
	if err := store.PutScore(context.Background(), scoreboard.Entry{Difficulty: "hard", BestSeconds: 480}); err != nil {
		t.Fatalf("put hard score: %v", err)
	}

	entries, err := store.ListScores(context.Background())
	if err != nil {
		t.Fatalf("list scores: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Difficulty != "easy" || entries[1].Difficulty != "hard" {
		t.Fatalf("expected entries sorted by difficulty, got %+v", entries)
	}
}

func TestPutScoreRequiresDifficulty(t *testing.T) {
	store := openTempStore(t)

	if err := store.PutScore(context.Background(), scoreboard.Entry{Difficulty: " "}); err == nil {
		t.Fatal("expected error for empty difficulty")
	}
}

func TestListScoresCancelledContext(t *testing.T) {
	store := openTempStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.ListScores(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "scores.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

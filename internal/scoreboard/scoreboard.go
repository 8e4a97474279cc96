// Package scoreboard tracks the best completion time per difficulty.
// Updates follow strictly-better semantics: a recorded time is replaced
// only by a faster one.
package scoreboard

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates no recorded time for a difficulty.
	ErrNotFound = errors.New("score not found")
	// ErrStoreNotConfigured indicates the service is missing persistence wiring.
	ErrStoreNotConfigured = errors.New("score store is not configured")
	// ErrDifficultyRequired indicates a difficulty label is required.
	ErrDifficultyRequired = errors.New("difficulty is required")
	// ErrInvalidDuration indicates a negative completion time.
	ErrInvalidDuration = errors.New("completion seconds must not be negative")
)

// Store backends selectable through command configuration. Both the
// game command and the scores tool resolve these names.
const (
	BackendSQLite    = "sqlite"
	BackendScorefile = "scorefile"
)

// Entry is one difficulty's best completion.
type Entry struct {
	Difficulty  string
	BestSeconds int
	AchievedAt  time.Time
}

// Store is the persistence boundary for best completion times.
type Store interface {
	GetScore(ctx context.Context, difficulty string) (Entry, error)
	PutScore(ctx context.Context, entry Entry) error
	ListScores(ctx context.Context) ([]Entry, error)
}

// Service orchestrates high-score reads and strictly-better updates.
type Service struct {
	store Store
	clock func() time.Time
}

// NewService constructs score use-cases.
func NewService(store Store, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		store: store,
		clock: clock,
	}
}

// RecordCompletion stores seconds as the best time for a difficulty when
// it beats the recorded best. It returns the standing entry and whether
// the completion improved it. A completion that ties or exceeds the
// recorded best leaves the store untouched.
func (s *Service) RecordCompletion(ctx context.Context, difficulty string, seconds int) (Entry, bool, error) {
	if s == nil || s.store == nil {
		return Entry{}, false, ErrStoreNotConfigured
	}
	difficulty = strings.TrimSpace(difficulty)
	if difficulty == "" {
		return Entry{}, false, ErrDifficultyRequired
	}
	if seconds < 0 {
		return Entry{}, false, ErrInvalidDuration
	}

	existing, err := s.store.GetScore(ctx, difficulty)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Entry{}, false, err
	}
	if err == nil && seconds >= existing.BestSeconds {
		return existing, false, nil
	}

	entry := Entry{
		Difficulty:  difficulty,
		BestSeconds: seconds,
		AchievedAt:  s.nowUTC(),
	}
	if err := s.store.PutScore(ctx, entry); err != nil {
		return Entry{}, false, err
	}
	return entry, true, nil
}

// BestTime returns the recorded best for a difficulty. ok is false when
// no time is recorded.
func (s *Service) BestTime(ctx context.Context, difficulty string) (Entry, bool, error) {
	if s == nil || s.store == nil {
		return Entry{}, false, ErrStoreNotConfigured
	}
	difficulty = strings.TrimSpace(difficulty)
	if difficulty == "" {
		return Entry{}, false, ErrDifficultyRequired
	}

	entry, err := s.store.GetScore(ctx, difficulty)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	return entry, true, nil
}

// BestTimes returns every recorded best, one entry per difficulty.
func (s *Service) BestTimes(ctx context.Context) ([]Entry, error) {
	if s == nil || s.store == nil {
		return nil, ErrStoreNotConfigured
	}
	return s.store.ListScores(ctx)
}

func (s *Service) nowUTC() time.Time {
	return s.clock().UTC()
}

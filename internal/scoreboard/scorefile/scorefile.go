// Package scorefile provides a JSON-file high-score store. The file keeps
// the classic layout mapping difficulty to best seconds, with null for
// difficulties that have no recorded time yet.
package scorefile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sweeplab/minesweeper/internal/scoreboard"
)

// Store persists best completion times in a single JSON file. The file
// layout has no room for timestamps, so loaded entries carry a zero
// AchievedAt.
type Store struct {
	path string

	mu sync.Mutex
}

// Open prepares a JSON high-score store at path. The file itself is
// created on the first write.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create score dir: %w", err)
		}
	}
	return &Store{path: cleanPath}, nil
}

// GetScore returns the recorded best for one difficulty.
func (s *Store) GetScore(ctx context.Context, difficulty string) (scoreboard.Entry, error) {
	if err := ctx.Err(); err != nil {
		return scoreboard.Entry{}, err
	}
	if s == nil || s.path == "" {
		return scoreboard.Entry{}, fmt.Errorf("storage is not configured")
	}
	difficulty = strings.TrimSpace(difficulty)
	if difficulty == "" {
		return scoreboard.Entry{}, fmt.Errorf("difficulty is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.load()
	if err != nil {
		return scoreboard.Entry{}, err
	}
	seconds, ok := scores[difficulty]
	if !ok || seconds == nil {
		return scoreboard.Entry{}, scoreboard.ErrNotFound
	}
	return scoreboard.Entry{Difficulty: difficulty, BestSeconds: *seconds}, nil
}

// PutScore upserts one difficulty's best completion time.
func (s *Store) PutScore(ctx context.Context, entry scoreboard.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.path == "" {
		return fmt.Errorf("storage is not configured")
	}
	difficulty := strings.TrimSpace(entry.Difficulty)
	if difficulty == "" {
		return fmt.Errorf("difficulty is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.load()
	if err != nil {
		return err
	}
	seconds := entry.BestSeconds
	scores[difficulty] = &seconds
	return s.save(scores)
}

// ListScores returns every recorded best ordered by difficulty.
func (s *Store) ListScores(ctx context.Context) ([]scoreboard.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.path == "" {
		return nil, fmt.Errorf("storage is not configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.load()
	if err != nil {
		return nil, err
	}
	entries := make([]scoreboard.Entry, 0, len(scores))
	for difficulty, seconds := range scores {
		if seconds == nil {
			continue
		}
		entries = append(entries, scoreboard.Entry{
			Difficulty:  difficulty,
			BestSeconds: *seconds,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Difficulty < entries[j].Difficulty
	})
	return entries, nil
}

// load reads the score file. A missing or unparsable file yields an
// empty board so a damaged file never blocks play.
func (s *Store) load() (map[string]*int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]*int), nil
		}
		return nil, fmt.Errorf("read score file: %w", err)
	}
	scores := make(map[string]*int)
	if err := json.Unmarshal(data, &scores); err != nil {
		return make(map[string]*int), nil
	}
	return scores, nil
}

func (s *Store) save(scores map[string]*int) error {
	data, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return fmt.Errorf("encode score file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write score file: %w", err)
	}
	return nil
}

var _ scoreboard.Store = (*Store)(nil)

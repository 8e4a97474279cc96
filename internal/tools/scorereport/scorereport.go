// Package scorereport prints the recorded best completion times from a
// high-score store.
package scorereport

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	entrypoint "github.com/sweeplab/minesweeper/internal/platform/cmd"
	"github.com/sweeplab/minesweeper/internal/scoreboard"
	"github.com/sweeplab/minesweeper/internal/scoreboard/scorefile"
	scoresqlite "github.com/sweeplab/minesweeper/internal/scoreboard/sqlite"
	"github.com/sweeplab/minesweeper/internal/view"
)

// Config holds score report configuration. It reads the same environment
// variables as the game command so both point at one store by default.
type Config struct {
	ScoreBackend string `env:"MINESWEEPER_SCORE_BACKEND" envDefault:"sqlite"`
	ScorePath    string `env:"MINESWEEPER_SCORE_PATH" envDefault:"minesweeper.db"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.ScoreBackend, "score-backend", cfg.ScoreBackend, "High-score backend: sqlite or scorefile")
	fs.StringVar(&cfg.ScorePath, "score-path", cfg.ScorePath, "High-score storage path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run lists every recorded best time on out, one difficulty per line.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer func() {
			_ = closeStore()
		}()
	}

	entries, err := scoreboard.NewService(store, nil).BestTimes(ctx)
	if err != nil {
		return fmt.Errorf("list best times: %w", err)
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "no best times recorded")
		return err
	}
	for _, entry := range entries {
		if entry.AchievedAt.IsZero() {
			fmt.Fprintf(out, "%-8s %s\n", entry.Difficulty, view.FormatElapsed(entry.BestSeconds))
			continue
		}
		fmt.Fprintf(out, "%-8s %s  achieved %s\n", entry.Difficulty, view.FormatElapsed(entry.BestSeconds), entry.AchievedAt.Format(time.RFC3339))
	}
	return nil
}

func openStore(cfg Config) (scoreboard.Store, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.ScoreBackend)) {
	case scoreboard.BackendSQLite:
		store, err := scoresqlite.Open(cfg.ScorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite score store: %w", err)
		}
		return store, store.Close, nil
	case scoreboard.BackendScorefile:
		store, err := scorefile.Open(cfg.ScorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open score file: %w", err)
		}
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown score backend: %q", cfg.ScoreBackend)
	}
}

// Package minesweeper parses game flags and runs the interactive command loop.
package minesweeper

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sweeplab/minesweeper/internal/app"
	"github.com/sweeplab/minesweeper/internal/difficulty"
	"github.com/sweeplab/minesweeper/internal/game"
	"github.com/sweeplab/minesweeper/internal/input"
	entrypoint "github.com/sweeplab/minesweeper/internal/platform/cmd"
	"github.com/sweeplab/minesweeper/internal/scoreboard"
	"github.com/sweeplab/minesweeper/internal/scoreboard/scorefile"
	scoresqlite "github.com/sweeplab/minesweeper/internal/scoreboard/sqlite"
	"github.com/sweeplab/minesweeper/internal/view"
)

// Config holds minesweeper command configuration.
type Config struct {
	Difficulty     string `env:"MINESWEEPER_DIFFICULTY" envDefault:"easy"`
	ScoreBackend   string `env:"MINESWEEPER_SCORE_BACKEND" envDefault:"sqlite"`
	ScorePath      string `env:"MINESWEEPER_SCORE_PATH" envDefault:"minesweeper.db"`
	Seed           int64  `env:"MINESWEEPER_SEED" envDefault:"0"`
	NonInteractive bool   `env:"MINESWEEPER_NON_INTERACTIVE" envDefault:"false"`
}

// ParseConfig loads an optional .env file, then environment and flags
// into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "Difficulty preset: easy, medium, or hard")
	fs.StringVar(&cfg.ScoreBackend, "score-backend", cfg.ScoreBackend, "High-score backend: sqlite or scorefile")
	fs.StringVar(&cfg.ScorePath, "score-path", cfg.ScorePath, "High-score storage path")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Board seed, 0 draws a random one")
	fs.BoolVar(&cfg.NonInteractive, "non-interactive", cfg.NonInteractive, "Suppress the banner and prompt for scripted input")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the interactive minesweeper loop on stdin and stdout.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMinesweeper, func(context.Context) error {
		return run(ctx, cfg, os.Stdin, os.Stdout)
	})
}

func run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	preset, err := difficulty.FromLabel(cfg.Difficulty)
	if err != nil {
		return fmt.Errorf("difficulty %q: %w", cfg.Difficulty, err)
	}
	store, closeStore, err := openScoreStore(cfg)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer func() {
			if err := closeStore(); err != nil {
				log.Printf("close score store: %v", err)
			}
		}()
	}
	scores := scoreboard.NewService(store, nil)

	g, err := app.New(preset, scores, cfg.Seed, nil, nil)
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}

	if !cfg.NonInteractive {
		fmt.Fprintf(out, "minesweeper %s: %dx%d, %d mines\n", preset.Label, preset.Width, preset.Height, preset.Mines)
		fmt.Fprintln(out, "commands: reveal R C, flag R C, hint, difficulty LABEL, restart, quit")
	}
	printBestTimes(ctx, out, scores)
	printBoard(out, g)

	scanner := bufio.NewScanner(in)
	queue := input.NewQueue()
	for {
		if ctx.Err() != nil {
			return nil
		}
		if !cfg.NonInteractive {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		event, err := input.Parse(line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		queue.Push(event)
		if quit := drain(ctx, g, queue, scores, out); quit {
			return nil
		}
	}
}

// drain applies queued events in order and reports each outcome,
// including outcomes returned alongside an error. It returns true when
// the player asked to quit.
func drain(ctx context.Context, g *app.Game, queue *input.Queue, scores *scoreboard.Service, out io.Writer) bool {
	for {
		event, ok := queue.Pop()
		if !ok {
			return false
		}
		outcome, err := g.Apply(ctx, event)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			// A win whose score write failed still finished the session.
			if !outcome.Finished && !outcome.HintGiven {
				continue
			}
		}
		if outcome.Quit {
			fmt.Fprintln(out, "bye")
			return true
		}
		report(ctx, g, scores, outcome, out)
	}
}

func report(ctx context.Context, g *app.Game, scores *scoreboard.Service, outcome app.Outcome, out io.Writer) {
	if outcome.HintGiven {
		fmt.Fprintf(out, "hint: row %d col %d\n", outcome.Hint.Pos.Row, outcome.Hint.Pos.Col)
	}
	printBoard(out, g)
	if !outcome.Finished {
		return
	}

	snapshot := g.Snapshot()
	switch snapshot.Status {
	case game.StatusLost.String():
		fmt.Fprintf(out, "boom, a mine went off at %s\n", view.FormatElapsed(snapshot.ElapsedSeconds))
	case game.StatusWon.String():
		fmt.Fprintf(out, "cleared %s in %s\n", snapshot.Difficulty, view.FormatElapsed(snapshot.ElapsedSeconds))
		if outcome.NewBest {
			fmt.Fprintf(out, "new best time for %s\n", snapshot.Difficulty)
		} else if outcome.BestKnown {
			fmt.Fprintf(out, "best for %s remains %s\n", snapshot.Difficulty, view.FormatElapsed(outcome.Best.BestSeconds))
		}
		printBestTimes(ctx, out, scores)
	}
	fmt.Fprintln(out, "type restart for a new board or quit to exit")
}

func printBoard(out io.Writer, g *app.Game) {
	snapshot := g.Snapshot()
	fmt.Fprintf(out, "[%s] %s  mines %d  time %s", snapshot.Difficulty, snapshot.Status, snapshot.MinesRemaining, view.FormatElapsed(snapshot.ElapsedSeconds))
	if snapshot.HintAvailable {
		fmt.Fprint(out, "  hint ready")
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, snapshot.Render())
}

func printBestTimes(ctx context.Context, out io.Writer, scores *scoreboard.Service) {
	entries, err := scores.BestTimes(ctx)
	if err != nil {
		fmt.Fprintf(out, "best times unavailable: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "no best times yet")
		return
	}
	fmt.Fprintln(out, "best times:")
	for _, entry := range entries {
		fmt.Fprintf(out, "  %-8s %s\n", entry.Difficulty, view.FormatElapsed(entry.BestSeconds))
	}
}

func openScoreStore(cfg Config) (scoreboard.Store, func() error, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.ScoreBackend))
	switch backend {
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

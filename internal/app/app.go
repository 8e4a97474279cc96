// Package app orchestrates game sessions, input events, and the
// scoreboard behind a single synchronous surface.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sweeplab/minesweeper/internal/difficulty"
	"github.com/sweeplab/minesweeper/internal/game"
	"github.com/sweeplab/minesweeper/internal/input"
	"github.com/sweeplab/minesweeper/internal/scoreboard"
	"github.com/sweeplab/minesweeper/internal/view"
)

var (
	// ErrNotConfigured indicates the game is missing its session wiring.
	ErrNotConfigured = errors.New("game is not configured")
	// ErrSessionInProgress indicates an action that must wait for the
	// current session to finish.
	ErrSessionInProgress = errors.New("session is in progress")
	// ErrUnsupportedEvent indicates an event type the game cannot apply.
	ErrUnsupportedEvent = errors.New("unsupported event type")
)

// Outcome reports what applying one event changed.
type Outcome struct {
	// Type echoes the applied event type.
	Type input.EventType
	// Quit is true when the consumer should stop its loop.
	Quit bool
	// HintGiven is true when a hint cell was revealed.
	HintGiven bool
	// Hint holds the revealed hint cell when HintGiven is true.
	Hint game.Hint
	// Finished is true when this event moved the session into a
	// terminal status.
	Finished bool
	// NewBest is true when a won session improved the recorded best
	// time for its difficulty.
	NewBest bool
	// Best is the standing best entry for the difficulty after a win.
	Best scoreboard.Entry
	// BestKnown is false when no scoreboard is wired or the lookup
	// failed.
	BestKnown bool
}

// Game owns the current session and applies events to it one at a time.
// Sessions are never reused: selecting a difficulty or restarting builds
// a fresh one. Not safe for concurrent use.
type Game struct {
	preset  difficulty.Preset
	session *game.Session
	scores  *scoreboard.Service
	seed    int64
	clock   func() time.Time
	newID   func() (string, error)
}

// New builds a game on preset with an initial ready session. A nil
// scores service disables best-time recording. Seed zero derives a
// fresh random seed per session; any other value replays the same
// layout on every restart.
func New(preset difficulty.Preset, scores *scoreboard.Service, seed int64, clock func() time.Time, newID func() (string, error)) (*Game, error) {
	g := &Game{
		preset: preset,
		scores: scores,
		seed:   seed,
		clock:  clock,
		newID:  newID,
	}
	if err := g.resetSession(); err != nil {
		return nil, err
	}
	return g, nil
}

// Preset returns the difficulty the current session plays on.
func (g *Game) Preset() difficulty.Preset {
	return g.preset
}

// Snapshot returns the read-only view of the current session.
func (g *Game) Snapshot() view.Snapshot {
	return view.Take(g.session)
}

// Apply runs one event against the current session. Events are applied
// in the order received; rejected events leave the session unchanged.
// When recording a won game fails the returned Outcome still reflects
// the finished session alongside the error.
func (g *Game) Apply(ctx context.Context, event input.Event) (Outcome, error) {
	if g == nil || g.session == nil {
		return Outcome{}, ErrNotConfigured
	}
	outcome := Outcome{Type: event.Type}

	switch event.Type {
	case input.EventTypeReveal:
		return g.applyReveal(ctx, event, outcome)
	case input.EventTypeToggleFlag:
		if err := g.session.ToggleFlag(event.Pos); err != nil {
			return outcome, err
		}
		return outcome, nil
	case input.EventTypeRequestHint:
		return g.applyHint(ctx, outcome)
	case input.EventTypeSelectDifficulty:
		return g.applySelectDifficulty(event, outcome)
	case input.EventTypeRestart:
		if err := g.resetSession(); err != nil {
			return outcome, err
		}
		return outcome, nil
	case input.EventTypeQuit:
		outcome.Quit = true
		return outcome, nil
	default:
		return outcome, fmt.Errorf("%w: %s", ErrUnsupportedEvent, event.Type)
	}
}

func (g *Game) applyReveal(ctx context.Context, event input.Event, outcome Outcome) (Outcome, error) {
	if _, err := g.session.Reveal(event.Pos); err != nil {
		return outcome, err
	}
	return g.settleOutcome(ctx, outcome)
}

func (g *Game) applyHint(ctx context.Context, outcome Outcome) (Outcome, error) {
	hint, ok := g.session.RequestHint()
	if !ok {
		return outcome, nil
	}
	outcome.HintGiven = true
	outcome.Hint = hint
	return g.settleOutcome(ctx, outcome)
}

func (g *Game) applySelectDifficulty(event input.Event, outcome Outcome) (Outcome, error) {
	if g.session.Status() == game.StatusPlaying {
		return outcome, ErrSessionInProgress
	}
	preset, err := difficulty.FromLabel(event.Difficulty)
	if err != nil {
		return outcome, err
	}
	previous := g.preset
	g.preset = preset
	if err := g.resetSession(); err != nil {
		g.preset = previous
		return outcome, err
	}
	return outcome, nil
}

// settleOutcome checks whether the session just ended and records a win.
func (g *Game) settleOutcome(ctx context.Context, outcome Outcome) (Outcome, error) {
	if !g.session.Status().IsTerminal() {
		return outcome, nil
	}
	outcome.Finished = true
	if g.session.Status() != game.StatusWon || g.scores == nil {
		return outcome, nil
	}

	seconds := int(g.session.Elapsed().Seconds())
	entry, improved, err := g.scores.RecordCompletion(ctx, g.preset.Label, seconds)
	if err != nil {
		return outcome, fmt.Errorf("record completion: %w", err)
	}
	outcome.NewBest = improved
	outcome.Best = entry
	outcome.BestKnown = true
	return outcome, nil
}

func (g *Game) resetSession() error {
	session, err := game.NewSession(g.preset, g.seed, g.clock, g.newID)
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	g.session = session
	return nil
}

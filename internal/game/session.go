// Package game implements the minesweeper session state machine: the
// Ready, Playing, Won and Lost lifecycle over a lazily mined board, the
// session clock, and the one-shot hint.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sweeplab/minesweeper/internal/board"
	"github.com/sweeplab/minesweeper/internal/difficulty"
	"github.com/sweeplab/minesweeper/internal/platform/id"
	"github.com/sweeplab/minesweeper/internal/platform/random"
)

// ErrGameOver indicates an action arrived after the session reached a
// terminal status.
var ErrGameOver = errors.New("game is over")

// Session is a single game over one board. Sessions are never reused;
// a restart constructs a fresh session.
//
// A session is single-owner and not safe for concurrent use.
type Session struct {
	id     string
	preset difficulty.Preset
	board  *board.Board
	status Status
	seed   int64
	rng    *rand.Rand
	clock  func() time.Time

	startedAt time.Time
	endedAt   time.Time
	hintUsed  bool
}

// Hint is one revealed safe cell with its cascade.
type Hint struct {
	Pos    board.Position
	Result board.RevealResult
}

// NewSession constructs a session in the Ready status.
//
// The seed fixes the mine layout and the hint sequence; zero derives a
// high-entropy seed. The clock drives elapsed time and defaults to
// time.Now; newID defaults to the platform generator. Mines are not placed
// until the first reveal.
func NewSession(preset difficulty.Preset, seed int64, clock func() time.Time, newID func() (string, error)) (*Session, error) {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = id.NewID
	}

	b, err := board.New(preset.Width, preset.Height, preset.Mines)
	if err != nil {
		return nil, err
	}

	if seed == 0 {
		seed, err = random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("generate seed: %w", err)
		}
	}

	sessionID, err := newID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	return &Session{
		id:     sessionID,
		preset: preset,
		board:  b,
		status: StatusReady,
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
		clock:  clock,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Preset returns the difficulty the session was created with.
func (s *Session) Preset() difficulty.Preset { return s.preset }

// Status returns the current lifecycle status.
func (s *Session) Status() Status { return s.status }

// Seed returns the seed driving mine placement and hint selection.
func (s *Session) Seed() int64 { return s.seed }

// Board exposes the underlying board for read-only inspection.
func (s *Session) Board() *board.Board { return s.board }

// StartedAt returns the time of the first reveal, zero while Ready.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Reveal uncovers the cell at pos and advances the session lifecycle.
//
// The first reveal places the mines with pos and its neighborhood
// excluded, starts the clock, and moves the session to Playing. Revealing
// a mine moves the session to Lost; revealing the last safe cell moves it
// to Won. Revealing an already revealed or flagged cell changes nothing,
// including the Ready status. In terminal statuses Reveal returns
// ErrGameOver and the board is unchanged.
func (s *Session) Reveal(pos board.Position) (board.RevealResult, error) {
	if s.status.IsTerminal() {
		return board.RevealResult{}, ErrGameOver
	}

	cell, err := s.board.CellAt(pos)
	if err != nil {
		return board.RevealResult{}, err
	}
	if cell.State != board.CellStateHidden {
		return board.RevealResult{}, nil
	}

	if s.status == StatusReady {
		if err := s.board.PlaceMines(s.rng, pos); err != nil {
			return board.RevealResult{}, fmt.Errorf("place mines: %w", err)
		}
		if err := s.transition(StatusPlaying); err != nil {
			return board.RevealResult{}, err
		}
		s.startedAt = s.nowUTC()
	}

	result, err := s.board.Reveal(pos)
	if err != nil {
		return board.RevealResult{}, err
	}
	if err := s.settle(result); err != nil {
		return board.RevealResult{}, err
	}
	return result, nil
}

// ToggleFlag switches the flag on the cell at pos. Flagging is allowed
// while Ready and Playing; it never starts the clock.
func (s *Session) ToggleFlag(pos board.Position) error {
	if s.status.IsTerminal() {
		return ErrGameOver
	}
	return s.board.ToggleFlag(pos)
}

// HintAvailable reports whether RequestHint would reveal a cell.
func (s *Session) HintAvailable() bool {
	return s.status == StatusPlaying && !s.hintUsed && len(s.board.SafeHidden()) > 0
}

// RequestHint reveals one uniformly chosen safe hidden cell.
//
// A hint is available at most once per session and only while Playing.
// The revealed cell follows normal reveal semantics, so a hint can cascade
// and can win the game. When no hint is available the session is unchanged
// and ok is false.
func (s *Session) RequestHint() (hint Hint, ok bool) {
	if !s.HintAvailable() {
		return Hint{}, false
	}

	candidates := s.board.SafeHidden()
	pos := candidates[s.rng.Intn(len(candidates))]
	result, err := s.board.Reveal(pos)
	if err != nil {
		return Hint{}, false
	}
	s.hintUsed = true
	if err := s.settle(result); err != nil {
		return Hint{}, false
	}
	return Hint{Pos: pos, Result: result}, true
}

// Elapsed returns the play time: zero while Ready, running while Playing,
// frozen at the terminal transition afterwards.
func (s *Session) Elapsed() time.Duration {
	switch s.status {
	case StatusPlaying:
		return s.nowUTC().Sub(s.startedAt)
	case StatusWon, StatusLost:
		return s.endedAt.Sub(s.startedAt)
	default:
		return 0
	}
}

// settle applies the terminal transition a reveal result calls for.
func (s *Session) settle(result board.RevealResult) error {
	if result.Detonated {
		if err := s.transition(StatusLost); err != nil {
			return err
		}
		s.endedAt = s.nowUTC()
		return nil
	}
	if s.board.IsCleared() {
		if err := s.transition(StatusWon); err != nil {
			return err
		}
		s.endedAt = s.nowUTC()
	}
	return nil
}

func (s *Session) transition(to Status) error {
	if !isStatusTransitionAllowed(s.status, to) {
		return fmt.Errorf("status transition not allowed: %s -> %s", s.status, to)
	}
	s.status = to
	return nil
}

func (s *Session) nowUTC() time.Time {
	return s.clock().UTC()
}

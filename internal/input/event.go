// Package input defines the discrete player events that drive a game, a
// parser for the text command surface, and the synchronous queue the game
// loop drains.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sweeplab/minesweeper/internal/board"
)

// EventType identifies the type of a player input event.
type EventType string

const (
	// EventTypeReveal uncovers a cell.
	EventTypeReveal EventType = "REVEAL"
	// EventTypeToggleFlag places or removes a flag on a cell.
	EventTypeToggleFlag EventType = "TOGGLE_FLAG"
	// EventTypeRequestHint asks for one safe cell to be revealed.
	EventTypeRequestHint EventType = "REQUEST_HINT"
	// EventTypeSelectDifficulty switches the difficulty for the next session.
	EventTypeSelectDifficulty EventType = "SELECT_DIFFICULTY"
	// EventTypeRestart abandons the session and starts a fresh one.
	EventTypeRestart EventType = "RESTART"
	// EventTypeQuit ends the game loop.
	EventTypeQuit EventType = "QUIT"
)

// IsValid reports whether the event type is supported.
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeReveal,
		EventTypeToggleFlag,
		EventTypeRequestHint,
		EventTypeSelectDifficulty,
		EventTypeRestart,
		EventTypeQuit:
		return true
	default:
		return false
	}
}

// Event is one discrete player action.
type Event struct {
	Type EventType
	// Pos locates the target cell for reveal and flag events.
	Pos board.Position
	// Difficulty carries the label for difficulty selection.
	Difficulty string
}

// ErrUnknownCommand indicates a command word with no matching event.
var ErrUnknownCommand = errors.New("unknown command")

// Parse turns one line of the text command surface into an event.
//
// Commands: "reveal ROW COL", "flag ROW COL", "hint", "difficulty LABEL",
// "restart", "quit". The first letter works as a shorthand for reveal,
// flag, hint, difficulty and quit. Matching is case-insensitive.
func Parse(line string) (Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Event{}, errors.New("command is required")
	}

	switch strings.ToLower(fields[0]) {
	case "reveal", "r":
		pos, err := parsePosition(fields[1:])
		if err != nil {
			return Event{}, fmt.Errorf("reveal: %w", err)
		}
		return Event{Type: EventTypeReveal, Pos: pos}, nil
	case "flag", "f":
		pos, err := parsePosition(fields[1:])
		if err != nil {
			return Event{}, fmt.Errorf("flag: %w", err)
		}
		return Event{Type: EventTypeToggleFlag, Pos: pos}, nil
	case "hint", "h":
		return Event{Type: EventTypeRequestHint}, nil
	case "difficulty", "d":
		if len(fields) != 2 {
			return Event{}, errors.New("difficulty: label is required")
		}
		return Event{Type: EventTypeSelectDifficulty, Difficulty: fields[1]}, nil
	case "restart":
		return Event{Type: EventTypeRestart}, nil
	case "quit", "q":
		return Event{Type: EventTypeQuit}, nil
	default:
		return Event{}, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}
}

func parsePosition(args []string) (board.Position, error) {
	if len(args) != 2 {
		return board.Position{}, errors.New("row and column are required")
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return board.Position{}, fmt.Errorf("parse row %q: %w", args[0], err)
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return board.Position{}, fmt.Errorf("parse column %q: %w", args[1], err)
	}
	return board.Position{Row: row, Col: col}, nil
}

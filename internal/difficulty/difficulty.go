// Package difficulty defines the named board presets and validates
// custom board configurations.
package difficulty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sweeplab/minesweeper/internal/board"
)

// Preset pairs a difficulty label with board dimensions and a mine count.
// Width counts columns and Height counts rows.
type Preset struct {
	Label  string
	Width  int
	Height int
	Mines  int
}

// Classic presets.
var (
	// Easy is a 9x9 board with 10 mines.
	Easy = Preset{Label: "easy", Width: 9, Height: 9, Mines: 10}
	// Medium is a 16x16 board with 40 mines.
	Medium = Preset{Label: "medium", Width: 16, Height: 16, Mines: 40}
	// Hard is a 30x16 board with 99 mines.
	Hard = Preset{Label: "hard", Width: 30, Height: 16, Mines: 99}
)

// Default is the preset selected before any explicit difficulty choice.
var Default = Easy

// ErrUnknownLabel indicates a difficulty label with no matching preset.
var ErrUnknownLabel = errors.New("unknown difficulty")

// Presets returns the named presets in ascending order of board size.
func Presets() []Preset {
	return []Preset{Easy, Medium, Hard}
}

// FromLabel parses a difficulty label into its preset. It trims whitespace
// and matches case-insensitively.
func FromLabel(value string) (Preset, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Preset{}, errors.New("difficulty is required")
	}
	switch strings.ToLower(trimmed) {
	case Easy.Label:
		return Easy, nil
	case Medium.Label:
		return Medium, nil
	case Hard.Label:
		return Hard, nil
	default:
		return Preset{}, fmt.Errorf("%w: %s", ErrUnknownLabel, trimmed)
	}
}

// Custom builds a preset outside the named set. The label is trimmed and
// lowercased; dimensions and mine count follow the board configuration
// rules.
func Custom(label string, width, height, mines int) (Preset, error) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return Preset{}, errors.New("difficulty label is required")
	}
	if err := board.Validate(width, height, mines); err != nil {
		return Preset{}, err
	}
	return Preset{
		Label:  strings.ToLower(trimmed),
		Width:  width,
		Height: height,
		Mines:  mines,
	}, nil
}

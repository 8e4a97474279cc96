// Package board implements the minesweeper grid: mine placement,
// adjacency counts, reveal cascades, and flag bookkeeping.
package board

import (
	"errors"
	"fmt"
	"math/rand"
)

// CellState describes the visibility of a single cell.
type CellState int

const (
	CellStateUnspecified CellState = iota
	CellStateHidden
	CellStateRevealed
	CellStateFlagged
)

func (s CellState) String() string {
	switch s {
	case CellStateHidden:
		return "hidden"
	case CellStateRevealed:
		return "revealed"
	case CellStateFlagged:
		return "flagged"
	default:
		return "unspecified"
	}
}

// ErrInvalidConfiguration indicates board dimensions or mine count are out of range.
var ErrInvalidConfiguration = errors.New("board configuration is invalid")

// ErrOutOfBounds indicates a position outside the board.
var ErrOutOfBounds = errors.New("position is outside the board")

// ErrMinesNotPlaced indicates a reveal was attempted before mine placement.
var ErrMinesNotPlaced = errors.New("mines are not placed")

// Position identifies a cell by zero-based row and column.
type Position struct {
	Row int
	Col int
}

// Cell is one grid square. Adjacent counts neighboring mines and is
// computed once during placement.
type Cell struct {
	Mine     bool
	Adjacent int
	State    CellState
}

// RevealResult reports the cells uncovered by a single reveal.
type RevealResult struct {
	// Revealed lists every position whose state changed to revealed,
	// in the order the cascade uncovered them.
	Revealed []Position
	// Detonated is true when the revealed cell was a mine.
	Detonated bool
}

// Board is a rectangular minefield. Mines are placed lazily by PlaceMines
// so the first revealed cell is never a mine; until then every cell is
// hidden and safe.
type Board struct {
	width       int
	height      int
	mineCount   int
	cells       []Cell
	minesPlaced bool
	flagCount   int
	// safeRevealed counts revealed non-mine cells for the cleared check.
	safeRevealed int
}

// Validate checks board dimensions and mine count without building a board.
// A valid configuration has positive dimensions and at least one mine while
// leaving at least one safe cell.
func Validate(width, height, mines int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidConfiguration, width, height)
	}
	if mines <= 0 || mines >= width*height {
		return fmt.Errorf("%w: mine count %d must be between 1 and %d", ErrInvalidConfiguration, mines, width*height-1)
	}
	return nil
}

// New creates a hidden board with the given dimensions and mine count.
// Mines are not placed until PlaceMines runs.
func New(width, height, mines int) (*Board, error) {
	if err := Validate(width, height, mines); err != nil {
		return nil, err
	}

	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i].State = CellStateHidden
	}

	return &Board{
		width:     width,
		height:    height,
		mineCount: mines,
		cells:     cells,
	}, nil
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// MineCount returns the configured number of mines.
func (b *Board) MineCount() int { return b.mineCount }

// MinesPlaced reports whether PlaceMines has run.
func (b *Board) MinesPlaced() bool { return b.minesPlaced }

// FlagCount returns the number of currently flagged cells.
func (b *Board) FlagCount() int { return b.flagCount }

// MinesRemaining returns the mine count minus placed flags, floored at zero.
func (b *Board) MinesRemaining() int {
	remaining := b.mineCount - b.flagCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Contains reports whether pos is inside the board.
func (b *Board) Contains(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.height && pos.Col >= 0 && pos.Col < b.width
}

// CellAt returns a copy of the cell at pos.
func (b *Board) CellAt(pos Position) (Cell, error) {
	idx, err := b.index(pos)
	if err != nil {
		return Cell{}, err
	}
	return b.cells[idx], nil
}

// Grid returns a copy of the cells as rows of columns. Mutating the copy
// does not affect the board.
func (b *Board) Grid() [][]Cell {
	rows := make([][]Cell, b.height)
	for row := 0; row < b.height; row++ {
		start := row * b.width
		rows[row] = append([]Cell(nil), b.cells[start:start+b.width]...)
	}
	return rows
}

// Neighbors returns the in-bounds positions adjacent to pos, row-major.
func (b *Board) Neighbors(pos Position) []Position {
	neighbors := make([]Position, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			neighbor := Position{Row: pos.Row + dr, Col: pos.Col + dc}
			if b.Contains(neighbor) {
				neighbors = append(neighbors, neighbor)
			}
		}
	}
	return neighbors
}

// PlaceMines distributes the configured mines using the provided random
// source and computes adjacency counts.
//
// The safe position and its neighbors are excluded from placement so the
// first reveal always opens on a safe cell. When the board is too small to
// exclude the whole neighborhood and still place every mine, only the safe
// cell itself is excluded; the mine count is never reduced.
//
// Placement is deterministic with respect to the random source. Calling
// PlaceMines again after mines are placed is a no-op.
func (b *Board) PlaceMines(rng *rand.Rand, safe Position) error {
	if rng == nil {
		return errors.New("random source is required")
	}
	if !b.Contains(safe) {
		return fmt.Errorf("%w: row %d col %d", ErrOutOfBounds, safe.Row, safe.Col)
	}
	if b.minesPlaced {
		return nil
	}

	forbidden := map[Position]bool{safe: true}
	for _, neighbor := range b.Neighbors(safe) {
		forbidden[neighbor] = true
	}
	if b.width*b.height-len(forbidden) < b.mineCount {
		forbidden = map[Position]bool{safe: true}
	}

	candidates := make([]Position, 0, b.width*b.height-len(forbidden))
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			pos := Position{Row: row, Col: col}
			if forbidden[pos] {
				continue
			}
			candidates = append(candidates, pos)
		}
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	mines := candidates[:b.mineCount]
	for _, pos := range mines {
		b.cellRef(pos).Mine = true
	}
	for _, pos := range mines {
		for _, neighbor := range b.Neighbors(pos) {
			b.cellRef(neighbor).Adjacent++
		}
	}

	b.minesPlaced = true
	return nil
}

// Reveal uncovers the cell at pos.
//
// Revealing an already revealed or flagged cell is a no-op. Revealing a
// mine uncovers every mine on the board and reports Detonated. Revealing a
// safe cell with zero adjacent mines cascades outward through connected
// zero-adjacency cells and their borders; the cascade skips flagged cells
// and can never reach a mine, because a mine is never adjacent to a
// zero-adjacency cell.
//
// The board state is unchanged when an error is returned.
func (b *Board) Reveal(pos Position) (RevealResult, error) {
	idx, err := b.index(pos)
	if err != nil {
		return RevealResult{}, err
	}
	if !b.minesPlaced {
		return RevealResult{}, ErrMinesNotPlaced
	}

	cell := &b.cells[idx]
	if cell.State == CellStateRevealed || cell.State == CellStateFlagged {
		return RevealResult{}, nil
	}
	if cell.Mine {
		return RevealResult{Revealed: b.revealAllMines(pos), Detonated: true}, nil
	}
	return RevealResult{Revealed: b.floodReveal(pos)}, nil
}

// ToggleFlag switches the cell at pos between hidden and flagged.
// Revealed cells are left unchanged.
func (b *Board) ToggleFlag(pos Position) error {
	idx, err := b.index(pos)
	if err != nil {
		return err
	}

	cell := &b.cells[idx]
	switch cell.State {
	case CellStateHidden:
		cell.State = CellStateFlagged
		b.flagCount++
	case CellStateFlagged:
		cell.State = CellStateHidden
		b.flagCount--
	}
	return nil
}

// IsCleared reports whether every non-mine cell is revealed.
func (b *Board) IsCleared() bool {
	return b.safeRevealed == b.width*b.height-b.mineCount
}

// SafeHidden returns the hidden cells that hold no mine and carry no flag,
// row-major. It is the candidate pool for hints.
func (b *Board) SafeHidden() []Position {
	var safe []Position
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			pos := Position{Row: row, Col: col}
			cell := b.cellRef(pos)
			if cell.State == CellStateHidden && !cell.Mine {
				safe = append(safe, pos)
			}
		}
	}
	return safe
}

// floodReveal uncovers start and cascades through zero-adjacency regions
// using an explicit stack.
func (b *Board) floodReveal(start Position) []Position {
	stack := []Position{start}
	var revealed []Position
	for len(stack) > 0 {
		pos := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cell := b.cellRef(pos)
		if cell.State == CellStateRevealed || cell.State == CellStateFlagged {
			continue
		}
		cell.State = CellStateRevealed
		b.safeRevealed++
		revealed = append(revealed, pos)

		if cell.Adjacent != 0 {
			continue
		}
		for _, neighbor := range b.Neighbors(pos) {
			if b.cellRef(neighbor).State == CellStateHidden {
				stack = append(stack, neighbor)
			}
		}
	}
	return revealed
}

// revealAllMines uncovers every mine after a detonation, detonated cell
// first and the rest row-major. Flags on mines are cleared so the final
// state shows the full minefield.
func (b *Board) revealAllMines(detonated Position) []Position {
	b.cellRef(detonated).State = CellStateRevealed
	revealed := []Position{detonated}
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			pos := Position{Row: row, Col: col}
			cell := b.cellRef(pos)
			if !cell.Mine || cell.State == CellStateRevealed {
				continue
			}
			if cell.State == CellStateFlagged {
				b.flagCount--
			}
			cell.State = CellStateRevealed
			revealed = append(revealed, pos)
		}
	}
	return revealed
}

func (b *Board) index(pos Position) (int, error) {
	if !b.Contains(pos) {
		return 0, fmt.Errorf("%w: row %d col %d", ErrOutOfBounds, pos.Row, pos.Col)
	}
	return pos.Row*b.width + pos.Col, nil
}

func (b *Board) cellRef(pos Position) *Cell {
	return &b.cells[pos.Row*b.width+pos.Col]
}

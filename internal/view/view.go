// Package view builds read-only projections of a game session for
// presentation collaborators. Snapshots expose cell states and adjacency
// counts but redact mine positions until the game is lost.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sweeplab/minesweeper/internal/board"
	"github.com/sweeplab/minesweeper/internal/game"
)

// Cell display states.
const (
	CellHidden   = "hidden"
	CellFlagged  = "flagged"
	CellRevealed = "revealed"
)

// CellView is the visible face of one cell. Adjacent is populated only for
// revealed safe cells and Mine only after the game is lost.
type CellView struct {
	State    string
	Adjacent int
	Mine     bool
}

// Snapshot is a point-in-time projection of a session. Cells is indexed
// by row, then column.
type Snapshot struct {
	Status         string
	Difficulty     string
	Rows           int
	Cols           int
	Cells          [][]CellView
	MinesRemaining int
	ElapsedSeconds int
	HintAvailable  bool
	Seed           int64
}

// RGB is an 8-bit color triple for presentation collaborators.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// numberColors is the classic minesweeper palette for adjacency counts.
var numberColors = map[int]RGB{
	1: {R: 0, G: 0, B: 255},
	2: {R: 0, G: 128, B: 0},
	3: {R: 255, G: 0, B: 0},
	4: {R: 0, G: 0, B: 128},
	5: {R: 128, G: 0, B: 0},
	6: {R: 0, G: 128, B: 128},
	7: {R: 0, G: 0, B: 0},
	8: {R: 128, G: 128, B: 128},
}

// NumberColor returns the display color for an adjacency count. ok is
// false for counts outside 1 through 8.
func NumberColor(adjacent int) (RGB, bool) {
	color, ok := numberColors[adjacent]
	return color, ok
}

// Take projects the session into a snapshot.
//
// Hidden and flagged cells carry no adjacency information. Mines are
// marked only when the session is lost; a won game keeps its mines hidden
// with any flags intact.
func Take(session *game.Session) Snapshot {
	b := session.Board()
	status := session.Status()
	exposeMines := status == game.StatusLost

	grid := b.Grid()
	cells := make([][]CellView, len(grid))
	for row, gridRow := range grid {
		cells[row] = make([]CellView, len(gridRow))
		for col, cell := range gridRow {
			cellView := CellView{State: CellHidden}
			switch cell.State {
			case board.CellStateFlagged:
				cellView.State = CellFlagged
			case board.CellStateRevealed:
				cellView.State = CellRevealed
				if !cell.Mine {
					cellView.Adjacent = cell.Adjacent
				}
			}
			if exposeMines && cell.Mine {
				cellView.Mine = true
			}
			cells[row][col] = cellView
		}
	}

	return Snapshot{
		Status:         status.String(),
		Difficulty:     session.Preset().Label,
		Rows:           b.Height(),
		Cols:           b.Width(),
		Cells:          cells,
		MinesRemaining: b.MinesRemaining(),
		ElapsedSeconds: int(session.Elapsed().Seconds()),
		HintAvailable:  session.HintAvailable(),
		Seed:           session.Seed(),
	}
}

// FormatElapsed renders whole seconds as MM:SS. Minutes grow past two
// digits rather than wrapping.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Render draws the snapshot as a text grid with row and column indices.
// Hidden cells render as dots, flags as F, exposed mines as asterisks,
// revealed cells as their adjacency count or a blank for zero.
func (s Snapshot) Render() string {
	var sb strings.Builder

	sb.WriteString("    ")
	for col := 0; col < s.Cols; col++ {
		sb.WriteString(strconv.Itoa(col % 10))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')

	for row := 0; row < s.Rows; row++ {
		fmt.Fprintf(&sb, "%2d  ", row)
		for col := 0; col < s.Cols; col++ {
			sb.WriteString(cellGlyph(s.Cells[row][col]))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellGlyph(cell CellView) string {
	switch cell.State {
	case CellFlagged:
		return "F"
	case CellRevealed:
		if cell.Mine {
			return "*"
		}
		if cell.Adjacent == 0 {
			return " "
		}
		return strconv.Itoa(cell.Adjacent)
	default:
		return "."
	}
}

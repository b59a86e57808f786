package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sheikhrachel/go-lifelike/model"
)

const (
	aliveRune = '#'
	deadRune  = ' '

	// axisTick is the spacing of axis labels, in cells.
	axisTick = 10
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	aliveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("245"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// renderBoard draws a grid inside a border. cursor, when non-nil, is
// highlighted. With showAxis, x labels go above the board and y labels
// to its right every axisTick cells.
func renderBoard(g *model.Grid, cursor *model.Coord, showAxis bool) string {
	size := g.Size()
	alive := make(map[model.Coord]bool)
	for _, c := range g.LiveCells() {
		alive[c] = true
	}

	rows := make([]string, size)
	for y := range size {
		var (
			row   strings.Builder
			run   strings.Builder
			state bool
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if state {
				row.WriteString(aliveStyle.Render(run.String()))
			} else {
				row.WriteString(run.String())
			}
			run.Reset()
		}

		for x := range size {
			c := model.Coord{X: x, Y: y}
			ch := deadRune
			if alive[c] {
				ch = aliveRune
			}

			if cursor != nil && *cursor == c {
				flush()
				row.WriteString(cursorStyle.Render(string(ch)))
				continue
			}
			if alive[c] != state {
				flush()
				state = alive[c]
			}
			run.WriteRune(ch)
		}
		flush()
		rows[y] = row.String()
	}

	board := boardStyle.Render(strings.Join(rows, "\n"))
	if !showAxis || size == 0 {
		return board
	}

	lines := strings.Split(board, "\n")
	for y := 0; y < size; y += axisTick {
		// line 0 is the top border
		lines[y+1] += fmt.Sprintf(" %d", y)
	}
	lines[len(lines)-1] += " y"

	var header strings.Builder
	for x := 0; x < size; x += axisTick {
		fmt.Fprintf(&header, "%-*d", axisTick, x)
	}
	axis := " " + strings.TrimRight(header.String()[:min(header.Len(), size)], " ") + " -> x"

	return axis + "\n" + strings.Join(lines, "\n")
}

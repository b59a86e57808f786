package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	// axisTick is the spacing of axis labels, in cells.
	axisTick = 10

	clearCmd = "clear"
)

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	Out      io.Writer
	ShowAxis bool
}

// NewTerminalRenderer renders to stdout
func NewTerminalRenderer(showAxis bool) *TerminalRenderer {
	return &TerminalRenderer{Out: os.Stdout, ShowAxis: showAxis}
}

// Display renders the grid, with x labels above and y labels to the right
// when ShowAxis is set.
func (r *TerminalRenderer) Display(g *Grid) {
	fmt.Fprint(r.Out, r.Render(g))
}

// Render returns what Display would write
func (r *TerminalRenderer) Render(g *Grid) string {
	var b strings.Builder
	size := g.Size()

	if r.ShowAxis && size > 0 {
		var header strings.Builder
		for x := 0; x < size; x += axisTick {
			fmt.Fprintf(&header, "%-*d", axisTick*len(gridPosEmpty), x)
		}
		b.WriteString(strings.TrimRight(header.String()[:min(header.Len(), size*len(gridPosEmpty))], " "))
		b.WriteString(" -> x\n")
	}

	for y := range size {
		for x := range size {
			if g.cells[y*size+x] {
				b.WriteString(gridPosBlock)
			} else {
				b.WriteString(gridPosEmpty)
			}
		}
		if r.ShowAxis && y%axisTick == 0 {
			fmt.Fprintf(&b, " %d", y)
		}
		b.WriteByte('\n')
	}

	if r.ShowAxis && size > 0 {
		b.WriteString("v y\n")
	}
	return b.String()
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.Out
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.Out, "Error clearing terminal:", err)
	}
}

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sheikhrachel/go-lifelike/model"
)

var menuEntries = []string{
	"[p]lay the simulation",
	"[s]elect the grid size",
	"[c]hange the cells",
	"[l]oad a pattern from file",
	"[r]ules - change birth and survival",
	"[i]nteractive - step by step mode",
	"[a]xis - show x and y axes",
	"[t] add a glider in the corner",
	"[q] exits the current screen or the program",
}

func (m Model) menuView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Life-like cellular automata"))
	b.WriteString("\n\n")
	for _, entry := range menuEntries {
		b.WriteString("  " + entry + "\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"size %dx%d  |  rule %s  |  generation %d  |  step mode %s  |  axes %s",
		m.engine.SideLength(), m.engine.SideLength(), m.engine.Rules(), m.engine.Generation(),
		onOff(m.opts.StepByStep), onOff(m.opts.ShowAxis),
	)))
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys.menuHelp()))

	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, b.String())
	}
	return b.String()
}

// Run starts an interactive program on the local terminal and blocks
// until the user quits.
func Run(e *model.Engine, opts Options) error {
	p := tea.NewProgram(New(e, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

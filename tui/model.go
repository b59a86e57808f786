package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/patterns"
	"github.com/sheikhrachel/go-lifelike/rules"
)

type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenEdit
	screenPrompt
)

type promptKind int

const (
	promptSize promptKind = iota
	promptRules
	promptLoad
)

// Options configures a Model.
type Options struct {
	FrameRate  time.Duration
	ShowAxis   bool
	StepByStep bool
	Logger     *log.Logger

	// MaxSize caps the size prompt. Zero means model.MaxSideLength.
	MaxSize int

	// PatternDir restricts the load prompt to files inside it.
	// NoLoad turns the load prompt off.
	PatternDir string
	NoLoad     bool
}

// Model is the Bubble Tea model driving one engine. The engine is owned by
// the model for the lifetime of the program.
type Model struct {
	engine   *model.Engine
	snapshot *model.Grid

	screen screen
	prompt promptKind
	input  textinput.Model
	keys   KeyMap
	help   help.Model
	opts   Options
	logger *log.Logger

	cursor   model.Coord
	paused   bool
	tickID   int
	status   string
	errMsg   string
	width    int
	height   int
	quitting bool
}

// New creates a model in the main menu.
func New(e *model.Engine, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	input := textinput.New()
	input.CharLimit = 256

	return Model{
		engine: e,
		input:  input,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		opts:   opts,
		logger: logger,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	if m.screen == screenPrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenPlay:
		return m.handlePlayKey(msg)
	case screenEdit:
		return m.handleEditKey(msg)
	case screenPrompt:
		return m.handlePromptKey(msg)
	}
	return m.handleMenuKey(msg)
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Play):
		return m.startPlay()

	case key.Matches(msg, m.keys.Configure):
		m.screen = screenEdit
		size := m.engine.SideLength()
		m.cursor.X = min(m.cursor.X, max(size-1, 0))
		m.cursor.Y = min(m.cursor.Y, max(size-1, 0))

	case key.Matches(msg, m.keys.Size):
		return m.openPrompt(promptSize, strconv.Itoa(m.engine.SideLength()))

	case key.Matches(msg, m.keys.Rules):
		return m.openPrompt(promptRules, m.engine.Rules().String())

	case key.Matches(msg, m.keys.Load):
		if m.opts.NoLoad {
			m.status = "pattern loading is disabled"
			return m, nil
		}
		return m.openPrompt(promptLoad, "")

	case key.Matches(msg, m.keys.Interactive):
		m.opts.StepByStep = !m.opts.StepByStep
		m.status = fmt.Sprintf("step-by-step mode %s", onOff(m.opts.StepByStep))

	case key.Matches(msg, m.keys.Axis):
		m.opts.ShowAxis = !m.opts.ShowAxis
		m.status = fmt.Sprintf("axes %s", onOff(m.opts.ShowAxis))

	case key.Matches(msg, m.keys.Glider):
		m.engine.AddGlider(0, 0)
		m.status = "glider added at (0, 0)"
	}

	return m, nil
}

func (m Model) startPlay() (tea.Model, tea.Cmd) {
	m.screen = screenPlay
	m.paused = false
	m.tickID++
	m.advance()

	if m.opts.StepByStep {
		return m, nil
	}
	return m, tickCmd(m.tickID, m.opts.FrameRate)
}

func (m *Model) advance() {
	m.snapshot = m.engine.Advance()
}

func (m Model) leavePlay() Model {
	m.screen = screenMenu
	m.tickID++
	m.status = fmt.Sprintf("stopped at generation %d", m.engine.Generation())
	return m
}

func (m Model) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		return m.leavePlay(), nil
	}

	if m.opts.StepByStep {
		m.advance()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if !m.paused {
			m.tickID++
			return m, tickCmd(m.tickID, m.opts.FrameRate)
		}
	case key.Matches(msg, m.keys.Step):
		if m.paused {
			m.advance()
		}
	}
	return m, nil
}

func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenPlay || m.paused || m.opts.StepByStep || msg.ID != m.tickID {
		return m, nil
	}
	m.advance()
	return m, tickCmd(m.tickID, m.opts.FrameRate)
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := max(m.engine.SideLength()-1, 0)

	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenMenu
	case key.Matches(msg, m.keys.Up):
		m.cursor.Y = max(m.cursor.Y-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor.Y = min(m.cursor.Y+1, last)
	case key.Matches(msg, m.keys.Left):
		m.cursor.X = max(m.cursor.X-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.cursor.X = min(m.cursor.X+1, last)
	case key.Matches(msg, m.keys.Clear):
		m.engine.Clear()
	case key.Matches(msg, m.keys.Toggle):
		if _, err := m.engine.Toggle(m.cursor.X, m.cursor.Y); err != nil {
			// only reachable on an empty board
			m.errMsg = err.Error()
		}
	}
	return m, nil
}

func (m Model) openPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	m.screen = screenPrompt
	m.prompt = kind
	m.errMsg = ""

	switch kind {
	case promptSize:
		m.input.Prompt = "Enter new size: "
		m.input.Placeholder = "30"
	case promptRules:
		m.input.Prompt = "Enter rule (B3/S23, 23/3 or a preset name): "
		m.input.Placeholder = rules.Default.String()
	case promptLoad:
		m.input.Prompt = "Pattern file (.cells, .rle, .yaml): "
		m.input.Placeholder = "glider.rle"
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.screen = screenMenu
		return m, nil
	case tea.KeyEnter:
		return m.submitPrompt()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitPrompt applies the prompt value. Invalid input keeps the prompt
// open with an error message.
func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	var err error
	switch m.prompt {
	case promptSize:
		err = m.applySize(value)
	case promptRules:
		err = m.applyRules(value)
	case promptLoad:
		err = m.applyPattern(value)
	}
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.input.Blur()
	m.errMsg = ""
	m.screen = screenMenu
	return m, nil
}

func (m *Model) applySize(value string) error {
	limit := model.MaxSideLength
	if m.opts.MaxSize > 0 {
		limit = min(m.opts.MaxSize, limit)
	}

	size, err := strconv.Atoi(value)
	if err != nil || size < 0 {
		return fmt.Errorf("%q is not a valid size", value)
	}
	if size > limit {
		return fmt.Errorf("size must be at most %d", limit)
	}
	m.engine.Resize(size)
	m.snapshot = nil
	m.cursor = model.Coord{}
	m.status = fmt.Sprintf("grid resized to %dx%d", size, size)
	m.logger.Debug("grid resized", "size", size)
	return nil
}

func (m *Model) applyRules(value string) error {
	rs, err := rules.Lookup(value)
	if err != nil {
		return err
	}
	m.engine.SetRules(rs.Born(), rs.Survive())
	m.status = fmt.Sprintf("rules set to %s", rs)
	m.logger.Debug("rules changed", "rule", rs.String())
	return nil
}

func (m *Model) applyPattern(path string) error {
	var (
		p   *patterns.Pattern
		err error
	)
	switch {
	case m.opts.NoLoad:
		return errors.New("pattern loading is disabled")
	case m.opts.PatternDir != "":
		p, err = patterns.LoadIn(m.opts.PatternDir, path)
	default:
		p, err = patterns.Load(path)
	}
	if err != nil {
		return err
	}

	x, y := p.Center(m.engine.SideLength())
	if err := p.Stamp(m.engine, x, y); err != nil {
		return err
	}
	if p.Rule != nil {
		m.engine.SetRules(p.Rule.Born(), p.Rule.Survive())
	}

	m.status = fmt.Sprintf("loaded %s (%d cells)", p.Name, p.Population())
	m.logger.Debug("pattern loaded", "path", path, "name", p.Name, "cells", p.Population())
	return nil
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlay:
		return m.playView()
	case screenEdit:
		return m.editView()
	case screenPrompt:
		return m.promptView()
	}
	return m.menuView()
}

func (m Model) playView() string {
	g := m.snapshot
	if g == nil {
		g = m.engine.CurrentGrid()
	}

	var b strings.Builder
	b.WriteString(renderBoard(g, nil, m.opts.ShowAxis))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Generation: %d", g.Generation())
	b.WriteString(statusStyle.Render(fmt.Sprintf("  |  Living: %d  |  Rule: %s", g.CountLivingCells(), m.engine.Rules())))
	if m.paused {
		b.WriteString(statusStyle.Render("  |  paused"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys.playHelp(m.opts.StepByStep)))
	return b.String()
}

func (m Model) editView() string {
	g := m.engine.CurrentGrid()
	cursor := m.cursor

	var b strings.Builder
	b.WriteString(renderBoard(g, &cursor, m.opts.ShowAxis))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Cursor: (%d, %d)  |  Living: %d  |  Generation: %d",
		cursor.X, cursor.Y, g.CountLivingCells(), g.Generation())
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys.editHelp()))
	return b.String()
}

func (m Model) promptView() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys.promptHelp()))
	return b.String()
}

// Engine returns the engine driven by the model.
func (m Model) Engine() *model.Engine {
	return m.engine
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

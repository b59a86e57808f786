package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines every key binding of the simulator UI.
type KeyMap struct {
	// menu
	Play        key.Binding
	Size        key.Binding
	Configure   key.Binding
	Load        key.Binding
	Rules       key.Binding
	Interactive key.Binding
	Axis        key.Binding
	Glider      key.Binding
	Quit        key.Binding

	// play
	Pause key.Binding
	Step  key.Binding

	// editor
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Clear  key.Binding

	// shared
	Back      key.Binding
	Submit    key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Play:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
		Size:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "grid size")),
		Configure:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "edit cells")),
		Load:        key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load pattern")),
		Rules:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rules")),
		Interactive: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "step mode")),
		Axis:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "axes")),
		Glider:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "glider")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),

		Pause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Step:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next generation")),

		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k/w", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j/s", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h", "a"), key.WithHelp("←/h/a", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l", "d"), key.WithHelp("→/l/d", "right")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle cell")),
		Clear:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear board")),

		Back:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "back")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ok")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// bindingList adapts a flat list of bindings to help.KeyMap.
type bindingList []key.Binding

func (b bindingList) ShortHelp() []key.Binding  { return b }
func (b bindingList) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (k KeyMap) menuHelp() bindingList {
	return bindingList{k.Play, k.Size, k.Configure, k.Load, k.Rules, k.Interactive, k.Axis, k.Glider, k.Quit}
}

func (k KeyMap) playHelp(stepByStep bool) bindingList {
	if stepByStep {
		return bindingList{
			key.NewBinding(key.WithKeys("n"), key.WithHelp("any key", "next generation")),
			k.Back,
		}
	}
	return bindingList{k.Pause, k.Step, k.Back}
}

func (k KeyMap) editHelp() bindingList {
	return bindingList{k.Up, k.Down, k.Left, k.Right, k.Toggle, k.Clear, k.Back}
}

func (k KeyMap) promptHelp() bindingList {
	return bindingList{k.Submit, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))}
}

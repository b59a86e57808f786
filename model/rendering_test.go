package model

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminalRendererDisplay(t *testing.T) {
	e := NewEngine(3)
	e.AddBlinker(0, 1)

	var buf bytes.Buffer
	r := &TerminalRenderer{Out: &buf}
	r.Display(e.CurrentGrid())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d: %q", len(lines), buf.String())
	}
	if lines[1] != strings.Repeat(gridPosBlock, 3) {
		t.Fatalf("middle row = %q", lines[1])
	}
	if lines[0] != strings.Repeat(gridPosEmpty, 3) {
		t.Fatalf("top row = %q", lines[0])
	}
}

func TestTerminalRendererAxis(t *testing.T) {
	r := &TerminalRenderer{ShowAxis: true}
	out := r.Render(NewGrid(12))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	// header, 12 rows, footer
	if len(lines) != 14 {
		t.Fatalf("expected 14 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "0") || !strings.Contains(lines[0], "10") || !strings.HasSuffix(lines[0], "-> x") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], " 0") || !strings.HasSuffix(lines[11], " 10") {
		t.Fatalf("row labels missing: %q / %q", lines[1], lines[11])
	}
	if lines[13] != "v y" {
		t.Fatalf("footer = %q", lines[13])
	}
}

func TestTerminalRendererClearWritesToOut(t *testing.T) {
	t.Setenv("TERM", "xterm")

	var buf bytes.Buffer
	r := &TerminalRenderer{Out: &buf}
	r.Clear()

	// either the clear sequence or the error, never the real stdout
	if buf.Len() == 0 {
		t.Errorf("Clear() wrote nothing to Out (%s)", clearCmd)
	}
}

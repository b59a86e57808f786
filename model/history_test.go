package model

import "testing"

func TestHistoryDetectsStillLife(t *testing.T) {
	e := NewEngine(6)
	for _, c := range []Coord{{1, 1}, {1, 2}, {2, 1}, {2, 2}} {
		_ = e.Set(c.X, c.Y, true)
	}
	h := NewHistory(0)

	for range 3 {
		h.Record(e.Advance())
	}
	if !h.IsStagnant(e.CurrentGrid()) {
		t.Fatal("block should be reported as stagnant")
	}
}

func TestHistoryDetectsBlinker(t *testing.T) {
	e := NewEngine(5)
	e.AddBlinker(1, 2)
	h := NewHistory(5)

	for range 4 {
		h.Record(e.Advance())
	}
	if !h.IsStagnant(e.CurrentGrid()) {
		t.Fatal("blinker should be reported as stagnant")
	}
}

func TestHistoryNeedsThreeGenerations(t *testing.T) {
	g := NewGrid(3)
	h := NewHistory(5)
	h.Record(g)
	h.Record(g)
	if h.IsStagnant(g) {
		t.Fatal("stagnation reported with only two recorded generations")
	}
}

func TestHistoryGliderIsActive(t *testing.T) {
	e := NewEngine(20)
	e.AddGlider(0, 0)
	h := NewHistory(5)

	for range 8 {
		h.Record(e.Advance())
		if h.IsStagnant(e.CurrentGrid()) {
			t.Fatalf("glider reported stagnant at generation %d", e.Generation())
		}
	}
	if h.Len() != 5 {
		t.Fatalf("history holds %d entries, expected 5", h.Len())
	}

	h.Reset()
	if h.Len() != 0 {
		t.Fatal("Reset left entries behind")
	}
}

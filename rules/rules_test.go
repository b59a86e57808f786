package rules

import (
	"slices"
	"testing"

	"github.com/pkg/errors"
)

func TestDefaultNext(t *testing.T) {
	tests := []struct {
		alive     bool
		neighbors int
		want      bool
	}{
		{false, 2, false},
		{false, 3, true},
		{false, 4, false},
		{true, 1, false},
		{true, 2, true},
		{true, 3, true},
		{true, 4, false},
		{true, 9, false},
		{false, -1, false},
	}
	for _, tt := range tests {
		if got := Default.Next(tt.alive, tt.neighbors); got != tt.want {
			t.Errorf("Next(%v, %d) = %v, expected %v", tt.alive, tt.neighbors, got, tt.want)
		}
	}
}

func TestNewNormalizes(t *testing.T) {
	rs := New([]int{6, 3, 3}, []int{3, 2})
	if !slices.Equal(rs.Born(), []int{3, 6}) || !slices.Equal(rs.Survive(), []int{2, 3}) {
		t.Fatalf("New() = %v/%v", rs.Born(), rs.Survive())
	}
	if !rs.Equal(HighLife) {
		t.Errorf("%v should equal HighLife", rs)
	}

	// callers cannot reach the internal slices
	born := rs.Born()
	born[0] = 8
	if rs.Born()[0] != 3 {
		t.Error("Born() returned the internal slice")
	}
}

func TestUnreachableThresholdsAreInert(t *testing.T) {
	rs := New([]int{3, 12}, []int{-1, 2})
	for n := 0; n <= maxNeighbors; n++ {
		if rs.Next(false, n) != (n == 3) || rs.Next(true, n) != (n == 2) {
			t.Fatalf("neighbor count %d misbehaves under %v", n, rs)
		}
	}
	if got := rs.String(); got != "B3,12/S-1,2" {
		t.Errorf("String() = %q", got)
	}
}

func TestZeroValueKillsEverything(t *testing.T) {
	var rs RuleSet
	for n := 0; n <= maxNeighbors; n++ {
		if rs.Next(true, n) || rs.Next(false, n) {
			t.Fatalf("zero rule set keeps a cell alive at %d neighbors", n)
		}
	}
	if rs.String() != "B/S" {
		t.Errorf("String() = %q, expected B/S", rs.String())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		born    []int
		survive []int
	}{
		{"B3/S23", []int{3}, []int{2, 3}},
		{"b36/s23", []int{3, 6}, []int{2, 3}},
		{"S23/B3", []int{3}, []int{2, 3}},
		{"23/3", []int{3}, []int{2, 3}},
		{"23/36", []int{3, 6}, []int{2, 3}},
		{" B2/S ", []int{2}, nil},
		{"/3", []int{3}, nil},
		{"B3/S012345678", []int{3}, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}},
		{"B3,10/S2", []int{3, 10}, []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rs, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if !slices.Equal(rs.Born(), tt.born) || !slices.Equal(rs.Survive(), tt.survive) {
				t.Errorf("Parse(%q) = born %v survive %v, expected %v %v",
					tt.in, rs.Born(), rs.Survive(), tt.born, tt.survive)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "B3", "B3/S2/3", "B3/B6", "S2/S3", "Bx/S23", "B3/S2a", "B3,-1/S2"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if !errors.Is(err, ErrInvalidRule) {
				t.Errorf("Parse(%q) error = %v, expected ErrInvalidRule", in, err)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on malformed input")
		}
	}()
	MustParse("nonsense")
}

func TestStringRoundTrip(t *testing.T) {
	for _, rs := range []RuleSet{Default, HighLife, Seeds, DayAndNight, LifeWithoutDeath} {
		parsed, err := Parse(rs.String())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", rs.String(), err)
		}
		if !parsed.Equal(rs) {
			t.Errorf("Parse(%q) = %v", rs.String(), parsed)
		}
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"conway", "B3/S23"},
		{"Life", "B3/S23"},
		{"HighLife", "B36/S23"},
		{"day-and-night", "B3678/S34678"},
		{"life_without_death", "B3/S012345678"},
		{"Seeds", "B2/S"},
	}
	for _, tt := range tests {
		rs, ok := Preset(tt.name)
		if !ok {
			t.Errorf("Preset(%q) not found", tt.name)
			continue
		}
		if rs.String() != tt.want {
			t.Errorf("Preset(%q) = %s, expected %s", tt.name, rs, tt.want)
		}
	}

	if _, ok := Preset("brians-brain"); ok {
		t.Error("unexpected preset brians-brain")
	}
	names := PresetNames()
	if !slices.IsSorted(names) || len(names) != len(presets) {
		t.Errorf("PresetNames() = %v", names)
	}
}

func TestLookup(t *testing.T) {
	rs, err := Lookup("highlife")
	if err != nil || !rs.Equal(HighLife) {
		t.Fatalf("Lookup(highlife) = %v, %v", rs, err)
	}
	rs, err = Lookup("B2/S")
	if err != nil || !rs.Equal(Seeds) {
		t.Fatalf("Lookup(B2/S) = %v, %v", rs, err)
	}
	if _, err := Lookup("wireworld"); !errors.Is(err, ErrInvalidRule) {
		t.Errorf("Lookup(wireworld) error = %v", err)
	}
}

package model

import "testing"

func TestNeighborCounts(t *testing.T) {
	for _, size := range []int{2, 3, 4, 7} {
		for y := range size {
			for x := range size {
				onEdgeX := x == 0 || x == size-1
				onEdgeY := y == 0 || y == size-1

				want := 8
				switch {
				case onEdgeX && onEdgeY:
					want = 3
				case onEdgeX || onEdgeY:
					want = 5
				}

				if got := len(Neighbors(x, y, size)); got != want {
					t.Errorf("size %d: cell (%d,%d) has %d neighbors, expected %d", size, x, y, got, want)
				}
			}
		}
	}
}

func TestSingleCellHasNoNeighbors(t *testing.T) {
	if got := Neighbors(0, 0, 1); len(got) != 0 {
		t.Fatalf("expected no neighbors on a 1x1 grid, got %v", got)
	}

	topo := NewTopology(1)
	if len(topo.neighbors) != 1 || len(topo.neighbors[0]) != 0 {
		t.Fatalf("unexpected 1x1 topology: %v", topo.neighbors)
	}
}

func TestNeighborsStayInBoundsAndExcludeSelf(t *testing.T) {
	const size = 5
	for y := range size {
		for x := range size {
			seen := make(map[Coord]bool)
			for _, c := range Neighbors(x, y, size) {
				if c.X < 0 || c.X >= size || c.Y < 0 || c.Y >= size {
					t.Fatalf("cell (%d,%d): neighbor %v out of bounds", x, y, c)
				}
				if c.X == x && c.Y == y {
					t.Fatalf("cell (%d,%d) lists itself", x, y)
				}
				if abs(c.X-x) > 1 || abs(c.Y-y) > 1 {
					t.Fatalf("cell (%d,%d): %v is not adjacent", x, y, c)
				}
				if seen[c] {
					t.Fatalf("cell (%d,%d): duplicate neighbor %v", x, y, c)
				}
				seen[c] = true
			}
		}
	}
}

func TestNeighborOrder(t *testing.T) {
	got := Neighbors(1, 1, 3)
	want := []Coord{
		{0, 0}, {1, 0}, {2, 0},
		{0, 2}, {1, 2}, {2, 2},
		{0, 1}, {2, 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("neighbor %d = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestTopologyMatchesNeighbors(t *testing.T) {
	const size = 4
	topo := NewTopology(size)
	if topo.Size() != size || topo.CellCount() != size*size {
		t.Fatalf("topology size %d / %d cells", topo.Size(), topo.CellCount())
	}
	for y := range size {
		for x := range size {
			coords := Neighbors(x, y, size)
			idx := topo.neighbors[y*size+x]
			if len(idx) != len(coords) {
				t.Fatalf("cell (%d,%d): %d indices for %d coords", x, y, len(idx), len(coords))
			}
			for i, c := range coords {
				if idx[i] != c.Y*size+c.X {
					t.Errorf("cell (%d,%d): index %d = %d, expected %d", x, y, i, idx[i], c.Y*size+c.X)
				}
			}
		}
	}
}

func TestEmptyTopology(t *testing.T) {
	for _, size := range []int{0, -3} {
		topo := NewTopology(size)
		if topo.Size() != 0 || topo.CellCount() != 0 {
			t.Errorf("NewTopology(%d) = size %d, %d cells", size, topo.Size(), topo.CellCount())
		}
	}
}

func TestOversizedTopologyIsClamped(t *testing.T) {
	// 1<<32 squared wraps to 0 in int arithmetic
	topo := NewTopology(1 << 32)
	if topo.Size() != MaxSideLength || topo.CellCount() != MaxSideLength*MaxSideLength {
		t.Fatalf("NewTopology(1<<32) = size %d, %d cells", topo.Size(), topo.CellCount())
	}

	e := NewEngine(MaxSideLength + 1)
	if e.SideLength() != MaxSideLength {
		t.Errorf("SideLength() = %d, expected %d", e.SideLength(), MaxSideLength)
	}
	if err := e.Set(MaxSideLength-1, MaxSideLength-1, true); err != nil {
		t.Errorf("Set() on the last cell failed: %v", err)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

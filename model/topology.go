package model

// Coord identifies a cell by column (X) and row (Y).
type Coord struct {
	X, Y int
}

// Neighbors returns the in-bounds 8-connected neighbors of (x, y) on a
// size×size grid: the row above, the row below, then left and right.
// Cells on the border simply have fewer neighbors; nothing wraps.
func Neighbors(x, y, size int) []Coord {
	neighbors := make([]Coord, 0, 8)

	if y != 0 {
		neighbors = appendRow(neighbors, x, y-1, size)
	}
	if y != size-1 {
		neighbors = appendRow(neighbors, x, y+1, size)
	}

	if x != 0 {
		neighbors = append(neighbors, Coord{x - 1, y})
	}
	if x != size-1 {
		neighbors = append(neighbors, Coord{x + 1, y})
	}

	return neighbors
}

func appendRow(neighbors []Coord, x, row, size int) []Coord {
	if x != 0 {
		neighbors = append(neighbors, Coord{x - 1, row})
	}
	neighbors = append(neighbors, Coord{x, row})
	if x != size-1 {
		neighbors = append(neighbors, Coord{x + 1, row})
	}
	return neighbors
}

// Topology is the precomputed neighbor index list of every cell of a
// square grid, stored row-major. It is never modified after construction
// and is shared by every grid of the same engine size.
type Topology struct {
	size      int
	neighbors [][]int
}

// MaxSideLength is the largest board NewTopology builds. Larger sizes are
// clamped to it.
const MaxSideLength = 1024

// NewTopology builds the neighbor lists for a size×size grid. size is
// clamped to [0, MaxSideLength].
func NewTopology(size int) *Topology {
	size = min(max(size, 0), MaxSideLength)
	t := &Topology{
		size:      size,
		neighbors: make([][]int, size*size),
	}
	for y := range size {
		for x := range size {
			coords := Neighbors(x, y, size)
			idx := make([]int, len(coords))
			for i, c := range coords {
				idx[i] = c.Y*size + c.X
			}
			t.neighbors[y*size+x] = idx
		}
	}
	return t
}

// Size returns the side length the topology was built for.
func (t *Topology) Size() int {
	return t.size
}

// CellCount returns size².
func (t *Topology) CellCount() int {
	return len(t.neighbors)
}

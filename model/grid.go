package model

import (
	"crypto/md5"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Grid is one generation of a square board. Cells are stored row-major
// (y*size + x) next to the shared, read-only topology of the board.
type Grid struct {
	size       int
	cells      []bool
	topology   *Topology
	generation int
}

// NewGrid creates an all-dead grid at generation 0
func NewGrid(size int) *Grid {
	return newGrid(NewTopology(size))
}

func newGrid(t *Topology) *Grid {
	return &Grid{
		size:     t.Size(),
		cells:    make([]bool, t.CellCount()),
		topology: t,
	}
}

// Size returns the side length of the grid
func (g *Grid) Size() int {
	return g.size
}

// Generation returns the number of advances that produced this grid
func (g *Grid) Generation() int {
	return g.generation
}

// IsAlive returns the state of a cell
func (g *Grid) IsAlive(x, y int) (bool, error) {
	idx, err := g.index(x, y)
	if err != nil {
		return false, errors.Wrap(err, "[IsAlive]")
	}
	return g.cells[idx], nil
}

// Neighbors returns a copy of the precomputed neighbor coordinates of a cell
func (g *Grid) Neighbors(x, y int) ([]Coord, error) {
	idx, err := g.index(x, y)
	if err != nil {
		return nil, errors.Wrap(err, "[Neighbors]")
	}
	neighbors := g.topology.neighbors[idx]
	coords := make([]Coord, len(neighbors))
	for i, n := range neighbors {
		coords[i] = Coord{X: n % g.size, Y: n / g.size}
	}
	return coords, nil
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, alive := range g.cells {
		if alive {
			count++
		}
	}
	return
}

// LiveCells lists the living cells in row-major order
func (g *Grid) LiveCells() []Coord {
	var live []Coord
	for i, alive := range g.cells {
		if alive {
			live = append(live, Coord{X: i % g.size, Y: i / g.size})
		}
	}
	return live
}

// Hash returns an MD5 digest of the grid's size and liveness. The
// generation counter is not part of the digest.
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%d:", g.size)
	buf := make([]byte, len(g.cells))
	for i, alive := range g.cells {
		if alive {
			buf[i] = 1
		}
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Clone returns a copy that shares nothing mutable with g
func (g *Grid) Clone() *Grid {
	return &Grid{
		size:       g.size,
		cells:      append([]bool(nil), g.cells...),
		topology:   g.topology,
		generation: g.generation,
	}
}

// String renders the generation counter followed by a bordered board
// using '#' for living cells.
func (g *Grid) String() string {
	var b strings.Builder
	border := "+" + strings.Repeat("-", g.size) + "+\n"

	fmt.Fprintf(&b, "generation: %d\n", g.generation)
	b.WriteString(border)
	for y := range g.size {
		b.WriteByte('|')
		for x := range g.size {
			if g.cells[y*g.size+x] {
				b.WriteByte('#')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)
	return b.String()
}

func (g *Grid) index(x, y int) (int, error) {
	if x < 0 || x >= g.size || y < 0 || y >= g.size {
		return 0, errors.Wrapf(ErrOutOfBounds, "(%d, %d) on a grid of size %d", x, y, g.size)
	}
	return y*g.size + x, nil
}

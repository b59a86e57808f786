package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles cell buffers between generations. It is safe for
// concurrent use, so a renderer may return snapshots while the engine
// keeps drawing new grids from it.
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Grid{}
			},
		},
	}
}

// Get retrieves an all-dead grid at generation 0 for the given topology
func (p *GridPool) Get(t *Topology) *Grid {
	g := p.pool.Get().(*Grid)
	n := t.CellCount()
	if cap(g.cells) < n {
		g.cells = make([]bool, n)
	} else {
		g.cells = g.cells[:n]
		clear(g.cells)
	}
	g.size = t.Size()
	g.topology = t
	g.generation = 0
	return g
}

// Put returns a grid to the pool. The caller must not use g afterwards.
func (p *GridPool) Put(g *Grid) {
	g.topology = nil
	p.pool.Put(g)
}

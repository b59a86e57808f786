package model

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-lifelike/rules"
)

// Engine owns the current generation of a square board and the rule set
// that advances it. It is not safe for concurrent use: one caller drives
// it, and grids it hands out are independent of its internal state.
type Engine struct {
	topology *Topology
	grid     *Grid
	rules    rules.RuleSet
	pool     *GridPool
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithPool makes Advance draw new generations from pool. Callers may hand
// consumed snapshots back with pool.Put.
func WithPool(pool *GridPool) Option {
	return func(e *Engine) {
		e.pool = pool
	}
}

// NewEngine creates an all-dead board of the given side length under the
// default rule set. Negative sizes are treated as 0 and sizes above
// MaxSideLength as MaxSideLength.
func NewEngine(sideLength int, opts ...Option) *Engine {
	return newEngine(sideLength, rules.Default, opts)
}

// NewEngineWithRules is like NewEngine with custom birth and survival thresholds.
func NewEngineWithRules(sideLength int, born, survive []int, opts ...Option) *Engine {
	return newEngine(sideLength, rules.New(born, survive), opts)
}

func newEngine(sideLength int, rs rules.RuleSet, opts []Option) *Engine {
	e := &Engine{rules: rs}
	for _, opt := range opts {
		opt(e)
	}
	e.Resize(sideLength)
	return e
}

// Resize discards the board and its topology and starts over with an
// all-dead board at generation 0.
func (e *Engine) Resize(sideLength int) {
	e.topology = NewTopology(sideLength)
	e.grid = newGrid(e.topology)
}

// Toggle flips a cell and returns its new state
func (e *Engine) Toggle(x, y int) (bool, error) {
	idx, err := e.grid.index(x, y)
	if err != nil {
		return false, errors.Wrap(err, "[Toggle]")
	}
	e.grid.cells[idx] = !e.grid.cells[idx]
	return e.grid.cells[idx], nil
}

// Set sets a cell to alive (true) or dead (false)
func (e *Engine) Set(x, y int, alive bool) error {
	idx, err := e.grid.index(x, y)
	if err != nil {
		return errors.Wrap(err, "[Set]")
	}
	e.grid.cells[idx] = alive
	return nil
}

// Clear kills every cell without touching the generation counter
func (e *Engine) Clear() {
	clear(e.grid.cells)
}

// SetRules replaces the rule set; it takes effect on the next Advance.
func (e *Engine) SetRules(born, survive []int) {
	e.rules = rules.New(born, survive)
}

// Rules returns the rule set in effect
func (e *Engine) Rules() rules.RuleSet {
	return e.rules
}

// CurrentGrid returns a copy of the current generation
func (e *Engine) CurrentGrid() *Grid {
	return e.grid.Clone()
}

// SideLength returns the current side length
func (e *Engine) SideLength() int {
	return e.topology.Size()
}

// Generation returns the generation counter of the current board
func (e *Engine) Generation() int {
	return e.grid.generation
}

/*
Advance computes the next generation and returns the grid as it was before
the call. Every cell is evaluated against the previous generation only:
a live cell survives iff its live-neighbor count is in the survival set,
a dead cell is born iff its count is in the birth set.

The returned grid is no longer referenced by the engine and belongs to the caller.
*/
func (e *Engine) Advance() *Grid {
	prev := e.grid

	var next *Grid
	if e.pool != nil {
		next = e.pool.Get(e.topology)
	} else {
		next = newGrid(e.topology)
	}

	for i, alive := range prev.cells {
		count := 0
		for _, n := range e.topology.neighbors[i] {
			if prev.cells[n] {
				count++
			}
		}
		next.cells[i] = e.rules.Next(alive, count)
	}
	next.generation = prev.generation + 1

	e.grid = next
	return prev
}

package model

import "math/rand"

// Randomize sets every cell alive with the given probability
func (e *Engine) Randomize(rng *rand.Rand, density float64) {
	for i := range e.grid.cells {
		e.grid.cells[i] = rng.Float64() < density
	}
}

// InjectRandomLife brings count random cells to life to break stagnation
func (e *Engine) InjectRandomLife(rng *rand.Rand, count int) {
	size := e.SideLength()
	if size == 0 {
		return
	}
	for range count {
		e.grid.cells[rng.Intn(size)*size+rng.Intn(size)] = true
	}
}

// AddGlider adds a glider pattern at the specified position. Cells that
// fall outside the board are skipped.
func (e *Engine) AddGlider(startX, startY int) {
	pattern := [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}

	for y, row := range pattern {
		for x, cell := range row {
			_ = e.Set(startX+x, startY+y, cell)
		}
	}
}

// AddBlinker adds a horizontal blinker oscillator
func (e *Engine) AddBlinker(startX, startY int) {
	for dx := range 3 {
		_ = e.Set(startX+dx, startY, true)
	}
}

// SeedInterestingPatterns clears the board, drops a few gliders and
// blinkers when there is room, then sprinkles random life on top.
func (e *Engine) SeedInterestingPatterns(rng *rand.Rand, density float64) {
	e.Clear()
	size := e.SideLength()

	if size >= 10 {
		e.AddGlider(5, 5)
		if size >= 20 {
			e.AddGlider(size-8, 5)
		}

		e.AddBlinker(size/4, size/4)
		if size >= 30 {
			e.AddBlinker(3*size/4, 3*size/4)
		}
	}

	for i := range e.grid.cells {
		if rng.Float64() < density {
			e.grid.cells[i] = true
		}
	}
}

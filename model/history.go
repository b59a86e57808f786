package model

// defaultHistoryDepth keeps enough generations to catch period-2 oscillators
// and still lifes.
const defaultHistoryDepth = 5

// History remembers the hashes of recent generations to detect boards
// that are stuck in a static state or a short cycle.
type History struct {
	depth  int
	hashes []string
}

// NewHistory creates a history holding the last depth generations
func NewHistory(depth int) *History {
	if depth <= 0 {
		depth = defaultHistoryDepth
	}
	return &History{depth: depth}
}

// Record adds a grid to the history and maintains its size
func (h *History) Record(g *Grid) {
	h.hashes = append(h.hashes, g.Hash())

	if len(h.hashes) > h.depth {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant checks whether g repeats one of the last three recorded
// generations. At least three generations must have been recorded.
func (h *History) IsStagnant(g *Grid) bool {
	if len(h.hashes) < 3 {
		return false
	}

	current := g.Hash()
	for i := 1; i <= 3; i++ {
		if h.hashes[len(h.hashes)-i] == current {
			return true
		}
	}
	return false
}

// Reset forgets every recorded generation
func (h *History) Reset() {
	h.hashes = nil
}

// Len returns the number of recorded generations
func (h *History) Len() int {
	return len(h.hashes)
}

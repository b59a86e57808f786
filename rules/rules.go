package rules

import (
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// maxNeighbors is the largest live-neighbor count a cell can observe.
const maxNeighbors = 8

// ErrInvalidRule is returned by Parse for malformed rule strings.
var ErrInvalidRule = errors.New("invalid rule string")

// RuleSet holds the birth and survival thresholds of a life-like automaton.
// The zero value is a valid rule set under which every cell dies.
type RuleSet struct {
	born    []int
	survive []int

	bornAt    [maxNeighbors + 1]bool
	surviveAt [maxNeighbors + 1]bool
}

/*
Default is the standard Game of Life rule set B3/S23:
a dead cell with exactly 3 live neighbors is born, a live cell with 2 or 3 survives.
*/
var Default = New([]int{3}, []int{2, 3})

// New builds a rule set from arbitrary thresholds. Thresholds that no cell
// can reach (negative or above 8) are kept but never match.
func New(born, survive []int) RuleSet {
	rs := RuleSet{
		born:    normalize(born),
		survive: normalize(survive),
	}
	for _, n := range rs.born {
		if n >= 0 && n <= maxNeighbors {
			rs.bornAt[n] = true
		}
	}
	for _, n := range rs.survive {
		if n >= 0 && n <= maxNeighbors {
			rs.surviveAt[n] = true
		}
	}
	return rs
}

// Next reports whether a cell is alive in the next generation.
func (rs RuleSet) Next(alive bool, neighbors int) bool {
	if neighbors < 0 || neighbors > maxNeighbors {
		return false
	}
	if alive {
		return rs.surviveAt[neighbors]
	}
	return rs.bornAt[neighbors]
}

// Born returns a sorted copy of the birth thresholds.
func (rs RuleSet) Born() []int { return slices.Clone(rs.born) }

// Survive returns a sorted copy of the survival thresholds.
func (rs RuleSet) Survive() []int { return slices.Clone(rs.survive) }

// Equal reports whether both rule sets carry the same thresholds.
func (rs RuleSet) Equal(other RuleSet) bool {
	return slices.Equal(rs.born, other.born) && slices.Equal(rs.survive, other.survive)
}

// String renders the rule set in B/S notation, e.g. "B3/S23".
// Thresholds above 9 are separated by commas to stay unambiguous.
func (rs RuleSet) String() string {
	return "B" + joinThresholds(rs.born) + "/S" + joinThresholds(rs.survive)
}

// Parse reads a rule string. Accepted forms are "B3/S23", "S23/B3"
// (case-insensitive) and the legacy survival/birth form "23/3".
func Parse(s string) (RuleSet, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return RuleSet{}, errors.Wrapf(ErrInvalidRule, "[Parse] %q: expected exactly one '/'", s)
	}

	var (
		born, survive         []int
		haveBorn, haveSurvive bool
	)
	for i, part := range parts {
		part = strings.TrimSpace(part)
		prefix := ""
		if part != "" {
			prefix = strings.ToUpper(part[:1])
		}

		var (
			digits string
			isBorn bool
		)
		switch prefix {
		case "B":
			digits, isBorn = part[1:], true
		case "S":
			digits, isBorn = part[1:], false
		default:
			// Legacy notation lists survival first.
			digits, isBorn = part, i == 1
		}

		values, err := parseThresholds(digits)
		if err != nil {
			return RuleSet{}, errors.Wrapf(err, "[Parse] %q", s)
		}
		if isBorn {
			if haveBorn {
				return RuleSet{}, errors.Wrapf(ErrInvalidRule, "[Parse] %q: birth thresholds given twice", s)
			}
			born, haveBorn = values, true
		} else {
			if haveSurvive {
				return RuleSet{}, errors.Wrapf(ErrInvalidRule, "[Parse] %q: survival thresholds given twice", s)
			}
			survive, haveSurvive = values, true
		}
	}

	return New(born, survive), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) RuleSet {
	rs, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return rs
}

func parseThresholds(digits string) ([]int, error) {
	digits = strings.TrimSpace(digits)
	if digits == "" {
		return nil, nil
	}
	var values []int
	if strings.Contains(digits, ",") {
		for _, field := range strings.Split(digits, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil || n < 0 {
				return nil, errors.Wrapf(ErrInvalidRule, "bad threshold %q", field)
			}
			values = append(values, n)
		}
		return values, nil
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return nil, errors.Wrapf(ErrInvalidRule, "bad threshold %q", string(r))
		}
		values = append(values, int(r-'0'))
	}
	return values, nil
}

func normalize(values []int) []int {
	if len(values) == 0 {
		return nil
	}
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

func joinThresholds(values []int) string {
	sep := ""
	for _, v := range values {
		if v > 9 || v < 0 {
			sep = ","
			break
		}
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}

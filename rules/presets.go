package rules

import (
	"sort"
	"strings"
)

// Named rule sets from the life-like family.
var (
	HighLife         = New([]int{3, 6}, []int{2, 3})
	Seeds            = New([]int{2}, nil)
	DayAndNight      = New([]int{3, 6, 7, 8}, []int{3, 4, 6, 7, 8})
	LifeWithoutDeath = New([]int{3}, []int{0, 1, 2, 3, 4, 5, 6, 7, 8})
)

var presets = map[string]RuleSet{
	"conway":           Default,
	"life":             Default,
	"highlife":         HighLife,
	"seeds":            Seeds,
	"dayandnight":      DayAndNight,
	"lifewithoutdeath": LifeWithoutDeath,
}

// Preset looks up a named rule set. Names are matched case-insensitively
// with dashes, underscores and spaces ignored.
func Preset(name string) (RuleSet, bool) {
	rs, ok := presets[presetKey(name)]
	return rs, ok
}

// PresetNames lists the known preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves either a preset name or a rule string.
func Lookup(s string) (RuleSet, error) {
	if rs, ok := Preset(s); ok {
		return rs, nil
	}
	return Parse(s)
}

func presetKey(name string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(name)))
}

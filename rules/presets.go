package rules

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Well-known rules
var (
	Conway           = MustParse("B3/S23")
	HighLife         = MustParse("B36/S23")
	Seeds            = MustParse("B2/S")
	DayAndNight      = MustParse("B3678/S34678")
	LifeWithoutDeath = MustParse("B3/S012345678")
	Maze             = MustParse("B3/S12345")
	Replicator       = MustParse("B1357/S1357")
	TwoByTwo         = MustParse("B36/S125")
)

var presets = map[string]*Rule{
	"conway":             Conway,
	"life":               Conway,
	"highlife":           HighLife,
	"seeds":              Seeds,
	"daynight":           DayAndNight,
	"life-without-death": LifeWithoutDeath,
	"maze":               Maze,
	"replicator":         Replicator,
	"2x2":                TwoByTwo,
}

// Lookup resolves a preset name (case-insensitive) or a rule string
func Lookup(name string) (*Rule, error) {
	if r, ok := presets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return r, nil
	}
	r, err := Parse(strings.TrimSpace(name))
	if err != nil {
		return nil, errors.Wrapf(err, "[Lookup] unknown rule: %+v", name)
	}
	return r, nil
}

// Presets returns the sorted preset names
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextPreset returns the preset following r in name order, skipping aliases of the same rule.
// A rule that is not a preset yields the first one.
func NextPreset(r *Rule) *Rule {
	var distinct []*Rule
	seen := map[string]bool{}
	for _, name := range Presets() {
		p := presets[name]
		if seen[p.String()] {
			continue
		}
		seen[p.String()] = true
		distinct = append(distinct, p)
	}

	for i, p := range distinct {
		if r != nil && p.String() == r.String() {
			return distinct[(i+1)%len(distinct)]
		}
	}
	return distinct[0]
}

package rules

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedRule is returned when a rule string does not match B<digits>/S<digits>
var ErrMalformedRule = errors.New("malformed rule")

// maxNeighbors is the size of the Moore neighborhood
const maxNeighbors = 8

// Rule is an immutable birth/survival rule. It is safe to share across goroutines.
type Rule struct {
	birth   [maxNeighbors + 1]bool
	survive [maxNeighbors + 1]bool
}

// Parse parses a rule of the form B<digits>/S<digits>, e.g. "B3/S23".
// The B and S markers are case-insensitive and either digit run may be empty.
func Parse(s string) (*Rule, error) {
	birthPart, survivePart, ok := strings.Cut(s, "/")
	if !ok {
		return nil, errors.Wrapf(ErrMalformedRule, "[Parse] missing '/' in %q", s)
	}

	r := &Rule{}
	if err := parseCounts(birthPart, 'b', &r.birth); err != nil {
		return nil, errors.Wrapf(err, "[Parse] birth counts in %q", s)
	}
	if err := parseCounts(survivePart, 's', &r.survive); err != nil {
		return nil, errors.Wrapf(err, "[Parse] survive counts in %q", s)
	}
	return r, nil
}

// MustParse is like Parse but panics on a malformed rule
func MustParse(s string) *Rule {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Custom builds a rule from separate birth and survive digit runs
func Custom(birth, survive string) (*Rule, error) {
	return Parse("B" + birth + "/S" + survive)
}

func parseCounts(part string, marker byte, set *[maxNeighbors + 1]bool) error {
	if len(part) == 0 || (part[0] != marker && part[0] != marker-'a'+'A') {
		return errors.Wrapf(ErrMalformedRule, "expected marker %q", marker-'a'+'A')
	}
	for _, c := range part[1:] {
		if c < '0' || c > '0'+maxNeighbors {
			return errors.Wrapf(ErrMalformedRule, "invalid neighbor count %q", c)
		}
		set[c-'0'] = true
	}
	return nil
}

// NextState reports whether a cell is alive in the next generation
func (r *Rule) NextState(alive bool, liveNeighbors int) bool {
	if liveNeighbors < 0 || liveNeighbors > maxNeighbors {
		return false
	}
	if alive {
		return r.survive[liveNeighbors]
	}
	return r.birth[liveNeighbors]
}

// Born reports whether a dead cell with n live neighbors comes alive
func (r *Rule) Born(n int) bool { return r.NextState(false, n) }

// Survives reports whether a live cell with n live neighbors stays alive
func (r *Rule) Survives(n int) bool { return r.NextState(true, n) }

// String returns the canonical form with ascending digits
func (r *Rule) String() string {
	var sb strings.Builder
	sb.WriteByte('B')
	writeCounts(&sb, &r.birth)
	sb.WriteString("/S")
	writeCounts(&sb, &r.survive)
	return sb.String()
}

func writeCounts(sb *strings.Builder, set *[maxNeighbors + 1]bool) {
	for n, ok := range set {
		if ok {
			sb.WriteByte(byte('0' + n))
		}
	}
}

package ranking

import (
	"strings"

	"communehub/internal/pkg"
)

const (
	MaxInterests      = 20
	MaxInterestLength = 30
)

// NormalizeInterests trims, lowercases and dedupes an interest list, dropping
// empties. Rejects lists with more than 20 distinct tags or tags over 30
// characters.
func NormalizeInterests(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if len(s) > MaxInterestLength {
			return nil, pkg.Validationf("interest %q exceeds %d characters", s, MaxInterestLength)
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if len(out) > MaxInterests {
		return nil, pkg.Validationf("at most %d interests allowed", MaxInterests)
	}
	return out, nil
}

// Overlap counts shared tags between two interest sets. Inputs are expected
// normalized as stored; the count is order-independent and symmetric.
func Overlap(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	n := 0
	seen := make(map[string]struct{}, len(b))
	for _, s := range b {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := set[s]; ok {
			n++
		}
	}
	return n
}

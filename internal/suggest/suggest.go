// Package suggest finds existing branch names close to one typed by the user.
package suggest

import (
	"cmp"
	"slices"

	"github.com/sahilm/fuzzy"
)

type names []string

func (n names) String(i int) string { return n[i] }
func (n names) Len() int            { return len(n) }

// Similar returns up to limit names from known that fuzzily match name,
// best first. A known name matches when name is a subsequence of it or it
// is a subsequence of name. An exact match returns nil.
func Similar(name string, known []string, limit int) []string {
	if name == "" || slices.Contains(known, name) {
		return nil
	}

	scores := make(map[int]int)
	for _, m := range fuzzy.FindFrom(name, names(known)) {
		scores[m.Index] = m.Score
	}
	for i, k := range known {
		if _, ok := scores[i]; ok || k == "" {
			continue
		}
		if ms := fuzzy.Find(k, []string{name}); len(ms) > 0 {
			scores[i] = ms[0].Score
		}
	}

	idx := make([]int, 0, len(scores))
	for i := range scores {
		idx = append(idx, i)
	}
	slices.SortFunc(idx, func(a, b int) int {
		if c := cmp.Compare(scores[b], scores[a]); c != 0 {
			return c
		}
		return cmp.Compare(known[a], known[b])
	})

	out := make([]string, 0, min(limit, len(idx)))
	for _, i := range idx {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, known[i])
	}
	return out
}

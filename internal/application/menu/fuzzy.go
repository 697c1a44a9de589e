package menu

import (
	"sort"
	"strings"
	"unicode"

	"github.com/doeshing/cmdmenu/internal/domain"
)

// MatchResult scores one fuzzy subsequence match. Lower Position and higher
// Run are better; ties fall back to the base list order.
type MatchResult struct {
	Matched   bool
	Run       int   // longest contiguous run of matched query characters
	Position  int   // index of the first matched character
	Positions []int // matched rune indexes, for highlighting
}

// FuzzyMatch reports whether all query characters appear in text in order
// (case-insensitive), not necessarily contiguously, with a greedy
// left-to-right scan.
func FuzzyMatch(query, text string) MatchResult {
	if query == "" {
		return MatchResult{Matched: true}
	}
	q := []rune(strings.Map(unicode.ToLower, query))
	t := []rune(strings.Map(unicode.ToLower, text))

	res := MatchResult{Position: -1}
	qi := 0
	run, bestRun := 0, 0
	prev := -2
	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			continue
		}
		if res.Position < 0 {
			res.Position = ti
		}
		if ti == prev+1 {
			run++
		} else {
			run = 1
		}
		if run > bestRun {
			bestRun = run
		}
		res.Positions = append(res.Positions, ti)
		prev = ti
		qi++
	}
	if qi < len(q) {
		return MatchResult{}
	}
	res.Matched = true
	res.Run = bestRun
	return res
}

// scored pairs an entry with its match for ordering.
type scored struct {
	entry domain.CommandEntry
	match MatchResult
	base  int
}

// FuzzyFilter returns the entries matching query, ranked by match quality
// (longest contiguous run descending, then earliest position ascending) and
// falling back to the incoming base order among ties. Positions for the kept
// entries are returned alongside for highlighting. The operation is
// idempotent: the same query over the same list yields the same order.
func FuzzyFilter(entries []domain.CommandEntry, query string) ([]domain.CommandEntry, [][]int) {
	if strings.TrimSpace(query) == "" {
		positions := make([][]int, len(entries))
		return entries, positions
	}

	var matches []scored
	for i, e := range entries {
		m := FuzzyMatch(query, e.Text)
		if !m.Matched {
			continue
		}
		matches = append(matches, scored{entry: e, match: m, base: i})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].match.Run != matches[j].match.Run {
			return matches[i].match.Run > matches[j].match.Run
		}
		if matches[i].match.Position != matches[j].match.Position {
			return matches[i].match.Position < matches[j].match.Position
		}
		return matches[i].base < matches[j].base
	})

	filtered := make([]domain.CommandEntry, len(matches))
	positions := make([][]int, len(matches))
	for i, m := range matches {
		filtered[i] = m.entry
		positions[i] = m.match.Positions
	}
	return filtered, positions
}

package menu

import (
	"path"
	"sort"
	"strings"

	"github.com/doeshing/cmdmenu/internal/domain"
)

// Rank applies exclusions, category filters, the configured sort and the
// result cap. The ordering is fully specified by the tie-break chain, so two
// runs over the same input always agree.
func Rank(entries []domain.CommandEntry, cfg domain.Config) []domain.CommandEntry {
	kept := make([]domain.CommandEntry, 0, len(entries))
	for _, e := range entries {
		if Excluded(e.Text, cfg.ExcludedPatterns) {
			continue
		}
		if !cfg.ShowsCategory(e.Category) {
			continue
		}
		kept = append(kept, e)
	}

	switch cfg.SortMethod {
	case domain.SortRecency:
		sort.SliceStable(kept, func(i, j int) bool {
			if !kept[i].LastUsed.Equal(kept[j].LastUsed) {
				return kept[i].LastUsed.After(kept[j].LastUsed)
			}
			return kept[i].Text < kept[j].Text
		})
	case domain.SortAlphabetical:
		sort.SliceStable(kept, func(i, j int) bool {
			li, lj := strings.ToLower(kept[i].Text), strings.ToLower(kept[j].Text)
			if li != lj {
				return li < lj
			}
			if kept[i].Text != kept[j].Text {
				return kept[i].Text < kept[j].Text
			}
			return kept[i].Count > kept[j].Count
		})
	default: // frequency
		sort.SliceStable(kept, func(i, j int) bool {
			if kept[i].Count != kept[j].Count {
				return kept[i].Count > kept[j].Count
			}
			if !kept[i].LastUsed.Equal(kept[j].LastUsed) {
				return kept[i].LastUsed.After(kept[j].LastUsed)
			}
			return kept[i].Text < kept[j].Text
		})
	}

	if cfg.MaxCommands > 0 && len(kept) > cfg.MaxCommands {
		kept = kept[:cfg.MaxCommands]
	}
	return kept
}

// Excluded reports whether the command matches any exclusion pattern. A bare
// pattern matches the command's first token exactly; a pattern containing
// glob metacharacters matches the whole text via path.Match.
func Excluded(text string, patterns []string) bool {
	first, _, _ := strings.Cut(text, " ")
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.ContainsAny(p, "*?[") {
			if ok, err := path.Match(p, text); err == nil && ok {
				return true
			}
			continue
		}
		if p == first {
			return true
		}
	}
	return false
}

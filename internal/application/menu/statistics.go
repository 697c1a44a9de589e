package menu

import (
	"sort"

	"github.com/doeshing/cmdmenu/internal/domain"
)

// CategoryCount is one row of the per-category breakdown.
type CategoryCount struct {
	Category string
	Count    int
}

// CommandStatistic represents usage totals for a command.
type CommandStatistic struct {
	Command string
	Count   int
}

// HistoryReport summarizes one aggregated history pass.
type HistoryReport struct {
	TotalCommands  int // sum of all entry counts
	UniqueCommands int
	Categories     []CategoryCount       // by count descending
	TopCommands    []domain.CommandEntry // by count descending
}

// BuildHistoryReport computes the statistics surface for --stats.
func BuildHistoryReport(entries []domain.CommandEntry, topN int) HistoryReport {
	report := HistoryReport{UniqueCommands: len(entries)}

	byCategory := make(map[string]int)
	for _, e := range entries {
		report.TotalCommands += e.Count
		byCategory[e.Category] += e.Count
	}
	for category, count := range byCategory {
		report.Categories = append(report.Categories, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		if report.Categories[i].Count != report.Categories[j].Count {
			return report.Categories[i].Count > report.Categories[j].Count
		}
		return report.Categories[i].Category < report.Categories[j].Category
	})

	top := make([]domain.CommandEntry, len(entries))
	copy(top, entries)
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Text < top[j].Text
	})
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}
	report.TopCommands = top
	return report
}

// TopExecuted returns the commands most often run through the menu itself,
// count descending with name as tie-break. A non-positive limit returns all.
func TopExecuted(executions map[string]int, limit int) []CommandStatistic {
	stats := make([]CommandStatistic, 0, len(executions))
	for cmd, count := range executions {
		stats = append(stats, CommandStatistic{Command: cmd, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Command < stats[j].Command
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

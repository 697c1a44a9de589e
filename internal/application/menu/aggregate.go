// Package menu contains the application core: it turns raw history records
// into the ranked, filterable command set behind the interactive picker.
package menu

import (
	"github.com/doeshing/cmdmenu/internal/domain"
)

// Aggregate folds history records into one CommandEntry per distinct command
// text. Counts are occurrence totals and LastUsed is the true maximum
// timestamp, so the result is independent of input order.
func Aggregate(records []domain.HistoryRecord, rules []domain.CategoryRule) []domain.CommandEntry {
	byText := make(map[string]*domain.CommandEntry, len(records))
	order := make([]string, 0, len(records))

	for _, rec := range records {
		entry, ok := byText[rec.Command]
		if !ok {
			entry = &domain.CommandEntry{
				Text:     rec.Command,
				Category: domain.Categorize(rec.Command, rules),
			}
			byText[rec.Command] = entry
			order = append(order, rec.Command)
		}
		entry.Count++
		if rec.Timestamp.After(entry.LastUsed) {
			entry.LastUsed = rec.Timestamp
		}
	}

	entries := make([]domain.CommandEntry, 0, len(byText))
	for _, text := range order {
		entries = append(entries, *byText[text])
	}
	return entries
}

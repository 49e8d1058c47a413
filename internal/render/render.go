// Package render maps a race collection to its table or calendar view.
// Nothing in here performs I/O.
package render

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yourusername/racehub/internal/models"
)

// Build renders races in the given mode. today decides which races are past
// and must be computed at render time by the caller. The input is not modified.
func Build(races []models.Race, mode models.ViewMode, today models.Date, labels Labels) View {
	if len(races) == 0 {
		return View{
			Mode:        mode,
			Empty:       true,
			Placeholder: labels.Placeholder,
		}
	}

	sorted := SortByDate(races)

	switch mode {
	case models.ViewCalendar:
		return View{Mode: mode, Calendar: buildCalendar(sorted, today, labels)}
	default:
		return View{Mode: models.ViewTable, Table: buildTable(sorted, today, labels)}
	}
}

// SortByDate returns a copy of races in ascending date order. Races on the
// same date keep their relative order.
func SortByDate(races []models.Race) []models.Race {
	sorted := make([]models.Race, len(races))
	copy(sorted, races)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// StatusBadge returns the badge of a race as of today
func StatusBadge(race *models.Race, today models.Date, labels Labels) Badge {
	if race.IsPast(today) {
		return Badge{Label: labels.Finalized, Class: string(models.StatusClosed)}
	}
	if race.Status.IsUnset() {
		return Badge{Label: labels.Pending, Class: string(models.StatusPending)}
	}
	return Badge{Label: string(race.Status), Class: string(race.Status)}
}

// resultAction is nil for races that cannot have a result yet. A race with
// an unknown date is past but has no year to look up.
func resultAction(race *models.Race, today models.Date, label string) *Action {
	if !race.IsPast(today) || race.Date.IsZero() {
		return nil
	}
	return &Action{
		Kind:     ActionResult,
		Label:    label,
		RaceID:   race.ID,
		RaceName: race.Name,
		Year:     race.Date.Year(),
	}
}

func deleteAction(race *models.Race, labels Labels) Action {
	return Action{
		Kind:     ActionDelete,
		Label:    labels.DeleteAction,
		RaceID:   race.ID,
		RaceName: race.Name,
	}
}

// capitalize upper-cases the first letter
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

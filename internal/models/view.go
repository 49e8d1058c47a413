package models

import "fmt"

// ViewMode selects how the race collection is presented
type ViewMode string

// The two presentations
const (
	ViewTable    ViewMode = "table"
	ViewCalendar ViewMode = "calendar"
)

// ParseViewMode validates a view name
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewTable, ViewCalendar:
		return ViewMode(s), nil
	default:
		return "", NewValidationError("invalid_view_mode", fmt.Sprintf("unknown view %q (want table or calendar)", s))
	}
}

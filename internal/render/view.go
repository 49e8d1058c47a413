package render

import (
	"time"

	"github.com/yourusername/racehub/internal/models"
)

// View is the rendered form of a race collection. Exactly one of Table and
// Calendar is set unless Empty.
type View struct {
	Mode        models.ViewMode
	Empty       bool
	Placeholder string
	Table       *Table
	Calendar    *Calendar
}

// Badge is a status badge. Class names the visual style: the stored
// registration status, "pendiente" when unset and "cerrada" for finished races.
type Badge struct {
	Label string
	Class string
}

// ActionKind identifies what an action button does
type ActionKind string

// Action kinds
const (
	ActionResult ActionKind = "result"
	ActionDelete ActionKind = "delete"
)

// Action is a button bound to one race
type Action struct {
	Kind     ActionKind
	Label    string
	RaceID   models.RaceID
	RaceName string
	Year     int
}

// Table is the tabular presentation
type Table struct {
	Columns []string
	Rows    []Row
}

// Row is one table row
type Row struct {
	RaceID   models.RaceID
	Date     string
	Name     string
	Distance string
	Sport    string
	Location string
	Status   Badge
	Past     bool
	Actions  []Action
}

// Calendar is the month-grouped presentation
type Calendar struct {
	Groups []MonthGroup
}

// MonthGroup holds the races of one (year, month). Races with an unknown date
// form a leading group with a zero Year and Month.
type MonthGroup struct {
	Year    int
	Month   time.Month
	Heading string
	Cards   []Card
}

// Card is one race in the calendar. Past is a style hint only.
type Card struct {
	RaceID       models.RaceID
	Day          int
	Weekday      string
	Name         string
	Location     string
	SportLine    string
	Status       Badge
	Past         bool
	ResultButton *Action
	Delete       Action
}

package render

import (
	"github.com/yourusername/racehub/internal/models"
)

// Field is one labelled line of a panel
type Field struct {
	Label string
	Value string
}

// Panel is a titled list of fields with an optional free-text message
type Panel struct {
	Title   string
	Fields  []Field
	Message string
}

// CandidatePanel shows every field of a search candidate for review
func CandidatePanel(c *models.Candidate, labels Labels) Panel {
	p := labels.Panels
	url := c.URL()
	if url == "" {
		url = p.NotAvailable
	}
	return Panel{
		Title: p.CandidateTitle,
		Fields: []Field{
			{Label: p.Name, Value: c.OfficialName},
			{Label: p.Sport, Value: c.Sport},
			{Label: p.Date, Value: c.Date},
			{Label: p.Location, Value: c.Location},
			{Label: p.Distances, Value: joinNonEmpty(", ", c.Distances...)},
			{Label: p.URL, Value: url},
			{Label: p.Status, Value: string(c.Status)},
		},
	}
}

// CachedResult shows a result already attached to a race
func CachedResult(r models.Result, labels Labels) Panel {
	p := labels.Panels
	return Panel{
		Title: p.SavedResult,
		Fields: []Field{
			{Label: p.Time, Value: r.OfficialTime.Or(p.NotAvailable)},
			{Label: p.OverallPosition, Value: r.OverallPosition.Or("--")},
			{Label: p.CategoryPosition, Value: r.CategoryPosition.Or("--")},
			{Label: p.Pace, Value: r.AveragePace.Or("--")},
			{Label: p.Notes, Value: r.Comments.String()},
		},
	}
}

// LookupResult shows the answer of a result lookup. A miss carries the
// server's explanation followed by the unreadable-source caveat.
func LookupResult(l *models.ResultLookup, labels Labels) Panel {
	p := labels.Panels
	if !l.Found {
		msg := l.Message
		if msg == "" {
			msg = p.ResultNotFound
		}
		return Panel{
			Title:   p.ResultNotFound,
			Message: msg + "\n\n" + labels.Messages.ResultCaveat,
		}
	}
	return Panel{
		Title: p.ResultFound,
		Fields: []Field{
			{Label: p.Runner, Value: l.Runner.String()},
			{Label: p.Time, Value: l.Time.String()},
			{Label: p.OverallPosition, Value: l.Position.Or("--")},
			{Label: p.CategoryPosition, Value: l.CategoryPosition.Or("--")},
			{Label: p.Pace, Value: l.Pace.Or("--")},
		},
	}
}

package render

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/racehub/internal/models"
)

var today = models.NewDate(2026, time.October, 15)

func en() Labels { return LabelsFor("en_US") }

func race(id, date string, status models.RegistrationStatus) models.Race {
	r := models.Race{
		ID:              models.RaceID(id),
		Name:            "Race " + id,
		Sport:           "Running",
		Location:        "Madrid",
		DistanceSummary: "10K",
		Status:          status,
	}
	if date != "" {
		r.Date = models.MustParseDate(date)
	}
	return r
}

func randomRaces(rng *rand.Rand, n int) []models.Race {
	statuses := []models.RegistrationStatus{models.StatusUnset, models.StatusPending, models.StatusConfirmed, models.StatusClosed, "abierta"}
	races := make([]models.Race, n)
	for i := range races {
		d := models.NewDate(2020+rng.Intn(10), time.Month(1+rng.Intn(12)), 1+rng.Intn(28))
		races[i] = models.Race{
			ID:     models.RaceID(fmt.Sprint(i)),
			Name:   fmt.Sprintf("Race %d", i),
			Date:   d,
			Status: statuses[rng.Intn(len(statuses))],
		}
	}
	return races
}

func TestBuildEmpty(t *testing.T) {
	for _, mode := range []models.ViewMode{models.ViewTable, models.ViewCalendar} {
		t.Run(string(mode), func(t *testing.T) {
			view := Build(nil, mode, today, en())
			assert.True(t, view.Empty)
			assert.Equal(t, "No races added yet.", view.Placeholder)
			assert.Nil(t, view.Table)
			assert.Nil(t, view.Calendar)
		})
	}
}

func TestTableRowsAreDateOrdered(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 1; n <= 40; n++ {
		races := randomRaces(rng, n)
		original := append([]models.Race(nil), races...)

		view := Build(races, models.ViewTable, today, en())
		require.NotNil(t, view.Table)
		require.Len(t, view.Table.Rows, n)

		for i := 1; i < len(view.Table.Rows); i++ {
			assert.LessOrEqual(t, view.Table.Rows[i-1].Date, view.Table.Rows[i].Date)
		}
		assert.Equal(t, original, races, "input must not be reordered")
	}
}

func TestSortIsStable(t *testing.T) {
	races := []models.Race{
		race("b", "2025-05-01", ""),
		race("a", "2025-01-01", ""),
		race("c", "2025-05-01", ""),
		race("z", "", ""),
	}

	sorted := SortByDate(races)
	ids := make([]string, len(sorted))
	for i := range sorted {
		ids[i] = sorted[i].ID.String()
	}
	assert.Equal(t, []string{"z", "a", "b", "c"}, ids)
}

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		status    models.RegistrationStatus
		wantLabel string
		wantClass string
	}{
		{name: "past overrides confirmed", date: "2026-10-14", status: models.StatusConfirmed, wantLabel: "Finalized", wantClass: "cerrada"},
		{name: "past overrides unset", date: "2000-01-01", wantLabel: "Finalized", wantClass: "cerrada"},
		{name: "past overrides free text", date: "2019-03-10", status: "abierta", wantLabel: "Finalized", wantClass: "cerrada"},
		{name: "today is not past", date: "2026-10-15", status: models.StatusConfirmed, wantLabel: "confirmada", wantClass: "confirmada"},
		{name: "future unset is pending", date: "2099-01-01", wantLabel: "Pending", wantClass: "pendiente"},
		{name: "future whitespace is pending", date: "2099-01-01", status: "  ", wantLabel: "Pending", wantClass: "pendiente"},
		{name: "future keeps stored status", date: "2027-04-19", status: "abierta", wantLabel: "abierta", wantClass: "abierta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := race("1", tt.date, tt.status)
			badge := StatusBadge(&r, today, en())
			assert.Equal(t, tt.wantLabel, badge.Label)
			assert.Equal(t, tt.wantClass, badge.Class)
		})
	}
}

func TestPastPropertyAcrossCollections(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	races := randomRaces(rng, 200)
	labels := en()

	view := Build(races, models.ViewTable, today, labels)
	for _, row := range view.Table.Rows {
		d := models.MustParseDate(row.Date)
		if d.Before(today) {
			assert.Equal(t, labels.Finalized, row.Status.Label, row.RaceID)
			continue
		}
		r := findRace(t, races, row.RaceID)
		if r.Status.IsUnset() {
			assert.Equal(t, labels.Pending, row.Status.Label)
		} else {
			assert.Equal(t, string(r.Status), row.Status.Label)
		}
	}
}

func findRace(t *testing.T, races []models.Race, id models.RaceID) models.Race {
	t.Helper()
	for _, r := range races {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("race %s not found", id)
	return models.Race{}
}

func TestTableScenarioFutureAndPast(t *testing.T) {
	future := race("1", "2099-01-01", "")
	view := Build([]models.Race{future}, models.ViewTable, today, en())
	row := view.Table.Rows[0]
	assert.Equal(t, "Pending", row.Status.Label)
	require.Len(t, row.Actions, 1)
	assert.Equal(t, ActionDelete, row.Actions[0].Kind)
	assert.False(t, row.Past)

	past := race("1", "2000-01-01", models.StatusConfirmed)
	view = Build([]models.Race{past}, models.ViewTable, today, en())
	row = view.Table.Rows[0]
	assert.Equal(t, "Finalized", row.Status.Label)
	require.Len(t, row.Actions, 2)
	assert.Equal(t, Action{Kind: ActionResult, Label: "Result", RaceID: "1", RaceName: "Race 1", Year: 2000}, row.Actions[0])
	assert.Equal(t, ActionDelete, row.Actions[1].Kind)
	assert.True(t, row.Past)
}

func TestTableColumnsAndCells(t *testing.T) {
	r := race("9", "2027-04-19", models.StatusPending)
	r.Name = "Boston Marathon"
	r.DistanceSummary = "42K"

	view := Build([]models.Race{r}, models.ViewTable, today, en())
	assert.Equal(t, []string{"Date", "Race", "Sport", "Location", "Status", "Action"}, view.Table.Columns)
	assert.Equal(t, Row{
		RaceID:   "9",
		Date:     "2027-04-19",
		Name:     "Boston Marathon",
		Distance: "42K",
		Sport:    "Running",
		Location: "Madrid",
		Status:   Badge{Label: "pendiente", Class: "pendiente"},
		Actions:  []Action{{Kind: ActionDelete, Label: "Delete", RaceID: "9", RaceName: "Boston Marathon"}},
	}, view.Table.Rows[0])
}

func TestUnknownDateHasNoResultAction(t *testing.T) {
	view := Build([]models.Race{race("1", "", "")}, models.ViewTable, today, en())
	row := view.Table.Rows[0]
	assert.Equal(t, "Finalized", row.Status.Label)
	require.Len(t, row.Actions, 1)
	assert.Equal(t, ActionDelete, row.Actions[0].Kind)
}

func TestCalendarGroups(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	races := randomRaces(rng, 120)

	view := Build(races, models.ViewCalendar, today, en())
	require.NotNil(t, view.Calendar)
	assert.Nil(t, view.Table)

	seen := make(map[models.RaceID]int)
	for i, g := range view.Calendar.Groups {
		if i > 0 {
			prev := view.Calendar.Groups[i-1]
			assert.True(t, prev.Year < g.Year || (prev.Year == g.Year && prev.Month < g.Month),
				"groups out of order: %d-%d then %d-%d", prev.Year, prev.Month, g.Year, g.Month)
		}
		for _, c := range g.Cards {
			seen[c.RaceID]++
			r := findRace(t, races, c.RaceID)
			assert.Equal(t, g.Year, r.Date.Year())
			assert.Equal(t, g.Month, r.Date.Month())
		}
	}

	assert.Len(t, seen, len(races))
	for id, n := range seen {
		assert.Equal(t, 1, n, "race %s rendered %d times", id, n)
	}
}

func TestCalendarCards(t *testing.T) {
	past := race("1", "2024-12-01", "")
	past.Name = "Maratón de Valencia"
	past.DistanceSummary = "42K"
	future := race("2", "2027-04-19", models.StatusConfirmed)
	sameMonth := race("3", "2024-12-15", "")

	view := Build([]models.Race{future, sameMonth, past}, models.ViewCalendar, today, en())
	groups := view.Calendar.Groups
	require.Len(t, groups, 2)

	assert.Equal(t, "December 2024", groups[0].Heading)
	assert.Equal(t, "April 2027", groups[1].Heading)
	require.Len(t, groups[0].Cards, 2)

	card := groups[0].Cards[0]
	assert.Equal(t, models.RaceID("1"), card.RaceID)
	assert.Equal(t, 1, card.Day)
	assert.Equal(t, "Sun", card.Weekday)
	assert.Equal(t, "Running - 42K", card.SportLine)
	assert.Equal(t, "Finalized", card.Status.Label)
	assert.True(t, card.Past)
	require.NotNil(t, card.ResultButton)
	assert.Equal(t, "View Result", card.ResultButton.Label)
	assert.Equal(t, 2024, card.ResultButton.Year)
	assert.Equal(t, ActionDelete, card.Delete.Kind)

	next := groups[1].Cards[0]
	assert.False(t, next.Past)
	assert.Nil(t, next.ResultButton)
	assert.Equal(t, "confirmada", next.Status.Label)
}

func TestCalendarUnknownDateGroupFirst(t *testing.T) {
	view := Build([]models.Race{race("1", "2025-01-01", ""), race("2", "", "")}, models.ViewCalendar, today, en())
	groups := view.Calendar.Groups
	require.Len(t, groups, 2)
	assert.Equal(t, "No date", groups[0].Heading)
	assert.Zero(t, groups[0].Year)
	assert.Zero(t, groups[0].Cards[0].Day)
	assert.Empty(t, groups[0].Cards[0].Weekday)
}

func TestSpanishHeadingIsCapitalized(t *testing.T) {
	labels := LabelsFor("es_ES")
	heading := MonthHeading(models.NewDate(2024, time.December, 1), labels)

	first, _ := utf8.DecodeRuneInString(heading)
	assert.True(t, unicode.IsUpper(first), heading)
	assert.True(t, strings.HasSuffix(heading, "2024"), heading)
	assert.NotEqual(t, "December 2024", heading)

	view := Build([]models.Race{race("1", "2000-01-01", "")}, models.ViewTable, today, labels)
	assert.Equal(t, "Finalizada", view.Table.Rows[0].Status.Label)
}

func TestLabelsFallback(t *testing.T) {
	assert.Equal(t, LabelsFor("en_US"), LabelsFor("fr_FR"))
	assert.ElementsMatch(t, []string{"en_US", "es_ES"}, Locales())
	for _, name := range Locales() {
		assert.NotEmpty(t, LabelsFor(name).Finalized)
	}
}

func TestUnknownModeFallsBackToTable(t *testing.T) {
	view := Build([]models.Race{race("1", "2025-01-01", "")}, models.ViewMode("grid"), today, en())
	assert.Equal(t, models.ViewTable, view.Mode)
	assert.NotNil(t, view.Table)
}

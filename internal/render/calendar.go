package render

import (
	"time"

	"github.com/goodsign/monday"

	"github.com/yourusername/racehub/internal/models"
)

type monthKey struct {
	year  int
	month time.Month
}

// buildCalendar groups date-sorted races by month. Because the input is
// sorted, groups come out in ascending (year, month) order.
func buildCalendar(sorted []models.Race, today models.Date, labels Labels) *Calendar {
	cal := &Calendar{}
	index := make(map[monthKey]int)

	for i := range sorted {
		race := &sorted[i]

		key := monthKey{}
		if !race.Date.IsZero() {
			key = monthKey{year: race.Date.Year(), month: race.Date.Month()}
		}

		g, ok := index[key]
		if !ok {
			g = len(cal.Groups)
			index[key] = g
			cal.Groups = append(cal.Groups, MonthGroup{
				Year:    key.year,
				Month:   key.month,
				Heading: MonthHeading(race.Date, labels),
			})
		}
		cal.Groups[g].Cards = append(cal.Groups[g].Cards, buildCard(race, today, labels))
	}

	return cal
}

func buildCard(race *models.Race, today models.Date, labels Labels) Card {
	card := Card{
		RaceID:       race.ID,
		Name:         race.Name,
		Location:     race.Location,
		SportLine:    race.Sport + " - " + race.DistanceSummary,
		Status:       StatusBadge(race, today, labels),
		Past:         race.IsPast(today),
		ResultButton: resultAction(race, today, labels.ViewResult),
		Delete:       deleteAction(race, labels),
	}
	if !race.Date.IsZero() {
		card.Day = race.Date.Day()
		card.Weekday = monday.Format(race.Date.Time(), labels.WeekdayLayout, labels.Locale)
	}
	return card
}

// MonthHeading returns the localized "month year" heading of a date with its
// first letter capitalized
func MonthHeading(d models.Date, labels Labels) string {
	if d.IsZero() {
		return labels.UnknownDate
	}
	return capitalize(monday.Format(d.Time(), labels.MonthHeading, labels.Locale))
}

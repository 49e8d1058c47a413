package render

import (
	"github.com/yourusername/racehub/internal/models"
)

func buildTable(sorted []models.Race, today models.Date, labels Labels) *Table {
	table := &Table{
		Columns: []string{
			labels.ColumnDate,
			labels.ColumnRace,
			labels.ColumnSport,
			labels.ColumnLocation,
			labels.ColumnStatus,
			labels.ColumnAction,
		},
		Rows: make([]Row, 0, len(sorted)),
	}

	for i := range sorted {
		race := &sorted[i]

		var actions []Action
		if result := resultAction(race, today, labels.ResultAction); result != nil {
			actions = append(actions, *result)
		}
		actions = append(actions, deleteAction(race, labels))

		table.Rows = append(table.Rows, Row{
			RaceID:   race.ID,
			Date:     race.Date.String(),
			Name:     race.Name,
			Distance: race.DistanceSummary,
			Sport:    race.Sport,
			Location: race.Location,
			Status:   StatusBadge(race, today, labels),
			Past:     race.IsPast(today),
			Actions:  actions,
		})
	}

	return table
}

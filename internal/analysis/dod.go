package analysis

import (
	"sort"

	"github.com/jgoulah/curvedash/pkg/models"
)

// DoDChange computes the percentage change of each observation of a single
// curve against the previous observation by date. The first row is
// ChangeAbsent; a zero previous value gives ChangeUndefined.
func DoDChange(obs []models.Observation) []models.ChangeRow {
	sorted := make([]models.Observation, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	rows := make([]models.ChangeRow, len(sorted))
	for i, o := range sorted {
		row := models.ChangeRow{Date: o.Date, CurveID: o.CurveID, Value: o.Value}
		switch {
		case i == 0:
			row.Status = models.ChangeAbsent
		case sorted[i-1].Value == 0:
			row.Status = models.ChangeUndefined
		default:
			prev := sorted[i-1].Value
			row.PctChange = (o.Value - prev) / prev * 100
			row.Status = models.ChangeDefined
		}
		rows[i] = row
	}
	return rows
}

// Plottable drops rows that have no prior value. Undefined rows are kept so
// the consumer can flag them.
func Plottable(rows []models.ChangeRow) []models.ChangeRow {
	result := make([]models.ChangeRow, 0, len(rows))
	for _, r := range rows {
		if r.Status != models.ChangeAbsent {
			result = append(result, r)
		}
	}
	return result
}

// Latest returns the most recent row, if any
func Latest(rows []models.ChangeRow) (models.ChangeRow, bool) {
	if len(rows) == 0 {
		return models.ChangeRow{}, false
	}
	return rows[len(rows)-1], true
}

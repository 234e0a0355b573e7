package analysis

import (
	"sort"
	"time"

	"github.com/jgoulah/curvedash/pkg/models"
)

// Compare aligns curves a and b on the dates both have and returns their
// values and a-b difference, oldest first. Dates held by only one curve are
// dropped. Comparing a curve with itself is allowed and yields zero differences.
func Compare(obs []models.Observation, curveA, curveB string) []models.ComparisonRow {
	valuesB := make(map[time.Time]float64)
	for _, o := range obs {
		if o.CurveID == curveB {
			valuesB[o.Date] = o.Value
		}
	}

	rows := []models.ComparisonRow{}
	for _, o := range obs {
		if o.CurveID != curveA {
			continue
		}
		vb, ok := valuesB[o.Date]
		if !ok {
			continue
		}
		rows = append(rows, models.ComparisonRow{
			Date:       o.Date,
			ValueA:     o.Value,
			ValueB:     vb,
			Difference: o.Value - vb,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}

package analysis

import (
	"sort"
	"time"

	"github.com/jgoulah/curvedash/pkg/models"
)

type yearMonth struct {
	year  int
	month time.Month
}

// Seasonality averages one curve's values per (year, calendar month). Points
// are ordered by month (January first) and then by year. Months without data
// produce no point.
func Seasonality(obs []models.Observation, curveID string) []models.SeasonalPoint {
	sums := make(map[yearMonth]float64)
	counts := make(map[yearMonth]int)
	for _, o := range obs {
		if o.CurveID != curveID {
			continue
		}
		key := yearMonth{o.Date.Year(), o.Date.Month()}
		sums[key] += o.Value
		counts[key]++
	}

	points := make([]models.SeasonalPoint, 0, len(sums))
	for key, sum := range sums {
		points = append(points, models.SeasonalPoint{
			Year:      key.year,
			Month:     key.month,
			CurveID:   curveID,
			MeanValue: sum / float64(counts[key]),
			Count:     counts[key],
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Month != points[j].Month {
			return points[i].Month < points[j].Month
		}
		return points[i].Year < points[j].Year
	})
	return points
}

// YearLine is one year's monthly means; Months[0] is January
type YearLine struct {
	Year   int
	Months [12]*float64 // nil where the year has no data for the month
}

// ByYear regroups seasonal points into one line per year, oldest year first
func ByYear(points []models.SeasonalPoint) []YearLine {
	lines := make(map[int]*YearLine)
	for _, p := range points {
		line, ok := lines[p.Year]
		if !ok {
			line = &YearLine{Year: p.Year}
			lines[p.Year] = line
		}
		mean := p.MeanValue
		line.Months[p.Month-time.January] = &mean
	}

	result := make([]YearLine, 0, len(lines))
	for _, line := range lines {
		result = append(result, *line)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Year < result[j].Year })
	return result
}

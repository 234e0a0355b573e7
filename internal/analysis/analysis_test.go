package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/curvedash/pkg/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func obs(curve string, t time.Time, v float64) models.Observation {
	return models.Observation{Date: t, CurveID: curve, Value: v}
}

func TestSeasonality(t *testing.T) {
	const curve = "Mona Pk"
	input := []models.Observation{
		obs(curve, day(2023, 4, 3), 30),
		obs(curve, day(2023, 1, 2), 8),
		obs(curve, day(2023, 1, 3), 12),
		obs(curve, day(2024, 1, 2), 11),
		obs(curve, day(2024, 1, 5), 13),
		obs(curve, day(2024, 12, 1), 50),
		obs("Other OPk", day(2024, 1, 2), 1000),
	}

	points := Seasonality(input, curve)

	require.Len(t, points, 4)
	assert.Equal(t, models.SeasonalPoint{Year: 2023, Month: time.January, CurveID: curve, MeanValue: 10, Count: 2}, points[0])
	assert.Equal(t, models.SeasonalPoint{Year: 2024, Month: time.January, CurveID: curve, MeanValue: 12, Count: 2}, points[1])
	// April sorts after January, never lexically before it
	assert.Equal(t, time.April, points[2].Month)
	assert.Equal(t, time.December, points[3].Month)
}

func TestSeasonalitySingleBucket(t *testing.T) {
	points := Seasonality([]models.Observation{obs("X", day(2022, 7, 9), 4)}, "X")
	require.Len(t, points, 1)
	assert.Equal(t, time.July, points[0].Month)
	assert.Equal(t, 4.0, points[0].MeanValue)
}

func TestSeasonalityTwoYearsOfJanuary(t *testing.T) {
	input := []models.Observation{
		obs("X", day(2, 1, 10), 12),
		obs("X", day(1, 1, 10), 10),
	}

	points := Seasonality(input, "X")

	require.Len(t, points, 2)
	for _, p := range points {
		assert.Equal(t, time.January, p.Month)
	}
	assert.Equal(t, 1, points[0].Year)
	assert.Equal(t, 10.0, points[0].MeanValue)
	assert.Equal(t, 2, points[1].Year)
	assert.Equal(t, 12.0, points[1].MeanValue)
}

func TestByYear(t *testing.T) {
	points := []models.SeasonalPoint{
		{Year: 2024, Month: time.January, MeanValue: 12},
		{Year: 2023, Month: time.March, MeanValue: 9},
		{Year: 2024, Month: time.December, MeanValue: 20},
	}

	lines := ByYear(points)

	require.Len(t, lines, 2)
	assert.Equal(t, 2023, lines[0].Year)
	require.NotNil(t, lines[0].Months[2])
	assert.Equal(t, 9.0, *lines[0].Months[2])
	assert.Nil(t, lines[0].Months[0])
	assert.Equal(t, 2024, lines[1].Year)
	assert.Equal(t, 12.0, *lines[1].Months[0])
	assert.Equal(t, 20.0, *lines[1].Months[11])
}

func TestCompare(t *testing.T) {
	input := []models.Observation{
		obs("A", day(2024, 1, 2), 12),
		obs("A", day(2024, 1, 1), 10),
		obs("A", day(2024, 1, 3), 9),
		obs("B", day(2024, 1, 1), 5),
		obs("B", day(2024, 1, 2), 5),
		obs("B", day(2024, 1, 4), 7),
	}

	rows := Compare(input, "A", "B")

	require.Len(t, rows, 2)
	assert.Equal(t, models.ComparisonRow{Date: day(2024, 1, 1), ValueA: 10, ValueB: 5, Difference: 5}, rows[0])
	assert.Equal(t, models.ComparisonRow{Date: day(2024, 1, 2), ValueA: 12, ValueB: 5, Difference: 7}, rows[1])

	reversed := Compare(input, "B", "A")
	require.Len(t, reversed, 2)
	assert.Equal(t, -5.0, reversed[0].Difference)
}

func TestCompareSameCurve(t *testing.T) {
	input := []models.Observation{
		obs("A", day(2024, 1, 1), 10),
		obs("A", day(2024, 1, 2), 12.25),
	}

	rows := Compare(input, "A", "A")

	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Zero(t, r.Difference)
		assert.Equal(t, r.ValueA, r.ValueB)
	}
}

func TestCompareNoOverlap(t *testing.T) {
	input := []models.Observation{
		obs("A", day(2024, 1, 1), 10),
		obs("B", day(2024, 1, 2), 5),
	}

	rows := Compare(input, "A", "B")

	require.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestDoDChange(t *testing.T) {
	input := []models.Observation{
		obs("A", day(2024, 1, 3), 9),
		obs("A", day(2024, 1, 1), 10),
		obs("A", day(2024, 1, 2), 12),
	}

	rows := DoDChange(input)

	require.Len(t, rows, 3)
	assert.Equal(t, day(2024, 1, 1), rows[0].Date)
	assert.Equal(t, models.ChangeAbsent, rows[0].Status)
	assert.False(t, rows[0].Defined())

	assert.Equal(t, models.ChangeDefined, rows[1].Status)
	assert.InDelta(t, 20.0, rows[1].PctChange, 1e-9)

	assert.Equal(t, day(2024, 1, 3), rows[2].Date)
	assert.InDelta(t, -25.0, rows[2].PctChange, 1e-9)

	// Input is untouched
	assert.Equal(t, day(2024, 1, 3), input[0].Date)
}

func TestDoDChangeZeroPrior(t *testing.T) {
	input := []models.Observation{
		obs("A", day(2024, 1, 1), 0),
		obs("A", day(2024, 1, 2), 5),
		obs("A", day(2024, 1, 3), 5),
	}

	rows := DoDChange(input)

	require.Len(t, rows, 3)
	assert.Equal(t, models.ChangeUndefined, rows[1].Status)
	assert.False(t, math.IsInf(rows[1].PctChange, 0))
	assert.False(t, math.IsNaN(rows[1].PctChange))

	// A flat day is a defined zero change, distinct from absent
	assert.Equal(t, models.ChangeDefined, rows[2].Status)
	assert.Zero(t, rows[2].PctChange)
}

func TestPlottable(t *testing.T) {
	rows := DoDChange([]models.Observation{
		obs("A", day(2024, 1, 1), 0),
		obs("A", day(2024, 1, 2), 5),
		obs("A", day(2024, 1, 3), 10),
	})

	plot := Plottable(rows)

	require.Len(t, plot, 2)
	assert.Equal(t, models.ChangeUndefined, plot[0].Status)
	assert.Equal(t, models.ChangeDefined, plot[1].Status)
	assert.InDelta(t, 100.0, plot[1].PctChange, 1e-9)

	latest, ok := Latest(rows)
	require.True(t, ok)
	assert.Equal(t, day(2024, 1, 3), latest.Date)

	_, ok = Latest(nil)
	assert.False(t, ok)
	assert.Empty(t, DoDChange(nil))
}

func TestStats(t *testing.T) {
	st := Stats("A", []models.Observation{
		obs("A", day(2024, 1, 1), 2),
		obs("A", day(2024, 1, 2), 4),
		obs("A", day(2024, 1, 3), 4),
		obs("A", day(2024, 1, 4), 4),
		obs("A", day(2024, 1, 5), 5),
		obs("A", day(2024, 1, 6), 5),
		obs("A", day(2024, 1, 7), 7),
		obs("A", day(2024, 1, 8), 9),
	})

	assert.Equal(t, 8, st.Count)
	assert.Equal(t, 2.0, st.Min)
	assert.Equal(t, 9.0, st.Max)
	assert.Equal(t, 5.0, st.Mean)
	assert.InDelta(t, math.Sqrt(32.0/7.0), st.Stdev, 1e-12)

	single := Stats("B", []models.Observation{obs("B", day(2024, 1, 1), -3)})
	assert.Equal(t, -3.0, single.Min)
	assert.Equal(t, -3.0, single.Max)
	assert.Zero(t, single.Stdev)

	assert.Zero(t, Stats("C", nil).Count)
}

package store

import (
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/curvedash/pkg/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleRows() []models.RawRow {
	return []models.RawRow{
		{Line: 1, Symbol: "WEACC20", Description: "A Pk 25", AssessDate: "2024-01-02", Value: "12"},
		{Line: 2, Symbol: "WEACC20", Description: "A Pk 25", AssessDate: "2024-01-01", Value: "10"},
		{Line: 3, Symbol: "AARLQ20", Description: "B OPk 25", AssessDate: "2024-01-01 00:00:00", Value: "5"},
		{Line: 4, Symbol: "AARLQ20", Description: "B OPk 25", AssessDate: "2024-01-02", Value: "5"},
	}
}

func TestLoad(t *testing.T) {
	s := New()
	report := s.Load(sampleRows())

	assert.Equal(t, 4, report.Accepted)
	assert.Zero(t, report.Replaced)
	assert.NoError(t, report.Err())
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []string{"A Pk 25", "B OPk 25"}, s.CurveIDs())

	obs, ok := s.Curve("A Pk 25")
	require.True(t, ok)
	require.Len(t, obs, 2)
	assert.Equal(t, date(2024, 1, 1), obs[0].Date)
	assert.Equal(t, 10.0, obs[0].Value)
	assert.Equal(t, "WEACC20", obs[0].Symbol)
	assert.Equal(t, date(2024, 1, 2), obs[1].Date)
}

func TestLoadCollectsMalformedRows(t *testing.T) {
	rows := append(sampleRows(),
		models.RawRow{Line: 5, Description: "C Pk 25", AssessDate: "not-a-date", Value: "1"},
		models.RawRow{Line: 6, Description: "C Pk 25", AssessDate: "2024-01-03", Value: ""},
		models.RawRow{Line: 7, Description: "C Pk 25", AssessDate: "2024-01-04", Value: "abc"},
		models.RawRow{Line: 8, Description: "   ", AssessDate: "2024-01-04", Value: "3"},
		models.RawRow{Line: 9, Description: "C Pk 25", AssessDate: "2024-01-05", Value: "1,250.5"},
	)

	s := New()
	report := s.Load(rows)

	assert.Equal(t, 5, report.Accepted)
	require.Len(t, report.Rejected, 4)
	assert.Equal(t, 5, report.Rejected[0].Line)
	assert.Equal(t, "assess_date", report.Rejected[0].Field)
	assert.Equal(t, "value", report.Rejected[1].Field)
	assert.Equal(t, "missing value", report.Rejected[1].Reason)
	assert.Equal(t, "value", report.Rejected[2].Field)
	assert.Equal(t, "description", report.Rejected[3].Field)

	err := report.Err()
	require.Error(t, err)
	var rowErr *RowError
	assert.True(t, errors.As(err, &rowErr))
	assert.Contains(t, err.Error(), "4 rows rejected")

	// The rest of the table is still usable
	obs, ok := s.Curve("C Pk 25")
	require.True(t, ok)
	require.Len(t, obs, 1)
	assert.Equal(t, 1250.5, obs[0].Value)
}

func TestLoadLaterDuplicateReplaces(t *testing.T) {
	s := New()
	report := s.Load([]models.RawRow{
		{Line: 1, Description: "A Pk 25", AssessDate: "2024-01-01", Value: "10"},
		{Line: 2, Description: "A  Pk 25 ", AssessDate: "2024-01-01", Value: "11"},
	})

	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, 1, report.Replaced)
	obs, ok := s.Curve("A Pk 25")
	require.True(t, ok)
	require.Len(t, obs, 1)
	assert.Equal(t, 11.0, obs[0].Value)
}

func TestLoadReplacesContents(t *testing.T) {
	s := New()
	s.Load(sampleRows())
	s.Load([]models.RawRow{{Line: 1, Description: "Z Pk", AssessDate: "2024-02-01", Value: "1"}})

	assert.Equal(t, []string{"Z Pk"}, s.CurveIDs())
	assert.False(t, s.Has("A Pk 25"))
}

func TestMerge(t *testing.T) {
	s := New()
	s.Load(sampleRows())
	report := s.Merge([]models.RawRow{
		{Line: 1, Description: "A Pk 25", AssessDate: "2024-01-02", Value: "13"},
		{Line: 2, Description: "A Pk 25", AssessDate: "2024-01-03", Value: "14"},
	})

	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, 1, report.Replaced)
	obs, _ := s.Curve("A Pk 25")
	require.Len(t, obs, 3)
	assert.Equal(t, 13.0, obs[1].Value)
	assert.Equal(t, 14.0, obs[2].Value)
	assert.True(t, s.Has("B OPk 25"))
}

func TestFilter(t *testing.T) {
	s := New()
	s.Load(sampleRows())

	byCurve := s.Filter(ByCurves("B OPk 25"))
	assert.Len(t, byCurve, 2)

	byDate := s.Filter(ByDateRange(date(2024, 1, 2), time.Time{}))
	assert.Len(t, byDate, 2)
	for _, o := range byDate {
		assert.Equal(t, date(2024, 1, 2), o.Date)
	}

	combined := s.Filter(
		ByNamePattern(regexp.MustCompile(`(?i)\bpk\b`)),
		ByDateRange(time.Time{}, date(2024, 1, 1)),
	)
	require.Len(t, combined, 1)
	assert.Equal(t, "A Pk 25", combined[0].CurveID)

	assert.Len(t, s.Filter(), 4)
	assert.NotNil(t, s.Filter(ByCurves("missing")))
}

func TestAllReturnsCopy(t *testing.T) {
	s := New()
	s.Load(sampleRows())

	all := s.All()
	all[0].Value = 999

	again := s.All()
	assert.NotEqual(t, 999.0, again[0].Value)
}

func TestEmptyStore(t *testing.T) {
	s := New()
	assert.Empty(t, s.All())
	assert.Equal(t, []string{}, s.CurveIDs())
	_, ok := s.Curve("A Pk 25")
	assert.False(t, ok)
}

func TestConcurrentLoadAndRead(t *testing.T) {
	s := New()
	small := sampleRows()[:2]
	large := sampleRows()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				s.Load(small)
			} else {
				s.Load(large)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			n := len(s.All())
			assert.Contains(t, []int{0, 2, 4}, n)
		}
	}()
	wg.Wait()
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2024-03-05", "2024-03-05 13:00:00", "2024-03-05T13:00:00Z", "03/05/2024"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, date(2024, 3, 5), got, in)
	}

	_, err := ParseDate("")
	assert.Error(t, err)
	_, err = ParseDate("5 March")
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(" 42.5 ")
	require.NoError(t, err)
	assert.Equal(t, 42.5, v)

	_, err = ParseValue("NaN")
	assert.Error(t, err)
	_, err = ParseValue("Inf")
	assert.Error(t, err)
}

func TestViewIsStable(t *testing.T) {
	s := New()
	s.Load(sampleRows())
	v := s.View()

	s.Load(nil)

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 4, v.Len())
	assert.True(t, v.Has("A Pk 25"))
	assert.Equal(t, []string{"A Pk 25", "B OPk 25"}, v.CurveIDs())
}

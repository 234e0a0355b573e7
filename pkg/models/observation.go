package models

import "time"

// Observation is a single daily price assessment for one curve
type Observation struct {
	Date    time.Time `json:"date"`     // UTC midnight of the assessment day
	CurveID string    `json:"curve_id"` // Canonical curve description, e.g. "Palo Verde Pk Mar25"
	Symbol  string    `json:"symbol,omitempty"`
	Value   float64   `json:"value"`
}

// RawRow is an unvalidated row handed over by a data source
type RawRow struct {
	Line        int    // Source line or row number, for error reporting
	Symbol      string
	Description string
	AssessDate  string
	Value       string
}

// Series is every observation of one curve, oldest first
type Series struct {
	CurveID string        `json:"curve_id"`
	Class   CurveClass    `json:"class"`
	Points  []Observation `json:"points"`
}

// SeasonalPoint is the mean value of a curve for one calendar month of one year
type SeasonalPoint struct {
	Year      int        `json:"year"`
	Month     time.Month `json:"month"`
	CurveID   string     `json:"curve_id"`
	MeanValue float64    `json:"mean_value"`
	Count     int        `json:"count"`
}

// ComparisonRow holds both curves' values on a date they share
type ComparisonRow struct {
	Date       time.Time `json:"date"`
	ValueA     float64   `json:"value_a"`
	ValueB     float64   `json:"value_b"`
	Difference float64   `json:"difference"` // ValueA - ValueB
}

// CurveStats summarizes all values of a curve
type CurveStats struct {
	CurveID string  `json:"curve_id"`
	Count   int     `json:"count"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	Stdev   float64 `json:"stdev"` // Sample standard deviation, 0 with fewer than two values
}

// Package pipeline is the query surface the CLI and publishers read curves through.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/jgoulah/curvedash/internal/analysis"
	"github.com/jgoulah/curvedash/internal/classify"
	"github.com/jgoulah/curvedash/internal/store"
	"github.com/jgoulah/curvedash/pkg/models"
)

// ErrUnknownCurve is returned when a query names a curve the store does not hold
var ErrUnknownCurve = errors.New("curve not found")

// Pipeline answers curve queries from the current store snapshot. Results
// are recomputed on every call; refreshing is up to the caller.
type Pipeline struct {
	store *store.Store
}

// New creates a pipeline over st, or over a fresh empty store when st is nil
func New(st *store.Store) *Pipeline {
	if st == nil {
		st = store.New()
	}
	return &Pipeline{store: st}
}

// Store returns the underlying observation store
func (p *Pipeline) Store() *store.Store {
	return p.store
}

// Refresh replaces the store contents with rows
func (p *Pipeline) Refresh(rows []models.RawRow) store.LoadReport {
	return p.store.Load(rows)
}

// Merge overlays rows on the store contents
func (p *Pipeline) Merge(rows []models.RawRow) store.LoadReport {
	return p.store.Merge(rows)
}

// ListCurves returns every curve identifier in lexical order
func (p *Pipeline) ListCurves() []string {
	return p.store.CurveIDs()
}

// PeakCurves returns one series per peak curve
func (p *Pipeline) PeakCurves() []models.Series {
	return p.seriesOf(models.ClassPeak)
}

// OffPeakCurves returns one series per off-peak curve
func (p *Pipeline) OffPeakCurves() []models.Series {
	return p.seriesOf(models.ClassOffPeak)
}

// CurvesByClass returns one series per curve of the given class
func (p *Pipeline) CurvesByClass(class models.CurveClass) []models.Series {
	return p.seriesOf(class)
}

// Seasonality returns the monthly means of a curve across all loaded years
func (p *Pipeline) Seasonality(curveID string) ([]models.SeasonalPoint, error) {
	obs, id, err := curve(p.store.View(), curveID)
	if err != nil {
		return nil, err
	}
	return analysis.Seasonality(obs, id), nil
}

// Compare aligns two curves on their shared dates. No shared dates gives an
// empty result, not an error.
func (p *Pipeline) Compare(curveA, curveB string) ([]models.ComparisonRow, error) {
	view := p.store.View()
	obsA, idA, err := curve(view, curveA)
	if err != nil {
		return nil, err
	}
	obsB, idB, err := curve(view, curveB)
	if err != nil {
		return nil, err
	}
	if idA == idB {
		return analysis.Compare(obsA, idA, idB), nil
	}
	return analysis.Compare(append(obsA, obsB...), idA, idB), nil
}

// DoDChange returns the day-over-day changes of a curve, oldest first
func (p *Pipeline) DoDChange(curveID string) ([]models.ChangeRow, error) {
	obs, _, err := curve(p.store.View(), curveID)
	if err != nil {
		return nil, err
	}
	return analysis.DoDChange(obs), nil
}

// Changes returns the day-over-day changes of every curve, ordered by curve and date
func (p *Pipeline) Changes() []models.ChangeRow {
	view := p.store.View()
	rows := []models.ChangeRow{}
	for _, id := range view.CurveIDs() {
		obs, ok := view.Curve(id)
		if !ok {
			continue
		}
		rows = append(rows, analysis.DoDChange(obs)...)
	}
	return rows
}

// Latest returns the most recent change row of every curve
func (p *Pipeline) Latest() []models.ChangeRow {
	view := p.store.View()
	rows := []models.ChangeRow{}
	for _, id := range view.CurveIDs() {
		obs, ok := view.Curve(id)
		if !ok {
			continue
		}
		if row, ok := analysis.Latest(analysis.DoDChange(obs)); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// Summary returns descriptive statistics for every curve
func (p *Pipeline) Summary() []models.CurveStats {
	view := p.store.View()
	ids := view.CurveIDs()
	stats := make([]models.CurveStats, 0, len(ids))
	for _, id := range ids {
		obs, ok := view.Curve(id)
		if !ok {
			continue
		}
		stats = append(stats, analysis.Stats(id, obs))
	}
	return stats
}

func curve(view store.View, curveID string) ([]models.Observation, string, error) {
	id := classify.Canonical(curveID)
	obs, ok := view.Curve(id)
	if !ok {
		return nil, id, fmt.Errorf("%w: %q", ErrUnknownCurve, curveID)
	}
	return obs, id, nil
}

func (p *Pipeline) seriesOf(class models.CurveClass) []models.Series {
	view := p.store.View()
	series := []models.Series{}
	for _, id := range view.CurveIDs() {
		if classify.Classify(id) != class {
			continue
		}
		obs, ok := view.Curve(id)
		if !ok {
			continue
		}
		series = append(series, models.Series{CurveID: id, Class: class, Points: obs})
	}
	return series
}

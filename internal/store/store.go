// Package store holds the in-memory observation snapshot every query reads from.
package store

import (
	"log/slog"
	"regexp"
	"slices"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jgoulah/curvedash/internal/classify"
	"github.com/jgoulah/curvedash/pkg/models"
)

// Predicate selects observations in Filter
type Predicate func(models.Observation) bool

// LoadReport summarizes a Load or Merge call
type LoadReport struct {
	Accepted int        // rows that made it into the snapshot
	Replaced int        // accepted rows that overwrote an earlier (curve, date)
	Rejected LoadErrors // malformed rows
}

// Err returns the rejected rows as an error, or nil when every row was accepted
func (r LoadReport) Err() error {
	if len(r.Rejected) == 0 {
		return nil
	}
	return r.Rejected
}

type curveDay struct {
	curve string
	day   time.Time
}

// snapshot is never mutated after it is published
type snapshot struct {
	all     []models.Observation            // ordered by curve, then date
	byCurve map[string][]models.Observation // each ordered by date
	ids     []string
}

// Store is safe for concurrent use. Loads build a fresh snapshot and swap it
// in atomically, so readers never observe a partial load.
type Store struct {
	current atomic.Pointer[snapshot]
}

// New creates an empty store
func New() *Store {
	s := &Store{}
	s.current.Store(buildSnapshot(nil))
	return s
}

// Load replaces the store contents with rows
func (s *Store) Load(rows []models.RawRow) LoadReport {
	index := make(map[curveDay]models.Observation, len(rows))
	report := apply(index, rows)
	s.current.Store(buildSnapshot(index))
	logReport("Loaded observations", report)
	return report
}

// Merge overlays rows on the current contents. A row for a (curve, date)
// already present replaces the stored observation.
func (s *Store) Merge(rows []models.RawRow) LoadReport {
	for {
		old := s.current.Load()
		index := make(map[curveDay]models.Observation, len(old.all)+len(rows))
		for _, o := range old.all {
			index[curveDay{o.CurveID, o.Date}] = o
		}
		report := apply(index, rows)
		if s.current.CompareAndSwap(old, buildSnapshot(index)) {
			logReport("Merged observations", report)
			return report
		}
	}
}

// View pins the current snapshot. Every read through the returned view sees
// the same contents even if a Load runs in between.
func (s *Store) View() View {
	return View{snap: s.current.Load()}
}

// All returns every observation ordered by curve and date
func (s *Store) All() []models.Observation { return s.View().All() }

// Len returns the number of stored observations
func (s *Store) Len() int { return s.View().Len() }

// Filter returns the observations matching every given predicate
func (s *Store) Filter(preds ...Predicate) []models.Observation { return s.View().Filter(preds...) }

// Curve returns the observations of one curve ordered by date, and whether the curve exists
func (s *Store) Curve(curveID string) ([]models.Observation, bool) { return s.View().Curve(curveID) }

// Has reports whether the store holds any observation of the curve
func (s *Store) Has(curveID string) bool { return s.View().Has(curveID) }

// CurveIDs returns the distinct curve identifiers in lexical order
func (s *Store) CurveIDs() []string { return s.View().CurveIDs() }

// View is a read-only handle on one snapshot
type View struct {
	snap *snapshot
}

func (v View) All() []models.Observation {
	return slices.Clone(v.snap.all)
}

func (v View) Len() int {
	return len(v.snap.all)
}

func (v View) Filter(preds ...Predicate) []models.Observation {
	match := And(preds...)
	result := []models.Observation{}
	for _, o := range v.snap.all {
		if match(o) {
			result = append(result, o)
		}
	}
	return result
}

func (v View) Curve(curveID string) ([]models.Observation, bool) {
	obs, ok := v.snap.byCurve[classify.Canonical(curveID)]
	if !ok {
		return nil, false
	}
	return slices.Clone(obs), true
}

func (v View) Has(curveID string) bool {
	_, ok := v.snap.byCurve[classify.Canonical(curveID)]
	return ok
}

func (v View) CurveIDs() []string {
	return slices.Clone(v.snap.ids)
}

// And combines predicates; an empty list matches everything
func And(preds ...Predicate) Predicate {
	return func(o models.Observation) bool {
		for _, p := range preds {
			if p != nil && !p(o) {
				return false
			}
		}
		return true
	}
}

// ByCurves matches observations of any of the listed curves
func ByCurves(curveIDs ...string) Predicate {
	set := make(map[string]struct{}, len(curveIDs))
	for _, id := range curveIDs {
		set[classify.Canonical(id)] = struct{}{}
	}
	return func(o models.Observation) bool {
		_, ok := set[o.CurveID]
		return ok
	}
}

// ByDateRange matches observations dated within [from, to]. A zero bound is open.
func ByDateRange(from, to time.Time) Predicate {
	if !from.IsZero() {
		from = Day(from)
	}
	if !to.IsZero() {
		to = Day(to)
	}
	return func(o models.Observation) bool {
		if !from.IsZero() && o.Date.Before(from) {
			return false
		}
		if !to.IsZero() && o.Date.After(to) {
			return false
		}
		return true
	}
}

// ByNamePattern matches observations whose curve identifier matches re
func ByNamePattern(re *regexp.Regexp) Predicate {
	return func(o models.Observation) bool {
		return re.MatchString(o.CurveID)
	}
}

// apply validates rows into index; later rows win
func apply(index map[curveDay]models.Observation, rows []models.RawRow) LoadReport {
	var report LoadReport
	for _, row := range rows {
		obs, rerr := toObservation(row)
		if rerr != nil {
			slog.Warn("Rejected row",
				slog.Int("line", rerr.Line),
				slog.String("field", rerr.Field),
				slog.String("reason", rerr.Reason))
			report.Rejected = append(report.Rejected, rerr)
			continue
		}
		key := curveDay{obs.CurveID, obs.Date}
		if _, dup := index[key]; dup {
			report.Replaced++
		}
		index[key] = obs
		report.Accepted++
	}
	return report
}

func toObservation(row models.RawRow) (models.Observation, *RowError) {
	curve := classify.Canonical(row.Description)
	if curve == "" {
		return models.Observation{}, &RowError{Line: row.Line, Field: "description", Value: row.Description, Reason: "empty curve description"}
	}
	day, err := ParseDate(row.AssessDate)
	if err != nil {
		return models.Observation{}, &RowError{Line: row.Line, Field: "assess_date", Value: row.AssessDate, Reason: err.Error()}
	}
	value, err := ParseValue(row.Value)
	if err != nil {
		return models.Observation{}, &RowError{Line: row.Line, Field: "value", Value: row.Value, Reason: err.Error()}
	}
	return models.Observation{
		Date:    day,
		CurveID: curve,
		Symbol:  strings.TrimSpace(row.Symbol),
		Value:   value,
	}, nil
}

func buildSnapshot(index map[curveDay]models.Observation) *snapshot {
	snap := &snapshot{
		all:     make([]models.Observation, 0, len(index)),
		byCurve: make(map[string][]models.Observation),
	}
	for _, o := range index {
		snap.all = append(snap.all, o)
	}
	sort.Slice(snap.all, func(i, j int) bool {
		a, b := snap.all[i], snap.all[j]
		if a.CurveID != b.CurveID {
			return a.CurveID < b.CurveID
		}
		return a.Date.Before(b.Date)
	})
	for _, o := range snap.all {
		if _, ok := snap.byCurve[o.CurveID]; !ok {
			snap.ids = append(snap.ids, o.CurveID)
		}
		snap.byCurve[o.CurveID] = append(snap.byCurve[o.CurveID], o)
	}
	if snap.ids == nil {
		snap.ids = []string{}
	}
	return snap
}

func logReport(msg string, r LoadReport) {
	slog.Info(msg,
		slog.Int("accepted", r.Accepted),
		slog.Int("replaced", r.Replaced),
		slog.Int("rejected", len(r.Rejected)))
}

// Package classify labels curves as peak or off-peak from the tokens in their description.
package classify

import (
	"strings"

	"github.com/jgoulah/curvedash/pkg/models"
)

const (
	peakToken    = "pk"
	offPeakToken = "opk"
)

// Classify returns the delivery class encoded in a curve description.
// Matching is per whitespace-separated token and case-insensitive, so
// "OPk" never counts as a "Pk" hit. Off-peak wins if both tokens appear.
func Classify(curveID string) models.CurveClass {
	var peak bool
	for _, tok := range strings.Fields(curveID) {
		switch strings.ToLower(tok) {
		case offPeakToken:
			return models.ClassOffPeak
		case peakToken:
			peak = true
		}
	}
	if peak {
		return models.ClassPeak
	}
	return models.ClassOther
}

// Canonical returns the identifier used to key a curve: surrounding
// whitespace dropped and inner runs collapsed to a single space.
func Canonical(description string) string {
	return strings.Join(strings.Fields(description), " ")
}

// FilterByClass returns the observations whose curve classifies as class
func FilterByClass(obs []models.Observation, class models.CurveClass) []models.Observation {
	result := []models.Observation{}
	cache := make(map[string]models.CurveClass)
	for _, o := range obs {
		c, ok := cache[o.CurveID]
		if !ok {
			c = Classify(o.CurveID)
			cache[o.CurveID] = c
		}
		if c == class {
			result = append(result, o)
		}
	}
	return result
}

// ParseClass maps a user-supplied class name to a CurveClass
func ParseClass(name string) (models.CurveClass, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "peak", "pk":
		return models.ClassPeak, true
	case "offpeak", "off-peak", "opk":
		return models.ClassOffPeak, true
	case "other":
		return models.ClassOther, true
	default:
		return models.ClassOther, false
	}
}

package analysis

import (
	"math"

	"github.com/jgoulah/curvedash/pkg/models"
)

// Stats summarizes the values of one curve. Stdev is the sample standard
// deviation (n-1) and is 0 for fewer than two values.
func Stats(curveID string, obs []models.Observation) models.CurveStats {
	st := models.CurveStats{CurveID: curveID}
	var sum float64
	for _, o := range obs {
		if st.Count == 0 || o.Value < st.Min {
			st.Min = o.Value
		}
		if st.Count == 0 || o.Value > st.Max {
			st.Max = o.Value
		}
		sum += o.Value
		st.Count++
	}
	if st.Count == 0 {
		return st
	}
	st.Mean = sum / float64(st.Count)

	if st.Count > 1 {
		var sq float64
		for _, o := range obs {
			d := o.Value - st.Mean
			sq += d * d
		}
		st.Stdev = math.Sqrt(sq / float64(st.Count-1))
	}
	return st
}

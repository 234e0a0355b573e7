package models

// CurveClass is the delivery period a curve represents
type CurveClass int

const (
	ClassOther CurveClass = iota
	ClassPeak
	ClassOffPeak
)

func (c CurveClass) String() string {
	switch c {
	case ClassPeak:
		return "peak"
	case ClassOffPeak:
		return "offpeak"
	default:
		return "other"
	}
}

// MarshalText encodes the class by name
func (c CurveClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

package models

import "time"

// ChangeStatus tells whether a ChangeRow carries a usable percentage
type ChangeStatus int

const (
	// ChangeAbsent marks the first observation of a curve, which has no prior value
	ChangeAbsent ChangeStatus = iota
	// ChangeDefined marks a computed percentage change
	ChangeDefined
	// ChangeUndefined marks a change whose prior value was zero
	ChangeUndefined
)

func (s ChangeStatus) String() string {
	switch s {
	case ChangeAbsent:
		return "absent"
	case ChangeDefined:
		return "defined"
	case ChangeUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// MarshalText lets the status travel as a readable string in JSON payloads
func (s ChangeStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ChangeRow is the day-over-day percentage change of one observation
type ChangeRow struct {
	Date      time.Time    `json:"date"`
	CurveID   string       `json:"curve_id"`
	Value     float64      `json:"value"`
	PctChange float64      `json:"pct_change"` // Only meaningful when Status is ChangeDefined
	Status    ChangeStatus `json:"status"`
}

// Defined reports whether PctChange holds a computed value
func (r ChangeRow) Defined() bool {
	return r.Status == ChangeDefined
}

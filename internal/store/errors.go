package store

import (
	"fmt"
	"strings"
)

// RowError describes a source row that was rejected during a load
type RowError struct {
	Line   int
	Field  string
	Value  string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s %q: %s", e.Line, e.Field, e.Value, e.Reason)
}

// LoadErrors collects every rejected row of a single load
type LoadErrors []*RowError

func (le LoadErrors) Error() string {
	switch len(le) {
	case 0:
		return "no load errors"
	case 1:
		return le[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d rows rejected", len(le))
	for i, e := range le {
		if i == 3 {
			fmt.Fprintf(&b, "; and %d more", len(le)-i)
			break
		}
		b.WriteString("; ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap exposes the individual row errors to errors.As
func (le LoadErrors) Unwrap() []error {
	errs := make([]error, len(le))
	for i, e := range le {
		errs[i] = e
	}
	return errs
}

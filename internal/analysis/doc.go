// Package analysis derives the seasonality, comparison, day-over-day and
// summary views from curve observations. Every function is pure: inputs are
// never modified and input order is never relied upon.
package analysis

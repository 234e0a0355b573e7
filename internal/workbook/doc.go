// Package workbook moves price tables in and out of xlsx files: it reads the
// raw assessment sheet of an export and writes the multi-sheet price report.
package workbook

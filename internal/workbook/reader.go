package workbook

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jgoulah/curvedash/pkg/models"
)

// Column headers recognised in a raw price sheet, upper-cased
var (
	symbolHeaders      = []string{"SYMBOL"}
	descriptionHeaders = []string{"DESCRIPTION"}
	dateHeaders        = []string{"ASSESSDATE", "ASSESS_DATE", "DATE"}
	valueHeaders       = []string{"VALUE", "PRICE"}
)

type columns struct {
	symbol, description, date, value int
}

// ReadRawData reads the price rows of sheet. The header row is located by
// name, so leading title rows and column order do not matter. Cell values are
// returned unvalidated; date cells stored as Excel serials are rendered as
// YYYY-MM-DD.
func ReadRawData(path, sheet string) ([]models.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	headerRow, cols, ok := findHeader(rows)
	if !ok {
		return nil, fmt.Errorf("sheet %q has no DESCRIPTION/ASSESSDATE/VALUE header row", sheet)
	}

	slog.Debug("Found price header",
		slog.String("sheet", sheet),
		slog.Int("row", headerRow+1))

	var result []models.RawRow
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		result = append(result, models.RawRow{
			Line:        i + 1,
			Symbol:      cell(row, cols.symbol),
			Description: cell(row, cols.description),
			AssessDate:  dateCell(cell(row, cols.date)),
			Value:       cell(row, cols.value),
		})
	}

	slog.Info("Read workbook rows",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("rows", len(result)))
	return result, nil
}

func findHeader(rows [][]string) (int, columns, bool) {
	for i, row := range rows {
		cols := columns{symbol: -1, description: -1, date: -1, value: -1}
		for j, h := range row {
			h = strings.ToUpper(strings.TrimSpace(h))
			switch {
			case matches(h, symbolHeaders):
				cols.symbol = j
			case matches(h, descriptionHeaders):
				cols.description = j
			case matches(h, dateHeaders) && cols.date < 0:
				cols.date = j
			case matches(h, valueHeaders) && cols.value < 0:
				cols.value = j
			}
		}
		if cols.description >= 0 && cols.date >= 0 && cols.value >= 0 {
			return i, cols, true
		}
	}
	return -1, columns{}, false
}

func matches(h string, names []string) bool {
	for _, n := range names {
		if h == n {
			return true
		}
	}
	return false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// dateCell converts an Excel serial date to YYYY-MM-DD and leaves anything else alone
func dateCell(s string) string {
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02")
}

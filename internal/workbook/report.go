package workbook

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/jgoulah/curvedash/pkg/models"
)

// Sheet names of the price report
const (
	SheetPrices  = "Price Data"
	SheetChanges = "DoD % Change"
	SheetStats   = "Stat Summary"
	SheetRaw     = "Raw Data"
)

// Report is everything written to the report workbook
type Report struct {
	Observations []models.Observation // ordered by curve and date
	Changes      []models.ChangeRow   // ordered by curve and date
	Stats        []models.CurveStats
}

// WriteReport writes the four report sheets to path, replacing any existing file
func WriteReport(path string, r Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	dateFmt := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return fmt.Errorf("creating date style: %w", err)
	}

	if err := f.SetSheetName(f.GetSheetName(0), SheetPrices); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	for _, name := range []string{SheetChanges, SheetStats, SheetRaw} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("adding sheet %q: %w", name, err)
		}
	}

	prices := [][]interface{}{{"SYMBOL", "DESCRIPTION", "ASSESSDATE", "PRICE"}}
	raw := [][]interface{}{{"SYMBOL", "DESCRIPTION", "ASSESSDATE", "VALUE"}}
	for _, o := range r.Observations {
		row := []interface{}{o.Symbol, o.CurveID, excelize.Cell{StyleID: dateStyle, Value: o.Date}, o.Value}
		prices = append(prices, row)
		raw = append(raw, row)
	}

	changes := [][]interface{}{{"ASSESSDATE", "DESCRIPTION", "DoD_Change_Percent"}}
	for _, c := range r.Changes {
		var pct interface{}
		if c.Defined() {
			pct = c.PctChange
		}
		changes = append(changes, []interface{}{excelize.Cell{StyleID: dateStyle, Value: c.Date}, c.CurveID, pct})
	}

	stats := [][]interface{}{{"DESCRIPTION", "Min", "Max", "Average", "Stdev"}}
	for _, s := range r.Stats {
		stats = append(stats, []interface{}{s.CurveID, s.Min, s.Max, s.Mean, s.Stdev})
	}

	for _, sheet := range []struct {
		name string
		rows [][]interface{}
	}{
		{SheetPrices, prices},
		{SheetChanges, changes},
		{SheetStats, stats},
		{SheetRaw, raw},
	} {
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}

	slog.Info("Wrote report",
		slog.String("path", path),
		slog.Int("observations", len(r.Observations)),
		slog.Int("curves", len(r.Stats)))
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("opening stream writer for %q: %w", sheet, err)
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cellRef, row); err != nil {
			return fmt.Errorf("writing %q row %d: %w", sheet, i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing %q: %w", sheet, err)
	}
	return nil
}

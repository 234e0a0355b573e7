package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jgoulah/curvedash/internal/config"
	"github.com/jgoulah/curvedash/internal/database"
	"github.com/jgoulah/curvedash/internal/store"
	"github.com/jgoulah/curvedash/internal/workbook"
	"github.com/jgoulah/curvedash/pkg/models"
)

var importSheet string

var importCmd = &cobra.Command{
	Use:   "import [file.xlsx]",
	Short: "Import price assessments from an xlsx export",
	Long: `Reads the raw price sheet of an xlsx export and stores the rows in the local
SQLite database. Malformed rows are reported and skipped. Rows already in the
database for the same curve and date are replaced.

The file defaults to workbook.path from the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "sheet holding raw prices (default from config, or \"Raw Data\")")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Import started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	path := cfg.GetWorkbookPath()
	if len(args) == 1 {
		path = args[0]
	}
	sheet := importSheet
	if sheet == "" {
		sheet = cfg.GetSheet()
	}

	rows, err := workbook.ReadRawData(path, sheet)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	// Validate and de-duplicate through a scratch store before touching the database
	st := store.New()
	report := st.Load(rows)
	printRejected(report)

	prices := selectPrices(cfg, st)
	if len(prices) == 0 {
		fmt.Println("No rows to import")
		return nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	n, err := db.InsertPrices(prices)
	if err != nil {
		return fmt.Errorf("storing prices: %w", err)
	}

	total, err := db.CountPrices()
	if err != nil {
		return err
	}

	curves := make(map[string]struct{})
	for _, p := range prices {
		curves[p.Description] = struct{}{}
	}

	fmt.Printf("✓ Imported %s rows for %d curves (%s rows in database)\n",
		humanize.Comma(int64(n)), len(curves), humanize.Comma(int64(total)))
	return nil
}

// selectPrices keeps the observations allowed by the configured symbols and start date
func selectPrices(cfg *config.Config, st *store.Store) []database.Price {
	preds := []store.Predicate{store.ByDateRange(cfg.GetSince(), time.Time{})}
	if len(cfg.Symbols) > 0 {
		allowed := make(map[string]bool, len(cfg.Symbols))
		for _, s := range cfg.Symbols {
			allowed[s] = true
		}
		preds = append(preds, func(o models.Observation) bool { return allowed[o.Symbol] })
	}

	var prices []database.Price
	for _, o := range st.Filter(preds...) {
		prices = append(prices, database.Price{
			Symbol:      o.Symbol,
			Description: o.CurveID,
			AssessDate:  o.Date,
			Value:       o.Value,
			Bate:        cfg.GetBate(),
		})
	}
	return prices
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jgoulah/curvedash/internal/config"
	"github.com/jgoulah/curvedash/internal/database"
	"github.com/jgoulah/curvedash/internal/pipeline"
	"github.com/jgoulah/curvedash/internal/store"
	"github.com/jgoulah/curvedash/internal/workbook"
)

var (
	cfgFile      string
	dbPath       string
	workbookPath string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "curvedash",
	Short: "Analyze daily power price curves",
	Long: `CurveDash loads daily price assessments for peak and off-peak power curves
(Four Corners, Mona, Palo Verde, Pinnacle Peak) and derives seasonality,
curve-to-curve comparisons and day-over-day changes.

Prices are read from the local SQLite database (see 'curvedash import') or
directly from an xlsx export with --workbook.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default from config, or ./data.db)")
	rootCmd.PersistentFlags().StringVar(&workbookPath, "workbook", "", "read prices from this xlsx file instead of the database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// openDB opens the database connection
func openDB(cfg *config.Config) (*database.DB, error) {
	path := dbPath
	if path == "" {
		path = cfg.GetDatabasePath()
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return database.New(path)
}

// loadPipeline loads prices from the workbook or database into a fresh pipeline
func loadPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	p := pipeline.New(nil)

	if workbookPath != "" {
		rows, err := workbook.ReadRawData(workbookPath, cfg.GetSheet())
		if err != nil {
			return nil, fmt.Errorf("reading workbook: %w", err)
		}
		printRejected(p.Refresh(rows))
		return p, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	prices, err := db.ListPrices(database.Query{
		Since:   cfg.GetSince(),
		Symbols: cfg.Symbols,
		Bate:    cfg.GetBate(),
	})
	if err != nil {
		return nil, fmt.Errorf("listing prices: %w", err)
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("no prices in database, run 'curvedash import' first")
	}

	printRejected(p.Refresh(database.RawRows(prices)))
	return p, nil
}

// printRejected reports malformed rows without failing the command
func printRejected(report store.LoadReport) {
	if len(report.Rejected) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "Skipped %s malformed rows:\n", humanize.Comma(int64(len(report.Rejected))))
	for _, e := range report.Rejected {
		fmt.Fprintf(os.Stderr, "  %v\n", e)
	}
}

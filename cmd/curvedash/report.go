package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/curvedash/internal/workbook"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the price report workbook",
	Long: `Writes an xlsx report with the Price Data, DoD % Change, Stat Summary and
Raw Data sheets. The Raw Data sheet can be imported again with 'curvedash import'.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Report file (default from config, or reports/data_report.xlsx)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Report started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	p, err := loadPipeline(cfg)
	if err != nil {
		return err
	}

	path := reportOutput
	if path == "" {
		path = cfg.GetReportPath()
	}

	if err := workbook.WriteReport(path, workbook.Report{
		Observations: p.Store().All(),
		Changes:      p.Changes(),
		Stats:        p.Summary(),
	}); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	fmt.Printf("✓ Report generated and tables saved to %s\n", path)
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show min, max, average and standard deviation per curve",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	p, err := loadPipeline(cfg)
	if err != nil {
		return err
	}

	fmt.Println("------------------------------------------------------------------------------------")
	fmt.Printf("%-40s  %9s  %9s  %9s  %9s\n", "Curve", "Min", "Max", "Average", "Stdev")
	fmt.Println("------------------------------------------------------------------------------------")
	for _, s := range p.Summary() {
		fmt.Printf("%-40s  %9.2f  %9.2f  %9.2f  %9.2f\n", s.CurveID, s.Min, s.Max, s.Mean, s.Stdev)
	}
	fmt.Println("------------------------------------------------------------------------------------")
	return nil
}

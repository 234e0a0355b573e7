package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/curvedash/internal/analysis"
)

var seasonalityCmd = &cobra.Command{
	Use:   "seasonality [curve]",
	Short: "Show monthly average prices of a curve by year",
	Long: `Averages a curve's daily prices per calendar month and prints one line per year,
January through December. Months without data are left blank.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeasonality,
}

func init() {
	rootCmd.AddCommand(seasonalityCmd)
}

func runSeasonality(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	p, err := loadPipeline(cfg)
	if err != nil {
		return err
	}

	points, err := p.Seasonality(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("\nSeasonality Trend: %s\n", args[0])

	var header strings.Builder
	fmt.Fprintf(&header, "%-6s", "Year")
	for m := time.January; m <= time.December; m++ {
		fmt.Fprintf(&header, "  %7s", m.String()[:3])
	}
	rule := strings.Repeat("-", header.Len())

	fmt.Println(rule)
	fmt.Println(header.String())
	fmt.Println(rule)
	for _, line := range analysis.ByYear(points) {
		fmt.Printf("%-6d", line.Year)
		for _, mean := range line.Months {
			if mean == nil {
				fmt.Printf("  %7s", "")
				continue
			}
			fmt.Printf("  %7.2f", *mean)
		}
		fmt.Println()
	}
	fmt.Println(rule)
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [curveA] [curveB]",
	Short: "Compare two curves and their difference",
	Long: `Aligns two curves on the dates both were assessed and prints each value with
the difference A - B. Dates assessed for only one curve are skipped.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	p, err := loadPipeline(cfg)
	if err != nil {
		return err
	}

	rows, err := p.Compare(args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("\nValue Comparison and Difference: %s vs %s\n", args[0], args[1])
	if len(rows) == 0 {
		fmt.Println("No overlapping dates")
		return nil
	}

	fmt.Println("----------------------------------------------------")
	fmt.Printf("%-12s  %10s  %10s  %12s\n", "Date", "A", "B", "Difference")
	fmt.Println("----------------------------------------------------")

	var sum float64
	for _, r := range rows {
		fmt.Printf("%-12s  %10.2f  %10.2f  %12.2f\n", r.Date.Format("2006-01-02"), r.ValueA, r.ValueB, r.Difference)
		sum += r.Difference
	}

	fmt.Println("----------------------------------------------------")
	fmt.Printf("Average difference: %.2f (%d dates)\n", sum/float64(len(rows)), len(rows))
	return nil
}

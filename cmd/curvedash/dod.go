package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoulah/curvedash/internal/analysis"
	"github.com/jgoulah/curvedash/pkg/models"
)

var dodAll bool

var dodCmd = &cobra.Command{
	Use:   "dod [curve]",
	Short: "Show day-over-day percentage changes of a curve",
	Long: `Prints the percentage change of each assessment against the previous one.
Changes following a zero price cannot be computed and are shown as undefined.`,
	Args: cobra.ExactArgs(1),
	RunE: runDoD,
}

func init() {
	dodCmd.Flags().BoolVar(&dodAll, "all", false, "Include the first assessment, which has no prior value")
	rootCmd.AddCommand(dodCmd)
}

func runDoD(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	p, err := loadPipeline(cfg)
	if err != nil {
		return err
	}

	rows, err := p.DoDChange(args[0])
	if err != nil {
		return err
	}
	if !dodAll {
		rows = analysis.Plottable(rows)
	}

	fmt.Printf("\nDoD %% Change: %s\n", args[0])
	if len(rows) == 0 {
		fmt.Println("Not enough assessments to compute a change")
		return nil
	}

	fmt.Println("----------------------------------------")
	fmt.Printf("%-12s  %10s  %12s\n", "Date", "Price", "Change %")
	fmt.Println("----------------------------------------")

	var undefined int
	for _, r := range rows {
		var change string
		switch r.Status {
		case models.ChangeDefined:
			change = fmt.Sprintf("%+.2f", r.PctChange)
		case models.ChangeUndefined:
			change = "undefined"
			undefined++
		default:
			change = "-"
		}
		fmt.Printf("%-12s  %10.2f  %12s\n", r.Date.Format("2006-01-02"), r.Value, change)
	}

	fmt.Println("----------------------------------------")
	if undefined > 0 {
		fmt.Printf("%d changes undefined (prior price was zero)\n", undefined)
	}
	return nil
}

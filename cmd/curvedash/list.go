package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jgoulah/curvedash/internal/classify"
	"github.com/jgoulah/curvedash/pkg/models"
)

var listClass string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded curves",
	Long:  `Displays every loaded curve with its peak/off-peak class and date coverage.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listClass, "class", "", "Filter by class (peak, offpeak or other)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	p, err := loadPipeline(cfg)
	if err != nil {
		return err
	}

	var series []models.Series
	if listClass != "" {
		class, ok := classify.ParseClass(listClass)
		if !ok {
			return fmt.Errorf("unknown class: %s (available: peak, offpeak, other)", listClass)
		}
		series = p.CurvesByClass(class)
	} else {
		for _, class := range []models.CurveClass{models.ClassPeak, models.ClassOffPeak, models.ClassOther} {
			series = append(series, p.CurvesByClass(class)...)
		}
	}

	if len(series) == 0 {
		fmt.Println("No curves found")
		return nil
	}

	fmt.Println("------------------------------------------------------------------------------")
	fmt.Printf("%-40s  %-8s  %-10s  %-10s  %6s\n", "Curve", "Class", "First", "Last", "Days")
	fmt.Println("------------------------------------------------------------------------------")

	var total int
	for _, s := range series {
		first := s.Points[0].Date.Format("2006-01-02")
		last := s.Points[len(s.Points)-1].Date.Format("2006-01-02")
		fmt.Printf("%-40s  %-8s  %-10s  %-10s  %6d\n", s.CurveID, s.Class, first, last, len(s.Points))
		total += len(s.Points)
	}

	fmt.Println("------------------------------------------------------------------------------")
	fmt.Printf("Total: %d curves (%s observations)\n", len(series), humanize.Comma(int64(total)))
	return nil
}

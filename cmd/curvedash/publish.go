package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgoulah/curvedash/internal/publisher"
)

var publishCurve string

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the latest day-over-day change of each curve to MQTT",
	Long: `Publishes a retained JSON message per curve to <topic_prefix>/<curve>/dod
holding the most recent assessment and its day-over-day change.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishCurve, "curve", "", "Only publish this curve")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !cfg.MQTT.Enabled {
		return fmt.Errorf("MQTT is not enabled in config")
	}

	p, err := loadPipeline(cfg)
	if err != nil {
		return err
	}

	rows := p.Latest()
	if publishCurve != "" {
		all, err := p.DoDChange(publishCurve)
		if err != nil {
			return err
		}
		rows = all[len(all)-1:]
	}

	pub, err := publisher.New(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	published := 0
	for i, row := range rows {
		fmt.Printf("[%d/%d] Publishing %s %s... ", i+1, len(rows), row.CurveID, row.Date.Format("2006-01-02"))
		if err := pub.PublishChange(row); err != nil {
			fmt.Printf("FAILED: %v\n", err)
			continue
		}
		fmt.Printf("✓ %s\n", pub.Topic(row.CurveID))
		published++
	}

	fmt.Printf("\nSuccessfully published %d/%d curves\n", published, len(rows))
	return nil
}

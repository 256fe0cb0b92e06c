package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hoodscout/hoodscout/internal/config"
	"github.com/hoodscout/hoodscout/internal/scout"
	"github.com/hoodscout/hoodscout/pkg/anthropic"
	"github.com/hoodscout/hoodscout/pkg/gmaps"
	"github.com/hoodscout/hoodscout/pkg/reddit"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "hoodscout",
	Short: "Neighborhood recommendation engine",
	Long:  "Recommends city neighborhoods by combining preference parsing, community forum posts, and amenity lookups.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// initEngine builds the pipeline engine from configured collaborators.
func initEngine() *scout.Engine {
	llm := anthropic.NewClient(cfg.Anthropic.Key)
	rd := reddit.NewClient(reddit.WithUserAgent(cfg.Reddit.UserAgent))
	mp := gmaps.NewClient(cfg.Gmaps.Key, gmaps.WithRateLimit(cfg.Gmaps.RateLimit))
	return scout.NewEngine(llm, rd, mp, cfg.Anthropic.Model, cfg.Scout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

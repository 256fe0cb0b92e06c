package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/hoodscout/hoodscout/internal/model"
)

var (
	recommendCity        string
	recommendPreferences string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Run a one-shot neighborhood recommendation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if recommendCity == "" || recommendPreferences == "" {
			return eris.New("--city and --preferences are required")
		}

		engine := initEngine()

		result, err := engine.Recommend(cmd.Context(), recommendCity, recommendPreferences)
		if err != nil {
			return eris.Wrap(err, "recommend")
		}

		return printJSON(result)
	},
}

func printJSON(result *model.Recommendation) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return eris.Wrap(err, "encode result")
	}
	return nil
}

func init() {
	recommendCmd.Flags().StringVar(&recommendCity, "city", "", "city to search")
	recommendCmd.Flags().StringVar(&recommendPreferences, "preferences", "", "free-text housing preferences")
	rootCmd.AddCommand(recommendCmd)
}

package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bridgewise",
	Short: "Bridge quiz arcade for the terminal",
	Long:  "Bridgewise is a terminal arcade that teaches contract bridge one world of questions at a time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, 0)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BRIDGEWISE_DB env var)")
	rootCmd.PersistentFlags().StringSlice("pack", nil, "World pack files merged over the built-in worlds (overrides BRIDGEWISE_PACKS)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(worldsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
}

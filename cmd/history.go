package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent world runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.services(cmd)
		if err != nil {
			return err
		}

		records, err := svc.History(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No games played yet.")
			return nil
		}

		fmt.Printf("%-16s  %-5s  %-10s  %7s  %5s  %6s  %5s  %5s\n",
			"Played", "World", "Outcome", "Correct", "Gems", "Hearts", "Hints", "Time")
		fmt.Println(strings.Repeat("─", 76))
		for _, r := range records {
			fmt.Printf("%-16s  %-5d  %-10s  %3d/%-3d  %5d  %6d  %5d  %2d:%02d\n",
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				r.WorldID,
				r.Outcome,
				r.CorrectAnswers, r.QuestionsServed,
				r.GemsEarned,
				-r.HeartsLost,
				r.HintsUsed,
				r.DurationSecs/60, r.DurationSecs%60,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
}

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bridgewise/internal/economy"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start over with a new profile",
	Long:  "Delete the profile and play history and start again with the starting gems and hearts. LLM request logs are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm("This erases all progress. Continue? [y/N] ") {
			fmt.Println("Aborted.")
			return nil
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		if err := rt.store.Reset(ctx); err != nil {
			return fmt.Errorf("reset store: %w", err)
		}

		fresh := economy.NewProfile(rt.rules)
		if err := rt.store.Sink().Record(ctx, economy.Delta{Reason: economy.ReasonReset}, fresh); err != nil {
			return fmt.Errorf("save new profile: %w", err)
		}
		rt.logger.Info("profile reset")
		fmt.Printf("Progress reset. You start again with %d gems and %d hearts.\n", fresh.Gems, fresh.Hearts)
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

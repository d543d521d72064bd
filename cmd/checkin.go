package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/bridgewise/internal/rewards"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Claim today's login reward",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.services(cmd)
		if err != nil {
			return err
		}

		g, err := svc.CheckIn(cmd.Context())
		if errors.Is(err, rewards.ErrAlreadyClaimed) {
			fmt.Println("Already claimed today. Come back tomorrow!")
			return nil
		}
		if err != nil {
			return fmt.Errorf("check in: %w", err)
		}

		fmt.Printf("Day %d claimed: +%d gems (streak %d)\n", g.CycleDay, g.Gems, g.Streak)
		if g.Milestone != nil {
			fmt.Printf("Milestone reached: %s\n", g.Milestone.Label)
		}
		if next, ok := rewards.NextMilestone(g.Streak); ok {
			fmt.Printf("Next milestone: %s at %d days\n", next.Label, next.Day)
		}
		fmt.Printf("Balance: %d gems\n", svc.Profile().Gems)
		return nil
	},
}

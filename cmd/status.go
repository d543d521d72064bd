package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bridgewise/internal/game"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"stats"},
	Short:   "Show the player profile",
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
		p := svc.Profile()

		completed := 0
		worlds := svc.Worlds()
		for _, w := range worlds {
			if w.State == game.WorldCompleted {
				completed++
			}
		}

		fmt.Printf("Player:     %s\n", p.DisplayName())
		fmt.Printf("Level:      %d\n", p.Level)
		fmt.Printf("Gems:       %d\n", p.Gems)
		fmt.Printf("Hearts:     %s%s (%d/%d)\n",
			strings.Repeat("♥", p.Hearts), strings.Repeat("♡", p.MaxHearts-p.Hearts), p.Hearts, p.MaxHearts)
		fmt.Printf("Streak:     %d day(s)\n", p.LoginStreak)
		fmt.Printf("Worlds:     %d/%d cleared\n", completed, len(worlds))

		ok, err := svc.CanCheckIn(cmd.Context())
		if err != nil {
			return fmt.Errorf("check-in status: %w", err)
		}
		if ok {
			fmt.Println("\nToday's reward is waiting. Run `bridgewise checkin` to claim it.")
		}
		return nil
	},
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bridgewise/internal/game"
)

var worldsCmd = &cobra.Command{
	Use:   "worlds",
	Short: "List worlds and their progress",
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

		fmt.Printf("%-4s  %-32s  %9s  %s\n", "ID", "World", "Questions", "State")
		fmt.Println(strings.Repeat("─", 60))
		for _, w := range svc.Worlds() {
			mark := " "
			switch w.State {
			case game.WorldCompleted:
				mark = "★"
			case game.WorldUnlocked:
				mark = "▶"
			}
			fmt.Printf("%-4d  %-32s  %9d  %s %s\n", w.ID, truncate(w.Name, 32), len(w.Questions), mark, w.State)
		}
		return nil
	},
}

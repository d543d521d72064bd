package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/bridgewise/internal/game"
)

var playCmd = &cobra.Command{
	Use:   "play [world]",
	Short: "Jump straight into a world",
	Long:  "Start the game inside a world. Without an argument, plays the first unfinished world.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return playNext(cmd)
		}
		world, err := strconv.Atoi(args[0])
		if err != nil || world < 1 {
			return fmt.Errorf("invalid world %q: want a positive number", args[0])
		}
		return runApp(cmd, world)
	},
}

func playNext(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	p, err := rt.store.LoadOrCreateProfile(cmd.Context(), rt.rules)
	next := game.NextWorld(rt.bank, p)
	rt.Close()
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	return runApp(cmd, next)
}

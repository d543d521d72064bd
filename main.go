package main

import (
	"os"

	"github.com/abhisek/bridgewise/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

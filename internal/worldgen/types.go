// Package worldgen authors new question worlds with an LLM and checks them
// before they can be loaded as a pack.
package worldgen

import (
	"context"

	"github.com/abhisek/bridgewise/internal/questionbank"
)

// Request describes the world to author.
type Request struct {
	WorldID     int
	Name        string
	Description string
	Topics      []string

	// Questions is the number of questions wanted. Zero uses the config
	// default.
	Questions int

	// Avoid lists prompts already in the bank. The model is asked not to
	// repeat them and the duplicate validator enforces it.
	Avoid []string
}

// Generator produces a validated world.
type Generator interface {
	Generate(ctx context.Context, req Request) (questionbank.World, error)
}

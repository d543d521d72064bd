package worldgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order; the first failure stops the pipeline.
	Validators []Validator

	// Questions is the default world size.
	Questions int

	MaxTokens   int
	Temperature float64

	// Attempts bounds regeneration after a retryable validation failure.
	Attempts int

	// MaxAvoid caps how many existing prompts are quoted in the prompt.
	MaxAvoid int
}

// DefaultConfig returns the standard validator chain and defaults sized for
// a ten-question world.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
			&DuplicateValidator{},
		},
		Questions:   10,
		MaxTokens:   4096,
		Temperature: 0.7,
		Attempts:    2,
		MaxAvoid:    40,
	}
}

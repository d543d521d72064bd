package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/bridgewise/internal/llm"
	"github.com/abhisek/bridgewise/internal/worldgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Author a new world pack with an LLM",
	Long: `Ask the configured LLM provider for a new world of questions, validate it
and write it as a pack file. Load the result with --pack or BRIDGEWISE_PACKS.

The provider comes from BRIDGEWISE_LLM_PROVIDER and its BRIDGEWISE_*_API_KEY.
When those are unset, the standard ANTHROPIC_API_KEY, OPENAI_API_KEY,
GEMINI_API_KEY and OPENROUTER_API_KEY variables are checked in that order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			return fmt.Errorf("--name is required")
		}
		description, _ := cmd.Flags().GetString("description")
		topics, _ := cmd.Flags().GetStringSlice("topic")
		questions, _ := cmd.Flags().GetInt("questions")
		worldID, _ := cmd.Flags().GetInt("world")
		out, _ := cmd.Flags().GetString("out")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		cfg, err := resolveLLMConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
		defer cancel()

		provider, err := llm.NewProvider(ctx, cfg, rt.store.EventRepo(), rt.logger)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		if worldID == 0 {
			worldID = rt.bank.MaxWorld() + 1
		}
		if out == "" {
			out = fmt.Sprintf("world-%d.json", worldID)
		}

		req := worldgen.Request{
			WorldID:     worldID,
			Name:        name,
			Description: description,
			Topics:      topics,
			Questions:   questions,
			Avoid:       worldgen.Prompts(rt.bank),
		}

		fmt.Printf("Generating world %d %q with %s...\n", worldID, name, provider.ModelID())
		gen := worldgen.New(provider, worldgen.DefaultConfig(), rt.logger)
		pack, err := worldgen.GeneratePack(ctx, gen, req)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		if err := worldgen.WritePack(out, pack); err != nil {
			return err
		}

		fmt.Printf("Wrote %d questions to %s\n", len(pack.Worlds[0].Questions), out)
		fmt.Printf("Play it with: bridgewise --pack %s play %d\n", out, worldID)
		return nil
	},
}

// resolveLLMConfig reads BRIDGEWISE_* settings and falls back to the
// providers' standard API key variables.
func resolveLLMConfig() (llm.Config, error) {
	cfg, err := llm.ConfigFromEnv()
	if err != nil {
		return llm.Config{}, err
	}
	verr := cfg.Validate()
	if verr == nil {
		return cfg, nil
	}
	if _, explicit := os.LookupEnv(llm.EnvPrefix + "LLM_PROVIDER"); explicit {
		return llm.Config{}, verr
	}
	if found, ok := llm.DiscoverConfig(os.LookupEnv); ok {
		return found, nil
	}
	return llm.Config{}, fmt.Errorf("no LLM provider configured: %w", verr)
}

func init() {
	generateCmd.Flags().String("name", "", "World name (required)")
	generateCmd.Flags().String("description", "", "One-line world description")
	generateCmd.Flags().StringSlice("topic", nil, "Topic to cover; repeat for several")
	generateCmd.Flags().Int("questions", 0, "Number of questions (default from generator config)")
	generateCmd.Flags().Int("world", 0, "World id (default: one past the last loaded world)")
	generateCmd.Flags().StringP("out", "o", "", "Output pack file (default world-<id>.json)")
}

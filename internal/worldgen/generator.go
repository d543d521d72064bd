package worldgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/bridgewise/internal/llm"
	"github.com/abhisek/bridgewise/internal/questionbank"
)

// PackFormat is the format version written to generated packs.
const PackFormat = questionbank.SupportedFormat + ".0.0"

// Purpose labels world generation requests in the LLM event log.
const Purpose = "world-gen"

// LLMGenerator implements Generator on an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates an LLMGenerator. A nil logger uses slog.Default.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *LLMGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger}
}

// Generate authors one world. Retryable validation failures regenerate up
// to Config.Attempts times.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (questionbank.World, error) {
	if req.WorldID < 1 || req.Name == "" {
		return questionbank.World{}, fmt.Errorf("world request needs a positive id and a name")
	}
	if req.Questions == 0 {
		req.Questions = g.config.Questions
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	attempts := max(g.config.Attempts, 1)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		w, err := g.generateOnce(ctx, req)
		if err == nil {
			return w, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			break
		}
		g.logger.Warn("generated world rejected",
			"world", req.WorldID, "attempt", attempt, "error", verr)
	}
	return questionbank.World{}, lastErr
}

func (g *LLMGenerator) generateOnce(ctx context.Context, req Request) (questionbank.World, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(req, req.Questions, g.config.MaxAvoid)}},
		Schema:      WorldSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return questionbank.World{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out worldOutput
	if err := resp.Decode(&out); err != nil {
		return questionbank.World{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	w := questionbank.World{
		ID:          req.WorldID,
		Name:        req.Name,
		Description: req.Description,
		Topics:      req.Topics,
		Questions:   make([]questionbank.Question, len(out.Questions)),
	}
	for i, q := range out.Questions {
		w.Questions[i] = questionbank.Question{
			ID:           i + 1,
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
		}
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(&w, req); verr != nil {
			return questionbank.World{}, verr
		}
	}
	return w, nil
}

// GeneratePack authors each requested world in order and returns them as a
// validated pack. Prompts from earlier worlds are added to later requests'
// avoid lists.
func GeneratePack(ctx context.Context, gen Generator, reqs ...Request) (questionbank.Pack, error) {
	pack := questionbank.Pack{FormatVersion: PackFormat}
	var written []string
	for _, req := range reqs {
		req.Avoid = append(append([]string(nil), req.Avoid...), written...)
		w, err := gen.Generate(ctx, req)
		if err != nil {
			return questionbank.Pack{}, fmt.Errorf("world %d: %w", req.WorldID, err)
		}
		pack.Worlds = append(pack.Worlds, w)
		for _, q := range w.Questions {
			written = append(written, q.Prompt)
		}
	}
	if err := pack.Validate(); err != nil {
		return questionbank.Pack{}, err
	}
	return pack, nil
}

// Prompts returns every question prompt in the bank, for use as an avoid
// list.
func Prompts(bank *questionbank.Bank) []string {
	var out []string
	for _, w := range bank.Worlds() {
		for _, q := range w.Questions {
			out = append(out, q.Prompt)
		}
	}
	return out
}

// WritePack writes p as indented JSON, the form questionbank.LoadPack reads.
func WritePack(path string, p questionbank.Pack) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode pack: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write pack %s: %w", path, err)
	}
	return nil
}

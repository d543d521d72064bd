package worldgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/bridgewise/internal/questionbank"
)

// Validator checks a generated world. Implementations are stateless.
type Validator interface {
	Name() string
	Validate(w *questionbank.World, req Request) *ValidationError
}

// ValidationError describes why a world was rejected.
type ValidationError struct {
	Validator string
	Question  int // question id, 0 for world-level problems
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	if e.Question > 0 {
		return fmt.Sprintf("validator %q: question %d: %s", e.Validator, e.Question, e.Message)
	}
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const (
	maxPromptLen      = 300
	maxOptionLen      = 120
	maxExplanationLen = 500
)

// StructuralValidator checks counts and field lengths.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(w *questionbank.World, req Request) *ValidationError {
	fail := func(q int, format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Question: q, Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	if req.Questions > 0 && len(w.Questions) != req.Questions {
		return fail(0, "got %d questions, want %d", len(w.Questions), req.Questions)
	}
	for _, q := range w.Questions {
		switch {
		case strings.TrimSpace(q.Prompt) == "":
			return fail(q.ID, "prompt is empty")
		case len(q.Prompt) > maxPromptLen:
			return fail(q.ID, "prompt exceeds %d characters", maxPromptLen)
		case strings.TrimSpace(q.Explanation) == "":
			return fail(q.ID, "explanation is empty")
		case len(q.Explanation) > maxExplanationLen:
			return fail(q.ID, "explanation exceeds %d characters", maxExplanationLen)
		}
	}
	return nil
}

// OptionsValidator checks that options are usable as answer buttons and the
// correct index points at one of them.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(w *questionbank.World, _ Request) *ValidationError {
	for _, q := range w.Questions {
		fail := func(format string, args ...any) *ValidationError {
			return &ValidationError{Validator: v.Name(), Question: q.ID, Message: fmt.Sprintf(format, args...), Retryable: true}
		}

		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fail("correct_index %d out of range for %d options", q.CorrectIndex, len(q.Options))
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			key := normalize(o)
			if key == "" {
				return fail("empty option")
			}
			if len(o) > maxOptionLen {
				return fail("option exceeds %d characters", maxOptionLen)
			}
			if seen[key] {
				return fail("duplicate option %q", o)
			}
			seen[key] = true
		}
	}
	return nil
}

// DuplicateValidator rejects prompts repeated within the world or already in
// the bank.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(w *questionbank.World, req Request) *ValidationError {
	known := make(map[string]bool, len(req.Avoid)+len(w.Questions))
	for _, p := range req.Avoid {
		known[normalize(p)] = true
	}
	for _, q := range w.Questions {
		key := normalize(q.Prompt)
		if known[key] {
			return &ValidationError{Validator: v.Name(), Question: q.ID, Message: "prompt repeats an existing question", Retryable: true}
		}
		known[key] = true
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

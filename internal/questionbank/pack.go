package questionbank

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedFormat is the pack format major version this build reads.
const SupportedFormat = "v1"

var (
	// ErrInvalidPack is returned when a pack fails schema or content checks.
	ErrInvalidPack = errors.New("invalid world pack")

	// ErrUnsupportedFormat is returned for packs with a different major version.
	ErrUnsupportedFormat = errors.New("unsupported pack format")
)

// ParsePack decodes and validates a pack from raw JSON.
func ParsePack(data []byte) (Pack, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Pack{}, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	schema, err := compilePackSchema()
	if err != nil {
		return Pack{}, fmt.Errorf("compile pack schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return Pack{}, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	var p Pack
	if err := json.Unmarshal(data, &p); err != nil {
		return Pack{}, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	if err := p.Validate(); err != nil {
		return Pack{}, err
	}
	return p, nil
}

// LoadPack reads and parses a pack file.
func LoadPack(path string) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("read pack %s: %w", path, err)
	}
	p, err := ParsePack(data)
	if err != nil {
		return Pack{}, fmt.Errorf("pack %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the format version and content rules the schema cannot
// express. All problems are reported together.
func (p Pack) Validate() error {
	if !semver.IsValid(p.FormatVersion) {
		return fmt.Errorf("%w: format_version %q is not a semantic version", ErrInvalidPack, p.FormatVersion)
	}
	if major := semver.Major(p.FormatVersion); major != SupportedFormat {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedFormat, p.FormatVersion, SupportedFormat)
	}

	var errs []string
	worldIDs := make(map[int]bool, len(p.Worlds))
	for _, w := range p.Worlds {
		if worldIDs[w.ID] {
			errs = append(errs, fmt.Sprintf("duplicate world id %d", w.ID))
		}
		worldIDs[w.ID] = true
		errs = append(errs, validateWorld(w)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidPack, strings.Join(errs, "\n  "))
	}
	return nil
}

func validateWorld(w World) []string {
	var errs []string
	if w.ID < 1 {
		errs = append(errs, fmt.Sprintf("world id %d must be positive", w.ID))
	}
	if strings.TrimSpace(w.Name) == "" {
		errs = append(errs, fmt.Sprintf("world %d has no name", w.ID))
	}
	if len(w.Questions) == 0 {
		errs = append(errs, fmt.Sprintf("world %d has no questions", w.ID))
	}

	seen := make(map[int]bool, len(w.Questions))
	for _, q := range w.Questions {
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("world %d: duplicate question id %d", w.ID, q.ID))
		}
		seen[q.ID] = true

		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("world %d question %d: need at least 2 options", w.ID, q.ID))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("world %d question %d: correct_index %d out of range", w.ID, q.ID, q.CorrectIndex))
		}
		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("world %d question %d: empty prompt", w.ID, q.ID))
		}
	}
	return errs
}

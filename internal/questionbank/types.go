package questionbank

// Question is a single multiple-choice question. Immutable once loaded.
type Question struct {
	ID           int      `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// IsCorrect reports whether choice is the correct option index.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.CorrectIndex
}

// World is a themed, ordered set of questions.
type World struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Topics      []string   `json:"topics,omitempty"`
	Questions   []Question `json:"questions"`
}

// Pack is the on-disk form of a set of worlds.
type Pack struct {
	FormatVersion string  `json:"format_version"`
	Worlds        []World `json:"worlds"`
}

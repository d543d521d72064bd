package economy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the tunable numbers of the economy.
type Rules struct {
	HintCost        int `yaml:"hint_cost" validate:"gt=0"`
	RefillCost      int `yaml:"refill_cost" validate:"gt=0"`
	CorrectReward   int `yaml:"correct_reward" validate:"gt=0"`
	HintedReward    int `yaml:"hinted_reward" validate:"gte=0,ltefield=CorrectReward"`
	GemsPerLevel    int `yaml:"gems_per_level" validate:"gt=0"`
	QuestionSeconds int `yaml:"question_seconds" validate:"gt=0"`
	MaxHearts       int `yaml:"max_hearts" validate:"gt=0"`
	StartingGems    int `yaml:"starting_gems" validate:"gte=0"`
}

// DefaultRules returns the standard economy.
func DefaultRules() Rules {
	return Rules{
		HintCost:        10,
		RefillCost:      50,
		CorrectReward:   10,
		HintedReward:    5,
		GemsPerLevel:    50,
		QuestionSeconds: 30,
		MaxHearts:       5,
		StartingGems:    50,
	}
}

// LevelFor returns currentLevel plus one level per full GemsPerLevel earned.
// Negative earnings never lower the level.
func (r Rules) LevelFor(currentLevel, gemsEarned int) int {
	if gemsEarned <= 0 {
		return currentLevel
	}
	return currentLevel + gemsEarned/r.GemsPerLevel
}

// Reward returns the gems granted for a correct answer.
func (r Rules) Reward(hintUsed bool) int {
	if hintUsed {
		return r.HintedReward
	}
	return r.CorrectReward
}

// Validate checks that every value is usable.
func (r Rules) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid economy rules: %w", err)
	}
	return nil
}

// LoadRules reads a YAML tuning file on top of DefaultRules. Keys missing from
// the file keep their default value. An empty path returns the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules file: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

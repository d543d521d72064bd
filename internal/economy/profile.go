package economy

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

// DefaultPlayerName is used when a profile has no name set.
const DefaultPlayerName = "Bridge Player"

// DefaultAvatar is the avatar every player owns from the start.
const DefaultAvatar = "classic"

// WorldSet is a sorted set of world ids. Mutators return a new set and never
// touch the receiver's backing array.
type WorldSet []int

// NewWorldSet builds a set from ids, dropping duplicates.
func NewWorldSet(ids ...int) WorldSet {
	s := make(WorldSet, 0, len(ids))
	for _, id := range ids {
		s = s.With(id)
	}
	return s
}

// Has reports whether id is in the set.
func (s WorldSet) Has(id int) bool {
	_, found := slices.BinarySearch(s, id)
	return found
}

// With returns a set that also contains id. Inserting an existing id returns
// an equal copy.
func (s WorldSet) With(id int) WorldSet {
	i, found := slices.BinarySearch(s, id)
	out := make(WorldSet, 0, len(s)+1)
	out = append(out, s[:i]...)
	if !found {
		out = append(out, id)
	}
	return append(out, s[i:]...)
}

// Max returns the largest id in the set, or 0 when empty.
func (s WorldSet) Max() int {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Cosmetics holds optional presentation choices. Zero values mean defaults.
type Cosmetics struct {
	Avatar string   `json:"avatar,omitempty"`
	Owned  []string `json:"owned,omitempty"`
}

// EquippedAvatar returns the avatar in use, falling back to DefaultAvatar.
func (c Cosmetics) EquippedAvatar() string {
	if c.Avatar == "" {
		return DefaultAvatar
	}
	return c.Avatar
}

// Profile is the player's persistent state. The core receives it by value and
// hands back updated copies; it never keeps a reference across calls.
type Profile struct {
	Name            string    `json:"name"`
	Gems            int       `json:"gems" validate:"gte=0"`
	Hearts          int       `json:"hearts" validate:"gte=0,ltefield=MaxHearts"`
	MaxHearts       int       `json:"max_hearts" validate:"gt=0"`
	Level           int       `json:"level" validate:"gte=1"`
	LoginStreak     int       `json:"login_streak" validate:"gte=0"`
	UnlockedWorlds  WorldSet  `json:"unlocked_worlds"`
	CompletedWorlds WorldSet  `json:"completed_worlds"`
	Cosmetics       Cosmetics `json:"cosmetics"`
}

// NewProfile returns the starting profile for a new player.
func NewProfile(rules Rules) Profile {
	return Profile{
		Name:            DefaultPlayerName,
		Gems:            rules.StartingGems,
		Hearts:          rules.MaxHearts,
		MaxHearts:       rules.MaxHearts,
		Level:           1,
		UnlockedWorlds:  NewWorldSet(1),
		CompletedWorlds: WorldSet{},
	}
}

// DisplayName returns the player name or the default one.
func (p Profile) DisplayName() string {
	if p.Name == "" {
		return DefaultPlayerName
	}
	return p.Name
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	p.UnlockedWorlds = slices.Clone(p.UnlockedWorlds)
	p.CompletedWorlds = slices.Clone(p.CompletedWorlds)
	p.Cosmetics.Owned = slices.Clone(p.Cosmetics.Owned)
	return p
}

var validate = validator.New()

// Validate checks the numeric bounds and the world progression gate.
func (p Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if !p.UnlockedWorlds.Has(1) {
		return fmt.Errorf("%w: world 1 must be unlocked", ErrInvalidProfile)
	}
	for _, w := range p.UnlockedWorlds {
		if w > 1 && !p.CompletedWorlds.Has(w-1) {
			return fmt.Errorf("%w: world %d unlocked before world %d was completed", ErrInvalidProfile, w, w-1)
		}
	}
	return nil
}

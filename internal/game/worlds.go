package game

import (
	"github.com/abhisek/bridgewise/internal/economy"
	"github.com/abhisek/bridgewise/internal/questionbank"
)

// WorldState is a world's place in the progression.
type WorldState int

const (
	WorldLocked WorldState = iota
	WorldUnlocked
	WorldCompleted
)

func (s WorldState) String() string {
	switch s {
	case WorldUnlocked:
		return "unlocked"
	case WorldCompleted:
		return "completed"
	default:
		return "locked"
	}
}

// WorldStatus pairs a world with its state for p.
type WorldStatus struct {
	questionbank.World
	State WorldState
}

// Playable reports whether the world can be started.
func (w WorldStatus) Playable() bool {
	return w.State != WorldLocked
}

// Worlds returns every world in the bank with its state for the live profile.
func (s *Services) Worlds() []WorldStatus {
	return WorldStatuses(s.Bank, s.Profile())
}

// WorldStatuses returns every world in bank with its state for p.
func WorldStatuses(bank *questionbank.Bank, p economy.Profile) []WorldStatus {
	worlds := bank.Worlds()
	out := make([]WorldStatus, 0, len(worlds))
	for _, w := range worlds {
		st := WorldStatus{World: w}
		switch {
		case p.CompletedWorlds.Has(w.ID):
			st.State = WorldCompleted
		case p.UnlockedWorlds.Has(w.ID):
			st.State = WorldUnlocked
		}
		out = append(out, st)
	}
	return out
}

// NextWorld returns the first playable world in bank that p has not
// completed. When every playable world is done it returns the last playable
// one.
func NextWorld(bank *questionbank.Bank, p economy.Profile) int {
	next := questionbank.FallbackWorld
	for _, w := range WorldStatuses(bank, p) {
		switch w.State {
		case WorldUnlocked:
			return w.ID
		case WorldCompleted:
			next = w.ID
		}
	}
	return next
}

package economy

// Reason labels why a delta was produced.
type Reason string

const (
	ReasonHeartLost       Reason = "heart_lost"
	ReasonHint            Reason = "hint"
	ReasonRefill          Reason = "refill"
	ReasonSessionComplete Reason = "session_complete"
	ReasonSessionExit     Reason = "session_exit"
	ReasonCheckIn         Reason = "check_in"
	ReasonReset           Reason = "reset"
	ReasonRename          Reason = "rename"
)

// Delta is a change to a profile. Resource fields are relative; Complete and
// Unlock name a world to insert into the respective set (0 means none).
type Delta struct {
	Reason    Reason `json:"reason"`
	SessionID string `json:"session_id,omitempty"`
	Gems      int    `json:"gems,omitempty"`
	Hearts    int    `json:"hearts,omitempty"`
	Levels    int    `json:"levels,omitempty"`
	Streak    int    `json:"streak,omitempty"`
	Complete  int    `json:"complete,omitempty"`
	Unlock    int    `json:"unlock,omitempty"`

	// Name replaces the player name when non-empty.
	Name string `json:"name,omitempty"`
}

// IsZero reports whether the delta changes nothing.
func (d Delta) IsZero() bool {
	return d.Gems == 0 && d.Hearts == 0 && d.Levels == 0 && d.Streak == 0 &&
		d.Complete == 0 && d.Unlock == 0 && d.Name == ""
}

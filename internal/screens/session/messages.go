package session

// timerTickMsg is one second of the question countdown. Ticks from an
// earlier arming carry a stale generation and are dropped.
type timerTickMsg struct {
	gen int
}

// Exhausted-panel buttons report back through Update.
type refillPressedMsg struct{}
type exitPressedMsg struct{}

package quiz

// Phase is where a session is in its question loop.
type Phase int

const (
	PhasePresenting Phase = iota // Question shown, waiting for an answer
	PhaseRevealed                // Answer shown with correctness and explanation
	PhaseExhausted               // Hearts ran out; refill or exit
	PhaseCompleted               // Every question answered; terminal
	PhaseAbandoned               // Player exited; terminal
)

func (p Phase) String() string {
	switch p {
	case PhasePresenting:
		return "presenting"
	case PhaseRevealed:
		return "revealed"
	case PhaseExhausted:
		return "exhausted"
	case PhaseCompleted:
		return "completed"
	case PhaseAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further commands are accepted.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseAbandoned
}

package quiz

// Phase is where a quiz session is in its lifecycle.
type Phase int

const (
	PhaseLoading  Phase = iota // Master Bank batch in flight
	PhaseError                 // Batch failed and nothing to play
	PhaseActive                // Showing the current question
	PhaseAnswered              // Current question has a selection
	PhaseResult                // All questions done
	PhaseClosed                // Torn down; late results are dropped
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseActive:
		return "active"
	case PhaseAnswered:
		return "answered"
	case PhaseResult:
		return "result"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Grade labels a final accuracy for the result screen.
func Grade(accuracy float64) string {
	if accuracy >= 0.8 {
		return "EXCELLENT"
	}
	return "ELITE"
}

package game

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhasePlaying
	PhaseQuestionActive
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhaseQuestionActive:
		return "question"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Reason says what triggered a question.
type Reason string

const (
	ReasonWall Reason = "wall"
	ReasonTime Reason = "time"
	ReasonZone Reason = "zone"
)

// Result is the final verdict of a session.
type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
)

// EndReason says why a session ended.
type EndReason string

const (
	EndGoal           EndReason = "goal"
	EndTimeout        EndReason = "timeout"
	EndLivesExhausted EndReason = "lives_exhausted"
)

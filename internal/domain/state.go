package domain

// Phase is the lifecycle position of the current question.
type Phase string

const (
	PhaseActive   Phase = "active"
	PhaseLocked   Phase = "locked"
	PhaseFinished Phase = "finished"
)

// QuizState is the mutable part of a quiz session.
type QuizState struct {
	CurrentIndex  int   `json:"current_index"`
	Total         int   `json:"total"`
	Score         int   `json:"score"`
	Answered      bool  `json:"answered"`
	TimeRemaining int   `json:"time_remaining"`
	Phase         Phase `json:"phase"`
}

// Outcome is what happened the last time a question was locked.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
	OutcomeExpired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeExpired:
		return "expired"
	default:
		return "none"
	}
}

// OptionMark is the correctness label shown on an option button.
type OptionMark string

const (
	MarkNone      OptionMark = ""
	MarkCorrect   OptionMark = "correct"
	MarkIncorrect OptionMark = "incorrect"
)

// OptionState is the visual state of one option once a question is locked.
type OptionState struct {
	Text     string     `json:"text"`
	Mark     OptionMark `json:"mark,omitempty"`
	Disabled bool       `json:"disabled"`
}

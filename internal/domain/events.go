package domain

const (
	MessagePerfect = "Congratulations! You scored full!"
	MessageRetry   = "Well tried! Try again to get a perfect score!"
)

// QuestionLoaded is emitted whenever a question becomes current.
type QuestionLoaded struct {
	Index         int
	Total         int
	Score         int
	Text          string
	Options       []string
	TimerDuration int
}

// OptionResolved is emitted when a question locks, either by a selection
// or by the timer running out. Chosen is -1 on expiry.
type OptionResolved struct {
	Index        int
	Chosen       int
	CorrectIndex int
	Correct      bool
	Expired      bool
	Options      []OptionState
	Score        int
	Explanation  string
}

// Tick is emitted once per countdown step.
type Tick struct {
	Index         int
	TimeRemaining int
	TimerDuration int
	Urgent        bool
}

// Finished is emitted once when the last question has been passed.
type Finished struct {
	Score   int
	Total   int
	Perfect bool
	Message string
}

// ResultMessage returns the qualitative message for a final score.
func ResultMessage(score, total int) (perfect bool, message string) {
	if score == total {
		return true, MessagePerfect
	}
	return false, MessageRetry
}

package dto

import "time"

// OptionView is one answer button as rendered to the player
type OptionView struct {
	Text     string `json:"text"`
	Mark     string `json:"mark,omitempty"` // "correct" | "incorrect"
	Disabled bool   `json:"disabled"`
}

// TimerView describes the countdown display
type TimerView struct {
	Remaining int     `json:"remaining"`
	Duration  int     `json:"duration"`
	Urgent    bool    `json:"urgent"`
	Rotation  float64 `json:"rotation"` // degrees swept by the radial indicator
}

// NavView describes the previous/next controls
type NavView struct {
	PreviousEnabled bool   `json:"previous_enabled"`
	NextLabel       string `json:"next_label"` // "Next" or "Finish"
}

// ResultView is shown once the quiz has finished
type ResultView struct {
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Perfect bool   `json:"perfect"`
	Message string `json:"message"`
}

// QuizView is the full presentation state of a quiz session
type QuizView struct {
	QuestionNumber int          `json:"question_number"`
	Total          int          `json:"total"`
	Question       string       `json:"question"`
	Options        []OptionView `json:"options"`
	Score          int          `json:"score"`
	Answered       bool         `json:"answered"`
	Explanation    string       `json:"explanation,omitempty"`
	Timer          TimerView    `json:"timer"`
	Nav            NavView      `json:"nav"`
	Finished       bool         `json:"finished"`
	Result         *ResultView  `json:"result,omitempty"`
}

// SessionResponse represents a quiz session in the API response
// @Description Quiz session state
type SessionResponse struct {
	SessionID   string    `json:"session_id"`
	Celebrating bool      `json:"celebrating"`
	ExpiresAt   time.Time `json:"expires_at"`
	QuizView
}

// AnswerRequest represents an option selection in the API request
type AnswerRequest struct {
	OptionIndex *int `json:"option_index"`
}

// QuestionSummary is a question bank entry without its answer
type QuestionSummary struct {
	Position int      `json:"position"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuestionBankResponse lists the questions a new session draws from
type QuestionBankResponse struct {
	Source    string            `json:"source"`
	Total     int               `json:"total"`
	Questions []QuestionSummary `json:"questions"`
}

// HealthResponse reports dependency status
type HealthResponse struct {
	Status         string            `json:"status"`
	Uptime         string            `json:"uptime"`
	Questions      int               `json:"questions"`
	ActiveSessions int               `json:"active_sessions"`
	Checks         map[string]string `json:"checks,omitempty"`
}

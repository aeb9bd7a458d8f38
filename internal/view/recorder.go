package view

import (
	"sync"

	"dish-quiz/internal/domain"
	"dish-quiz/internal/dto"
)

const (
	NextLabel   = "Next"
	FinishLabel = "Finish"
)

// Rotation returns the angle swept by the radial countdown indicator.
func Rotation(remaining, duration int) float64 {
	if duration <= 0 {
		return 0
	}
	if remaining < 0 {
		remaining = 0
	}
	return 360 * float64(duration-remaining) / float64(duration)
}

// Recorder folds engine notifications into a QuizView. Notifications arrive
// on the engine loop; Snapshot can be called from any goroutine.
type Recorder struct {
	mu   sync.RWMutex
	view dto.QuizView
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) OnQuestionLoaded(e domain.QuestionLoaded) {
	r.mu.Lock()
	defer r.mu.Unlock()

	options := make([]dto.OptionView, len(e.Options))
	for i, text := range e.Options {
		options[i] = dto.OptionView{Text: text}
	}
	next := NextLabel
	if e.Index == e.Total-1 {
		next = FinishLabel
	}
	r.view = dto.QuizView{
		QuestionNumber: e.Index + 1,
		Total:          e.Total,
		Question:       e.Text,
		Options:        options,
		Score:          e.Score,
		Timer: dto.TimerView{
			Remaining: e.TimerDuration,
			Duration:  e.TimerDuration,
		},
		Nav: dto.NavView{
			PreviousEnabled: e.Index > 0,
			NextLabel:       next,
		},
	}
}

func (r *Recorder) OnOptionResolved(e domain.OptionResolved) {
	r.mu.Lock()
	defer r.mu.Unlock()

	options := make([]dto.OptionView, len(e.Options))
	for i, o := range e.Options {
		options[i] = dto.OptionView{Text: o.Text, Mark: string(o.Mark), Disabled: o.Disabled}
	}
	r.view.Options = options
	r.view.Answered = true
	r.view.Score = e.Score
	r.view.Explanation = e.Explanation
}

func (r *Recorder) OnTick(e domain.Tick) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.view.Timer = dto.TimerView{
		Remaining: e.TimeRemaining,
		Duration:  e.TimerDuration,
		Urgent:    e.Urgent,
		Rotation:  Rotation(e.TimeRemaining, e.TimerDuration),
	}
}

func (r *Recorder) OnFinished(e domain.Finished) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.view.Finished = true
	r.view.Score = e.Score
	r.view.Result = &dto.ResultView{
		Score:   e.Score,
		Total:   e.Total,
		Perfect: e.Perfect,
		Message: e.Message,
	}
}

// Snapshot returns a copy of the current view.
func (r *Recorder) Snapshot() dto.QuizView {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v := r.view
	v.Options = append([]dto.OptionView(nil), r.view.Options...)
	if r.view.Result != nil {
		res := *r.view.Result
		v.Result = &res
	}
	return v
}

package engine

import (
	"time"

	"dish-quiz/internal/domain"
	"dish-quiz/internal/logger"
	"dish-quiz/internal/port"

	"go.uber.org/zap"
)

const (
	DefaultTimerDuration   = 15
	DefaultUrgentThreshold = 5
	DefaultTickInterval    = time.Second
	DefaultAdvanceDelay    = 2 * time.Second
)

// Options tunes the countdown. TimerDuration and UrgentThreshold are counted
// in ticks.
type Options struct {
	TimerDuration   int
	UrgentThreshold int
	TickInterval    time.Duration
	AdvanceDelay    time.Duration
}

func DefaultOptions() Options {
	return Options{
		TimerDuration:   DefaultTimerDuration,
		UrgentThreshold: DefaultUrgentThreshold,
		TickInterval:    DefaultTickInterval,
		AdvanceDelay:    DefaultAdvanceDelay,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o == (Options{}) {
		return d
	}
	if o.TimerDuration <= 0 {
		o.TimerDuration = d.TimerDuration
	}
	if o.UrgentThreshold < 0 {
		o.UrgentThreshold = d.UrgentThreshold
	}
	if o.TickInterval <= 0 {
		o.TickInterval = d.TickInterval
	}
	if o.AdvanceDelay < 0 {
		o.AdvanceDelay = d.AdvanceDelay
	}
	return o
}

// Config wires an Engine to its collaborators. Observer, Celebrator and
// Logger are optional.
type Config struct {
	Questions  []domain.Question
	Scheduler  port.Scheduler
	Observer   port.Observer
	Celebrator port.Celebrator
	Logger     *zap.Logger
	Options    Options
}

// Engine runs one quiz session: question sequencing, the per-question
// countdown, scoring and navigation.
//
// An Engine is not safe for concurrent use. Every method and every scheduler
// callback must run on the same event loop.
type Engine struct {
	questions  []domain.Question
	sched      port.Scheduler
	observer   port.Observer
	celebrator port.Celebrator
	log        *zap.Logger
	opts       Options

	state    domain.QuizState
	outcomes []domain.Outcome

	// countdown is the single active tick timer; pending is the delayed
	// transition scheduled after a lock.
	countdown port.TimerHandle
	pending   port.TimerHandle
}

func New(cfg Config) (*Engine, error) {
	if err := domain.ValidateBank(cfg.Questions); err != nil {
		return nil, err
	}
	if cfg.Scheduler == nil {
		return nil, domain.NewInvalidInputError("engine requires a scheduler")
	}
	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}

	questions := make([]domain.Question, len(cfg.Questions))
	copy(questions, cfg.Questions)

	e := &Engine{
		questions:  questions,
		sched:      cfg.Scheduler,
		observer:   observer,
		celebrator: cfg.Celebrator,
		log:        log,
		opts:       cfg.Options.withDefaults(),
		outcomes:   make([]domain.Outcome, len(questions)),
	}
	e.reset()
	return e, nil
}

// Start performs the fresh initialization: first question, timer running.
func (e *Engine) Start() {
	e.reset()
	e.mustLoad(0)
	e.StartTimer()
}

// Restart discards all progress and behaves like Start.
func (e *Engine) Restart() {
	e.log.Debug("Restarting quiz", zap.Int("score", e.state.Score), zap.Int("index", e.state.CurrentIndex))
	e.Start()
}

// Close stops every pending callback. The engine must not be used afterwards.
func (e *Engine) Close() {
	e.stopTimer()
	e.cancelPending()
}

// State returns a snapshot of the quiz state.
func (e *Engine) State() domain.QuizState {
	return e.state
}

// Questions returns the question sequence this engine runs.
func (e *Engine) Questions() []domain.Question {
	out := make([]domain.Question, len(e.questions))
	copy(out, e.questions)
	return out
}

// Outcomes returns the recorded outcome per question.
func (e *Engine) Outcomes() []domain.Outcome {
	out := make([]domain.Outcome, len(e.outcomes))
	copy(out, e.outcomes)
	return out
}

// LoadQuestion makes index the current question with a fresh, stopped timer.
func (e *Engine) LoadQuestion(index int) error {
	if index < 0 || index >= len(e.questions) {
		return domain.NewInvalidIndexError(index, len(e.questions))
	}
	e.cancelPending()
	e.stopTimer()

	q := e.questions[index]
	e.state.CurrentIndex = index
	e.state.Answered = false
	e.state.TimeRemaining = e.opts.TimerDuration
	e.state.Phase = domain.PhaseActive

	options := make([]string, len(q.Options))
	copy(options, q.Options)
	e.observer.OnQuestionLoaded(domain.QuestionLoaded{
		Index:         index,
		Total:         len(e.questions),
		Score:         e.state.Score,
		Text:          q.Text,
		Options:       options,
		TimerDuration: e.opts.TimerDuration,
	})
	return nil
}

// StartTimer restarts the countdown for the current question, replacing any
// countdown already running.
func (e *Engine) StartTimer() {
	if e.state.Phase == domain.PhaseFinished {
		return
	}
	e.stopTimer()
	e.state.TimeRemaining = e.opts.TimerDuration
	e.countdown = e.sched.ScheduleRepeating(e.opts.TickInterval, e.tick)
}

func (e *Engine) tick() {
	if e.state.TimeRemaining > 0 {
		e.state.TimeRemaining--
	}
	e.observer.OnTick(domain.Tick{
		Index:         e.state.CurrentIndex,
		TimeRemaining: e.state.TimeRemaining,
		TimerDuration: e.opts.TimerDuration,
		Urgent:        e.state.TimeRemaining <= e.opts.UrgentThreshold,
	})
	if e.state.TimeRemaining > 0 {
		return
	}
	e.stopTimer()
	if !e.state.Answered {
		e.expire()
	}
}

// expire locks the current question without scoring and reveals the answer.
func (e *Engine) expire() {
	idx := e.state.CurrentIndex
	q := e.questions[idx]
	e.state.Answered = true
	e.state.Phase = domain.PhaseLocked
	if e.outcomes[idx] == domain.OutcomeNone {
		e.outcomes[idx] = domain.OutcomeExpired
	}
	e.state.Score = e.countCorrect()

	correct := q.CorrectIndex()
	e.log.Debug("Question timed out", zap.Int("index", idx))
	e.observer.OnOptionResolved(domain.OptionResolved{
		Index:        idx,
		Chosen:       -1,
		CorrectIndex: correct,
		Expired:      true,
		Options:      e.lockedOptions(q, -1, correct),
		Score:        e.state.Score,
		Explanation:  q.Explanation,
	})
	e.scheduleAdvance()
}

// SelectOption locks the current question on the chosen option. It is
// ignored once the question is locked or the quiz has finished.
func (e *Engine) SelectOption(index int) error {
	if e.state.Answered || e.state.Phase != domain.PhaseActive {
		return nil
	}
	idx := e.state.CurrentIndex
	q := e.questions[idx]
	if index < 0 || index >= len(q.Options) {
		return domain.NewInvalidIndexError(index, len(q.Options))
	}

	e.stopTimer()
	e.state.Answered = true
	e.state.Phase = domain.PhaseLocked

	correct := q.CorrectIndex()
	isCorrect := index == correct
	if isCorrect {
		e.outcomes[idx] = domain.OutcomeCorrect
	} else {
		e.outcomes[idx] = domain.OutcomeIncorrect
	}
	e.state.Score = e.countCorrect()

	e.log.Debug("Option selected",
		zap.Int("index", idx),
		zap.Int("option", index),
		zap.Bool("correct", isCorrect),
		zap.Int("score", e.state.Score),
	)
	e.observer.OnOptionResolved(domain.OptionResolved{
		Index:        idx,
		Chosen:       index,
		CorrectIndex: correct,
		Correct:      isCorrect,
		Options:      e.lockedOptions(q, index, correct),
		Score:        e.state.Score,
		Explanation:  q.Explanation,
	})
	e.scheduleAdvance()
	return nil
}

// Advance moves to the next question, or finishes the quiz on the last one.
// It also serves the manual "Next"/"Finish" input.
func (e *Engine) Advance() {
	if e.state.Phase == domain.PhaseFinished {
		return
	}
	e.cancelPending()
	next := e.state.CurrentIndex + 1
	if next >= len(e.questions) {
		e.finish()
		return
	}
	e.mustLoad(next)
	e.StartTimer()
}

// GoToPrevious revisits the previous question with a fresh timer. The score
// is left untouched.
func (e *Engine) GoToPrevious() error {
	if e.state.Phase == domain.PhaseFinished {
		return domain.NewQuizFinishedError()
	}
	if e.state.CurrentIndex == 0 {
		return domain.NewInvalidIndexError(-1, len(e.questions))
	}
	e.mustLoad(e.state.CurrentIndex - 1)
	e.StartTimer()
	return nil
}

func (e *Engine) finish() {
	e.stopTimer()
	e.cancelPending()
	e.state.Phase = domain.PhaseFinished

	total := len(e.questions)
	perfect, message := domain.ResultMessage(e.state.Score, total)
	e.log.Info("Quiz finished",
		zap.Int("score", e.state.Score),
		zap.Int("total", total),
		zap.Bool("perfect", perfect),
	)
	e.observer.OnFinished(domain.Finished{
		Score:   e.state.Score,
		Total:   total,
		Perfect: perfect,
		Message: message,
	})
	if perfect && e.celebrator != nil {
		e.celebrator.Celebrate(e.state.Score, total)
	}
}

func (e *Engine) scheduleAdvance() {
	e.cancelPending()
	e.pending = e.sched.ScheduleOnce(e.opts.AdvanceDelay, func() {
		e.pending = port.NoTimer
		e.Advance()
	})
}

func (e *Engine) lockedOptions(q domain.Question, chosen, correct int) []domain.OptionState {
	states := make([]domain.OptionState, len(q.Options))
	for i, text := range q.Options {
		states[i] = domain.OptionState{Text: text, Disabled: true}
		switch {
		case i == correct:
			states[i].Mark = domain.MarkCorrect
		case i == chosen:
			states[i].Mark = domain.MarkIncorrect
		}
	}
	return states
}

func (e *Engine) countCorrect() int {
	n := 0
	for _, o := range e.outcomes {
		if o == domain.OutcomeCorrect {
			n++
		}
	}
	return n
}

func (e *Engine) reset() {
	e.stopTimer()
	e.cancelPending()
	for i := range e.outcomes {
		e.outcomes[i] = domain.OutcomeNone
	}
	e.state = domain.QuizState{
		CurrentIndex:  0,
		Total:         len(e.questions),
		Score:         0,
		Answered:      false,
		TimeRemaining: e.opts.TimerDuration,
		Phase:         domain.PhaseActive,
	}
}

// mustLoad is LoadQuestion for indexes the engine derived itself.
func (e *Engine) mustLoad(index int) {
	if err := e.LoadQuestion(index); err != nil {
		panic(err)
	}
}

func (e *Engine) stopTimer() {
	if e.countdown != port.NoTimer {
		e.sched.Cancel(e.countdown)
		e.countdown = port.NoTimer
	}
}

func (e *Engine) cancelPending() {
	if e.pending != port.NoTimer {
		e.sched.Cancel(e.pending)
		e.pending = port.NoTimer
	}
}

type nopObserver struct{}

func (nopObserver) OnQuestionLoaded(domain.QuestionLoaded) {}
func (nopObserver) OnOptionResolved(domain.OptionResolved) {}
func (nopObserver) OnTick(domain.Tick)                     {}
func (nopObserver) OnFinished(domain.Finished)             {}

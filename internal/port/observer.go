package port

import "dish-quiz/internal/domain"

// Observer receives quiz engine notifications. Calls happen on the engine's
// event loop and must not call back into the engine.
type Observer interface {
	OnQuestionLoaded(event domain.QuestionLoaded)
	OnOptionResolved(event domain.OptionResolved)
	OnTick(event domain.Tick)
	OnFinished(event domain.Finished)
}

// Celebrator is triggered once when a quiz ends with a perfect score.
type Celebrator interface {
	Celebrate(score, total int)
}

// Package scoring is the server-side scoring authority. It rebuilds every
// per-question outcome from the submitted userAnswer/correctAnswer pair and
// derives the final score from its own count, so neither a client-supplied
// score nor client-supplied isCorrect flags can influence what gets stored.
package scoring

import (
	"math"

	"github.com/rohitmodi970/casual-quizing/internal/model"
)

// Result is the graded view of one submission.
type Result struct {
	Answers      []model.QuizAnswer
	CorrectCount int
	Score        int
}

// Grade recomputes correctness field-by-field with exact string equality on
// the decoded question text and returns the rounded percentage score.
func Grade(answers []model.QuizAnswer, totalQuestions int) Result {
	graded := make([]model.QuizAnswer, len(answers))
	correct := 0

	for i, a := range answers {
		a.IsCorrect = a.UserAnswer == a.CorrectAnswer
		if a.IsCorrect {
			correct++
		}
		graded[i] = a
	}

	score := 0
	if totalQuestions > 0 {
		score = int(math.Round(float64(correct) / float64(totalQuestions) * 100))
	}

	return Result{
		Answers:      graded,
		CorrectCount: correct,
		Score:        score,
	}
}

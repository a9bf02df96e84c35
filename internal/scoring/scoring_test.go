package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rohitmodi970/casual-quizing/internal/model"
)

func makeAnswers(correct, wrong int) []model.QuizAnswer {
	answers := make([]model.QuizAnswer, 0, correct+wrong)
	for i := 0; i < correct; i++ {
		answers = append(answers, model.QuizAnswer{
			Question:      fmt.Sprintf("q%d", i),
			CorrectAnswer: "right",
			UserAnswer:    "right",
		})
	}
	for i := 0; i < wrong; i++ {
		answers = append(answers, model.QuizAnswer{
			Question:      fmt.Sprintf("q%d", correct+i),
			CorrectAnswer: "right",
			UserAnswer:    "wrong",
		})
	}
	return answers
}

func TestGradeRecomputesCorrectness(t *testing.T) {
	// Client marks everything correct; grading must disagree.
	answers := makeAnswers(10, 5)
	for i := range answers {
		answers[i].IsCorrect = true
	}

	result := Grade(answers, 15)

	assert.Equal(t, 10, result.CorrectCount)
	assert.Equal(t, 67, result.Score) // round(10/15*100)
	for i, a := range result.Answers {
		if i < 10 {
			assert.True(t, a.IsCorrect, "answer %d", i)
		} else {
			assert.False(t, a.IsCorrect, "answer %d", i)
		}
	}
}

func TestGradeRounding(t *testing.T) {
	cases := []struct {
		name    string
		correct int
		total   int
		want    int
	}{
		{"all correct", 15, 15, 100},
		{"none correct", 0, 15, 0},
		{"two thirds", 10, 15, 67},
		{"one third", 5, 15, 33},
		{"rounds half up", 1, 8, 13}, // 12.5 -> 13
		{"single question", 1, 1, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Grade(makeAnswers(tc.correct, tc.total-tc.correct), tc.total)
			assert.Equal(t, tc.want, result.Score)
			assert.Equal(t, tc.correct, result.CorrectCount)
		})
	}
}

func TestGradeZeroTotalQuestions(t *testing.T) {
	result := Grade(nil, 0)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.CorrectCount)
	assert.Empty(t, result.Answers)
}

func TestGradeExactStringMatch(t *testing.T) {
	// Placeholder and case differences never count as correct.
	answers := []model.QuizAnswer{
		{Question: "q1", CorrectAnswer: "Paris", UserAnswer: "Not answered"},
		{Question: "q2", CorrectAnswer: "Paris", UserAnswer: "paris"},
		{Question: "q3", CorrectAnswer: "Paris", UserAnswer: "Paris"},
	}

	result := Grade(answers, 3)

	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 33, result.Score)
	assert.False(t, result.Answers[0].IsCorrect)
	assert.False(t, result.Answers[1].IsCorrect)
	assert.True(t, result.Answers[2].IsCorrect)
}

func TestGradeDoesNotMutateInput(t *testing.T) {
	answers := []model.QuizAnswer{
		{Question: "q1", CorrectAnswer: "a", UserAnswer: "a", IsCorrect: false},
	}

	result := Grade(answers, 1)

	assert.True(t, result.Answers[0].IsCorrect)
	assert.False(t, answers[0].IsCorrect, "input slice must stay untouched")
}

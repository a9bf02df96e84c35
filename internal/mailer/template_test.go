package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitmodi970/casual-quizing/internal/model"
)

func sampleSummary() Summary {
	return Summary{
		Email:          "taker@example.com",
		Score:          67,
		CorrectCount:   10,
		IncorrectCount: 5,
		TotalQuestions: 15,
		TimeTaken:      321,
		Answers: []model.QuizAnswer{
			{
				Question:      "What is the capital of France?",
				CorrectAnswer: "Paris",
				UserAnswer:    "Paris",
				IsCorrect:     true,
				Category:      "Geography",
				Difficulty:    "easy",
			},
			{
				Question:      "Who wrote 1984?",
				CorrectAnswer: "George Orwell",
				UserAnswer:    "Not answered",
				IsCorrect:     false,
			},
		},
	}
}

func TestRenderSubjectAndScore(t *testing.T) {
	msg, err := Render(sampleSummary())
	require.NoError(t, err)

	assert.Equal(t, "Quiz Results - You scored 67%!", msg.Subject)
	assert.Contains(t, msg.HTML, "67%")
	assert.Contains(t, msg.Text, "67% (10/15)")
}

func TestRenderAnswerBreakdown(t *testing.T) {
	msg, err := Render(sampleSummary())
	require.NoError(t, err)

	// 1-based question numbering in both bodies.
	assert.Contains(t, msg.HTML, "Q1:")
	assert.Contains(t, msg.HTML, "Q2:")
	assert.Contains(t, msg.Text, "Q1: What is the capital of France?")

	// Correct answer shown only for missed questions.
	assert.Contains(t, msg.Text, "Correct Answer: George Orwell")
	assert.NotContains(t, msg.Text, "Correct Answer: Paris")
	assert.Contains(t, msg.Text, "Not answered")
}

func TestRenderTimeFormatted(t *testing.T) {
	msg, err := Render(sampleSummary())
	require.NoError(t, err)

	// 321s -> 5:21
	assert.Contains(t, msg.HTML, "Time: 5:21")
	assert.Contains(t, msg.Text, "Time Taken: 5:21")
}

func TestTimeFormattedPadsSeconds(t *testing.T) {
	assert.Equal(t, "0:05", Summary{TimeTaken: 5}.TimeFormatted())
	assert.Equal(t, "1:00", Summary{TimeTaken: 60}.TimeFormatted())
	assert.Equal(t, "15:00", Summary{TimeTaken: 900}.TimeFormatted())
}

func TestRenderEscapesHTMLBody(t *testing.T) {
	s := sampleSummary()
	s.Answers[0].Question = `<script>alert("x")</script>`

	msg, err := Render(s)
	require.NoError(t, err)

	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
}

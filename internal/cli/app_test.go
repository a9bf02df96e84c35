package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitmodi970/casual-quizing/internal/model"
	"github.com/rohitmodi970/casual-quizing/internal/session"
	"github.com/rohitmodi970/casual-quizing/internal/trivia"
)

type stubSource struct{ questions []trivia.Question }

func (s *stubSource) Fetch(ctx context.Context) ([]trivia.Question, error) {
	return s.questions, nil
}

type stubSubmitter struct {
	mu  sync.Mutex
	req *model.SubmitQuizRequest
}

func (s *stubSubmitter) SubmitQuiz(ctx context.Context, req *model.SubmitQuizRequest) (*model.SubmitQuizResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.req = req
	return &model.SubmitQuizResponse{
		QuizID:         uuid.New(),
		FinalScore:     50,
		CorrectAnswers: 1,
		TotalQuestions: 2,
		UserID:         uuid.New(),
		EmailSent:      true,
	}, nil
}

func (s *stubSubmitter) lastRequest() *model.SubmitQuizRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.req
}

func twoQuestions() []trivia.Question {
	questions := make([]trivia.Question, 2)
	for i := range questions {
		questions[i] = trivia.Question{
			Index:         i,
			Category:      "General Knowledge",
			Type:          trivia.QuestionTypeMultiple,
			Difficulty:    "easy",
			Text:          fmt.Sprintf("Question %d?", i),
			CorrectAnswer: "Right",
			Options:       []string{"Right", "Wrong A", "Wrong B", "Wrong C"},
		}
	}
	return questions
}

func TestRunAnswerAndSubmit(t *testing.T) {
	submitter := &stubSubmitter{}
	engine := session.NewEngine(session.Config{
		Email:        "taker@example.com",
		Duration:     15 * time.Minute,
		TickInterval: time.Hour, // no ticks during the test
	}, &stubSource{questions: twoQuestions()}, submitter, zerolog.Nop())

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	var out bytes.Buffer
	app := New(engine, pr, &out, zerolog.Nop())

	go func() {
		// A answers Q1 (option "Right") and auto-advances; B answers Q2
		// with "Wrong A"; then submit.
		for _, cmd := range []string{"a\n", "b\n", "submit\n"} {
			io.WriteString(pw, cmd)
		}
	}()

	require.NoError(t, app.Run(context.Background()))

	req := submitter.lastRequest()
	require.NotNil(t, req)
	require.Len(t, req.Answers, 2)
	assert.Equal(t, "Right", req.Answers[0].UserAnswer)
	assert.Equal(t, "Wrong A", req.Answers[1].UserAnswer)
	assert.Equal(t, "taker@example.com", req.Email)

	text := out.String()
	assert.Contains(t, text, "Loaded 2 questions")
	assert.Contains(t, text, "Recorded: Right")
	assert.Contains(t, text, "Final score:   50%")
	assert.Contains(t, text, "results email is on its way")
}

func TestRunSubmitsOnInputClose(t *testing.T) {
	submitter := &stubSubmitter{}
	engine := session.NewEngine(session.Config{
		Email:        "taker@example.com",
		Duration:     15 * time.Minute,
		TickInterval: time.Hour,
	}, &stubSource{questions: twoQuestions()}, submitter, zerolog.Nop())

	// Empty input: EOF right after start submits whatever was captured.
	var out bytes.Buffer
	app := New(engine, bytes.NewReader(nil), &out, zerolog.Nop())

	require.NoError(t, app.Run(context.Background()))

	req := submitter.lastRequest()
	require.NotNil(t, req)
	assert.Equal(t, session.NotAnsweredPlaceholder, req.Answers[0].UserAnswer)
	assert.Equal(t, session.NotAnsweredPlaceholder, req.Answers[1].UserAnswer)
}

func TestRunUnknownCommand(t *testing.T) {
	engine := session.NewEngine(session.Config{
		Email:        "taker@example.com",
		Duration:     15 * time.Minute,
		TickInterval: time.Hour,
	}, &stubSource{questions: twoQuestions()}, &stubSubmitter{}, zerolog.Nop())

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	var out bytes.Buffer
	app := New(engine, pr, &out, zerolog.Nop())

	go func() {
		io.WriteString(pw, "frobnicate\n")
		io.WriteString(pw, "quit\n")
	}()

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "Unknown command")
	assert.Contains(t, out.String(), "Nothing was submitted")
}

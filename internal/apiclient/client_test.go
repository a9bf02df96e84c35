package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitmodi970/casual-quizing/internal/model"
)

func TestSubmitQuizDecodesReceipt(t *testing.T) {
	quizID := uuid.New()
	userID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/quiz", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.SubmitQuizRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "taker@example.com", req.Email)
		require.Len(t, req.Answers, 1)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": model.SubmitQuizResponse{
				QuizID:         quizID,
				FinalScore:     100,
				CorrectAnswers: 1,
				TotalQuestions: 1,
				UserID:         userID,
				EmailSent:      true,
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	receipt, err := client.SubmitQuiz(context.Background(), &model.SubmitQuizRequest{
		Email:          "taker@example.com",
		TotalQuestions: 1,
		Answers: []model.QuizAnswer{
			{Question: "q", CorrectAnswer: "a", UserAnswer: "a"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, quizID, receipt.QuizID)
	assert.Equal(t, 100, receipt.FinalScore)
	assert.True(t, receipt.EmailSent)
}

func TestSubmitQuizSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "Validation failed",
			"details": []string{"email: must be a valid email address"},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.SubmitQuiz(context.Background(), &model.SubmitQuizRequest{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Validation failed", apiErr.Error())
	assert.Len(t, apiErr.Details, 1)
}

func TestSubmitQuizFalseSuccessWith200(t *testing.T) {
	// A 2xx body with success=false still counts as a failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "boom"})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.SubmitQuiz(context.Background(), &model.SubmitQuizRequest{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestFetchQuestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/questions", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"questions": []map[string]interface{}{
					{"index": 0, "question": "Pick one", "correctAnswer": "a", "options": []string{"a", "b"}},
				},
				"count": 1,
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	questions, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Pick one", questions[0].Text)
	assert.Equal(t, []string{"a", "b"}, questions[0].Options)
}

func TestAPIErrorMessageFallback(t *testing.T) {
	err := &APIError{StatusCode: 503}
	assert.Equal(t, "request failed with status 503", err.Error())
}

func TestNewTrimsBaseURL(t *testing.T) {
	client := New("  http://api.local/  ", nil)
	assert.Equal(t, "http://api.local", client.baseURL)
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizAnswer is the per-question outcome record: the reconciliation of a
// captured answer against its correct answer. It is stored as part of the
// persisted attempt and reused in the result-summary email.
type QuizAnswer struct {
	Question      string `json:"question" binding:"required"`
	CorrectAnswer string `json:"correctAnswer" binding:"required"`
	UserAnswer    string `json:"userAnswer" binding:"required"`
	IsCorrect     bool   `json:"isCorrect"`
	Category      string `json:"category,omitempty"`
	Difficulty    string `json:"difficulty,omitempty"`
}

// QuizResult is one completed attempt. Score is always the server-computed
// value; it is never taken from the client. Notes and Flagged belong to the
// separate annotation path and never change score or answers.
type QuizResult struct {
	ID             uuid.UUID    `json:"id"`
	UserID         uuid.UUID    `json:"userId"`
	Email          string       `json:"email"`
	Score          int          `json:"score"`
	TotalQuestions int          `json:"totalQuestions"`
	Answers        []QuizAnswer `json:"answers"`
	CompletedAt    time.Time    `json:"completedAt"`
	TimeTaken      int          `json:"timeTaken"`
	Notes          *string      `json:"notes,omitempty"`
	Flagged        bool         `json:"flagged"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// SubmitQuizRequest is the submission payload. The score field is accepted
// for shape compatibility but ignored: the server recomputes both the
// per-answer correctness and the final score before persisting.
type SubmitQuizRequest struct {
	Email          string       `json:"email" binding:"required,email"`
	Score          int          `json:"score"`
	TotalQuestions int          `json:"totalQuestions" binding:"required,min=1"`
	Answers        []QuizAnswer `json:"answers" binding:"required,min=1,dive"`
	TimeTaken      int          `json:"timeTaken" binding:"min=0"`
}

// SubmitQuizResponse is the receipt returned on a successful submission.
// EmailSent reflects the actual outcome of the best-effort dispatch attempt,
// not merely that dispatch was attempted.
type SubmitQuizResponse struct {
	QuizID         uuid.UUID `json:"quizId"`
	FinalScore     int       `json:"finalScore"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	UserID         uuid.UUID `json:"userId"`
	EmailSent      bool      `json:"emailSent"`
}

// AnnotateQuizRequest is the payload for the annotation path (PUT).
type AnnotateQuizRequest struct {
	Notes   *string `json:"notes" binding:"omitempty,max=2000"`
	Flagged *bool   `json:"flagged"`
}

// HistoryPagination describes the read-path paging envelope.
type HistoryPagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalResults int  `json:"totalResults"`
	HasMore      bool `json:"hasMore"`
}

// QuizHistoryResponse is the paginated read-path payload.
type QuizHistoryResponse struct {
	QuizResults []QuizResult      `json:"quizResults"`
	UserStats   *User             `json:"userStats,omitempty"`
	Pagination  HistoryPagination `json:"pagination"`
}

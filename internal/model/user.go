package model

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus enumerates the quiz-taking lifecycle of a registered email.
type UserStatus string

const (
	// UserStatusPending means the email is registered but no attempt has
	// been completed yet. Users are created in this state, including the
	// upsert-on-first-submission path.
	UserStatusPending UserStatus = "pending"
	// UserStatusCompleted means at least one attempt has been persisted.
	UserStatusCompleted UserStatus = "completed"
)

// User is keyed by normalized (lowercased, trimmed) email and tracks
// aggregate attempt stats. Stats are mutated only as a side effect of a
// QuizResult being created.
type User struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	Status            UserStatus `json:"status"`
	RegisteredAt      time.Time  `json:"registeredAt"`
	LastQuizAt        *time.Time `json:"lastQuizAt,omitempty"`
	TotalQuizzesTaken int        `json:"totalQuizzesTaken"`
	BestScore         *int       `json:"bestScore,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// RegisterEmailRequest is the payload for pre-quiz email registration.
type RegisterEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RegisterEmailResponse is returned after a registration attempt.
type RegisterEmailResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
}

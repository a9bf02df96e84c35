// Package session implements the client-resident quiz session engine: a
// finite-state machine owning question navigation, answer capture, the
// countdown-driven auto-submit and the at-most-once submission handshake
// with the backend.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/rohitmodi970/casual-quizing/internal/model"
	"github.com/rohitmodi970/casual-quizing/internal/trivia"
)

// Phase is the session's state-machine position. Transitions are monotonic:
// Loading → InProgress → Submitting → Completed|Failed, with Loading →
// Failed when the question fetch fails. Terminal phases never accept
// further answer captures or navigation.
type Phase string

const (
	PhaseLoading    Phase = "LOADING"
	PhaseInProgress Phase = "IN_PROGRESS"
	PhaseSubmitting Phase = "SUBMITTING"
	PhaseCompleted  Phase = "COMPLETED"
	PhaseFailed     Phase = "FAILED"
)

// Terminal reports whether the phase accepts no further transitions.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}

// Trigger identifies what caused a submission attempt.
type Trigger string

const (
	TriggerManual Trigger = "manual"
	TriggerAuto   Trigger = "auto"
)

// NotAnsweredPlaceholder is recorded as the user answer for questions left
// blank at submission time.
const NotAnsweredPlaceholder = "Not answered"

// EventKind distinguishes entries on the engine's notification channel.
type EventKind string

const (
	// EventPhaseChange fires on every phase transition.
	EventPhaseChange EventKind = "phase_change"
	// EventTick fires once per countdown tick while in progress.
	EventTick EventKind = "tick"
)

// Event is one entry on the engine's single notification channel.
type Event struct {
	Kind      EventKind
	Phase     Phase
	Remaining time.Duration
	// Trigger is set on the Submitting phase-change event.
	Trigger Trigger
	// Err is set on the Failed phase-change event.
	Err error
}

// Config is the explicit session configuration passed in at construction.
// The engine never reaches into ambient runtime state.
type Config struct {
	Email string
	// Duration is the hard attempt time limit (contract: 15 minutes).
	Duration time.Duration
	// TickInterval is the countdown resolution (contract: 1 second).
	TickInterval time.Duration
}

// QuestionSource fetches the fixed question batch for a new session.
type QuestionSource interface {
	Fetch(ctx context.Context) ([]trivia.Question, error)
}

// Submitter delivers the assembled submission to the backend.
type Submitter interface {
	SubmitQuiz(ctx context.Context, req *model.SubmitQuizRequest) (*model.SubmitQuizResponse, error)
}

// Outcome reports what a Submit call did. Performed is false for the loser
// of the manual-vs-auto race (and for duplicate submit requests): such calls
// are silent no-ops, not errors.
type Outcome struct {
	Performed bool
	Trigger   Trigger
	Phase     Phase
	Receipt   *model.SubmitQuizResponse
	Err       error
}

// Engine operation errors.
var (
	ErrNotInProgress   = errors.New("session: not in progress")
	ErrNotLoading      = errors.New("session: already started")
	ErrIndexOutOfRange = errors.New("session: question index out of range")
	ErrUnknownOption   = errors.New("session: answer is not one of the presented options")
	ErrNoQuestions     = errors.New("session: no questions populated")
)

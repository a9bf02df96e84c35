package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rohitmodi970/casual-quizing/internal/model"
	"github.com/rohitmodi970/casual-quizing/internal/trivia"
)

const (
	defaultDuration     = 15 * time.Minute
	defaultTickInterval = time.Second
	eventBufferSize     = 64
)

// Engine is the session state machine. All command methods are safe for
// concurrent use; the only real race in practice is the countdown goroutine
// firing auto-submit against a user-driven manual submit, which the phase
// flip under the mutex resolves before any network call starts.
type Engine struct {
	cfg       Config
	source    QuestionSource
	submitter Submitter
	log       zerolog.Logger
	now       func() time.Time

	mu           sync.Mutex
	phase        Phase
	questions    []trivia.Question
	answers      map[int]string
	current      int
	startedAt    time.Time
	deadline     time.Time
	submissionID uuid.UUID
	receipt      *model.SubmitQuizResponse
	failure      error

	events   chan Event
	stop     chan struct{}
	stopOnce sync.Once
}

// Option customizes engine construction.
type Option func(*Engine)

// WithClock injects a time source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a session engine in the Loading phase.
func NewEngine(cfg Config, source QuestionSource, submitter Submitter, log zerolog.Logger, opts ...Option) *Engine {
	if cfg.Duration <= 0 {
		cfg.Duration = defaultDuration
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTickInterval
	}

	e := &Engine{
		cfg:       cfg,
		source:    source,
		submitter: submitter,
		log:       log.With().Str("component", "session_engine").Logger(),
		now:       time.Now,
		phase:     PhaseLoading,
		answers:   make(map[int]string),
		events:    make(chan Event, eventBufferSize),
		stop:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Events returns the engine's single notification channel. Phase changes
// and countdown ticks are delivered on it; slow consumers lose events
// rather than blocking the engine.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// Start performs the one-time question fetch and, on success, enters
// InProgress and begins the countdown. A fetch failure moves the session to
// Failed; the session cannot be restarted, a fresh one is required.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.phase != PhaseLoading {
		e.mu.Unlock()
		return ErrNotLoading
	}
	e.mu.Unlock()

	questions, err := e.source.Fetch(ctx)
	if err != nil {
		e.fail(fmt.Errorf("fetch questions: %w", err))
		return err
	}
	if len(questions) == 0 {
		e.fail(ErrNoQuestions)
		return ErrNoQuestions
	}

	e.mu.Lock()
	e.questions = questions
	e.startedAt = e.now()
	e.deadline = e.startedAt.Add(e.cfg.Duration)
	e.phase = PhaseInProgress
	e.mu.Unlock()

	e.emit(Event{Kind: EventPhaseChange, Phase: PhaseInProgress, Remaining: e.cfg.Duration})
	e.log.Info().
		Int("questions", len(questions)).
		Dur("duration", e.cfg.Duration).
		Msg("Session started")

	go e.countdown(ctx)
	return nil
}

// countdown recomputes remaining time from the fixed deadline on every tick
// (no re-armed timers, so no drift accumulation) and fires auto-submit
// exactly once when it reaches zero.
func (e *Engine) countdown(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.mu.Lock()
			if e.phase != PhaseInProgress {
				e.mu.Unlock()
				return
			}
			remaining := e.remainingLocked()
			e.mu.Unlock()

			e.emit(Event{Kind: EventTick, Phase: PhaseInProgress, Remaining: remaining})

			if remaining <= 0 {
				e.Submit(ctx, TriggerAuto)
				return
			}
		}
	}
}

// Submit runs the at-most-once submission handshake. The first caller flips
// the phase to Submitting synchronously before any network call; every later
// caller observes a non-InProgress phase and returns a no-op outcome without
// resending anything. On backend failure the lock stays latched: the session
// ends in Failed and a retry requires a fresh session.
func (e *Engine) Submit(ctx context.Context, trigger Trigger) Outcome {
	e.mu.Lock()
	if e.phase != PhaseInProgress {
		phase := e.phase
		e.mu.Unlock()
		return Outcome{Performed: false, Trigger: trigger, Phase: phase}
	}

	e.phase = PhaseSubmitting
	e.submissionID = uuid.New()
	submissionID := e.submissionID
	remaining := e.remainingLocked()
	payload := e.buildPayloadLocked(remaining)
	e.mu.Unlock()

	e.stopCountdown()
	e.emit(Event{Kind: EventPhaseChange, Phase: PhaseSubmitting, Trigger: trigger})
	e.log.Info().
		Str("trigger", string(trigger)).
		Str("submission_id", submissionID.String()).
		Int("answered", len(payload.Answers)).
		Msg("Submitting attempt")

	receipt, err := e.submitter.SubmitQuiz(ctx, payload)
	if err != nil {
		e.fail(fmt.Errorf("submit attempt: %w", err))
		return Outcome{Performed: true, Trigger: trigger, Phase: PhaseFailed, Err: err}
	}

	e.mu.Lock()
	e.receipt = receipt
	e.phase = PhaseCompleted
	e.mu.Unlock()

	e.emit(Event{Kind: EventPhaseChange, Phase: PhaseCompleted, Trigger: trigger})
	e.log.Info().
		Int("score", receipt.FinalScore).
		Int("correct", receipt.CorrectAnswers).
		Msg("Attempt completed")

	return Outcome{Performed: true, Trigger: trigger, Phase: PhaseCompleted, Receipt: receipt}
}

// buildPayloadLocked assembles the submission request from captured answers.
// Unanswered questions are recorded with the placeholder and marked
// incorrect; the server regrades everything anyway.
func (e *Engine) buildPayloadLocked(remaining time.Duration) *model.SubmitQuizRequest {
	answers := make([]model.QuizAnswer, len(e.questions))
	for i, q := range e.questions {
		userAnswer, answered := e.answers[i]
		if !answered {
			userAnswer = NotAnsweredPlaceholder
		}
		answers[i] = model.QuizAnswer{
			Question:      q.Text,
			CorrectAnswer: q.CorrectAnswer,
			UserAnswer:    userAnswer,
			IsCorrect:     answered && userAnswer == q.CorrectAnswer,
			Category:      q.Category,
			Difficulty:    q.Difficulty,
		}
	}

	elapsed := e.cfg.Duration - remaining
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > e.cfg.Duration {
		elapsed = e.cfg.Duration
	}

	return &model.SubmitQuizRequest{
		Email:          e.cfg.Email,
		Score:          0, // computed on the backend
		TotalQuestions: len(e.questions),
		Answers:        answers,
		TimeTaken:      int(elapsed / time.Second),
	}
}

// SelectAnswer captures the user's choice for a question. Capture is
// idempotent: re-selecting for the same index overwrites.
func (e *Engine) SelectAnswer(index int, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if index < 0 || index >= len(e.questions) {
		return ErrIndexOutOfRange
	}
	if !e.questions[index].HasOption(text) {
		return ErrUnknownOption
	}

	e.answers[index] = text
	return nil
}

// Navigate moves the cursor to the given question index.
func (e *Engine) Navigate(to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if to < 0 || to >= len(e.questions) {
		return ErrIndexOutOfRange
	}

	e.current = to
	return nil
}

// Current returns the cursor position.
func (e *Engine) Current() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Questions returns the populated question sequence.
func (e *Engine) Questions() []trivia.Question {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.questions
}

// Answer returns the captured answer for a question, if any.
func (e *Engine) Answer(index int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, ok := e.answers[index]
	return text, ok
}

// AnsweredCount returns how many questions have a captured answer.
func (e *Engine) AnsweredCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.answers)
}

// Phase returns the current state-machine position.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Remaining returns the time left before the deadline, clamped to zero.
// Before the session starts it reports the full duration.
func (e *Engine) Remaining() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remainingLocked()
}

func (e *Engine) remainingLocked() time.Duration {
	if e.deadline.IsZero() {
		return e.cfg.Duration
	}
	remaining := e.deadline.Sub(e.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Receipt returns the server-confirmed result after completion.
func (e *Engine) Receipt() *model.SubmitQuizResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.receipt
}

// Failure returns the terminal error after a Failed transition.
func (e *Engine) Failure() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.failure
}

// SubmissionID returns the idempotency token assigned when the session
// entered Submitting, or uuid.Nil before that.
func (e *Engine) SubmissionID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submissionID
}

// Stop tears the engine down: the countdown is cancelled and will never
// fire a submission afterwards. Safe to call multiple times and in any
// phase.
func (e *Engine) Stop() {
	e.stopCountdown()
}

// stopCountdown is idempotent countdown cancellation.
func (e *Engine) stopCountdown() {
	e.stopOnce.Do(func() { close(e.stop) })
}

// fail moves the session to the Failed terminal phase.
func (e *Engine) fail(err error) {
	e.mu.Lock()
	e.failure = err
	e.phase = PhaseFailed
	e.mu.Unlock()

	e.stopCountdown()
	e.emit(Event{Kind: EventPhaseChange, Phase: PhaseFailed, Err: err})
	e.log.Error().Err(err).Msg("Session failed")
}

// emit delivers an event without ever blocking the engine.
func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	default:
	}
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rohitmodi970/casual-quizing/internal/mailer"
	"github.com/rohitmodi970/casual-quizing/internal/model"
	"github.com/rohitmodi970/casual-quizing/internal/repository"
	"github.com/rohitmodi970/casual-quizing/internal/scoring"
)

// Notifier dispatches a result summary. Implementations are best-effort;
// errors are logged by the pipeline and never fail a submission.
type Notifier interface {
	Send(ctx context.Context, s mailer.Summary) error
}

// SubmissionService runs the server-side submission pipeline: normalize,
// upsert user, regrade, persist transactionally, then best-effort notify.
type SubmissionService struct {
	userRepo   *repository.UserRepository
	resultRepo *repository.ResultRepository
	notifier   Notifier
	log        zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	userRepo *repository.UserRepository,
	resultRepo *repository.ResultRepository,
	notifier Notifier,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		userRepo:   userRepo,
		resultRepo: resultRepo,
		notifier:   notifier,
		log:        log.With().Str("component", "submission_service").Logger(),
	}
}

// Submit processes one completed attempt. The client-supplied score and
// isCorrect flags are discarded: correctness is recomputed per answer and
// the stored score is derived from that recomputation alone.
func (s *SubmissionService) Submit(ctx context.Context, req *model.SubmitQuizRequest) (*model.SubmitQuizResponse, error) {
	email := NormalizeEmail(req.Email)

	user, err := s.userRepo.GetOrCreate(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get or create user: %w", err)
	}

	graded := scoring.Grade(req.Answers, req.TotalQuestions)

	result := &model.QuizResult{
		UserID:         user.ID,
		Email:          email,
		Score:          graded.Score,
		TotalQuestions: req.TotalQuestions,
		Answers:        graded.Answers,
		CompletedAt:    time.Now().UTC(),
		TimeTaken:      req.TimeTaken,
	}

	if err := s.resultRepo.CreateWithStats(ctx, result); err != nil {
		return nil, fmt.Errorf("persist result: %w", err)
	}

	emailSent := false
	if err := s.notifier.Send(ctx, mailer.Summary{
		Email:          email,
		Score:          graded.Score,
		CorrectCount:   graded.CorrectCount,
		IncorrectCount: req.TotalQuestions - graded.CorrectCount,
		TotalQuestions: req.TotalQuestions,
		TimeTaken:      req.TimeTaken,
		Answers:        graded.Answers,
	}); err != nil {
		// Notification failure never fails the submission.
		s.log.Warn().Err(err).Str("email", email).Msg("Result email dispatch failed")
	} else {
		emailSent = true
	}

	s.log.Info().
		Str("email", email).
		Str("quiz_id", result.ID.String()).
		Int("score", graded.Score).
		Int("correct", graded.CorrectCount).
		Bool("email_sent", emailSent).
		Msg("Quiz submission persisted")

	return &model.SubmitQuizResponse{
		QuizID:         result.ID,
		FinalScore:     graded.Score,
		CorrectAnswers: graded.CorrectCount,
		TotalQuestions: req.TotalQuestions,
		UserID:         user.ID,
		EmailSent:      emailSent,
	}, nil
}

// NormalizeEmail lowers and trims an email so users are keyed consistently.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

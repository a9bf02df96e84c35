package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rohitmodi970/casual-quizing/internal/model"
	"github.com/rohitmodi970/casual-quizing/internal/repository"
)

// Domain errors surfaced to handlers.
var (
	ErrResultNotFound = errors.New("quiz result not found")
	ErrMissingFilter  = errors.New("either email or userId is required")
)

// ResultService handles the read path and the annotation path for persisted
// attempts. It never touches scores or answers.
type ResultService struct {
	resultRepo *repository.ResultRepository
	userRepo   *repository.UserRepository
}

// NewResultService creates a new ResultService.
func NewResultService(resultRepo *repository.ResultRepository, userRepo *repository.UserRepository) *ResultService {
	return &ResultService{resultRepo: resultRepo, userRepo: userRepo}
}

// History returns a page of results sorted by completion time descending,
// along with the owner's aggregate stats when they can be resolved.
func (s *ResultService) History(ctx context.Context, email string, userID *uuid.UUID, page, limit int) (*model.QuizHistoryResponse, error) {
	if email == "" && userID == nil {
		return nil, ErrMissingFilter
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	filter := repository.HistoryFilter{UserID: userID}
	if email != "" {
		filter.Email = NormalizeEmail(email)
	}

	offset := (page - 1) * limit
	results, total, err := s.resultRepo.ListPaginated(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	if results == nil {
		results = []model.QuizResult{}
	}

	var stats *model.User
	if filter.Email != "" {
		stats, err = s.userRepo.GetByEmail(ctx, filter.Email)
	} else {
		stats, err = s.userRepo.GetByID(ctx, *userID)
	}
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("lookup user stats: %w", err)
		}
		stats = nil
	}

	totalPages := (total + limit - 1) / limit

	return &model.QuizHistoryResponse{
		QuizResults: results,
		UserStats:   stats,
		Pagination: model.HistoryPagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalResults: total,
			HasMore:      page < totalPages,
		},
	}, nil
}

// Annotate applies notes/flagged updates to a single result.
func (s *ResultService) Annotate(ctx context.Context, id uuid.UUID, req *model.AnnotateQuizRequest) (*model.QuizResult, error) {
	res, err := s.resultRepo.Annotate(ctx, id, req.Notes, req.Flagged)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("annotate result: %w", err)
	}
	return res, nil
}

// Delete removes a single result.
func (s *ResultService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.resultRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	if deleted == 0 {
		return ErrResultNotFound
	}
	return nil
}

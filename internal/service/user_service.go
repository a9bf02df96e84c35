package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rohitmodi970/casual-quizing/internal/model"
	"github.com/rohitmodi970/casual-quizing/internal/repository"
)

// UserService handles the pre-quiz email registration flow.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterEmail registers an email for quiz access. Returning users are
// always allowed through: pending users continue to the quiz, completed
// users may retake it. created reports whether a new record was inserted.
func (s *UserService) RegisterEmail(ctx context.Context, email string) (user *model.User, created bool, err error) {
	email = NormalizeEmail(email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("lookup user: %w", err)
	}

	u := &model.User{Email: email}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Lost a registration race; the winner's row is what we want.
			existing, fetchErr := s.userRepo.GetByEmail(ctx, email)
			if fetchErr != nil {
				return nil, false, fmt.Errorf("fetch after duplicate: %w", fetchErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	return u, true, nil
}

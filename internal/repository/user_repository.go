package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rohitmodi970/casual-quizing/internal/model"
)

var ErrDuplicateEmail = errors.New("user with this email already exists")

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, status, registered_at, last_quiz_at, total_quizzes_taken, best_score, created_at, updated_at`

// GetByEmail retrieves a user by normalized email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.Status, &u.RegisteredAt, &u.LastQuizAt, &u.TotalQuizzesTaken, &u.BestScore, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.Status, &u.RegisteredAt, &u.LastQuizAt, &u.TotalQuizzesTaken, &u.BestScore, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new user in pending status.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, status)
		 VALUES ($1, $2)
		 RETURNING id, registered_at, total_quizzes_taken, created_at, updated_at`,
		u.Email, model.UserStatusPending,
	).Scan(&u.ID, &u.RegisteredAt, &u.TotalQuizzesTaken, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	u.Status = model.UserStatusPending
	return nil
}

// GetOrCreate returns the user for the given normalized email, creating a
// pending record if none exists. The quiz can be taken before the explicit
// registration step completes, so first sight of an email is a valid upsert
// point. A concurrent insert losing the unique-index race falls back to a
// fetch of the winner's row.
func (r *UserRepository) GetOrCreate(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{Email: email}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, status)
		 VALUES ($1, $2)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id, registered_at, total_quizzes_taken, created_at, updated_at`,
		email, model.UserStatusPending,
	).Scan(&u.ID, &u.RegisteredAt, &u.TotalQuizzesTaken, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		// RETURNING yields no row when the conflict clause suppressed the
		// insert; anything else is a real error.
		if errors.Is(err, pgx.ErrNoRows) {
			return r.GetByEmail(ctx, email)
		}
		return nil, err
	}

	u.Status = model.UserStatusPending
	return u, nil
}

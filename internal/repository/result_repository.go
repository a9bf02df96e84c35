package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rohitmodi970/casual-quizing/internal/model"
)

// ResultRepository handles quiz result data access.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

const resultColumns = `id, user_id, email, score, total_questions, answers, completed_at, time_taken, notes, flagged, created_at, updated_at`

// CreateWithStats persists a quiz result and applies the owning user's stats
// side effect (status completed, attempt counter, monotonic best score) in
// one transaction, so a crash cannot record an attempt without its stats or
// vice versa.
func (r *ResultRepository) CreateWithStats(ctx context.Context, res *model.QuizResult) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO quiz_results (user_id, email, score, total_questions, answers, completed_at, time_taken)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		res.UserID, res.Email, res.Score, res.TotalQuestions, res.Answers, res.CompletedAt, res.TimeTaken,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users
		 SET status = $1,
		     last_quiz_at = $2,
		     total_quizzes_taken = total_quizzes_taken + 1,
		     best_score = GREATEST(COALESCE(best_score, 0), $3),
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		model.UserStatusCompleted, res.CompletedAt, res.Score, res.UserID,
	)
	if err != nil {
		return fmt.Errorf("update user stats: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a single quiz result.
func (r *ResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.QuizResult, error) {
	res := &model.QuizResult{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM quiz_results WHERE id = $1`, id,
	).Scan(&res.ID, &res.UserID, &res.Email, &res.Score, &res.TotalQuestions, &res.Answers,
		&res.CompletedAt, &res.TimeTaken, &res.Notes, &res.Flagged, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// HistoryFilter selects results by email or owner ID. Exactly one of the two
// should be set; when both are present, both must match.
type HistoryFilter struct {
	Email  string
	UserID *uuid.UUID
}

// ListPaginated retrieves quiz results matching the filter, newest first.
func (r *ResultRepository) ListPaginated(ctx context.Context, filter HistoryFilter, limit, offset int) ([]model.QuizResult, int, error) {
	where := ` WHERE 1=1`
	var args []any
	if filter.Email != "" {
		args = append(args, filter.Email)
		where += fmt.Sprintf(" AND email = $%d", len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where += fmt.Sprintf(" AND user_id = $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quiz_results`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + resultColumns + ` FROM quiz_results` + where +
		fmt.Sprintf(` ORDER BY completed_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []model.QuizResult
	for rows.Next() {
		var res model.QuizResult
		if err := rows.Scan(&res.ID, &res.UserID, &res.Email, &res.Score, &res.TotalQuestions, &res.Answers,
			&res.CompletedAt, &res.TimeTaken, &res.Notes, &res.Flagged, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, 0, err
		}
		results = append(results, res)
	}
	return results, total, rows.Err()
}

// Annotate updates the notes/flagged annotation fields of a result and
// returns the updated row. Nil fields are left untouched.
func (r *ResultRepository) Annotate(ctx context.Context, id uuid.UUID, notes *string, flagged *bool) (*model.QuizResult, error) {
	res := &model.QuizResult{}
	err := r.pool.QueryRow(ctx,
		`UPDATE quiz_results
		 SET notes = COALESCE($1, notes),
		     flagged = COALESCE($2, flagged),
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3
		 RETURNING `+resultColumns,
		notes, flagged, id,
	).Scan(&res.ID, &res.UserID, &res.Email, &res.Score, &res.TotalQuestions, &res.Answers,
		&res.CompletedAt, &res.TimeTaken, &res.Notes, &res.Flagged, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Delete removes a quiz result by ID. Returns the number of rows deleted.
func (r *ResultRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quiz_results WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

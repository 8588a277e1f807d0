package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/prediction-league/models"
	"github.com/lib/pq"
)

var (
	ErrPredictionNotFound     = errors.New("prediction not found")
	ErrPredictionMatchInvalid = errors.New("prediction references an unknown match")
)

type PredictionRepository interface {
	// Upsert writes a prediction, replacing any previous guess by the
	// same user for the same match. Points is always reset to NULL so
	// the invariant "points absent until the match has a result" holds
	// for fresh and replaced rows alike.
	Upsert(ctx context.Context, exec SQLExecutor, prediction *models.Prediction) error
	// ListByMatch returns predictions ordered by user_id for stable
	// display. The executor lets the rescoring transaction read the rows
	// it is about to rewrite.
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Prediction, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Prediction, error)
	// List returns every prediction, ordered by match_id then user_id.
	List(ctx context.Context) ([]*models.Prediction, error)
	UpdatePoints(ctx context.Context, exec SQLExecutor, userID string, matchID, points int) error
	// SumPointsByUser aggregates scored predictions per user, ordered by
	// total points descending, user_id ascending.
	SumPointsByUser(ctx context.Context) ([]*models.ScoreboardEntry, error)
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

func (r *postgresPredictionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPredictionRepository) Upsert(ctx context.Context, exec SQLExecutor, prediction *models.Prediction) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO predictions (user_id, match_id, home_score, away_score, points)
		VALUES ($1, $2, $3, $4, NULL)
		ON CONFLICT (user_id, match_id) DO UPDATE
		SET home_score = EXCLUDED.home_score,
		    away_score = EXCLUDED.away_score,
		    points     = NULL,
		    updated_at = now()
		RETURNING created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		prediction.UserID,
		prediction.MatchID,
		prediction.Home,
		prediction.Away,
	).Scan(&prediction.CreatedAt, &prediction.UpdatedAt)

	return r.handlePredictionError(err)
}

func (r *postgresPredictionRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Prediction, error) {
	query := `
		SELECT user_id, match_id, home_score, away_score, points, created_at, updated_at
		FROM predictions
		WHERE match_id = $1
		ORDER BY user_id ASC`

	return r.queryPredictions(ctx, r.getExecutor(exec), query, matchID)
}

func (r *postgresPredictionRepository) ListByUser(ctx context.Context, userID string) ([]*models.Prediction, error) {
	query := `
		SELECT p.user_id, p.match_id, p.home_score, p.away_score, p.points, p.created_at, p.updated_at
		FROM predictions p
		JOIN matches m ON m.id = p.match_id
		WHERE p.user_id = $1
		ORDER BY m.kickoff ASC, p.match_id ASC`

	return r.queryPredictions(ctx, r.db, query, userID)
}

func (r *postgresPredictionRepository) List(ctx context.Context) ([]*models.Prediction, error) {
	query := `
		SELECT user_id, match_id, home_score, away_score, points, created_at, updated_at
		FROM predictions
		ORDER BY match_id ASC, user_id ASC`

	return r.queryPredictions(ctx, r.db, query)
}

func (r *postgresPredictionRepository) queryPredictions(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) ([]*models.Prediction, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	predictions := make([]*models.Prediction, 0)
	for rows.Next() {
		var prediction models.Prediction
		if scanErr := rows.Scan(
			&prediction.UserID,
			&prediction.MatchID,
			&prediction.Home,
			&prediction.Away,
			&prediction.Points,
			&prediction.CreatedAt,
			&prediction.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", scanErr)
		}
		predictions = append(predictions, &prediction)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during prediction rows iteration: %w", err)
	}
	return predictions, nil
}

func (r *postgresPredictionRepository) UpdatePoints(ctx context.Context, exec SQLExecutor, userID string, matchID, points int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE predictions
		SET points = $1
		WHERE user_id = $2 AND match_id = $3`

	result, err := executor.ExecContext(ctx, query, points, userID, matchID)
	if err != nil {
		return fmt.Errorf("failed to update points for user %s match %d: %w", userID, matchID, err)
	}
	return checkAffectedRows(result, ErrPredictionNotFound)
}

func (r *postgresPredictionRepository) SumPointsByUser(ctx context.Context) ([]*models.ScoreboardEntry, error) {
	query := `
		SELECT user_id,
		       COALESCE(SUM(points), 0) AS total_points,
		       COUNT(*) AS predicted,
		       COUNT(points) AS scored
		FROM predictions
		GROUP BY user_id
		ORDER BY total_points DESC, user_id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query point totals: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.ScoreboardEntry, 0)
	for rows.Next() {
		var entry models.ScoreboardEntry
		if scanErr := rows.Scan(&entry.UserID, &entry.TotalPoints, &entry.Predicted, &entry.Scored); scanErr != nil {
			return nil, fmt.Errorf("failed to scan scoreboard row: %w", scanErr)
		}
		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during scoreboard rows iteration: %w", err)
	}
	return entries, nil
}

func (r *postgresPredictionRepository) handlePredictionError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		// "23503": foreign_key_violation
		if pqErr.Constraint == "predictions_match_id_fkey" {
			return ErrPredictionMatchInvalid
		}
	}
	return err
}

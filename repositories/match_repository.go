package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/prediction-league/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	// Create inserts a fixture with its externally assigned id. It is
	// idempotent: re-importing an existing fixture is a no-op and
	// returns false.
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) (bool, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	// List returns all matches ordered by kickoff ascending, id ascending.
	List(ctx context.Context) ([]*models.Match, error)
	// UpdateResult sets or overwrites the official result. The executor
	// lets the caller run it inside the rescoring transaction.
	UpdateResult(ctx context.Context, exec SQLExecutor, id, homeScore, awayScore int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) (bool, error) {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (id, home_team, away_team, kickoff)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at`

	err := executor.QueryRowContext(ctx, query,
		match.ID,
		match.HomeTeam,
		match.AwayTeam,
		match.Kickoff,
	).Scan(&match.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Conflict path: the fixture already exists.
			return false, nil
		}
		return false, fmt.Errorf("failed to insert match %d: %w", match.ID, err)
	}
	return true, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, home_team, away_team, kickoff, home_score, away_score, created_at
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.HomeTeam,
		&match.AwayTeam,
		&match.Kickoff,
		&match.HomeScore,
		&match.AwayScore,
		&match.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	query := `
		SELECT id, home_team, away_team, kickoff, home_score, away_score, created_at
		FROM matches
		ORDER BY kickoff ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := rows.Scan(
			&match.ID,
			&match.HomeTeam,
			&match.AwayTeam,
			&match.Kickoff,
			&match.HomeScore,
			&match.AwayScore,
			&match.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, &match)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id, homeScore, awayScore int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET home_score = $1, away_score = $2
		WHERE id = $3`

	result, err := executor.ExecContext(ctx, query, homeScore, awayScore, id)
	if err != nil {
		return fmt.Errorf("failed to update result for match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

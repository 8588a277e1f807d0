package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/prediction-league/models"
	"github.com/Dosada05/prediction-league/repositories"
	"github.com/Dosada05/prediction-league/scoring"
	"github.com/jonboulle/clockwork"
)

// Broadcaster pushes a typed frame to connected live-feed clients.
// A nil Broadcaster disables pushes without changing service behavior.
type Broadcaster interface {
	Broadcast(frameType string, payload interface{})
}

const (
	FrameMatchResult = "MATCH_RESULT"
	FrameMatchLocked = "MATCH_LOCKED"
	FrameScoreboard  = "SCOREBOARD"
)

type MatchService interface {
	List(ctx context.Context) ([]*models.Match, error)
	ListUpcoming(ctx context.Context) ([]*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	// RecordResult stores the official result and rescores every
	// prediction for the match in one transaction. Safe to repeat:
	// a corrected result simply overwrites all affected points.
	RecordResult(ctx context.Context, matchID, homeScore, awayScore int) (*models.Match, error)
}

type matchService struct {
	tx             repositories.TxRunner
	matchRepo      repositories.MatchRepository
	predictionRepo repositories.PredictionRepository
	scoreboard     ScoreboardService
	ruleset        scoring.Ruleset
	clock          clockwork.Clock
	hub            Broadcaster
	logger         *slog.Logger
}

func NewMatchService(
	tx repositories.TxRunner,
	matchRepo repositories.MatchRepository,
	predictionRepo repositories.PredictionRepository,
	scoreboard ScoreboardService,
	ruleset scoring.Ruleset,
	clock clockwork.Clock,
	hub Broadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tx:             tx,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		scoreboard:     scoreboard,
		ruleset:        ruleset,
		clock:          clock,
		hub:            hub,
		logger:         logger,
	}
}

func (s *matchService) List(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) ListUpcoming(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	now := s.clock.Now()
	upcoming := make([]*models.Match, 0, len(matches))
	for _, match := range matches {
		if match.IsUpcoming(now) {
			upcoming = append(upcoming, match)
		}
	}
	return upcoming, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) RecordResult(ctx context.Context, matchID, homeScore, awayScore int) (*models.Match, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, ErrInvalidScore
	}

	match, err := s.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	var predictions []*models.Prediction
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.UpdateResult(ctx, exec, matchID, homeScore, awayScore); err != nil {
			return err
		}

		// Read the predictions through the same transaction so a
		// concurrent submit can never leave a new guess unscored
		// behind a recorded result.
		var listErr error
		predictions, listErr = s.predictionRepo.ListByMatch(ctx, exec, matchID)
		if listErr != nil {
			return fmt.Errorf("failed to load predictions for rescoring: %w", listErr)
		}

		for _, prediction := range predictions {
			points := s.ruleset.Score(prediction.Home, prediction.Away, homeScore, awayScore)
			if updErr := s.predictionRepo.UpdatePoints(ctx, exec, prediction.UserID, matchID, points); updErr != nil {
				return fmt.Errorf("failed to rescore prediction of %s: %w", prediction.UserID, updErr)
			}
			prediction.Points = &points
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to record result for match %d: %w", matchID, err)
	}

	match.HomeScore = &homeScore
	match.AwayScore = &awayScore

	s.logger.Info("match result recorded",
		slog.Int("match_id", matchID),
		slog.Int("home_score", homeScore),
		slog.Int("away_score", awayScore),
		slog.Int("rescored_predictions", len(predictions)),
	)

	s.broadcastResult(ctx, match, predictions)

	return match, nil
}

func (s *matchService) broadcastResult(ctx context.Context, match *models.Match, predictions []*models.Prediction) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(FrameMatchResult, map[string]interface{}{
		"match":       match,
		"predictions": predictions,
	})

	// Go through the scoreboard service so live clients see the same
	// ranking, roster seeding included, as GET /scoreboard.
	entries, err := s.scoreboard.Scoreboard(ctx)
	if err != nil {
		s.logger.Error("failed to load scoreboard for broadcast", slog.Any("error", err))
		return
	}
	s.hub.Broadcast(FrameScoreboard, entries)
}

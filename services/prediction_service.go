package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/prediction-league/models"
	"github.com/Dosada05/prediction-league/repositories"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

// displayDateLayout matches what the original scoreboard pages showed.
const displayDateLayout = "02.01.2006 15:04"

type SubmitPredictionInput struct {
	UserID  string `json:"user_id"`
	MatchID int    `json:"match_id"`
	Home    int    `json:"home_score"`
	Away    int    `json:"away_score"`
}

type PredictionService interface {
	// Submit stores a prediction, replacing any earlier guess by the
	// same user for the same match. Rejected once kickoff has passed.
	Submit(ctx context.Context, input SubmitPredictionInput) (*models.Prediction, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.Prediction, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Prediction, error)
	// Overview returns every match in kickoff order with its
	// predictions grouped under it.
	Overview(ctx context.Context) ([]*models.MatchOverview, error)
}

type predictionService struct {
	matchRepo      repositories.MatchRepository
	predictionRepo repositories.PredictionRepository
	clock          clockwork.Clock
}

func NewPredictionService(
	matchRepo repositories.MatchRepository,
	predictionRepo repositories.PredictionRepository,
	clock clockwork.Clock,
) PredictionService {
	return &predictionService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		clock:          clock,
	}
}

func (s *predictionService) Submit(ctx context.Context, input SubmitPredictionInput) (*models.Prediction, error) {
	if input.UserID == "" {
		return nil, ErrUserIDRequired
	}
	if input.Home < 0 || input.Away < 0 {
		return nil, ErrInvalidScore
	}

	match, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d for prediction: %w", input.MatchID, err)
	}

	if match.IsLocked(s.clock.Now()) {
		return nil, ErrMatchLocked
	}

	prediction := &models.Prediction{
		UserID:  input.UserID,
		MatchID: input.MatchID,
		Home:    input.Home,
		Away:    input.Away,
	}
	if err := s.predictionRepo.Upsert(ctx, nil, prediction); err != nil {
		if errors.Is(err, repositories.ErrPredictionMatchInvalid) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to store prediction of %s for match %d: %w",
			input.UserID, input.MatchID, err)
	}
	return prediction, nil
}

func (s *predictionService) ListByMatch(ctx context.Context, matchID int) ([]*models.Prediction, error) {
	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	predictions, err := s.predictionRepo.ListByMatch(ctx, nil, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions for match %d: %w", matchID, err)
	}
	return predictions, nil
}

func (s *predictionService) ListByUser(ctx context.Context, userID string) ([]*models.Prediction, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	predictions, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions for user %s: %w", userID, err)
	}
	return predictions, nil
}

func (s *predictionService) Overview(ctx context.Context) ([]*models.MatchOverview, error) {
	var (
		matches     []*models.Match
		predictions []*models.Prediction
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		predictions, err = s.predictionRepo.List(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load prediction overview: %w", err)
	}

	byMatch := make(map[int][]*models.Prediction, len(matches))
	for _, prediction := range predictions {
		byMatch[prediction.MatchID] = append(byMatch[prediction.MatchID], prediction)
	}

	overview := make([]*models.MatchOverview, 0, len(matches))
	for _, match := range matches {
		matchPredictions := byMatch[match.ID]
		if matchPredictions == nil {
			matchPredictions = []*models.Prediction{}
		}
		overview = append(overview, &models.MatchOverview{
			Match:       match,
			DisplayDate: match.Kickoff.In(time.UTC).Format(displayDateLayout),
			Predictions: matchPredictions,
		})
	}
	return overview, nil
}

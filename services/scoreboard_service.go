package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/prediction-league/models"
	"github.com/Dosada05/prediction-league/repositories"
)

type ScoreboardService interface {
	// Scoreboard recomputes the ranking from the predictions on every
	// call; nothing is cached. Ordered by total points descending,
	// user_id ascending.
	Scoreboard(ctx context.Context) ([]*models.ScoreboardEntry, error)
}

type scoreboardService struct {
	predictionRepo repositories.PredictionRepository
	roster         []string
}

// NewScoreboardService builds the read-side projection. The roster is
// optional; when present, players without any prediction still appear
// with zero points.
func NewScoreboardService(predictionRepo repositories.PredictionRepository, roster []string) ScoreboardService {
	return &scoreboardService{
		predictionRepo: predictionRepo,
		roster:         roster,
	}
}

func (s *scoreboardService) Scoreboard(ctx context.Context) ([]*models.ScoreboardEntry, error) {
	entries, err := s.predictionRepo.SumPointsByUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate scoreboard: %w", err)
	}

	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		seen[entry.UserID] = true
	}
	for _, userID := range s.roster {
		if userID == "" || seen[userID] {
			continue
		}
		entries = append(entries, &models.ScoreboardEntry{UserID: userID})
		seen[userID] = true
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries, nil
}

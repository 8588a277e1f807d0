package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/prediction-league/models"
	"github.com/Dosada05/prediction-league/repositories"
	"github.com/Dosada05/prediction-league/storage"
)

type FixtureService interface {
	// Import loads the fixture list from the configured source and
	// seeds the match table. Already imported fixtures are skipped, so
	// restarting the service never duplicates or overwrites matches.
	Import(ctx context.Context) (int, error)
}

type fixtureService struct {
	source    storage.FixtureSource
	matchRepo repositories.MatchRepository
	logger    *slog.Logger
}

func NewFixtureService(source storage.FixtureSource, matchRepo repositories.MatchRepository, logger *slog.Logger) FixtureService {
	return &fixtureService{
		source:    source,
		matchRepo: matchRepo,
		logger:    logger,
	}
}

func (s *fixtureService) Import(ctx context.Context) (int, error) {
	fixtures, err := s.source.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load fixtures: %w", err)
	}

	created := 0
	for _, fixture := range fixtures {
		if fixture.HomeTeam == "" || fixture.AwayTeam == "" {
			return created, fmt.Errorf("fixture %d: %w", fixture.MatchID, ErrTeamNamesRequired)
		}
		match := &models.Match{
			ID:       fixture.MatchID,
			HomeTeam: fixture.HomeTeam,
			AwayTeam: fixture.AwayTeam,
			Kickoff:  fixture.Kickoff,
		}
		inserted, err := s.matchRepo.Create(ctx, nil, match)
		if err != nil {
			return created, fmt.Errorf("failed to import fixture %d: %w", fixture.MatchID, err)
		}
		if inserted {
			created++
		}
	}

	s.logger.Info("fixtures imported",
		slog.Int("total", len(fixtures)),
		slog.Int("created", created),
	)
	return created, nil
}

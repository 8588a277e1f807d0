package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/prediction-league/services"
)

func TestSubmitBeforeKickoff(t *testing.T) {
	f := newMatchFixture(t, newMatch(1))

	prediction, err := f.predictions.Submit(context.Background(), services.SubmitPredictionInput{
		UserID: "Player 1", MatchID: 1, Home: 2, Away: 1,
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if prediction.Points != nil {
		t.Error("a fresh prediction must not carry points")
	}
	if prediction.Home != 2 || prediction.Away != 1 {
		t.Errorf("stored scores wrong: %d-%d", prediction.Home, prediction.Away)
	}
}

func TestSubmitAfterKickoffIsLocked(t *testing.T) {
	f := newMatchFixture(t, newMatch(1))
	f.submit(t, "Player 2", 1, 1, 1)

	// 18:30, half an hour into the match.
	f.clock.Advance(2*time.Hour + 30*time.Minute)

	_, err := f.predictions.Submit(context.Background(), services.SubmitPredictionInput{
		UserID: "Player 2", MatchID: 1, Home: 5, Away: 0,
	})
	if !errors.Is(err, services.ErrMatchLocked) {
		t.Fatalf("got %v, want ErrMatchLocked", err)
	}

	// The stored prediction is untouched by the rejected submit.
	predictions, err := f.predictions.ListByMatch(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByMatch failed: %v", err)
	}
	if len(predictions) != 1 || predictions[0].Home != 1 || predictions[0].Away != 1 {
		t.Fatalf("stored prediction changed: %+v", predictions)
	}
}

func TestSubmitExactlyAtKickoffIsLocked(t *testing.T) {
	f := newMatchFixture(t, newMatch(1))
	f.clock.Advance(2 * time.Hour) // now == kickoff

	_, err := f.predictions.Submit(context.Background(), services.SubmitPredictionInput{
		UserID: "Player 1", MatchID: 1, Home: 1, Away: 0,
	})
	if !errors.Is(err, services.ErrMatchLocked) {
		t.Fatalf("submission at kickoff instant: got %v, want ErrMatchLocked", err)
	}
}

func TestSubmitLastWriteWins(t *testing.T) {
	f := newMatchFixture(t, newMatch(1))
	f.submit(t, "Player 1", 1, 0, 0)
	f.submit(t, "Player 1", 1, 2, 1)

	predictions, err := f.predictions.ListByMatch(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByMatch failed: %v", err)
	}
	if len(predictions) != 1 {
		t.Fatalf("resubmission must replace, not duplicate: got %d rows", len(predictions))
	}
	if predictions[0].Home != 2 || predictions[0].Away != 1 {
		t.Fatalf("last submission should win, got %d-%d", predictions[0].Home, predictions[0].Away)
	}
}

func TestSubmitValidation(t *testing.T) {
	f := newMatchFixture(t, newMatch(1))
	ctx := context.Background()

	cases := []struct {
		name  string
		input services.SubmitPredictionInput
		want  error
	}{
		{"missing user", services.SubmitPredictionInput{MatchID: 1, Home: 1, Away: 0}, services.ErrUserIDRequired},
		{"negative home", services.SubmitPredictionInput{UserID: "Player 1", MatchID: 1, Home: -1, Away: 0}, services.ErrInvalidScore},
		{"negative away", services.SubmitPredictionInput{UserID: "Player 1", MatchID: 1, Home: 0, Away: -3}, services.ErrInvalidScore},
		{"unknown match", services.SubmitPredictionInput{UserID: "Player 1", MatchID: 42, Home: 1, Away: 0}, services.ErrMatchNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := f.predictions.Submit(ctx, c.input); !errors.Is(err, c.want) {
				t.Fatalf("got %v, want %v", err, c.want)
			}
		})
	}
}

func TestListByMatchUnknownMatch(t *testing.T) {
	f := newMatchFixture(t, newMatch(1))
	if _, err := f.predictions.ListByMatch(context.Background(), 7); !errors.Is(err, services.ErrMatchNotFound) {
		t.Fatalf("got %v, want ErrMatchNotFound", err)
	}
}

func TestOverviewGroupsPredictionsUnderMatches(t *testing.T) {
	first := newMatch(1)
	second := newMatch(2)
	second.Kickoff = kickoff.Add(3 * time.Hour)

	f := newMatchFixture(t, first, second)
	f.submit(t, "Player 1", 1, 2, 1)
	f.submit(t, "Player 2", 1, 1, 1)

	overview, err := f.predictions.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if len(overview) != 2 {
		t.Fatalf("expected 2 matches in overview, got %d", len(overview))
	}
	if overview[0].ID != 1 || overview[1].ID != 2 {
		t.Fatalf("overview not in kickoff order: %d, %d", overview[0].ID, overview[1].ID)
	}
	if len(overview[0].Predictions) != 2 {
		t.Errorf("match 1 should list 2 predictions, got %d", len(overview[0].Predictions))
	}
	if len(overview[1].Predictions) != 0 {
		t.Errorf("match 2 should list no predictions, got %d", len(overview[1].Predictions))
	}
	if overview[0].Predictions[0].UserID != "Player 1" {
		t.Errorf("predictions should be ordered by user_id, got %s first", overview[0].Predictions[0].UserID)
	}
	if overview[0].DisplayDate != "20.06.2024 18:00" {
		t.Errorf("display date formatted wrong: %s", overview[0].DisplayDate)
	}
}

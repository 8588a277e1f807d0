package services_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/Dosada05/prediction-league/models"
	"github.com/Dosada05/prediction-league/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxRunner hands the callback a nil executor; the in-memory fakes
// below ignore it.
type fakeTxRunner struct{}

func (fakeTxRunner) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeMatchRepo struct {
	matches map[int]*models.Match
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[int]*models.Match)}
	for _, m := range matches {
		c := *m
		r.matches[m.ID] = &c
	}
	return r
}

func (r *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, match *models.Match) (bool, error) {
	if _, ok := r.matches[match.ID]; ok {
		return false, nil
	}
	c := *match
	c.CreatedAt = time.Now()
	r.matches[match.ID] = &c
	match.CreatedAt = c.CreatedAt
	return true, nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	c := *match
	return &c, nil
}

func (r *fakeMatchRepo) List(_ context.Context) ([]*models.Match, error) {
	out := make([]*models.Match, 0, len(r.matches))
	for _, m := range r.matches {
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Kickoff.Equal(out[j].Kickoff) {
			return out[i].Kickoff.Before(out[j].Kickoff)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeMatchRepo) UpdateResult(_ context.Context, _ repositories.SQLExecutor, id, homeScore, awayScore int) error {
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	h, a := homeScore, awayScore
	match.HomeScore = &h
	match.AwayScore = &a
	return nil
}

type predKey struct {
	userID  string
	matchID int
}

type fakePredictionRepo struct {
	matchRepo   *fakeMatchRepo
	predictions map[predKey]*models.Prediction
}

func newFakePredictionRepo(matchRepo *fakeMatchRepo) *fakePredictionRepo {
	return &fakePredictionRepo{
		matchRepo:   matchRepo,
		predictions: make(map[predKey]*models.Prediction),
	}
}

func (r *fakePredictionRepo) Upsert(_ context.Context, _ repositories.SQLExecutor, prediction *models.Prediction) error {
	if _, ok := r.matchRepo.matches[prediction.MatchID]; !ok {
		return repositories.ErrPredictionMatchInvalid
	}
	key := predKey{prediction.UserID, prediction.MatchID}
	now := time.Now()
	createdAt := now
	if existing, ok := r.predictions[key]; ok {
		createdAt = existing.CreatedAt
	}
	stored := *prediction
	stored.Points = nil
	stored.CreatedAt = createdAt
	stored.UpdatedAt = now
	r.predictions[key] = &stored
	prediction.Points = nil
	prediction.CreatedAt = createdAt
	prediction.UpdatedAt = now
	return nil
}

func (r *fakePredictionRepo) ListByMatch(_ context.Context, _ repositories.SQLExecutor, matchID int) ([]*models.Prediction, error) {
	out := make([]*models.Prediction, 0)
	for _, p := range r.predictions {
		if p.MatchID == matchID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *fakePredictionRepo) ListByUser(_ context.Context, userID string) ([]*models.Prediction, error) {
	out := make([]*models.Prediction, 0)
	for _, p := range r.predictions {
		if p.UserID == userID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out, nil
}

func (r *fakePredictionRepo) List(_ context.Context) ([]*models.Prediction, error) {
	out := make([]*models.Prediction, 0, len(r.predictions))
	for _, p := range r.predictions {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (r *fakePredictionRepo) UpdatePoints(_ context.Context, _ repositories.SQLExecutor, userID string, matchID, points int) error {
	prediction, ok := r.predictions[predKey{userID, matchID}]
	if !ok {
		return repositories.ErrPredictionNotFound
	}
	p := points
	prediction.Points = &p
	return nil
}

func (r *fakePredictionRepo) SumPointsByUser(_ context.Context) ([]*models.ScoreboardEntry, error) {
	byUser := make(map[string]*models.ScoreboardEntry)
	for _, p := range r.predictions {
		entry, ok := byUser[p.UserID]
		if !ok {
			entry = &models.ScoreboardEntry{UserID: p.UserID}
			byUser[p.UserID] = entry
		}
		entry.Predicted++
		if p.Points != nil {
			entry.Scored++
			entry.TotalPoints += *p.Points
		}
	}
	out := make([]*models.ScoreboardEntry, 0, len(byUser))
	for _, entry := range byUser {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

// trackingTxRunner records the transaction outcome so tests can assert
// that failed work never commits.
type trackingTxRunner struct {
	committed  bool
	rolledBack bool
}

func (r *trackingTxRunner) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	if err := fn(nil); err != nil {
		r.rolledBack = true
		return err
	}
	r.committed = true
	return nil
}

// recordingHub captures broadcast frames for assertions.
type recordingHub struct {
	frames   []string
	payloads []interface{}
}

func (h *recordingHub) Broadcast(frameType string, payload interface{}) {
	h.frames = append(h.frames, frameType)
	h.payloads = append(h.payloads, payload)
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const fixtureDoc = `[
	{"match_id": 1, "home_team": "Germany", "away_team": "Scotland", "match_date": "2024-06-14T21:00:00"},
	{"match_id": 2, "home_team": "Hungary", "away_team": "Switzerland", "match_date": "2024-06-15T15:00:00Z"}
]`

func TestFileSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")
	if err := os.WriteFile(path, []byte(fixtureDoc), 0o600); err != nil {
		t.Fatal(err)
	}

	fixtures, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(fixtures))
	}

	want := time.Date(2024, 6, 14, 21, 0, 0, 0, time.UTC)
	if !fixtures[0].Kickoff.Equal(want) {
		t.Errorf("fixture 1 kickoff = %v, want %v", fixtures[0].Kickoff, want)
	}
	if fixtures[1].HomeTeam != "Hungary" || fixtures[1].AwayTeam != "Switzerland" {
		t.Errorf("fixture 2 teams wrong: %s - %s", fixtures[1].HomeTeam, fixtures[1].AwayTeam)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	if _, err := NewFileSource("/does/not/exist.json").Load(context.Background()); err == nil {
		t.Fatal("expected error for missing fixture file")
	}
}

func TestDecodeFixturesRejectsBadDates(t *testing.T) {
	bad := `[{"match_id": 1, "home_team": "A", "away_team": "B", "match_date": "tomorrow"}]`
	if _, err := decodeFixtures([]byte(bad)); err == nil {
		t.Fatal("expected error for unparseable match date")
	}
}

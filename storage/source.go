package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// fixtureTimeLayouts are the timestamp formats accepted in fixture files.
// The first is what the original Euro 2024 data used.
var fixtureTimeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// FixtureMatch is one row of the tournament fixture list as shipped in
// the fixture JSON document.
type FixtureMatch struct {
	MatchID  int       `json:"match_id"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	Kickoff  time.Time `json:"-"`

	RawKickoff string `json:"match_date"`
}

// FixtureSource loads the fixture list the tournament is seeded from.
type FixtureSource interface {
	Load(ctx context.Context) ([]FixtureMatch, error)
}

func decodeFixtures(data []byte) ([]FixtureMatch, error) {
	var fixtures []FixtureMatch
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to decode fixture document: %w", err)
	}
	for i := range fixtures {
		kickoff, err := parseFixtureTime(fixtures[i].RawKickoff)
		if err != nil {
			return nil, fmt.Errorf("fixture %d: %w", fixtures[i].MatchID, err)
		}
		fixtures[i].Kickoff = kickoff
	}
	return fixtures, nil
}

func parseFixtureTime(value string) (time.Time, error) {
	for _, layout := range fixtureTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable match date %q", value)
}

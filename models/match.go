package models

import "time"

// Match is a fixture in the tournament. HomeScore/AwayScore stay nil until
// the operator records the official result; once set they may be corrected
// but never cleared again.
type Match struct {
	ID        int       `json:"match_id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	Kickoff   time.Time `json:"match_date"`
	HomeScore *int      `json:"home_score,omitempty"`
	AwayScore *int      `json:"away_score,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Match) HasResult() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// IsLocked reports whether predictions for this match are frozen.
// The comparison is instant-level: the match locks exactly at kickoff.
func (m *Match) IsLocked(now time.Time) bool {
	return !now.Before(m.Kickoff)
}

// IsUpcoming is the complement of IsLocked, kept as its own predicate so
// list filtering and submission checks can never drift apart.
func (m *Match) IsUpcoming(now time.Time) bool {
	return now.Before(m.Kickoff)
}

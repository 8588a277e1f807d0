package models

import "time"

// Prediction is one user's guessed final score for one match. There is at
// most one row per (user_id, match_id); a resubmission before kickoff
// replaces the previous guess. Points stays nil until the match has a
// result and is written exclusively by the rescoring pass.
type Prediction struct {
	UserID    string    `json:"user_id"`
	MatchID   int       `json:"match_id"`
	Home      int       `json:"home_score"`
	Away      int       `json:"away_score"`
	Points    *int      `json:"points,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Prediction) IsScored() bool {
	return p.Points != nil
}

package models

// ScoreboardEntry is a derived row, recomputed from predictions on every
// read. It is never stored.
type ScoreboardEntry struct {
	UserID      string `json:"user_id"`
	TotalPoints int    `json:"points"`
	Predicted   int    `json:"predicted"`
	Scored      int    `json:"scored"`
}

// MatchOverview is a match together with all predictions made for it,
// the shape the predictions list consumes. The match fields are
// flattened into the object, alongside a human-formatted kickoff date.
type MatchOverview struct {
	*Match
	DisplayDate string        `json:"display_date"`
	Predictions []*Prediction `json:"predictions"`
}

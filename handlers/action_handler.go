package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/prediction-league/middleware"
	"github.com/Dosada05/prediction-league/services"
)

// ActionHandler serves the action-envelope endpoint the original web
// client speaks: a single POST whose body carries an action
// discriminator plus parameters. The REST routes expose the same
// operations; this endpoint keeps old clients working unchanged.
type ActionHandler struct {
	matchService      services.MatchService
	predictionService services.PredictionService
	scoreboardService services.ScoreboardService
	jwtSecret         []byte
}

func NewActionHandler(
	matchService services.MatchService,
	predictionService services.PredictionService,
	scoreboardService services.ScoreboardService,
	jwtSecret string,
) *ActionHandler {
	return &ActionHandler{
		matchService:      matchService,
		predictionService: predictionService,
		scoreboardService: scoreboardService,
		jwtSecret:         []byte(jwtSecret),
	}
}

type actionRequest struct {
	Action    string `json:"action"`
	UserID    string `json:"user_id,omitempty"`
	MatchID   int    `json:"match_id,omitempty"`
	HomeScore *int   `json:"home_score,omitempty"`
	AwayScore *int   `json:"away_score,omitempty"`
}

func (req *actionRequest) scores() (int, int, error) {
	if req.HomeScore == nil || req.AwayScore == nil {
		return 0, 0, errors.New("home_score and away_score are required")
	}
	return *req.HomeScore, *req.AwayScore, nil
}

func (h *ActionHandler) DispatchHandler(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	switch req.Action {
	case "get_matches":
		h.getMatches(w, r)
	case "submit_prediction":
		h.submitPrediction(w, r, &req)
	case "get_predictions":
		h.getPredictions(w, r)
	case "get_scores":
		h.getScores(w, r)
	case "set_match_result":
		h.setMatchResult(w, r, &req)
	default:
		badRequestResponse(w, r, fmt.Errorf("invalid action %q", req.Action))
	}
}

func (h *ActionHandler) getMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, matches, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ActionHandler) submitPrediction(w http.ResponseWriter, r *http.Request, req *actionRequest) {
	home, away, err := req.scores()
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	prediction, err := h.predictionService.Submit(r.Context(), services.SubmitPredictionInput{
		UserID:  req.UserID,
		MatchID: req.MatchID,
		Home:    home,
		Away:    away,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, prediction, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ActionHandler) getPredictions(w http.ResponseWriter, r *http.Request) {
	overview, err := h.predictionService.Overview(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, overview, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ActionHandler) getScores(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scoreboardService.Scoreboard(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, entries, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ActionHandler) setMatchResult(w http.ResponseWriter, r *http.Request, req *actionRequest) {
	// Result entry is the one privileged action on this endpoint.
	if err := middleware.VerifyOperator(r, h.jwtSecret); err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	home, away, err := req.scores()
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RecordResult(r.Context(), req.MatchID, home, away)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"net/http"

	"github.com/Dosada05/prediction-league/services"
)

type ScoreboardHandler struct {
	scoreboardService services.ScoreboardService
}

func NewScoreboardHandler(scoreboardService services.ScoreboardService) *ScoreboardHandler {
	return &ScoreboardHandler{scoreboardService: scoreboardService}
}

func (h *ScoreboardHandler) ScoreboardHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scoreboardService.Scoreboard(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"scores": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"net/http"

	"github.com/Dosada05/atletica-scoreboard/models"
	"github.com/Dosada05/atletica-scoreboard/services"
)

// ScoringHandler serves the inputs that adjust points: penalties and
// per-modality score rules.
type ScoringHandler struct {
	penaltyService   services.PenaltyService
	scoreRuleService services.ScoreRuleService
}

func NewScoringHandler(ps services.PenaltyService, srs services.ScoreRuleService) *ScoringHandler {
	return &ScoringHandler{penaltyService: ps, scoreRuleService: srs}
}

func (h *ScoringHandler) ListPenalties(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	penalties, err := h.penaltyService.ListPenalties(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"penalties": penalties})
}

func (h *ScoringHandler) CreatePenalty(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreatePenaltyInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	penalty, err := h.penaltyService.CreatePenalty(r.Context(), competitionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"penalty": penalty})
}

func (h *ScoringHandler) DeletePenalty(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	penaltyID, err := getIDFromURL(r, "penaltyID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.penaltyService.DeletePenalty(r.Context(), competitionID, penaltyID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScoringHandler) GetScoreRules(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rules, err := h.scoreRuleService.GetScoreRules(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"score_rules": rules})
}

type scoreRuleRequest struct {
	Points models.ScoreRule `json:"points"`
}

func (h *ScoringHandler) SetScoreRuleOverride(w http.ResponseWriter, r *http.Request) {
	competitionID, modalityID, ok := competitionAndModality(w, r)
	if !ok {
		return
	}

	var input scoreRuleRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rule, err := h.scoreRuleService.SetOverride(r.Context(), competitionID, modalityID, input.Points)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"score_rule": rule})
}

func (h *ScoringHandler) DeleteScoreRuleOverride(w http.ResponseWriter, r *http.Request) {
	competitionID, modalityID, ok := competitionAndModality(w, r)
	if !ok {
		return
	}

	if err := h.scoreRuleService.DeleteOverride(r.Context(), competitionID, modalityID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

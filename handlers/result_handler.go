package handlers

import (
	"net/http"

	"github.com/Dosada05/atletica-scoreboard/brackets"
	"github.com/Dosada05/atletica-scoreboard/models"
	"github.com/Dosada05/atletica-scoreboard/services"
)

type ResultHandler struct {
	resultService services.ResultService
}

func NewResultHandler(rs services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: rs}
}

type saveRankingRequest struct {
	Ranking models.Ranking `json:"ranking"`
}

type bracketRequest struct {
	Bracket brackets.Snapshot `json:"bracket"`
}

func (h *ResultHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	results, err := h.resultService.ListResults(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"results": results})
}

func (h *ResultHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	competitionID, modalityID, ok := competitionAndModality(w, r)
	if !ok {
		return
	}

	result, err := h.resultService.GetResult(r.Context(), competitionID, modalityID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"result": result})
}

// SaveRanking records a manually entered placement: {"ranking": {"1": athleticID, ...}}.
func (h *ResultHandler) SaveRanking(w http.ResponseWriter, r *http.Request) {
	competitionID, modalityID, ok := competitionAndModality(w, r)
	if !ok {
		return
	}

	var input saveRankingRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.resultService.SaveRanking(r.Context(), competitionID, modalityID, input.Ranking)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"result": result})
}

func (h *ResultHandler) SaveBracket(w http.ResponseWriter, r *http.Request) {
	competitionID, modalityID, ok := competitionAndModality(w, r)
	if !ok {
		return
	}

	var input bracketRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.resultService.SaveBracket(r.Context(), competitionID, modalityID, input.Bracket)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"result": result})
}

func (h *ResultHandler) PreviewBracket(w http.ResponseWriter, r *http.Request) {
	var input bracketRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	preview, err := h.resultService.PreviewBracket(r.Context(), input.Bracket)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"preview": preview})
}

func (h *ResultHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	competitionID, modalityID, ok := competitionAndModality(w, r)
	if !ok {
		return
	}

	if err := h.resultService.DeleteResult(r.Context(), competitionID, modalityID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func competitionAndModality(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, 0, false
	}
	modalityID, err := getIDFromURL(r, "modalityID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, 0, false
	}
	return competitionID, modalityID, true
}

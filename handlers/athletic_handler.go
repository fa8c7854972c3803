package handlers

import (
	"net/http"

	"github.com/Dosada05/atletica-scoreboard/services"
)

type AthleticHandler struct {
	athleticService services.AthleticService
}

func NewAthleticHandler(as services.AthleticService) *AthleticHandler {
	return &AthleticHandler{athleticService: as}
}

func (h *AthleticHandler) CreateAthletic(w http.ResponseWriter, r *http.Request) {
	var input services.AthleticInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	athletic, err := h.athleticService.CreateAthletic(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"athletic": athletic})
}

func (h *AthleticHandler) ListAthletics(w http.ResponseWriter, r *http.Request) {
	athletics, err := h.athleticService.ListAthletics(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"athletics": athletics})
}

func (h *AthleticHandler) GetAthletic(w http.ResponseWriter, r *http.Request) {
	athleticID, err := getIDFromURL(r, "athleticID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	athletic, err := h.athleticService.GetAthleticByID(r.Context(), athleticID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"athletic": athletic})
}

func (h *AthleticHandler) UpdateAthletic(w http.ResponseWriter, r *http.Request) {
	athleticID, err := getIDFromURL(r, "athleticID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.AthleticInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	athletic, err := h.athleticService.UpdateAthletic(r.Context(), athleticID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"athletic": athletic})
}

func (h *AthleticHandler) DeleteAthletic(w http.ResponseWriter, r *http.Request) {
	athleticID, err := getIDFromURL(r, "athleticID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.athleticService.DeleteAthletic(r.Context(), athleticID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

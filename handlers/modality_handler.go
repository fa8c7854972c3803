package handlers

import (
	"net/http"

	"github.com/Dosada05/atletica-scoreboard/services"
)

type ModalityHandler struct {
	modalityService services.ModalityService
}

func NewModalityHandler(ms services.ModalityService) *ModalityHandler {
	return &ModalityHandler{modalityService: ms}
}

func (h *ModalityHandler) ListModalities(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	modalities, err := h.modalityService.ListModalities(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"modalities": modalities})
}

func (h *ModalityHandler) CreateModality(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ModalityInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	modality, err := h.modalityService.CreateModality(r.Context(), competitionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"modality": modality})
}

func (h *ModalityHandler) UpdateModality(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	modalityID, err := getIDFromURL(r, "modalityID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ModalityInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	modality, err := h.modalityService.UpdateModality(r.Context(), competitionID, modalityID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"modality": modality})
}

func (h *ModalityHandler) DeleteModality(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	modalityID, err := getIDFromURL(r, "modalityID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.modalityService.DeleteModality(r.Context(), competitionID, modalityID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Dosada05/atletica-scoreboard/services"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePNG  = "image/png"

	maxQRCodeSize = 1024
)

type StandingsHandler struct {
	standingsService   services.StandingsService
	competitionService services.CompetitionService
}

func NewStandingsHandler(ss services.StandingsService, cs services.CompetitionService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss, competitionService: cs}
}

func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.writeStandings(w, r, competitionID)
}

// GetActiveStandings serves the public scoreboard of the active competition.
func (h *StandingsHandler) GetActiveStandings(w http.ResponseWriter, r *http.Request) {
	active, err := h.competitionService.GetActiveCompetition(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeStandings(w, r, active.ID)
}

func (h *StandingsHandler) writeStandings(w http.ResponseWriter, r *http.Request, competitionID int) {
	current, err := h.standingsService.GetStandings(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"standings": current})
}

func (h *StandingsHandler) PublishStandings(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	published, err := h.standingsService.Publish(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"published": published})
}

func (h *StandingsHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	data, err := h.standingsService.ExportXLSX(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeFile(w, r, contentTypeXLSX, fmt.Sprintf("classificacao-%d.xlsx", competitionID), data)
}

func (h *StandingsHandler) ExportChart(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	data, err := h.standingsService.ExportChart(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeFile(w, r, contentTypePNG, "", data)
}

// ScoreboardQRCode renders a QR code for the public scoreboard. ?size= sets
// the edge length in pixels.
func (h *StandingsHandler) ScoreboardQRCode(w http.ResponseWriter, r *http.Request) {
	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxQRCodeSize {
			badRequestResponse(w, r, fmt.Errorf("size must be between 1 and %d", maxQRCodeSize))
			return
		}
		size = parsed
	}

	data, err := h.standingsService.ScoreboardQRCode(size)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeFile(w, r, contentTypePNG, "", data)
}

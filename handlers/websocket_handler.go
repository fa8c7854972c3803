package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/atletica-scoreboard/live"
	"github.com/Dosada05/atletica-scoreboard/services"
)

const clientSendBuffer = 256

type WebSocketHandler struct {
	hub                *live.Hub
	competitionService services.CompetitionService
	standingsService   services.StandingsService
	upgrader           websocket.Upgrader
	logger             *slog.Logger
}

// NewWebSocketHandler accepts upgrades from allowedOrigins. A "*" entry, or
// an empty list, accepts any origin.
func NewWebSocketHandler(
	hub *live.Hub,
	cs services.CompetitionService,
	ss services.StandingsService,
	allowedOrigins []string,
	logger *slog.Logger,
) *WebSocketHandler {
	h := &WebSocketHandler{
		hub:                hub,
		competitionService: cs,
		standingsService:   ss,
		logger:             logger.With(slog.String("component", "websocket_handler")),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
				return true
			}
			return slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// ServeWs joins the caller to the live room of /ws/competitions/{competitionID}.
// The viewer joins the room before the current standings are computed, so
// nothing published meanwhile is missed; the snapshot may follow such updates.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.competitionService.GetCompetitionByID(r.Context(), competitionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Int("competition_id", competitionID), slog.Any("error", err))
		return
	}

	room := live.RoomForCompetition(competitionID)
	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, clientSendBuffer),
		Room: room,
	}
	if !h.hub.Join(client) {
		h.logger.Debug("hub stopped, refusing viewer", slog.String("room", room))
		conn.Close()
		return
	}
	go client.WritePump()
	go client.ReadPump()

	current, err := h.standingsService.GetStandings(r.Context(), competitionID)
	if err != nil {
		h.logger.Error("failed to load initial standings", slog.Int("competition_id", competitionID), slog.Any("error", err))
		conn.Close()
		return
	}
	initial, err := json.Marshal(live.Message{Type: live.MessageStandingsUpdated, Payload: current.Standings, RoomID: room})
	if err != nil {
		h.logger.Error("failed to encode initial standings", slog.Int("competition_id", competitionID), slog.Any("error", err))
		return
	}
	if !client.Enqueue(initial) {
		h.logger.Warn("viewer buffer full, initial standings dropped", slog.String("room", room))
	}

	h.logger.Debug("viewer connected", slog.String("room", room))
}

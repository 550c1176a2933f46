package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/torvix-arena/brackets"
	"github.com/Dosada05/torvix-arena/models"
	"github.com/Dosada05/torvix-arena/services"
	"github.com/gorilla/websocket"
)

const (
	MessageTournamentsSnapshot = "TOURNAMENTS_SNAPSHOT"
	MessageTournamentUpdated   = "TOURNAMENT_UPDATED"
)

type WebSocketHandler struct {
	hub               *brackets.Hub
	snapshots         *services.SnapshotHolder
	tournamentService services.TournamentService
	upgrader          websocket.Upgrader
	logger            *slog.Logger
}

// NewWebSocketHandler: пустой allowedOrigins или "*" разрешает любой Origin.
func NewWebSocketHandler(hub *brackets.Hub, snapshots *services.SnapshotHolder, ts services.TournamentService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:               hub,
		snapshots:         snapshots,
		tournamentService: ts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// ServeCollection обрабатывает /ws/tournaments: весь список турниров при каждом изменении.
func (h *WebSocketHandler) ServeCollection(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, brackets.CollectionRoom, func() interface{} {
		return brackets.WebSocketMessage{
			Type:    MessageTournamentsSnapshot,
			Payload: services.Redacted(h.snapshots.List()),
			RoomID:  brackets.CollectionRoom,
		}
	})
}

// ServeTournament обрабатывает /ws/tournaments/{tournamentID}.
func (h *WebSocketHandler) ServeTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	// проверяем до апгрейда, чтобы вернуть обычный 404
	if _, err := loadTournament(r, h.snapshots, h.tournamentService, tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	roomID := brackets.TournamentRoom(tournamentID)
	h.serve(w, r, roomID, func() interface{} {
		t, ok := h.snapshots.Get(tournamentID)
		if !ok {
			return nil
		}
		return tournamentMessage(t, roomID)
	})
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, roomID string, initial func() interface{}) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой
		h.logger.Warn("failed to upgrade websocket connection", slog.String("room", roomID), slog.Any("error", err))
		return
	}

	client := brackets.NewClient(h.hub, conn, roomID)
	if !h.hub.Join(client) {
		conn.Close()
		return
	}

	// Текущее состояние отправляем после регистрации, чтобы не пропустить изменения между ними.
	if msg := initial(); msg != nil {
		if data, err := json.Marshal(msg); err == nil {
			client.Enqueue(data)
		} else {
			h.logger.Error("failed to marshal initial websocket state", slog.String("room", roomID), slog.Any("error", err))
		}
	}

	go client.WritePump()
	go client.ReadPump()
}

// Broadcast is registered on the snapshot holder. Broadcasts never carry room credentials.
func (h *WebSocketHandler) Broadcast(all []models.Tournament, changed []models.Tournament) {
	h.hub.BroadcastToRoom(brackets.CollectionRoom, brackets.WebSocketMessage{
		Type:    MessageTournamentsSnapshot,
		Payload: services.Redacted(all),
		RoomID:  brackets.CollectionRoom,
	})
	for i := range changed {
		roomID := brackets.TournamentRoom(changed[i].ID)
		// сетку рендерим только для комнат, где кто-то есть
		if !h.hub.HasRoom(roomID) {
			continue
		}
		h.hub.BroadcastToRoom(roomID, tournamentMessage(&changed[i], roomID))
	}
}

func tournamentMessage(t *models.Tournament, roomID string) brackets.WebSocketMessage {
	view := services.Redacted([]models.Tournament{*t})[0]
	return brackets.WebSocketMessage{
		Type: MessageTournamentUpdated,
		Payload: jsonResponse{
			"tournament": view,
			"bracket":    brackets.RenderTournament(&view),
		},
		RoomID: roomID,
	}
}

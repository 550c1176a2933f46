package handlers

import (
	"net/http"

	"github.com/Dosada05/torvix-arena/middleware"
	"github.com/Dosada05/torvix-arena/models"
	"github.com/Dosada05/torvix-arena/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	snapshots         *services.SnapshotHolder
}

func NewTournamentHandler(ts services.TournamentService, snapshots *services.SnapshotHolder) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
		snapshots:         snapshots,
	}
}

// respondTournament redacts the room for viewers who may not see it.
func respondTournament(w http.ResponseWriter, r *http.Request, status int, t *models.Tournament) {
	viewerID := middleware.SessionFromContext(r.Context()).UserID()
	view := services.ViewFor(t, viewerID)
	if err := writeJSON(w, status, jsonResponse{"tournament": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// loadTournament reads from the snapshot and falls back to the gateway when
// the snapshot has not caught up yet.
func loadTournament(r *http.Request, snapshots *services.SnapshotHolder, ts services.TournamentService, id string) (*models.Tournament, error) {
	if t, ok := snapshots.Get(id); ok {
		return t, nil
	}
	return ts.GetTournament(r.Context(), id)
}

// CreateHandler godoc
// @Summary Создать турнир
// @Tags tournaments
// @Accept json
// @Produce json
// @Param body body services.CreateTournamentInput true "Данные турнира"
// @Success 201 {object} map[string]interface{} "Турнир создан"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Security BearerAuth
// @Router /tournaments [post]
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), sess, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respondTournament(w, r, http.StatusCreated, tournament)
}

// GetByIDHandler godoc
// @Summary Турнир по ID
// @Description Данные комнаты видны только организатору и участникам.
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := loadTournament(r, h.snapshots, h.tournamentService, id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respondTournament(w, r, http.StatusOK, tournament)
}

// ListHandler godoc
// @Summary Список турниров
// @Tags tournaments
// @Produce json
// @Param status query string false "UPCOMING, LIVE, COMPLETED"
// @Param format query string false "SOLO, DUO, SQUAD"
// @Success 200 {object} map[string]interface{} "tournaments"
// @Router /tournaments [get]
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status := models.TournamentStatus(query.Get("status"))
	format := models.GameFormat(query.Get("format"))

	all := h.snapshots.List()
	filtered := make([]models.Tournament, 0, len(all))
	for _, t := range all {
		if status != "" && t.Status != status {
			continue
		}
		if format != "" && t.Format != format {
			continue
		}
		filtered = append(filtered, t)
	}

	viewerID := middleware.SessionFromContext(r.Context()).UserID()
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": services.ViewsFor(filtered, viewerID)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateRoomHandler godoc
// @Summary Данные комнаты
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param body body services.RoomInput true "ID и пароль комнаты"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 403 {object} map[string]string "Не организатор"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/room [put]
func (h *TournamentHandler) UpdateRoomHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RoomInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.UpdateRoom(r.Context(), sess, id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respondTournament(w, r, http.StatusOK, tournament)
}

type announceWinnerInput struct {
	WinnerUserID string `json:"winnerUserId"`
}

// AnnounceWinnerHandler godoc
// @Summary Объявить победителя
// @Description Завершает турнир. Если пользователь не участник, турнир завершается без победителя.
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param body body announceWinnerInput true "ID победителя"
// @Success 200 {object} map[string]interface{} "Турнир"
// @Failure 403 {object} map[string]string "Не организатор"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/winner [post]
func (h *TournamentHandler) AnnounceWinnerHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input announceWinnerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.AnnounceWinner(r.Context(), sess, id, input.WinnerUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respondTournament(w, r, http.StatusOK, tournament)
}

// UpdateDetailsHandler godoc
// @Summary Обновить тексты
// @Description Описание, правила и хайп-сообщение. Отсутствующие поля не меняются.
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param body body services.DetailsInput true "Тексты"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 403 {object} map[string]string "Не организатор"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/details [patch]
func (h *TournamentHandler) UpdateDetailsHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.DetailsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.UpdateDetails(r.Context(), sess, id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respondTournament(w, r, http.StatusOK, tournament)
}

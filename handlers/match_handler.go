package handlers

import (
	"net/http"

	"github.com/Dosada05/torvix-arena/brackets"
	"github.com/Dosada05/torvix-arena/models"
	"github.com/Dosada05/torvix-arena/services"
)

type MatchHandler struct {
	tournamentService services.TournamentService
	snapshots         *services.SnapshotHolder
}

func NewMatchHandler(ts services.TournamentService, snapshots *services.SnapshotHolder) *MatchHandler {
	return &MatchHandler{
		tournamentService: ts,
		snapshots:         snapshots,
	}
}

// GetBracket godoc
// @Summary Сетка турнира
// @Description Раунды 1..max(round), матчи внутри раунда по возрастанию позиции.
// @Tags matches
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} brackets.Layout
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournaments/{tournamentID}/bracket [get]
func (h *MatchHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
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

	if err := writeJSON(w, http.StatusOK, brackets.RenderTournament(tournament), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type setMatchesInput struct {
	Matches []models.Match `json:"matches"`
}

// SetMatches godoc
// @Summary Заменить список матчей
// @Tags matches
// @Accept json
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param body body setMatchesInput true "Матчи"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 403 {object} map[string]string "Не организатор"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/matches [put]
func (h *MatchHandler) SetMatches(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input setMatchesInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.SetMatches(r.Context(), sess, id, input.Matches)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respondTournament(w, r, http.StatusOK, tournament)
}

// SeedBracket godoc
// @Summary Построить сетку
// @Description Single elimination в порядке регистрации, свободные места отдаются первым.
// @Tags matches
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 400 {object} map[string]string "Недостаточно участников / результаты уже есть"
// @Failure 403 {object} map[string]string "Не организатор"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/bracket/seed [post]
func (h *MatchHandler) SeedBracket(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.SeedBracket(r.Context(), sess, id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respondTournament(w, r, http.StatusOK, tournament)
}

// ReportResult godoc
// @Summary Зафиксировать результат матча
// @Description Победитель переходит в следующий раунд.
// @Tags matches
// @Accept json
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param matchID path string true "ID матча (R1M1)"
// @Param body body services.MatchResultInput true "Победитель и счет"
// @Success 200 {object} map[string]interface{} "Турнир"
// @Failure 400 {object} map[string]string "Матч еще не готов"
// @Failure 403 {object} map[string]string "Не организатор"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/matches/{matchID}/result [post]
func (h *MatchHandler) ReportResult(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.MatchResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.MatchID = matchID

	tournament, err := h.tournamentService.ReportMatchResult(r.Context(), sess, id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respondTournament(w, r, http.StatusOK, tournament)
}

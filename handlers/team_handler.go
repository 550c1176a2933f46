package handlers

import (
	"net/http"

	"github.com/Dosada05/torvix-arena/services"
)

type TeamHandler struct {
	tournamentService services.TournamentService
}

func NewTeamHandler(ts services.TournamentService) *TeamHandler {
	return &TeamHandler{tournamentService: ts}
}

type createTeamInput struct {
	Name string `json:"name"`
}

// CreateTeam godoc
// @Summary Создать команду
// @Description Создатель становится капитаном. Только для форматов DUO и SQUAD.
// @Tags teams
// @Accept json
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param body body createTeamInput true "Название команды"
// @Success 201 {object} map[string]interface{} "team"
// @Failure 400 {object} map[string]string "Формат без команд / турнир завершен"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Failure 409 {object} map[string]string "Уже в команде / мест нет"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input createTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.tournamentService.CreateTeam(r.Context(), sess, tournamentID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// JoinTeam godoc
// @Summary Вступить в команду
// @Tags teams
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param teamID path string true "ID команды"
// @Success 200 {object} map[string]interface{} "team"
// @Failure 400 {object} map[string]string "Команда заполнена"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 404 {object} map[string]string "Турнир или команда не найдены"
// @Failure 409 {object} map[string]string "Уже в другой команде"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/teams/{teamID}/join [post]
func (h *TeamHandler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.tournamentService.JoinTeam(r.Context(), sess, tournamentID, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

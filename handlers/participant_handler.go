package handlers

import (
	"net/http"

	"github.com/Dosada05/torvix-arena/services"
)

type ParticipantHandler struct {
	tournamentService services.TournamentService
}

func NewParticipantHandler(ts services.TournamentService) *ParticipantHandler {
	return &ParticipantHandler{tournamentService: ts}
}

// JoinTournament godoc
// @Summary Зарегистрироваться в турнире
// @Description Повторная регистрация того же пользователя ничего не меняет.
// @Tags participants
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} map[string]interface{} "Турнир"
// @Failure 400 {object} map[string]string "Турнир завершен"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Failure 409 {object} map[string]string "Мест нет"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/join [post]
func (h *ParticipantHandler) JoinTournament(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.JoinAsParticipant(r.Context(), sess, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respondTournament(w, r, http.StatusOK, tournament)
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/torvix-arena/assist"
	"github.com/Dosada05/torvix-arena/models"
	"github.com/Dosada05/torvix-arena/services"
	"github.com/Dosada05/torvix-arena/session"
)

// AssistHandler drafts texts. With a tournamentId the draft is also saved to
// the tournament (host only); otherwise it is only returned.
type AssistHandler struct {
	assist            *assist.Service
	tournamentService services.TournamentService
	snapshots         *services.SnapshotHolder
}

func NewAssistHandler(as *assist.Service, ts services.TournamentService, snapshots *services.SnapshotHolder) *AssistHandler {
	return &AssistHandler{
		assist:            as,
		tournamentService: ts,
		snapshots:         snapshots,
	}
}

type descriptionInput struct {
	TournamentID string `json:"tournamentId"`
	Title        string `json:"title"`
	GameName     string `json:"gameName"`
	Prize        string `json:"prize"`
	Current      string `json:"current"`
}

type rulesInput struct {
	TournamentID string `json:"tournamentId"`
	GameName     string `json:"gameName"`
	Current      string `json:"current"`
}

type matchUpdateInput struct {
	TournamentID string `json:"tournamentId"`
	Player1      string `json:"p1"`
	Player2      string `json:"p2"`
	Score        string `json:"score"`
	Current      string `json:"current"`
}

// Description godoc
// @Summary Сгенерировать описание турнира
// @Description При ошибке генерации возвращается текущий текст без изменений.
// @Tags assist
// @Accept json
// @Produce json
// @Param body body descriptionInput true "Данные для описания"
// @Success 200 {object} map[string]interface{} "text"
// @Failure 403 {object} map[string]string "Не организатор"
// @Security BearerAuth
// @Router /assist/description [post]
func (h *AssistHandler) Description(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	var input descriptionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.TournamentID != "" {
		t, ok := h.hostTournament(w, r, sess, input.TournamentID)
		if !ok {
			return
		}
		input.Title, input.GameName, input.Prize, input.Current = t.Title, t.GameName, t.Prizes.First, t.Description
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.GameName) == "" {
		badRequestResponse(w, r, errors.New("title and gameName are required"))
		return
	}

	text := h.assist.Describe(r.Context(), input.Title, input.GameName, input.Prize, input.Current)
	h.respond(w, r, sess, input.TournamentID, text, input.Current, func(text string) services.DetailsInput {
		return services.DetailsInput{Description: &text}
	})
}

// Rules godoc
// @Summary Сгенерировать правила
// @Description При ошибке генерации возвращается текущий текст без изменений.
// @Tags assist
// @Accept json
// @Produce json
// @Param body body rulesInput true "Игра и текущие правила"
// @Success 200 {object} map[string]interface{} "text"
// @Failure 403 {object} map[string]string "Не организатор"
// @Security BearerAuth
// @Router /assist/rules [post]
func (h *AssistHandler) Rules(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	var input rulesInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.TournamentID != "" {
		t, ok := h.hostTournament(w, r, sess, input.TournamentID)
		if !ok {
			return
		}
		input.GameName = t.GameName
		if t.Rules != nil {
			input.Current = *t.Rules
		}
	}
	if strings.TrimSpace(input.GameName) == "" {
		badRequestResponse(w, r, errors.New("gameName is required"))
		return
	}

	text := h.assist.RulesOrKeep(r.Context(), input.GameName, input.Current)
	h.respond(w, r, sess, input.TournamentID, text, input.Current, func(text string) services.DetailsInput {
		return services.DetailsInput{Rules: &text}
	})
}

// MatchUpdate godoc
// @Summary Комментарий к матчу
// @Tags assist
// @Accept json
// @Produce json
// @Param body body matchUpdateInput true "Игроки и счет"
// @Success 200 {object} map[string]interface{} "text"
// @Failure 403 {object} map[string]string "Не организатор"
// @Security BearerAuth
// @Router /assist/match-update [post]
func (h *AssistHandler) MatchUpdate(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	var input matchUpdateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Player1 == "" || input.Player2 == "" || input.Score == "" {
		badRequestResponse(w, r, errors.New("p1, p2 and score are required"))
		return
	}
	if input.TournamentID != "" {
		if _, ok := h.hostTournament(w, r, sess, input.TournamentID); !ok {
			return
		}
	}

	text := h.assist.MatchUpdateOrKeep(r.Context(), input.Player1, input.Player2, input.Score, input.Current)
	h.respond(w, r, sess, input.TournamentID, text, input.Current, func(text string) services.DetailsInput {
		return services.DetailsInput{HypeMessage: &text}
	})
}

// hostTournament проверяет права до генерации, чтобы не тратить квоту на чужие турниры.
func (h *AssistHandler) hostTournament(w http.ResponseWriter, r *http.Request, sess *session.Session, tournamentID string) (*models.Tournament, bool) {
	t, err := loadTournament(r, h.snapshots, h.tournamentService, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return nil, false
	}
	if t.HostID != sess.UserID() {
		mapServiceErrorToHTTP(w, r, services.ErrForbiddenOperation)
		return nil, false
	}
	return t, true
}

func (h *AssistHandler) respond(w http.ResponseWriter, r *http.Request, sess *session.Session, tournamentID, text, current string, details func(string) services.DetailsInput) {
	response := jsonResponse{"text": text, "generated": text != current}

	if tournamentID != "" && text != current {
		t, err := h.tournamentService.UpdateDetails(r.Context(), sess, tournamentID, details(text))
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		response["tournament"] = services.ViewFor(t, sess.UserID())
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/torvix-arena/models"
	"github.com/Dosada05/torvix-arena/services"
	"github.com/Dosada05/torvix-arena/session"
)

// SessionIssuer starts and ends sessions.
type SessionIssuer interface {
	Begin(user *models.User) (*session.Session, error)
	End(token string) error
}

type AuthHandler struct {
	userService services.UserService
	sessions    SessionIssuer
}

func NewAuthHandler(userService services.UserService, sessions SessionIssuer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
	}
}

type loginInput struct {
	Email string `json:"email"`
}

// Login godoc
// @Summary Войти по email
// @Description Находит пользователя по email или создает нового и открывает сессию.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginInput true "Email"
// @Success 200 {object} map[string]interface{} "token, expiresAt, user"
// @Failure 400 {object} map[string]string "Некорректный email"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if strings.TrimSpace(input.Email) == "" {
		badRequestResponse(w, r, errors.New("email is required"))
		return
	}

	user, err := h.userService.Login(r.Context(), input.Email)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	sess, err := h.sessions.Begin(user)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{
		"token":     sess.Token,
		"expiresAt": sess.ExpiresAt,
		"user":      user,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Logout godoc
// @Summary Завершить сессию
// @Tags auth
// @Success 204
// @Failure 401 {object} map[string]string "Нет сессии"
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := h.sessions.End(sess.Token); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

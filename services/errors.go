package services

import (
	"errors"
	"sort"
	"strings"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrValidationFailed = errors.New("validation failed")

	// Ошибки бизнес-правил
	ErrTournamentFull   = errors.New("tournament registration is full")
	ErrTournamentClosed = errors.New("tournament is already completed")
	ErrTeamsNotAllowed  = errors.New("teams are not used in solo tournaments")
	ErrTeamFull         = errors.New("team is full")
	ErrNoEntrants       = errors.New("not enough entrants to seed a bracket")
	ErrMatchNotReady    = errors.New("match cannot be reported yet")

	// Ошибки конфликтов
	ErrAlreadyInTeam = errors.New("user is already in a team for this tournament")
	ErrConflict      = errors.New("tournament changed concurrently, please retry")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")

	ErrAvatarStorageDisabled = errors.New("avatar storage is not configured")
)

// ValidationError carries per-field messages and matches ErrValidationFailed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

type validator struct {
	fields map[string]string
}

func (v *validator) check(ok bool, field, message string) {
	if ok {
		return
	}
	if v.fields == nil {
		v.fields = make(map[string]string)
	}
	if _, exists := v.fields[field]; !exists {
		v.fields[field] = message
	}
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

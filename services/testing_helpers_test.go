package services

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dosada05/torvix-arena/models"
	"github.com/Dosada05/torvix-arena/repositories"
	"github.com/Dosada05/torvix-arena/session"
	"github.com/Dosada05/torvix-arena/utils"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGateway(t *testing.T) *repositories.LocalGateway {
	t.Helper()
	g, err := repositories.NewLocalGateway("", newTestLogger())
	if err != nil {
		t.Fatalf("NewLocalGateway: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

func newTestTournamentService(gw repositories.Gateway) *tournamentService {
	s := newTournamentService(gw, time.UTC, newTestLogger())
	s.retry = &utils.RetryConfig{
		MaxAttempts:       4,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2,
	}
	return s
}

func sessionFor(id string) *session.Session {
	return session.ForUser(&models.User{ID: id, Name: "player " + id})
}

func validCreateInput(format models.GameFormat, max int) CreateTournamentInput {
	return CreateTournamentInput{
		Title:           "Friday Cup",
		Description:     "weekly",
		GameName:        "Valorant",
		Format:          format,
		StartDate:       "2030-01-02",
		StartTime:       "18:30",
		MaxParticipants: max,
		Prizes:          models.Prizes{First: "100", Second: "50", Third: "10"},
	}
}

func mustCreate(t *testing.T, s TournamentService, host string, format models.GameFormat, max int) *models.Tournament {
	t.Helper()
	tr, err := s.CreateTournament(context.Background(), sessionFor(host), validCreateInput(format, max))
	if err != nil {
		t.Fatalf("CreateTournament: %v", err)
	}
	return tr
}

// conflictingGateway fails the first N updates with a version conflict.
type conflictingGateway struct {
	repositories.Gateway
	conflicts atomic.Int32
	updates   atomic.Int32
}

func (g *conflictingGateway) UpdateTournament(ctx context.Context, id string, upd repositories.TournamentUpdate) error {
	g.updates.Add(1)
	if g.conflicts.Add(-1) >= 0 {
		return repositories.ErrVersionConflict
	}
	return g.Gateway.UpdateTournament(ctx, id, upd)
}

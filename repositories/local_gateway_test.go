package repositories

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dosada05/torvix-arena/models"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMemoryGateway(t *testing.T) *LocalGateway {
	t.Helper()
	g, err := NewLocalGateway("", newTestLogger())
	if err != nil {
		t.Fatalf("NewLocalGateway: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

func seedTournament(t *testing.T, g Gateway, id string) *models.Tournament {
	t.Helper()
	tr := &models.Tournament{
		ID:              id,
		HostID:          "host",
		Title:           "Cup " + id,
		Format:          models.FormatSolo,
		MaxParticipants: 4,
		Participants:    []models.Participant{},
		Teams:           []models.Team{},
		Status:          models.StatusUpcoming,
		Version:         1,
		CreatedAt:       time.Now(),
	}
	if err := g.CreateTournament(context.Background(), tr); err != nil {
		t.Fatalf("CreateTournament: %v", err)
	}
	return tr
}

func TestLocalGatewayPersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.json")
	ctx := context.Background()

	g, err := NewLocalGateway(path, newTestLogger())
	if err != nil {
		t.Fatalf("NewLocalGateway: %v", err)
	}
	seedTournament(t, g, "t1")
	if err := g.SaveUser(ctx, &models.User{ID: "a@x_com", Email: "a@x.com", Name: "a"}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	g.Close()

	reopened, err := NewLocalGateway(path, newTestLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.GetTournament(ctx, "t1"); err != nil {
		t.Fatalf("tournament not persisted: %v", err)
	}
	u, err := reopened.GetUser(ctx, "a@x_com")
	if err != nil || u.Email != "a@x.com" {
		t.Fatalf("user not persisted: %v %v", u, err)
	}
}

func TestCanceledContext(t *testing.T) {
	g := newMemoryGateway(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.ListTournaments(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

package repositories

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/torvix-arena/db"
	"github.com/Dosada05/torvix-arena/models"
	"github.com/google/uuid"
)

type gatewayFactory func(t *testing.T) Gateway

// gatewayBackends: postgres и redis подключаются только когда задан DATABASE_URL / REDIS_URL.
func gatewayBackends() map[string]gatewayFactory {
	return map[string]gatewayFactory{
		"local":    func(t *testing.T) Gateway { return newMemoryGateway(t) },
		"postgres": newPostgresTestGateway,
		"redis":    newRedisTestGateway,
	}
}

func newPostgresTestGateway(t *testing.T) Gateway {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL is not set")
	}
	conn, err := db.Connect(dsn, 5*time.Second, newTestLogger())
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	ctx := context.Background()
	if err := db.Migrate(ctx, conn); err != nil {
		conn.Close()
		t.Fatalf("migrate: %v", err)
	}
	g, err := NewPostgresGateway(ctx, conn, dsn, newTestLogger())
	if err != nil {
		conn.Close()
		t.Fatalf("NewPostgresGateway: %v", err)
	}
	t.Cleanup(func() {
		g.Close()
		conn.Close()
	})
	return g
}

func newRedisTestGateway(t *testing.T) Gateway {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL is not set")
	}
	rdb, err := db.ConnectRedis(url, 5*time.Second)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	g, err := NewRedisGateway(context.Background(), rdb, newTestLogger())
	if err != nil {
		rdb.Close()
		t.Fatalf("NewRedisGateway: %v", err)
	}
	t.Cleanup(func() {
		g.Close()
		rdb.Close()
	})
	return g
}

// uniqueID keeps runs against a shared database independent of each other.
func uniqueID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

var gatewayContract = map[string]func(t *testing.T, g Gateway){
	"create rejects duplicate id":       contractDuplicateID,
	"join is idempotent":                contractJoinIdempotent,
	"concurrent joins of one user":      contractJoinConcurrent,
	"join respects limit":               contractJoinLimit,
	"join rejects completed tournament": contractJoinCompleted,
	"update compare and swap":           contractCompareAndSwap,
	"update merges only set fields":     contractMergeSetFields,
	"update unknown tournament":         contractUpdateNotFound,
	"users round trip":                  contractUsers,
	"subscription sees new writes":      contractSubscription,
}

func TestGatewayContract(t *testing.T) {
	for backend, newGateway := range gatewayBackends() {
		t.Run(backend, func(t *testing.T) {
			for name, check := range gatewayContract {
				t.Run(name, func(t *testing.T) {
					check(t, newGateway(t))
				})
			}
		})
	}
}

func contractDuplicateID(t *testing.T, g Gateway) {
	id := uniqueID("t")
	seedTournament(t, g, id)

	err := g.CreateTournament(context.Background(), &models.Tournament{ID: id, Version: 1})
	if !errors.Is(err, ErrTournamentExists) {
		t.Fatalf("expected ErrTournamentExists, got %v", err)
	}
}

func contractJoinIdempotent(t *testing.T, g Gateway) {
	id := uniqueID("t")
	seedTournament(t, g, id)
	ctx := context.Background()

	p := models.Participant{UserID: "a_b@x_com", Name: "ab"}
	for i := 0; i < 2; i++ {
		if err := g.JoinTournamentParticipant(ctx, id, p, 0); err != nil {
			t.Fatalf("join #%d: %v", i+1, err)
		}
	}

	got, err := g.GetTournament(ctx, id)
	if err != nil {
		t.Fatalf("GetTournament: %v", err)
	}
	if len(got.Participants) != 1 {
		t.Fatalf("expected 1 participant, got %d", len(got.Participants))
	}
	if got.Version != 2 {
		t.Fatalf("expected version 2 after one effective join, got %d", got.Version)
	}
}

func contractJoinConcurrent(t *testing.T, g Gateway) {
	id := uniqueID("t")
	seedTournament(t, g, id)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.JoinTournamentParticipant(ctx, id, models.Participant{UserID: "same"}, 0)
		}()
	}
	wg.Wait()

	got, _ := g.GetTournament(ctx, id)
	if len(got.Participants) != 1 {
		t.Fatalf("expected exactly one participant, got %d", len(got.Participants))
	}
}

func contractJoinLimit(t *testing.T, g Gateway) {
	id := uniqueID("t")
	seedTournament(t, g, id)
	ctx := context.Background()

	if err := g.JoinTournamentParticipant(ctx, id, models.Participant{UserID: "a"}, 1); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if err := g.JoinTournamentParticipant(ctx, id, models.Participant{UserID: "b"}, 1); !errors.Is(err, ErrTournamentFull) {
		t.Fatalf("expected ErrTournamentFull, got %v", err)
	}
	// повторный вход уже зарегистрированного не упирается в лимит
	if err := g.JoinTournamentParticipant(ctx, id, models.Participant{UserID: "a"}, 1); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
}

func contractJoinCompleted(t *testing.T, g Gateway) {
	id := uniqueID("t")
	seedTournament(t, g, id)
	ctx := context.Background()

	if err := g.JoinTournamentParticipant(ctx, id, models.Participant{UserID: "early"}, 0); err != nil {
		t.Fatalf("join: %v", err)
	}
	status := models.StatusCompleted
	if err := g.UpdateTournament(ctx, id, TournamentUpdate{Status: &status}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if err := g.JoinTournamentParticipant(ctx, id, models.Participant{UserID: "late"}, 0); !errors.Is(err, ErrTournamentClosed) {
		t.Fatalf("expected ErrTournamentClosed, got %v", err)
	}
	if err := g.JoinTournamentParticipant(ctx, id, models.Participant{UserID: "early"}, 0); err != nil {
		t.Fatalf("rejoin of a registered participant: %v", err)
	}
	got, _ := g.GetTournament(ctx, id)
	if len(got.Participants) != 1 {
		t.Fatalf("expected 1 participant, got %d", len(got.Participants))
	}
}

func contractCompareAndSwap(t *testing.T, g Gateway) {
	id := uniqueID("t")
	seedTournament(t, g, id)
	ctx := context.Background()

	stale := 1
	room := "room-1"
	if err := g.UpdateTournament(ctx, id, TournamentUpdate{RoomID: &room, ExpectedVersion: &stale}); err != nil {
		t.Fatalf("first update: %v", err)
	}

	other := "room-2"
	err := g.UpdateTournament(ctx, id, TournamentUpdate{RoomID: &other, ExpectedVersion: &stale})
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	got, _ := g.GetTournament(ctx, id)
	if got.RoomID == nil || *got.RoomID != "room-1" {
		t.Fatalf("conflicting write must not land, room=%v", got.RoomID)
	}
}

func contractMergeSetFields(t *testing.T, g Gateway) {
	id := uniqueID("t")
	seedTournament(t, g, id)
	ctx := context.Background()

	room, pass := "r", "p"
	if err := g.UpdateTournament(ctx, id, TournamentUpdate{RoomID: &room, RoomPassword: &pass}); err != nil {
		t.Fatalf("update room: %v", err)
	}
	status := models.StatusCompleted
	if err := g.UpdateTournament(ctx, id, TournamentUpdate{Status: &status, SetWinner: true}); err != nil {
		t.Fatalf("update status: %v", err)
	}

	got, _ := g.GetTournament(ctx, id)
	if got.RoomPassword == nil || *got.RoomPassword != "p" {
		t.Fatalf("room password lost by unrelated update")
	}
	if got.Status != models.StatusCompleted || got.Winner != nil {
		t.Fatalf("unexpected status/winner: %s %v", got.Status, got.Winner)
	}
}

func contractUpdateNotFound(t *testing.T, g Gateway) {
	desc := "x"
	err := g.UpdateTournament(context.Background(), uniqueID("missing"), TournamentUpdate{Description: &desc})
	if !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}
}

func contractUsers(t *testing.T, g Gateway) {
	ctx := context.Background()
	if _, err := g.GetUser(ctx, uniqueID("nobody")); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	id := uniqueID("u")
	if err := g.SaveUser(ctx, &models.User{ID: id, Email: "a@x.com", Name: "a"}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	if err := g.SaveUser(ctx, &models.User{ID: id, Email: "a@x.com", Name: "renamed"}); err != nil {
		t.Fatalf("SaveUser upsert: %v", err)
	}
	got, err := g.GetUser(ctx, id)
	if err != nil || got.Name != "renamed" {
		t.Fatalf("expected upserted user, got %v %v", got, err)
	}
}

func contractSubscription(t *testing.T, g Gateway) {
	ch := make(chan []models.Tournament, 64)
	unsubscribe := g.SubscribeToTournaments(func(ts []models.Tournament) {
		select {
		case ch <- ts:
		default:
		}
	})
	defer unsubscribe()

	id := uniqueID("t")
	seedTournament(t, g, id)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case snapshot := <-ch:
			for _, tr := range snapshot {
				if tr.ID == id {
					return
				}
			}
		case <-deadline:
			t.Fatalf("no snapshot contained %s", id)
		}
	}
}

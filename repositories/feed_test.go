package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/torvix-arena/models"
)

func receive(t *testing.T, ch <-chan []models.Tournament) []models.Tournament {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for snapshot")
		return nil
	}
}

func TestSubscribeDeliversCurrentCollectionFirst(t *testing.T) {
	g := newMemoryGateway(t)
	seedTournament(t, g, "t1")

	ch := make(chan []models.Tournament, 10)
	unsubscribe := g.SubscribeToTournaments(func(ts []models.Tournament) { ch <- ts })
	defer unsubscribe()

	first := receive(t, ch)
	if len(first) != 1 || first[0].ID != "t1" {
		t.Fatalf("expected initial snapshot with t1, got %+v", first)
	}
}

func TestSubscribeDeliversChangesInWriteOrder(t *testing.T) {
	g := newMemoryGateway(t)
	ch := make(chan []models.Tournament, 10)
	unsubscribe := g.SubscribeToTournaments(func(ts []models.Tournament) { ch <- ts })
	defer unsubscribe()

	if got := receive(t, ch); len(got) != 0 {
		t.Fatalf("expected empty initial snapshot, got %d", len(got))
	}

	seedTournament(t, g, "t1")
	seedTournament(t, g, "t2")
	_ = g.JoinTournamentParticipant(context.Background(), "t1", models.Participant{UserID: "u"}, 0)

	if got := receive(t, ch); len(got) != 1 {
		t.Fatalf("expected 1 tournament, got %d", len(got))
	}
	if got := receive(t, ch); len(got) != 2 {
		t.Fatalf("expected 2 tournaments, got %d", len(got))
	}
	last := receive(t, ch)
	if len(last[0].Participants) != 1 {
		t.Fatalf("expected join to be visible in the last snapshot")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	g := newMemoryGateway(t)
	ch := make(chan []models.Tournament, 10)
	unsubscribe := g.SubscribeToTournaments(func(ts []models.Tournament) { ch <- ts })
	receive(t, ch)

	unsubscribe()
	unsubscribe() // повторный вызов безопасен
	seedTournament(t, g, "t1")

	select {
	case s := <-ch:
		t.Fatalf("unexpected delivery after unsubscribe: %+v", s)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnsubscribeFromInsideCallback(t *testing.T) {
	g := newMemoryGateway(t)
	calls := make(chan struct{}, 10)

	var unsubscribe func()
	ready := make(chan struct{})
	unsubscribe = g.SubscribeToTournaments(func([]models.Tournament) {
		<-ready
		unsubscribe()
		calls <- struct{}{}
	})
	close(ready)

	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatalf("callback never ran")
	}

	seedTournament(t, g, "t1")
	seedTournament(t, g, "t2")

	select {
	case <-calls:
		t.Fatalf("callback ran after unsubscribing itself")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSnapshotsAreIsolatedPerSubscriber(t *testing.T) {
	g := newMemoryGateway(t)
	seedTournament(t, g, "t1")

	a := make(chan []models.Tournament, 1)
	b := make(chan []models.Tournament, 1)
	defer g.SubscribeToTournaments(func(ts []models.Tournament) { a <- ts })()
	defer g.SubscribeToTournaments(func(ts []models.Tournament) { b <- ts })()

	first := receive(t, a)
	first[0].Title = "mutated"
	second := receive(t, b)
	if second[0].Title == "mutated" {
		t.Fatalf("subscribers share snapshot memory")
	}
}

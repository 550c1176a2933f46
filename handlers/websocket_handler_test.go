package handlers

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/torvix-arena/brackets"
	"github.com/Dosada05/torvix-arena/models"
)

func strp(s string) *string { return &s }

func newBroadcastFixture(t *testing.T) (*WebSocketHandler, *brackets.Hub) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := brackets.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return NewWebSocketHandler(hub, nil, nil, nil, logger), hub
}

func joinRoom(t *testing.T, hub *brackets.Hub, room string) *brackets.Client {
	t.Helper()
	c := brackets.NewClient(hub, nil, room)
	if !hub.Join(c) {
		t.Fatal("hub stopped unexpectedly")
	}
	deadline := time.Now().Add(2 * time.Second)
	for !hub.HasRoom(room) {
		if time.Now().After(deadline) {
			t.Fatalf("client never joined %s", room)
		}
		time.Sleep(5 * time.Millisecond)
	}
	return c
}

func receive(t *testing.T, c *brackets.Client) string {
	t.Helper()
	select {
	case data := <-c.Send:
		return string(data)
	case <-time.After(time.Second):
		t.Fatalf("no message in room %s", c.Room)
		return ""
	}
}

func TestBroadcastNeverCarriesRoomCredentials(t *testing.T) {
	ws, hub := newBroadcastFixture(t)
	tr := models.Tournament{
		ID:           "t1",
		Title:        "Night Cup",
		Format:       models.FormatSolo,
		RoomID:       strp("lobby-secret-id"),
		RoomPassword: strp("hunter2"),
		Version:      3,
	}
	collection := joinRoom(t, hub, brackets.CollectionRoom)
	single := joinRoom(t, hub, brackets.TournamentRoom(tr.ID))

	ws.Broadcast([]models.Tournament{tr}, []models.Tournament{tr})

	for _, c := range []*brackets.Client{collection, single} {
		msg := receive(t, c)
		if strings.Contains(msg, "hunter2") || strings.Contains(msg, "lobby-secret-id") {
			t.Fatalf("room credentials leaked into %s: %s", c.Room, msg)
		}
	}
	if tr.RoomPassword == nil || *tr.RoomPassword != "hunter2" {
		t.Fatal("broadcast must not modify the caller's tournament")
	}
}

func TestBroadcastSurvivesOutOfRangeRounds(t *testing.T) {
	ws, hub := newBroadcastFixture(t)
	tr := models.Tournament{
		ID:      "t2",
		Matches: []models.Match{{ID: "m1", Round: math.MaxInt, Position: 1}},
	}
	single := joinRoom(t, hub, brackets.TournamentRoom(tr.ID))

	ws.Broadcast([]models.Tournament{tr}, []models.Tournament{tr})

	if msg := receive(t, single); !strings.Contains(msg, MessageTournamentUpdated) {
		t.Fatalf("unexpected message %s", msg)
	}
}

func TestBroadcastOnlyReachesOccupiedRooms(t *testing.T) {
	ws, hub := newBroadcastFixture(t)
	busy := models.Tournament{ID: "busy"}
	quiet := models.Tournament{ID: "quiet"}
	listener := joinRoom(t, hub, brackets.TournamentRoom(busy.ID))

	ws.Broadcast([]models.Tournament{busy, quiet}, []models.Tournament{busy, quiet})

	if msg := receive(t, listener); !strings.Contains(msg, `"busy"`) {
		t.Fatalf("unexpected message %s", msg)
	}
	if hub.HasRoom(brackets.TournamentRoom(quiet.ID)) {
		t.Fatal("broadcast must not create rooms")
	}
	select {
	case extra := <-listener.Send:
		t.Fatalf("unexpected extra message %s", extra)
	default:
	}
}

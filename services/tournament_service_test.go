package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/torvix-arena/brackets"
	"github.com/Dosada05/torvix-arena/models"
	"github.com/Dosada05/torvix-arena/repositories"
)

func TestCreateTournamentDefaults(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	tr := mustCreate(t, s, "host", models.FormatSolo, 8)

	if tr.ID == "" || tr.HostID != "host" {
		t.Fatalf("unexpected identity: id=%q host=%q", tr.ID, tr.HostID)
	}
	if tr.Status != models.StatusUpcoming || tr.Winner != nil {
		t.Fatalf("expected UPCOMING without winner, got %s %v", tr.Status, tr.Winner)
	}
	if tr.Type != models.TypeEsports {
		t.Fatalf("expected default type ESPORTS, got %s", tr.Type)
	}
	if len(tr.Participants) != 0 || len(tr.Teams) != 0 || tr.Version != 1 {
		t.Fatalf("unexpected initial state: %+v", tr)
	}
}

func TestCreateTournamentValidation(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))

	tests := []struct {
		name   string
		mutate func(in *CreateTournamentInput)
		field  string
	}{
		{"empty title", func(in *CreateTournamentInput) { in.Title = "   " }, "title"},
		{"missing game", func(in *CreateTournamentInput) { in.GameName = "" }, "gameName"},
		{"bad format", func(in *CreateTournamentInput) { in.Format = "TRIO" }, "format"},
		{"bad type", func(in *CreateTournamentInput) { in.Type = "CHESS" }, "type"},
		{"zero capacity", func(in *CreateTournamentInput) { in.MaxParticipants = 0 }, "maxParticipants"},
		{"negative fee", func(in *CreateTournamentInput) { in.EntryFee = -1 }, "entryFee"},
		{"bad date", func(in *CreateTournamentInput) { in.StartDate = "02/01/2030" }, "startDate"},
		{"bad time", func(in *CreateTournamentInput) { in.StartTime = "6pm" }, "startTime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput(models.FormatSolo, 8)
			tt.mutate(&in)
			_, err := s.CreateTournament(context.Background(), sessionFor("host"), in)
			var verr *ValidationError
			if !errors.As(err, &verr) || !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Fatalf("expected field %q in %v", tt.field, verr.Fields)
			}
		})
	}
}

func TestNilSessionIsNoOp(t *testing.T) {
	gw := newTestGateway(t)
	s := newTestTournamentService(gw)
	ctx := context.Background()

	tr, err := s.CreateTournament(ctx, nil, validCreateInput(models.FormatSolo, 8))
	if tr != nil || err != nil {
		t.Fatalf("expected no-op, got %v %v", tr, err)
	}
	list, _ := gw.ListTournaments(ctx)
	if len(list) != 0 {
		t.Fatalf("nothing should be stored, got %d", len(list))
	}

	created := mustCreate(t, s, "host", models.FormatSolo, 8)
	if tr, err := s.JoinAsParticipant(ctx, nil, created.ID); tr != nil || err != nil {
		t.Fatalf("expected no-op join, got %v %v", tr, err)
	}
	if team, err := s.CreateTeam(ctx, nil, created.ID, "Alpha"); team != nil || err != nil {
		t.Fatalf("expected no-op team, got %v %v", team, err)
	}
}

func TestJoinAsParticipantIsIdempotent(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	tr := mustCreate(t, s, "host", models.FormatSolo, 8)

	for i := 0; i < 2; i++ {
		got, err := s.JoinAsParticipant(context.Background(), sessionFor("u1"), tr.ID)
		if err != nil {
			t.Fatalf("join #%d: %v", i+1, err)
		}
		if len(got.Participants) != 1 {
			t.Fatalf("join #%d: expected 1 participant, got %d", i+1, len(got.Participants))
		}
	}
}

func TestJoinAsParticipantCapacity(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	// DUO with 2 teams seats 4 players.
	tr := mustCreate(t, s, "host", models.FormatDuo, 2)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 6)
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := s.JoinAsParticipant(ctx, sessionFor(id), tr.ID)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)

	full := 0
	for err := range errs {
		switch {
		case err == nil:
		case errors.Is(err, ErrTournamentFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	got, _ := s.GetTournament(ctx, tr.ID)
	if len(got.Participants) != 4 || full != 2 {
		t.Fatalf("expected 4 participants and 2 rejections, got %d and %d", len(got.Participants), full)
	}

	// a registered user re-joining a full tournament is still fine
	if _, err := s.JoinAsParticipant(ctx, sessionFor(got.Participants[0].UserID), tr.ID); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
}

func TestJoinCompletedTournamentRejected(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	tr := mustCreate(t, s, "host", models.FormatSolo, 8)
	ctx := context.Background()

	if _, err := s.AnnounceWinner(ctx, sessionFor("host"), tr.ID, "nobody"); err != nil {
		t.Fatalf("AnnounceWinner: %v", err)
	}
	if _, err := s.JoinAsParticipant(ctx, sessionFor("late"), tr.ID); !errors.Is(err, ErrTournamentClosed) {
		t.Fatalf("expected ErrTournamentClosed, got %v", err)
	}
}

// completingGateway finishes the tournament right before the atomic join,
// the way a concurrent AnnounceWinner would.
type completingGateway struct {
	repositories.Gateway
}

func (g *completingGateway) JoinTournamentParticipant(ctx context.Context, id string, p models.Participant, limit int) error {
	status := models.StatusCompleted
	if err := g.Gateway.UpdateTournament(ctx, id, repositories.TournamentUpdate{Status: &status, SetWinner: true}); err != nil {
		return err
	}
	return g.Gateway.JoinTournamentParticipant(ctx, id, p, limit)
}

func TestJoinRacingWinnerAnnouncementRejected(t *testing.T) {
	gw := &completingGateway{Gateway: newTestGateway(t)}
	s := newTestTournamentService(gw)
	tr := mustCreate(t, s, "host", models.FormatSolo, 8)
	ctx := context.Background()

	if _, err := s.JoinAsParticipant(ctx, sessionFor("late"), tr.ID); !errors.Is(err, ErrTournamentClosed) {
		t.Fatalf("expected ErrTournamentClosed, got %v", err)
	}
	got, _ := s.GetTournament(ctx, tr.ID)
	if len(got.Participants) != 0 {
		t.Fatalf("late participant slipped in: %+v", got.Participants)
	}
}

func TestJoinUnknownTournament(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	if _, err := s.JoinAsParticipant(context.Background(), sessionFor("u1"), "missing"); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}
}

func TestSquadTeamFlow(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	tr := mustCreate(t, s, "host", models.FormatSquad, 4)
	ctx := context.Background()

	team, err := s.CreateTeam(ctx, sessionFor("A"), tr.ID, "Alpha")
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if team.CaptainID != "A" {
		t.Fatalf("captain should be A, got %s", team.CaptainID)
	}
	joined, err := s.JoinTeam(ctx, sessionFor("B"), tr.ID, team.ID)
	if err != nil {
		t.Fatalf("JoinTeam: %v", err)
	}
	if len(joined.Members) != 2 || joined.Members[0] != "A" || joined.Members[1] != "B" {
		t.Fatalf("expected members [A B], got %v", joined.Members)
	}

	got, _ := s.GetTournament(ctx, tr.ID)
	if len(got.Participants) != 0 {
		t.Fatalf("team operations must not register participants, got %d", len(got.Participants))
	}
	if len(got.Teams) != 1 || got.Teams[0].CaptainID != got.Teams[0].Members[0] {
		t.Fatalf("unexpected teams: %+v", got.Teams)
	}
}

func TestTeamGuards(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	ctx := context.Background()

	solo := mustCreate(t, s, "host", models.FormatSolo, 4)
	if _, err := s.CreateTeam(ctx, sessionFor("A"), solo.ID, "Alpha"); !errors.Is(err, ErrTeamsNotAllowed) {
		t.Fatalf("expected ErrTeamsNotAllowed, got %v", err)
	}

	duo := mustCreate(t, s, "host", models.FormatDuo, 1)
	if _, err := s.CreateTeam(ctx, sessionFor("A"), duo.ID, ""); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
	team, err := s.CreateTeam(ctx, sessionFor("A"), duo.ID, "Alpha")
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if _, err := s.CreateTeam(ctx, sessionFor("A"), duo.ID, "Again"); !errors.Is(err, ErrAlreadyInTeam) {
		t.Fatalf("expected ErrAlreadyInTeam, got %v", err)
	}
	if _, err := s.CreateTeam(ctx, sessionFor("C"), duo.ID, "Bravo"); !errors.Is(err, ErrTournamentFull) {
		t.Fatalf("expected ErrTournamentFull, got %v", err)
	}
	if _, err := s.JoinTeam(ctx, sessionFor("B"), duo.ID, "nope"); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
	if _, err := s.JoinTeam(ctx, sessionFor("B"), duo.ID, team.ID); err != nil {
		t.Fatalf("JoinTeam: %v", err)
	}
	if _, err := s.JoinTeam(ctx, sessionFor("B"), duo.ID, team.ID); err != nil {
		t.Fatalf("repeated JoinTeam should be a no-op, got %v", err)
	}
	if _, err := s.JoinTeam(ctx, sessionFor("C"), duo.ID, team.ID); !errors.Is(err, ErrTeamFull) {
		t.Fatalf("expected ErrTeamFull, got %v", err)
	}
}

func TestHostOnlyOperations(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	tr := mustCreate(t, s, "host", models.FormatSolo, 4)
	ctx := context.Background()
	guest := sessionFor("guest")
	text := "new"

	checks := map[string]error{}
	_, checks["room"] = s.UpdateRoom(ctx, guest, tr.ID, RoomInput{RoomID: "1", RoomPassword: "p"})
	_, checks["winner"] = s.AnnounceWinner(ctx, guest, tr.ID, "guest")
	_, checks["details"] = s.UpdateDetails(ctx, guest, tr.ID, DetailsInput{Description: &text})
	_, checks["matches"] = s.SetMatches(ctx, guest, tr.ID, nil)
	_, checks["seed"] = s.SeedBracket(ctx, guest, tr.ID)
	_, checks["result"] = s.ReportMatchResult(ctx, guest, tr.ID, MatchResultInput{MatchID: "R1M1", WinnerID: "x"})
	for op, err := range checks {
		if !errors.Is(err, ErrForbiddenOperation) {
			t.Errorf("%s: expected ErrForbiddenOperation, got %v", op, err)
		}
	}

	got, err := s.UpdateRoom(ctx, sessionFor("host"), tr.ID, RoomInput{RoomID: "room-7", RoomPassword: "secret"})
	if err != nil {
		t.Fatalf("UpdateRoom: %v", err)
	}
	if got.RoomID == nil || *got.RoomID != "room-7" || got.RoomPassword == nil || *got.RoomPassword != "secret" {
		t.Fatalf("room not stored: %+v", got)
	}
}

func TestAnnounceWinnerUnknownParticipant(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	tr := mustCreate(t, s, "host", models.FormatSolo, 4)
	ctx := context.Background()
	if _, err := s.JoinAsParticipant(ctx, sessionFor("u1"), tr.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	got, err := s.AnnounceWinner(ctx, sessionFor("host"), tr.ID, "ghost")
	if err != nil {
		t.Fatalf("AnnounceWinner: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", got.Status)
	}
	if got.Winner != nil {
		t.Fatalf("winner must stay unset for an unknown id, got %+v", got.Winner)
	}
}

func TestAnnounceWinnerKnownParticipant(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	tr := mustCreate(t, s, "host", models.FormatSolo, 4)
	ctx := context.Background()
	if _, err := s.JoinAsParticipant(ctx, sessionFor("u1"), tr.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	got, err := s.AnnounceWinner(ctx, sessionFor("host"), tr.ID, "u1")
	if err != nil {
		t.Fatalf("AnnounceWinner: %v", err)
	}
	if got.Winner == nil || got.Winner.UserID != "u1" || got.Winner.Name != "player u1" {
		t.Fatalf("unexpected winner: %+v", got.Winner)
	}
}

func TestUpdateDetails(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	tr := mustCreate(t, s, "host", models.FormatSolo, 4)
	ctx := context.Background()

	if _, err := s.UpdateDetails(ctx, sessionFor("host"), tr.ID, DetailsInput{}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}
	rules := "1. be nice"
	got, err := s.UpdateDetails(ctx, sessionFor("host"), tr.ID, DetailsInput{Rules: &rules})
	if err != nil {
		t.Fatalf("UpdateDetails: %v", err)
	}
	if got.Rules == nil || *got.Rules != rules || got.Description != "weekly" {
		t.Fatalf("unexpected merge: %+v", got)
	}
	if got.Version != tr.Version+1 {
		t.Fatalf("expected version %d, got %d", tr.Version+1, got.Version)
	}
}

func TestMutateRetriesVersionConflicts(t *testing.T) {
	gw := &conflictingGateway{Gateway: newTestGateway(t)}
	s := newTestTournamentService(gw)
	tr := mustCreate(t, s, "host", models.FormatSolo, 4)

	gw.conflicts.Store(2)
	got, err := s.UpdateRoom(context.Background(), sessionFor("host"), tr.ID, RoomInput{RoomID: "r", RoomPassword: "p"})
	if err != nil {
		t.Fatalf("UpdateRoom: %v", err)
	}
	if gw.updates.Load() != 3 {
		t.Fatalf("expected 3 update attempts, got %d", gw.updates.Load())
	}
	if got.RoomID == nil || *got.RoomID != "r" {
		t.Fatalf("room not applied after retry: %+v", got)
	}
}

func TestMutateSurfacesConflictWhenRetriesRunOut(t *testing.T) {
	gw := &conflictingGateway{Gateway: newTestGateway(t)}
	s := newTestTournamentService(gw)
	tr := mustCreate(t, s, "host", models.FormatSolo, 4)

	gw.conflicts.Store(100)
	_, err := s.UpdateRoom(context.Background(), sessionFor("host"), tr.ID, RoomInput{RoomID: "r"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if int(gw.updates.Load()) != s.retry.MaxAttempts {
		t.Fatalf("expected %d attempts, got %d", s.retry.MaxAttempts, gw.updates.Load())
	}
}

func TestConcurrentTeamCreationKeepsAllTeams(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	s.retry.MaxAttempts = 50
	tr := mustCreate(t, s, "host", models.FormatDuo, 16)
	ctx := context.Background()

	players := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, p := range players {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			if _, err := s.CreateTeam(ctx, sessionFor(p), tr.ID, "team "+p); err != nil {
				t.Errorf("CreateTeam(%s): %v", p, err)
			}
		}(p)
	}
	wg.Wait()

	got, _ := s.GetTournament(ctx, tr.ID)
	if len(got.Teams) != len(players) {
		t.Fatalf("expected %d teams, got %d", len(players), len(got.Teams))
	}
}

func TestSeedAndReportBracket(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	tr := mustCreate(t, s, "host", models.FormatSolo, 8)
	ctx := context.Background()
	host := sessionFor("host")

	if _, err := s.SeedBracket(ctx, host, tr.ID); !errors.Is(err, ErrNoEntrants) {
		t.Fatalf("expected ErrNoEntrants, got %v", err)
	}
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		if _, err := s.JoinAsParticipant(ctx, sessionFor(id), tr.ID); err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
	}

	seeded, err := s.SeedBracket(ctx, host, tr.ID)
	if err != nil {
		t.Fatalf("SeedBracket: %v", err)
	}
	if len(seeded.Matches) != 3 {
		t.Fatalf("expected 3 matches for 4 entrants, got %d", len(seeded.Matches))
	}

	if _, err := s.ReportMatchResult(ctx, host, tr.ID, MatchResultInput{MatchID: "R2M1", WinnerID: "p1"}); !errors.Is(err, ErrMatchNotReady) {
		t.Fatalf("expected ErrMatchNotReady for the empty final, got %v", err)
	}
	if _, err := s.ReportMatchResult(ctx, host, tr.ID, MatchResultInput{MatchID: "R9M9", WinnerID: "p1"}); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
	if _, err := s.ReportMatchResult(ctx, host, tr.ID, MatchResultInput{MatchID: "R1M1", WinnerID: "p4"}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation error for a winner outside the match, got %v", err)
	}

	one, two := models.Score("2"), models.Score("1")
	got, err := s.ReportMatchResult(ctx, host, tr.ID, MatchResultInput{MatchID: "R1M1", WinnerID: "p1", P1Score: &one, P2Score: &two})
	if err != nil {
		t.Fatalf("ReportMatchResult: %v", err)
	}
	var final *models.Match
	for i := range got.Matches {
		if got.Matches[i].ID == "R2M1" {
			final = &got.Matches[i]
		}
	}
	if final == nil || final.P1ID == nil || *final.P1ID != "p1" {
		t.Fatalf("winner should advance into the final slot 1, got %+v", final)
	}

	if _, err := s.SeedBracket(ctx, host, tr.ID); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("reseeding after results should be rejected, got %v", err)
	}
}

func TestSetMatchesValidation(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	tr := mustCreate(t, s, "host", models.FormatSolo, 8)
	ctx := context.Background()

	bad := []models.Match{{ID: "m1", Round: 0, Position: 1}, {ID: "m1", Round: 1, Position: 1}}
	if _, err := s.SetMatches(ctx, sessionFor("host"), tr.ID, bad); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}

	for _, m := range []models.Match{
		{ID: "huge-round", Round: math.MaxInt, Position: 1},
		{ID: "big-round", Round: brackets.MaxRounds + 1, Position: 1},
		{ID: "huge-position", Round: 1, Position: math.MaxInt},
	} {
		_, err := s.SetMatches(ctx, sessionFor("host"), tr.ID, []models.Match{m})
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Fields["matches[0]"] == "" {
			t.Fatalf("%s: expected matches[0] validation error, got %v", m.ID, err)
		}
	}
	if stored, _ := s.GetTournament(ctx, tr.ID); len(stored.Matches) != 0 {
		t.Fatalf("rejected matches must not be stored, got %+v", stored.Matches)
	}

	good := []models.Match{{ID: "m1", Round: 1, Position: 1}, {ID: "m2", Round: 3, Position: 1, Status: models.MatchStatusLive}}
	got, err := s.SetMatches(ctx, sessionFor("host"), tr.ID, good)
	if err != nil {
		t.Fatalf("SetMatches: %v", err)
	}
	if len(got.Matches) != 2 || got.Matches[0].Status != models.MatchStatusScheduled {
		t.Fatalf("unexpected matches: %+v", got.Matches)
	}
}

func TestPromoteStarted(t *testing.T) {
	s := newTestTournamentService(newTestGateway(t))
	ctx := context.Background()

	past := validCreateInput(models.FormatSolo, 4)
	past.StartDate, past.StartTime = "2020-05-01", "10:00"
	started, err := s.CreateTournament(ctx, sessionFor("host"), past)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	future := mustCreate(t, s, "host", models.FormatSolo, 4)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n, err := s.PromoteStarted(ctx, now)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 promotion, got %d (%v)", n, err)
	}
	got, _ := s.GetTournament(ctx, started.ID)
	if got.Status != models.StatusLive {
		t.Fatalf("expected LIVE, got %s", got.Status)
	}
	got, _ = s.GetTournament(ctx, future.ID)
	if got.Status != models.StatusUpcoming {
		t.Fatalf("future tournament should stay UPCOMING, got %s", got.Status)
	}

	if n, _ := s.PromoteStarted(ctx, now); n != 0 {
		t.Fatalf("second run should promote nothing, got %d", n)
	}
}

func TestRoomVisibility(t *testing.T) {
	room, pass := "r1", "p1"
	tr := &models.Tournament{
		HostID:       "host",
		Participants: []models.Participant{{UserID: "player"}},
		Teams:        []models.Team{{ID: "t1", Members: []string{"mate"}}},
		RoomID:       &room,
		RoomPassword: &pass,
	}

	for _, viewer := range []string{"host", "player", "mate"} {
		if !CanViewRoom(tr, viewer) {
			t.Errorf("%s should see the room", viewer)
		}
		if v := ViewFor(tr, viewer); v.RoomID == nil || v.RoomPassword == nil {
			t.Errorf("%s view lost room credentials", viewer)
		}
	}
	for _, viewer := range []string{"stranger", ""} {
		if CanViewRoom(tr, viewer) {
			t.Errorf("%q must not see the room", viewer)
		}
		if v := ViewFor(tr, viewer); v.RoomID != nil || v.RoomPassword != nil {
			t.Errorf("%q view was not redacted", viewer)
		}
	}
	if tr.RoomID == nil {
		t.Fatal("redaction must not touch the original")
	}
	if r := Redacted([]models.Tournament{*tr}); r[0].RoomPassword != nil {
		t.Fatal("broadcast view must always be redacted")
	}
}

package repositories

import (
	"context"
	"errors"

	"github.com/Dosada05/torvix-arena/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentExists   = errors.New("tournament already exists")
	ErrTournamentFull     = errors.New("tournament participant limit reached")
	ErrTournamentClosed   = errors.New("tournament is completed")
	ErrVersionConflict    = errors.New("tournament was modified concurrently")
	ErrUnavailable        = errors.New("storage backend unavailable")
)

// TournamentsListener receives the full tournament collection.
type TournamentsListener func(tournaments []models.Tournament)

// Gateway is the persistence boundary shared by every storage backend.
type Gateway interface {
	// SaveUser upserts the user keyed by ID.
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)

	CreateTournament(ctx context.Context, t *models.Tournament) error
	GetTournament(ctx context.Context, id string) (*models.Tournament, error)
	// ListTournaments returns the whole collection ordered by creation time.
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	// UpdateTournament merges the set fields of upd into the stored document.
	// When upd.ExpectedVersion is set and does not match, nothing is written and
	// ErrVersionConflict is returned.
	UpdateTournament(ctx context.Context, id string, upd TournamentUpdate) error
	// JoinTournamentParticipant appends p unless a participant with the same UserID
	// is already registered, in which case it does nothing. A positive limit caps
	// the participant list; reaching it yields ErrTournamentFull. A completed
	// tournament accepts nobody new (ErrTournamentClosed).
	JoinTournamentParticipant(ctx context.Context, id string, p models.Participant, limit int) error

	// SubscribeToTournaments delivers the current collection immediately and again after
	// every change, in write order. After the returned func returns no new delivery starts.
	SubscribeToTournaments(onChange TournamentsListener) (unsubscribe func())

	Close() error
}

// TournamentUpdate is a partial document. Nil fields are left untouched.
type TournamentUpdate struct {
	Description  *string
	Status       *models.TournamentStatus
	RoomID       *string
	RoomPassword *string
	Rules        *string
	HypeMessage  *string
	Teams        []models.Team
	Matches      []models.Match

	// SetWinner makes Winner (possibly nil) part of the update.
	SetWinner bool
	Winner    *models.Participant

	ExpectedVersion *int
}

func (u TournamentUpdate) IsEmpty() bool {
	return u.Description == nil && u.Status == nil && u.RoomID == nil && u.RoomPassword == nil &&
		u.Rules == nil && u.HypeMessage == nil && u.Teams == nil && u.Matches == nil && !u.SetWinner
}

// Apply merges the update into t and bumps its version.
func (u TournamentUpdate) Apply(t *models.Tournament) {
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.RoomID != nil {
		v := *u.RoomID
		t.RoomID = &v
	}
	if u.RoomPassword != nil {
		v := *u.RoomPassword
		t.RoomPassword = &v
	}
	if u.Rules != nil {
		v := *u.Rules
		t.Rules = &v
	}
	if u.HypeMessage != nil {
		v := *u.HypeMessage
		t.HypeMessage = &v
	}
	if u.Teams != nil {
		t.Teams = models.CloneTeams(u.Teams)
	}
	if u.Matches != nil {
		t.Matches = models.CloneMatches(u.Matches)
	}
	if u.SetWinner {
		if u.Winner == nil {
			t.Winner = nil
		} else {
			w := u.Winner.Clone()
			t.Winner = &w
		}
	}
	t.Version++
}

func checkVersion(t *models.Tournament, upd TournamentUpdate) error {
	if upd.ExpectedVersion != nil && *upd.ExpectedVersion != t.Version {
		return ErrVersionConflict
	}
	return nil
}

// appendParticipant reports whether t changed.
func appendParticipant(t *models.Tournament, p models.Participant, limit int) (bool, error) {
	if t.HasParticipant(p.UserID) {
		return false, nil
	}
	if t.Status == models.StatusCompleted {
		return false, ErrTournamentClosed
	}
	if limit > 0 && len(t.Participants) >= limit {
		return false, ErrTournamentFull
	}
	t.Participants = append(t.Participants, p)
	t.Version++
	return true, nil
}

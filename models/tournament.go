package models

import (
	"fmt"
	"time"
)

// TournamentStatus: UPCOMING -> LIVE -> COMPLETED. COMPLETED наступает только при объявлении победителя.
type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "UPCOMING"
	StatusLive      TournamentStatus = "LIVE"
	StatusCompleted TournamentStatus = "COMPLETED"
)

const (
	StartDateLayout = "2006-01-02"
	StartTimeLayout = "15:04"
)

type Prizes struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
}

// Tournament is the aggregate document. Version is bumped by every successful write
// and is used as the compare-and-swap token.
type Tournament struct {
	ID              string           `json:"id"`
	HostID          string           `json:"hostId"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Type            TournamentType   `json:"type"`
	GameName        string           `json:"gameName"`
	Format          GameFormat       `json:"format"`
	StartDate       string           `json:"startDate"`
	StartTime       string           `json:"startTime"`
	MaxParticipants int              `json:"maxParticipants"`
	EntryFee        int              `json:"entryFee"`
	Participants    []Participant    `json:"participants"`
	Teams           []Team           `json:"teams"`
	Matches         []Match          `json:"matches,omitempty"`
	Status          TournamentStatus `json:"status"`
	Prizes          Prizes           `json:"prizes"`
	RoomID          *string          `json:"roomId,omitempty"`
	RoomPassword    *string          `json:"roomPassword,omitempty"`
	Winner          *Participant     `json:"winner"`
	Rules           *string          `json:"rules,omitempty"`
	HypeMessage     *string          `json:"hypeMessage,omitempty"`
	Version         int              `json:"version"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// Clone returns a deep copy, so snapshots handed to subscribers never share slices.
func (t Tournament) Clone() Tournament {
	out := t
	if t.Participants != nil {
		out.Participants = make([]Participant, len(t.Participants))
		for i, p := range t.Participants {
			out.Participants[i] = p.Clone()
		}
	}
	out.Teams = CloneTeams(t.Teams)
	out.Matches = CloneMatches(t.Matches)
	out.RoomID = cloneString(t.RoomID)
	out.RoomPassword = cloneString(t.RoomPassword)
	out.Rules = cloneString(t.Rules)
	out.HypeMessage = cloneString(t.HypeMessage)
	if t.Winner != nil {
		w := t.Winner.Clone()
		out.Winner = &w
	}
	return out
}

func (t *Tournament) FindParticipant(userID string) *Participant {
	for i := range t.Participants {
		if t.Participants[i].UserID == userID {
			return &t.Participants[i]
		}
	}
	return nil
}

func (t *Tournament) HasParticipant(userID string) bool {
	return t.FindParticipant(userID) != nil
}

// FindTeam returns the index of the team or -1.
func (t *Tournament) FindTeam(teamID string) int {
	for i := range t.Teams {
		if t.Teams[i].ID == teamID {
			return i
		}
	}
	return -1
}

// TeamOf returns the team the user belongs to, if any.
func (t *Tournament) TeamOf(userID string) *Team {
	for i := range t.Teams {
		if t.Teams[i].HasMember(userID) {
			return &t.Teams[i]
		}
	}
	return nil
}

// ParticipantCapacity is the number of individual registrations the tournament accepts.
func (t *Tournament) ParticipantCapacity() int {
	return t.MaxParticipants * t.Format.TeamSize()
}

// StartsAt combines StartDate and StartTime in loc.
func (t *Tournament) StartsAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	at, err := time.ParseInLocation(StartDateLayout+" "+StartTimeLayout, t.StartDate+" "+t.StartTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("tournament %s: invalid start %q %q: %w", t.ID, t.StartDate, t.StartTime, err)
	}
	return at, nil
}

func CloneTournaments(in []Tournament) []Tournament {
	out := make([]Tournament, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

package brackets

import (
	"sort"

	"github.com/Dosada05/torvix-arena/models"
)

const (
	SlotTBD     = "TBD"
	SlotUnknown = "Unknown"

	// MaxRounds covers 65536 entrants, far above any tournament capacity.
	MaxRounds   = 16
	MaxPosition = 1 << (MaxRounds - 1)
)

type Slot struct {
	ID      *string       `json:"id"`
	Name    string        `json:"name"`
	Score   *models.Score `json:"score,omitempty"`
	Winning bool          `json:"winning"`
}

type MatchView struct {
	ID       string             `json:"id"`
	Round    int                `json:"round"`
	Position int                `json:"position"`
	Status   models.MatchStatus `json:"status"`
	Live     bool               `json:"live"`
	P1       Slot               `json:"p1"`
	P2       Slot               `json:"p2"`
}

type RoundView struct {
	Number  int         `json:"round"`
	Matches []MatchView `json:"matches"`
}

// Layout is the column view of a bracket: one entry per round, 1..max round, empty rounds kept.
type Layout struct {
	Rounds []RoundView `json:"rounds"`
}

// Render resolves slot names from participants only.
func Render(matches []models.Match, participants []models.Participant) Layout {
	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.UserID] = p.Name
	}
	return render(matches, names)
}

// RenderTournament also resolves team ids, which is what seeded team brackets hold.
func RenderTournament(t *models.Tournament) Layout {
	names := make(map[string]string, len(t.Participants)+len(t.Teams))
	for _, p := range t.Participants {
		names[p.UserID] = p.Name
	}
	for _, team := range t.Teams {
		names[team.ID] = team.Name
	}
	return render(t.Matches, names)
}

func render(matches []models.Match, names map[string]string) Layout {
	// раунды вне допустимого диапазона не рисуем
	maxRound := 0
	for _, m := range matches {
		if m.Round > maxRound && m.Round <= MaxRounds {
			maxRound = m.Round
		}
	}

	rounds := make([]RoundView, maxRound)
	for i := range rounds {
		rounds[i] = RoundView{Number: i + 1, Matches: []MatchView{}}
	}
	for _, m := range matches {
		if m.Round < 1 || m.Round > maxRound {
			continue
		}
		rounds[m.Round-1].Matches = append(rounds[m.Round-1].Matches, MatchView{
			ID:       m.ID,
			Round:    m.Round,
			Position: m.Position,
			Status:   m.Status,
			Live:     m.Status == models.MatchStatusLive,
			P1:       slot(m.P1ID, m.P1Score, m.WinnerID, names),
			P2:       slot(m.P2ID, m.P2Score, m.WinnerID, names),
		})
	}
	for i := range rounds {
		ms := rounds[i].Matches
		sort.SliceStable(ms, func(a, b int) bool { return ms[a].Position < ms[b].Position })
	}
	return Layout{Rounds: rounds}
}

func slot(id *string, score *models.Score, winnerID *string, names map[string]string) Slot {
	s := Slot{Score: score}
	if id == nil {
		s.Name = SlotTBD
		return s
	}
	v := *id
	s.ID = &v
	if name, ok := names[v]; ok {
		s.Name = name
	} else {
		s.Name = SlotUnknown
	}
	s.Winning = winnerID != nil && *winnerID == v
	return s
}

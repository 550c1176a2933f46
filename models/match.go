package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "SCHEDULED"
	MatchStatusLive      MatchStatus = "LIVE"
	MatchStatusCompleted MatchStatus = "COMPLETED"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusLive, MatchStatusCompleted:
		return true
	}
	return false
}

// Score хранит счёт как строку; в документах он встречается и строкой, и числом.
type Score string

func (s *Score) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Score(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("score must be a string or a number: %w", err)
	}
	*s = Score(n.String())
	return nil
}

type Match struct {
	ID       string      `json:"id"`
	Round    int         `json:"round"`
	Position int         `json:"position"`
	Status   MatchStatus `json:"status"`
	WinnerID *string     `json:"winnerId"`
	P1ID     *string     `json:"p1Id"`
	P2ID     *string     `json:"p2Id"`
	P1Score  *Score      `json:"p1Score,omitempty"`
	P2Score  *Score      `json:"p2Score,omitempty"`
}

func (m Match) Clone() Match {
	out := m
	out.WinnerID = cloneString(m.WinnerID)
	out.P1ID = cloneString(m.P1ID)
	out.P2ID = cloneString(m.P2ID)
	if m.P1Score != nil {
		v := *m.P1Score
		out.P1Score = &v
	}
	if m.P2Score != nil {
		v := *m.P2Score
		out.P2Score = &v
	}
	return out
}

func CloneMatches(in []Match) []Match {
	if in == nil {
		return nil
	}
	out := make([]Match, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}

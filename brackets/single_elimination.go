package brackets

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Dosada05/torvix-arena/models"
)

var (
	ErrNotEnoughEntrants = errors.New("at least two entrants are required for a bracket")
	ErrMatchNotFound     = errors.New("match not found in bracket")
	ErrInvalidWinner     = errors.New("winner must be one of the match players")
	ErrMatchNotReady     = errors.New("match does not have both players yet")
	ErrResultLocked      = errors.New("next round match is already completed")
)

// MatchID builds identifiers in the R<round>M<position> form.
func MatchID(round, position int) string {
	return fmt.Sprintf("R%dM%d", round, position)
}

// SeedSingleElimination builds a full bracket for entrants in the given order.
// The bracket is padded to the next power of two; byes are given to the first
// entrants, complete immediately and push their entrant into round two.
func SeedSingleElimination(entrants []string) ([]models.Match, error) {
	n := len(entrants)
	if n < 2 {
		return nil, ErrNotEnoughEntrants
	}

	numRounds := int(math.Ceil(math.Log2(float64(n))))
	size := 1 << uint(numRounds)
	numByes := size - n

	matches := make([]models.Match, 0, size-1)
	for r := 1; r <= numRounds; r++ {
		for p := 1; p <= size>>uint(r); p++ {
			matches = append(matches, models.Match{
				ID:       MatchID(r, p),
				Round:    r,
				Position: p,
				Status:   models.MatchStatusScheduled,
			})
		}
	}

	// В первом раунде сначала матчи с bye (у каждого ровно один реальный игрок), потом обычные пары.
	next := 0
	for p := 1; p <= size/2; p++ {
		m := &matches[p-1]
		p1 := entrants[next]
		m.P1ID = &p1
		next++
		if p <= numByes {
			winner := p1
			m.Status = models.MatchStatusCompleted
			m.WinnerID = &winner
			placeWinner(matches, m.Round, m.Position, winner)
			continue
		}
		p2 := entrants[next]
		m.P2ID = &p2
		next++
	}
	return matches, nil
}

// Advance records a result and moves the winner into the next round.
// The input slice is not modified.
func Advance(matches []models.Match, matchID, winnerID string, p1Score, p2Score *models.Score) ([]models.Match, error) {
	out := models.CloneMatches(matches)

	idx := -1
	for i := range out {
		if out[i].ID == matchID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrMatchNotFound
	}
	m := &out[idx]
	if m.P1ID == nil || m.P2ID == nil {
		return nil, ErrMatchNotReady
	}
	if winnerID != *m.P1ID && winnerID != *m.P2ID {
		return nil, ErrInvalidWinner
	}
	if succ := findMatch(out, m.Round+1, (m.Position+1)/2); succ >= 0 && out[succ].Status == models.MatchStatusCompleted {
		return nil, ErrResultLocked
	}

	w := winnerID
	m.Status = models.MatchStatusCompleted
	m.WinnerID = &w
	m.P1Score = cloneScore(p1Score)
	m.P2Score = cloneScore(p2Score)
	placeWinner(out, m.Round, m.Position, winnerID)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

// placeWinner: позиция p раунда r уходит в позицию ceil(p/2) следующего раунда,
// нечётные в первый слот, чётные во второй. Финал никуда не продвигает.
func placeWinner(matches []models.Match, round, position int, winnerID string) {
	idx := findMatch(matches, round+1, (position+1)/2)
	if idx < 0 {
		return
	}
	w := winnerID
	if position%2 == 1 {
		matches[idx].P1ID = &w
	} else {
		matches[idx].P2ID = &w
	}
}

func findMatch(matches []models.Match, round, position int) int {
	for i := range matches {
		if matches[i].Round == round && matches[i].Position == position {
			return i
		}
	}
	return -1
}

func cloneScore(s *models.Score) *models.Score {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

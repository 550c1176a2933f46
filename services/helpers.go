package services

import (
	"github.com/Dosada05/torvix-arena/models"
)

// --- Видимость комнаты ---

// CanViewRoom reports whether viewerID may see room credentials: the host,
// a registered participant or a member of any team.
func CanViewRoom(t *models.Tournament, viewerID string) bool {
	if t == nil || viewerID == "" {
		return false
	}
	if t.HostID == viewerID || t.HasParticipant(viewerID) {
		return true
	}
	return t.TeamOf(viewerID) != nil
}

// ViewFor returns a copy of t safe to show to viewerID.
func ViewFor(t *models.Tournament, viewerID string) models.Tournament {
	view := t.Clone()
	if !CanViewRoom(t, viewerID) {
		redactRoom(&view)
	}
	return view
}

// ViewsFor applies ViewFor to a whole collection.
func ViewsFor(list []models.Tournament, viewerID string) []models.Tournament {
	out := make([]models.Tournament, 0, len(list))
	for i := range list {
		out = append(out, ViewFor(&list[i], viewerID))
	}
	return out
}

// Redacted strips room credentials unconditionally, for broadcasts.
func Redacted(list []models.Tournament) []models.Tournament {
	out := make([]models.Tournament, 0, len(list))
	for i := range list {
		view := list[i].Clone()
		redactRoom(&view)
		out = append(out, view)
	}
	return out
}

func redactRoom(t *models.Tournament) {
	t.RoomID = nil
	t.RoomPassword = nil
}

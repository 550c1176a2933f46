package models

import "time"

// Participant - денормализованный снимок пользователя на момент регистрации.
type Participant struct {
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar,omitempty"`
	TeamID       *string   `json:"teamId,omitempty"`
	TeamName     *string   `json:"teamName,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func (p Participant) Clone() Participant {
	out := p
	if p.TeamID != nil {
		v := *p.TeamID
		out.TeamID = &v
	}
	if p.TeamName != nil {
		v := *p.TeamName
		out.TeamName = &v
	}
	return out
}

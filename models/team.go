package models

// Team is a group of users registered under one name. CaptainID is always Members[0].
type Team struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CaptainID    string   `json:"captainId"`
	Members      []string `json:"members"`
	TournamentID string   `json:"tournamentId"`
}

func (t Team) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m == userID {
			return true
		}
	}
	return false
}

func (t Team) clone() Team {
	out := t
	out.Members = append([]string(nil), t.Members...)
	return out
}

func CloneTeams(in []Team) []Team {
	if in == nil {
		return nil
	}
	out := make([]Team, len(in))
	for i, t := range in {
		out[i] = t.clone()
	}
	return out
}

package models

// GameFormat определяет размер команды в турнире.
type GameFormat string

const (
	FormatSolo  GameFormat = "SOLO"
	FormatDuo   GameFormat = "DUO"
	FormatSquad GameFormat = "SQUAD"
)

func (f GameFormat) Valid() bool {
	switch f {
	case FormatSolo, FormatDuo, FormatSquad:
		return true
	}
	return false
}

// TeamSize returns how many members one bracket slot holds. Unknown formats report 0.
func (f GameFormat) TeamSize() int {
	switch f {
	case FormatSolo:
		return 1
	case FormatDuo:
		return 2
	case FormatSquad:
		return 4
	}
	return 0
}

// HasTeams reports whether entrants register as teams.
func (f GameFormat) HasTeams() bool {
	return f == FormatDuo || f == FormatSquad
}

type TournamentType string

const (
	TypeEsports TournamentType = "ESPORTS"
	TypeSports  TournamentType = "SPORTS"
)

func (t TournamentType) Valid() bool {
	return t == TypeEsports || t == TypeSports
}

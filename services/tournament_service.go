package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/Dosada05/torvix-arena/brackets"
	"github.com/Dosada05/torvix-arena/models"
	"github.com/Dosada05/torvix-arena/observability"
	"github.com/Dosada05/torvix-arena/repositories"
	"github.com/Dosada05/torvix-arena/session"
	"github.com/Dosada05/torvix-arena/utils"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	maxTitleLen       = 100
	maxTeamNameLen    = 40
	maxParticipantCap = 1024
	promoteWorkers    = 4
)

// Every mutating method takes the acting session explicitly; a nil or anonymous
// session makes the call a no-op that returns zero values and no error.
type TournamentService interface {
	CreateTournament(ctx context.Context, sess *session.Session, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, id string) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]models.Tournament, error)

	JoinAsParticipant(ctx context.Context, sess *session.Session, tournamentID string) (*models.Tournament, error)
	CreateTeam(ctx context.Context, sess *session.Session, tournamentID, teamName string) (*models.Team, error)
	JoinTeam(ctx context.Context, sess *session.Session, tournamentID, teamID string) (*models.Team, error)

	UpdateRoom(ctx context.Context, sess *session.Session, tournamentID string, input RoomInput) (*models.Tournament, error)
	AnnounceWinner(ctx context.Context, sess *session.Session, tournamentID, winnerUserID string) (*models.Tournament, error)
	UpdateDetails(ctx context.Context, sess *session.Session, tournamentID string, input DetailsInput) (*models.Tournament, error)

	SetMatches(ctx context.Context, sess *session.Session, tournamentID string, matches []models.Match) (*models.Tournament, error)
	SeedBracket(ctx context.Context, sess *session.Session, tournamentID string) (*models.Tournament, error)
	ReportMatchResult(ctx context.Context, sess *session.Session, tournamentID string, input MatchResultInput) (*models.Tournament, error)

	// PromoteStarted moves UPCOMING tournaments whose start has passed to LIVE.
	PromoteStarted(ctx context.Context, now time.Time) (int, error)
}

type CreateTournamentInput struct {
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Type            models.TournamentType `json:"type"`
	GameName        string                `json:"gameName"`
	Format          models.GameFormat     `json:"format"`
	StartDate       string                `json:"startDate"`
	StartTime       string                `json:"startTime"`
	MaxParticipants int                   `json:"maxParticipants"`
	EntryFee        int                   `json:"entryFee"`
	Prizes          models.Prizes         `json:"prizes"`
	RoomID          *string               `json:"roomId"`
	RoomPassword    *string               `json:"roomPassword"`
	Rules           *string               `json:"rules"`
	HypeMessage     *string               `json:"hypeMessage"`
}

type RoomInput struct {
	RoomID       string `json:"roomId"`
	RoomPassword string `json:"roomPassword"`
}

type DetailsInput struct {
	Description *string `json:"description"`
	Rules       *string `json:"rules"`
	HypeMessage *string `json:"hypeMessage"`
}

type MatchResultInput struct {
	MatchID  string        `json:"-"`
	WinnerID string        `json:"winnerId"`
	P1Score  *models.Score `json:"p1Score"`
	P2Score  *models.Score `json:"p2Score"`
}

type tournamentService struct {
	gateway  repositories.Gateway
	location *time.Location
	logger   *slog.Logger
	retry    *utils.RetryConfig
	tracer   trace.Tracer
	now      func() time.Time
}

func NewTournamentService(gateway repositories.Gateway, location *time.Location, logger *slog.Logger) TournamentService {
	return newTournamentService(gateway, location, logger)
}

func newTournamentService(gateway repositories.Gateway, location *time.Location, logger *slog.Logger) *tournamentService {
	if location == nil {
		location = time.UTC
	}
	return &tournamentService{
		gateway:  gateway,
		location: location,
		logger:   logger,
		retry:    utils.DefaultRetryConfig(),
		tracer:   observability.Tracer(),
		now:      time.Now,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, sess *session.Session, input CreateTournamentInput) (*models.Tournament, error) {
	if !sess.Active() {
		return nil, nil
	}
	if err := s.validateCreate(&input); err != nil {
		return nil, err
	}

	t := &models.Tournament{
		ID:              uuid.NewString(),
		HostID:          sess.UserID(),
		Title:           input.Title,
		Description:     input.Description,
		Type:            input.Type,
		GameName:        input.GameName,
		Format:          input.Format,
		StartDate:       input.StartDate,
		StartTime:       input.StartTime,
		MaxParticipants: input.MaxParticipants,
		EntryFee:        input.EntryFee,
		Participants:    []models.Participant{},
		Teams:           []models.Team{},
		Status:          models.StatusUpcoming,
		Prizes:          input.Prizes,
		RoomID:          input.RoomID,
		RoomPassword:    input.RoomPassword,
		Rules:           input.Rules,
		HypeMessage:     input.HypeMessage,
		Version:         1,
		CreatedAt:       s.now().UTC(),
	}

	err := s.track(ctx, "create", t.ID, func(ctx context.Context) error {
		return s.gateway.CreateTournament(ctx, t)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	s.logger.Info("tournament created", slog.String("tournament_id", t.ID), slog.String("host_id", t.HostID))
	return t, nil
}

func (s *tournamentService) validateCreate(input *CreateTournamentInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.GameName = strings.TrimSpace(input.GameName)
	if input.Type == "" {
		input.Type = models.TypeEsports
	}

	var v validator
	v.check(input.Title != "", "title", "must not be empty")
	v.check(utf8.RuneCountInString(input.Title) <= maxTitleLen, "title", fmt.Sprintf("must be at most %d characters", maxTitleLen))
	v.check(input.GameName != "", "gameName", "must not be empty")
	v.check(input.Type.Valid(), "type", "must be ESPORTS or SPORTS")
	v.check(input.Format.Valid(), "format", "must be SOLO, DUO or SQUAD")
	_, dateErr := time.Parse(models.StartDateLayout, input.StartDate)
	v.check(dateErr == nil, "startDate", "must be a date in YYYY-MM-DD form")
	_, timeErr := time.Parse(models.StartTimeLayout, input.StartTime)
	v.check(timeErr == nil, "startTime", "must be a time in HH:MM form")
	v.check(input.MaxParticipants > 0, "maxParticipants", "must be positive")
	v.check(input.MaxParticipants <= maxParticipantCap, "maxParticipants", fmt.Sprintf("must be at most %d", maxParticipantCap))
	v.check(input.EntryFee >= 0, "entryFee", "must not be negative")
	return v.err()
}

func (s *tournamentService) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.gateway.GetTournament(ctx, id)
	if err != nil {
		return nil, translateGatewayError(err)
	}
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	list, err := s.gateway.ListTournaments(ctx)
	if err != nil {
		return nil, translateGatewayError(err)
	}
	return list, nil
}

func (s *tournamentService) JoinAsParticipant(ctx context.Context, sess *session.Session, tournamentID string) (*models.Tournament, error) {
	if !sess.Active() {
		return nil, nil
	}
	userID := sess.UserID()

	var result *models.Tournament
	err := s.track(ctx, "join", tournamentID, func(ctx context.Context) error {
		t, err := s.gateway.GetTournament(ctx, tournamentID)
		if err != nil {
			return translateGatewayError(err)
		}
		if t.HasParticipant(userID) {
			result = t
			return nil
		}
		if t.Status == models.StatusCompleted {
			return ErrTournamentClosed
		}

		p := models.Participant{
			UserID:       userID,
			Name:         sess.User.Name,
			Avatar:       sess.User.Avatar,
			RegisteredAt: s.now().UTC(),
		}
		if team := t.TeamOf(userID); team != nil {
			teamID, teamName := team.ID, team.Name
			p.TeamID, p.TeamName = &teamID, &teamName
		}
		if err := s.gateway.JoinTournamentParticipant(ctx, tournamentID, p, t.ParticipantCapacity()); err != nil {
			return translateGatewayError(err)
		}
		result, err = s.gateway.GetTournament(ctx, tournamentID)
		return translateGatewayError(err)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *tournamentService) CreateTeam(ctx context.Context, sess *session.Session, tournamentID, teamName string) (*models.Team, error) {
	if !sess.Active() {
		return nil, nil
	}
	userID := sess.UserID()
	teamName = strings.TrimSpace(teamName)

	var v validator
	v.check(teamName != "", "teamName", "must not be empty")
	v.check(utf8.RuneCountInString(teamName) <= maxTeamNameLen, "teamName", fmt.Sprintf("must be at most %d characters", maxTeamNameLen))
	if err := v.err(); err != nil {
		return nil, err
	}

	team := models.Team{
		ID:           uuid.NewString(),
		Name:         teamName,
		CaptainID:    userID,
		Members:      []string{userID},
		TournamentID: tournamentID,
	}
	_, err := s.mutate(ctx, "create_team", tournamentID, func(t *models.Tournament) (repositories.TournamentUpdate, error) {
		var upd repositories.TournamentUpdate
		switch {
		case t.Status == models.StatusCompleted:
			return upd, ErrTournamentClosed
		case !t.Format.HasTeams():
			return upd, ErrTeamsNotAllowed
		case t.TeamOf(userID) != nil:
			return upd, ErrAlreadyInTeam
		case len(t.Teams) >= t.MaxParticipants:
			return upd, ErrTournamentFull
		}
		upd.Teams = append(models.CloneTeams(t.Teams), team)
		return upd, nil
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *tournamentService) JoinTeam(ctx context.Context, sess *session.Session, tournamentID, teamID string) (*models.Team, error) {
	if !sess.Active() {
		return nil, nil
	}
	userID := sess.UserID()

	t, err := s.mutate(ctx, "join_team", tournamentID, func(t *models.Tournament) (repositories.TournamentUpdate, error) {
		var upd repositories.TournamentUpdate
		idx := t.FindTeam(teamID)
		if idx < 0 {
			return upd, ErrTeamNotFound
		}
		team := t.Teams[idx]
		if team.HasMember(userID) {
			return upd, nil
		}
		switch {
		case t.Status == models.StatusCompleted:
			return upd, ErrTournamentClosed
		case t.TeamOf(userID) != nil:
			return upd, ErrAlreadyInTeam
		case len(team.Members) >= t.Format.TeamSize():
			return upd, ErrTeamFull
		}
		upd.Teams = models.CloneTeams(t.Teams)
		upd.Teams[idx].Members = append(upd.Teams[idx].Members, userID)
		return upd, nil
	})
	if err != nil {
		return nil, err
	}
	team := t.Teams[t.FindTeam(teamID)]
	return &team, nil
}

func (s *tournamentService) UpdateRoom(ctx context.Context, sess *session.Session, tournamentID string, input RoomInput) (*models.Tournament, error) {
	if !sess.Active() {
		return nil, nil
	}
	return s.mutate(ctx, "update_room", tournamentID, func(t *models.Tournament) (repositories.TournamentUpdate, error) {
		if err := requireHost(t, sess); err != nil {
			return repositories.TournamentUpdate{}, err
		}
		roomID, roomPassword := input.RoomID, input.RoomPassword
		return repositories.TournamentUpdate{RoomID: &roomID, RoomPassword: &roomPassword}, nil
	})
}

// AnnounceWinner completes the tournament. An id that is not a registered
// participant still completes it, with no winner recorded.
func (s *tournamentService) AnnounceWinner(ctx context.Context, sess *session.Session, tournamentID, winnerUserID string) (*models.Tournament, error) {
	if !sess.Active() {
		return nil, nil
	}
	t, err := s.mutate(ctx, "announce_winner", tournamentID, func(t *models.Tournament) (repositories.TournamentUpdate, error) {
		if err := requireHost(t, sess); err != nil {
			return repositories.TournamentUpdate{}, err
		}
		completed := models.StatusCompleted
		upd := repositories.TournamentUpdate{Status: &completed, SetWinner: true}
		if p := t.FindParticipant(winnerUserID); p != nil {
			w := p.Clone()
			upd.Winner = &w
		}
		return upd, nil
	})
	if err != nil {
		return nil, err
	}
	if t.Winner == nil {
		s.logger.Warn("winner is not a registered participant, tournament completed without winner",
			slog.String("tournament_id", tournamentID), slog.String("winner_id", winnerUserID))
	}
	return t, nil
}

func (s *tournamentService) UpdateDetails(ctx context.Context, sess *session.Session, tournamentID string, input DetailsInput) (*models.Tournament, error) {
	if !sess.Active() {
		return nil, nil
	}
	if input.Description == nil && input.Rules == nil && input.HypeMessage == nil {
		return nil, &ValidationError{Fields: map[string]string{"details": "nothing to update"}}
	}
	return s.mutate(ctx, "update_details", tournamentID, func(t *models.Tournament) (repositories.TournamentUpdate, error) {
		if err := requireHost(t, sess); err != nil {
			return repositories.TournamentUpdate{}, err
		}
		return repositories.TournamentUpdate{
			Description: input.Description,
			Rules:       input.Rules,
			HypeMessage: input.HypeMessage,
		}, nil
	})
}

func (s *tournamentService) SetMatches(ctx context.Context, sess *session.Session, tournamentID string, matches []models.Match) (*models.Tournament, error) {
	if !sess.Active() {
		return nil, nil
	}
	normalized, err := validateMatches(matches)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, "set_matches", tournamentID, func(t *models.Tournament) (repositories.TournamentUpdate, error) {
		if err := requireHost(t, sess); err != nil {
			return repositories.TournamentUpdate{}, err
		}
		return repositories.TournamentUpdate{Matches: normalized}, nil
	})
}

func validateMatches(matches []models.Match) ([]models.Match, error) {
	out := make([]models.Match, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	var v validator
	for i, m := range matches {
		field := fmt.Sprintf("matches[%d]", i)
		v.check(m.ID != "", field, "id must not be empty")
		v.check(!seen[m.ID], field, "duplicate id "+m.ID)
		v.check(m.Round >= 1 && m.Round <= brackets.MaxRounds, field, fmt.Sprintf("round must be between 1 and %d", brackets.MaxRounds))
		v.check(m.Position >= 1 && m.Position <= brackets.MaxPosition, field, fmt.Sprintf("position must be between 1 and %d", brackets.MaxPosition))
		if m.Status == "" {
			m.Status = models.MatchStatusScheduled
		}
		v.check(m.Status.Valid(), field, "unknown status "+string(m.Status))
		seen[m.ID] = true
		out = append(out, m.Clone())
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SeedBracket builds a fresh single-elimination bracket from teams (team formats)
// or participants (SOLO) in registration order.
func (s *tournamentService) SeedBracket(ctx context.Context, sess *session.Session, tournamentID string) (*models.Tournament, error) {
	if !sess.Active() {
		return nil, nil
	}
	return s.mutate(ctx, "seed_bracket", tournamentID, func(t *models.Tournament) (repositories.TournamentUpdate, error) {
		var upd repositories.TournamentUpdate
		if err := requireHost(t, sess); err != nil {
			return upd, err
		}
		if t.Status == models.StatusCompleted {
			return upd, ErrTournamentClosed
		}
		for _, m := range t.Matches {
			if m.Status == models.MatchStatusCompleted && m.P1ID != nil && m.P2ID != nil {
				return upd, &ValidationError{Fields: map[string]string{"matches": "results were already reported"}}
			}
		}

		var entrants []string
		if t.Format.HasTeams() {
			for _, team := range t.Teams {
				entrants = append(entrants, team.ID)
			}
		} else {
			for _, p := range t.Participants {
				entrants = append(entrants, p.UserID)
			}
		}
		matches, err := brackets.SeedSingleElimination(entrants)
		if err != nil {
			return upd, fmt.Errorf("%w: %v", ErrNoEntrants, err)
		}
		upd.Matches = matches
		return upd, nil
	})
}

func (s *tournamentService) ReportMatchResult(ctx context.Context, sess *session.Session, tournamentID string, input MatchResultInput) (*models.Tournament, error) {
	if !sess.Active() {
		return nil, nil
	}
	return s.mutate(ctx, "report_result", tournamentID, func(t *models.Tournament) (repositories.TournamentUpdate, error) {
		var upd repositories.TournamentUpdate
		if err := requireHost(t, sess); err != nil {
			return upd, err
		}
		matches, err := brackets.Advance(t.Matches, input.MatchID, input.WinnerID, input.P1Score, input.P2Score)
		switch {
		case errors.Is(err, brackets.ErrMatchNotFound):
			return upd, ErrMatchNotFound
		case errors.Is(err, brackets.ErrInvalidWinner):
			return upd, &ValidationError{Fields: map[string]string{"winnerId": err.Error()}}
		case err != nil:
			return upd, fmt.Errorf("%w: %v", ErrMatchNotReady, err)
		}
		upd.Matches = matches
		return upd, nil
	})
}

func (s *tournamentService) PromoteStarted(ctx context.Context, now time.Time) (int, error) {
	list, err := s.gateway.ListTournaments(ctx)
	if err != nil {
		return 0, translateGatewayError(err)
	}

	var promoted atomic.Int64
	var g errgroup.Group
	g.SetLimit(promoteWorkers)
	for _, t := range list {
		if t.Status != models.StatusUpcoming {
			continue
		}
		startsAt, err := t.StartsAt(s.location)
		if err != nil {
			s.logger.Warn("skipping tournament with unparsable start", slog.String("tournament_id", t.ID), slog.Any("error", err))
			continue
		}
		if startsAt.After(now) {
			continue
		}

		id := t.ID
		g.Go(func() error {
			changed := false
			_, err := s.mutate(ctx, "promote", id, func(cur *models.Tournament) (repositories.TournamentUpdate, error) {
				changed = false
				if cur.Status != models.StatusUpcoming {
					return repositories.TournamentUpdate{}, nil
				}
				changed = true
				live := models.StatusLive
				return repositories.TournamentUpdate{Status: &live}, nil
			})
			if err != nil {
				s.logger.Error("failed to promote tournament", slog.String("tournament_id", id), slog.Any("error", err))
				return nil
			}
			if changed {
				promoted.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	n := int(promoted.Load())
	if n > 0 {
		observability.AddPromoted(n)
		s.logger.Info("tournaments went live", slog.Int("count", n))
	}
	return n, ctx.Err()
}

type buildFunc func(t *models.Tournament) (repositories.TournamentUpdate, error)

// mutate re-reads the tournament, builds the update and writes it guarded by the
// version it read. Version conflicts are retried; anything else stops immediately.
func (s *tournamentService) mutate(ctx context.Context, op, tournamentID string, build buildFunc) (*models.Tournament, error) {
	var result *models.Tournament
	err := s.track(ctx, op, tournamentID, func(ctx context.Context) error {
		t, err := utils.Retry(ctx, s.retry, s.logger, op+" "+tournamentID, func(ctx context.Context) (*models.Tournament, error) {
			current, err := s.gateway.GetTournament(ctx, tournamentID)
			if err != nil {
				return nil, utils.Permanent(translateGatewayError(err))
			}
			upd, err := build(current)
			if err != nil {
				return nil, utils.Permanent(err)
			}
			if upd.IsEmpty() {
				return current, nil
			}
			version := current.Version
			upd.ExpectedVersion = &version
			if err := s.gateway.UpdateTournament(ctx, tournamentID, upd); err != nil {
				if errors.Is(err, repositories.ErrVersionConflict) {
					observability.IncVersionConflict(op)
					return nil, err
				}
				return nil, utils.Permanent(translateGatewayError(err))
			}
			upd.Apply(current)
			return current, nil
		})
		if errors.Is(err, repositories.ErrVersionConflict) {
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
		result = t
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *tournamentService) track(ctx context.Context, op, tournamentID string, fn func(ctx context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "tournament."+op, trace.WithAttributes(attribute.String("tournament.id", tournamentID)))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	observability.ObserveOperation(op, resultLabel(err), time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func requireHost(t *models.Tournament, sess *session.Session) error {
	if t.HostID != sess.UserID() {
		return ErrForbiddenOperation
	}
	return nil
}

func translateGatewayError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrTournamentFull):
		return ErrTournamentFull
	case errors.Is(err, repositories.ErrTournamentClosed):
		return ErrTournamentClosed
	}
	return err
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidationFailed), errors.Is(err, ErrTournamentFull), errors.Is(err, ErrTeamFull),
		errors.Is(err, ErrTeamsNotAllowed), errors.Is(err, ErrTournamentClosed):
		return "rejected"
	case errors.Is(err, ErrForbiddenOperation):
		return "forbidden"
	case errors.Is(err, ErrTournamentNotFound), errors.Is(err, ErrTeamNotFound), errors.Is(err, ErrMatchNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyInTeam):
		return "conflict"
	case errors.Is(err, repositories.ErrUnavailable):
		return "unavailable"
	}
	return "error"
}

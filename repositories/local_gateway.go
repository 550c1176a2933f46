package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Dosada05/torvix-arena/models"
)

// localDocument is the on-disk shape: {"users": {...}, "tournaments": [...]}.
type localDocument struct {
	Users       map[string]models.User `json:"users"`
	Tournaments []models.Tournament    `json:"tournaments"`
}

// LocalGateway keeps the whole dataset in memory and mirrors it into a single JSON file.
// An empty path keeps everything in memory only.
type LocalGateway struct {
	mu     sync.RWMutex
	path   string
	doc    localDocument
	feed   *tournamentFeed
	logger *slog.Logger
}

func NewLocalGateway(path string, logger *slog.Logger) (*LocalGateway, error) {
	g := &LocalGateway{
		path:   path,
		doc:    localDocument{Users: make(map[string]models.User)},
		feed:   newTournamentFeed(),
		logger: logger,
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	g.feed.publish(g.doc.Tournaments)
	return g, nil
}

func (g *LocalGateway) load() error {
	if g.path == "" {
		return nil
	}
	data, err := os.ReadFile(g.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrUnavailable, g.path, err)
	}

	var doc localDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		// Битый файл откладываем в сторону и начинаем с пустого набора.
		aside := g.path + ".corrupt"
		g.logger.Error("local data file is corrupt, starting empty",
			slog.String("path", g.path), slog.String("moved_to", aside), slog.Any("error", err))
		if renameErr := os.Rename(g.path, aside); renameErr != nil {
			return fmt.Errorf("%w: move corrupt file: %v", ErrUnavailable, renameErr)
		}
		return nil
	}
	if doc.Users == nil {
		doc.Users = make(map[string]models.User)
	}
	sort.SliceStable(doc.Tournaments, func(i, j int) bool {
		return doc.Tournaments[i].CreatedAt.Before(doc.Tournaments[j].CreatedAt)
	})
	g.doc = doc
	return nil
}

// persistLocked writes through a temp file and rename so a crash never leaves half a file.
func (g *LocalGateway) persistLocked() error {
	if g.path == "" {
		return nil
	}
	data, err := json.Marshal(g.doc)
	if err != nil {
		return fmt.Errorf("encode local data: %w", err)
	}
	dir := filepath.Dir(g.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(g.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := os.Rename(tmpName, g.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (g *LocalGateway) SaveUser(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	prev, existed := g.doc.Users[user.ID]
	g.doc.Users[user.ID] = *user
	if err := g.persistLocked(); err != nil {
		if existed {
			g.doc.Users[user.ID] = prev
		} else {
			delete(g.doc.Users, user.ID)
		}
		return err
	}
	return nil
}

func (g *LocalGateway) GetUser(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	user, ok := g.doc.Users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (g *LocalGateway) CreateTournament(ctx context.Context, t *models.Tournament) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.indexLocked(t.ID) >= 0 {
		return ErrTournamentExists
	}
	g.doc.Tournaments = append(g.doc.Tournaments, t.Clone())
	if err := g.persistLocked(); err != nil {
		g.doc.Tournaments = g.doc.Tournaments[:len(g.doc.Tournaments)-1]
		return err
	}
	g.feed.publish(g.doc.Tournaments)
	return nil
}

func (g *LocalGateway) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	idx := g.indexLocked(id)
	if idx < 0 {
		return nil, ErrTournamentNotFound
	}
	t := g.doc.Tournaments[idx].Clone()
	return &t, nil
}

func (g *LocalGateway) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return models.CloneTournaments(g.doc.Tournaments), nil
}

func (g *LocalGateway) UpdateTournament(ctx context.Context, id string, upd TournamentUpdate) error {
	return g.modify(ctx, id, func(t *models.Tournament) (bool, error) {
		if err := checkVersion(t, upd); err != nil {
			return false, err
		}
		upd.Apply(t)
		return true, nil
	})
}

func (g *LocalGateway) JoinTournamentParticipant(ctx context.Context, id string, p models.Participant, limit int) error {
	return g.modify(ctx, id, func(t *models.Tournament) (bool, error) {
		return appendParticipant(t, p, limit)
	})
}

// modify runs fn against a copy of the stored tournament and commits it when fn reports a change.
func (g *LocalGateway) modify(ctx context.Context, id string, fn func(t *models.Tournament) (bool, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := g.indexLocked(id)
	if idx < 0 {
		return ErrTournamentNotFound
	}
	prev := g.doc.Tournaments[idx]
	next := prev.Clone()
	changed, err := fn(&next)
	if err != nil || !changed {
		return err
	}

	g.doc.Tournaments[idx] = next
	if err := g.persistLocked(); err != nil {
		g.doc.Tournaments[idx] = prev
		return err
	}
	g.feed.publish(g.doc.Tournaments)
	return nil
}

func (g *LocalGateway) SubscribeToTournaments(onChange TournamentsListener) func() {
	return g.feed.subscribe(onChange)
}

func (g *LocalGateway) Close() error {
	g.feed.closeAll()
	return nil
}

func (g *LocalGateway) indexLocked(id string) int {
	for i := range g.doc.Tournaments {
		if g.doc.Tournaments[i].ID == id {
			return i
		}
	}
	return -1
}

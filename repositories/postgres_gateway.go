package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/torvix-arena/models"
	"github.com/lib/pq"
)

const tournamentsChannel = "tournaments_changed"

type PostgresGateway struct {
	db       *sql.DB
	listener *pq.Listener
	feed     *tournamentFeed
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewPostgresGateway listens on tournaments_changed so that writes made by other
// instances reach local subscribers as well.
func NewPostgresGateway(ctx context.Context, db *sql.DB, dsn string, logger *slog.Logger) (*PostgresGateway, error) {
	listener := pq.NewListener(dsn, 2*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("postgres listener event", slog.Int("event", int(ev)), slog.Any("error", err))
		}
	})
	if err := listener.Listen(tournamentsChannel); err != nil {
		listener.Close()
		return nil, unavailable("listen", err)
	}

	g := &PostgresGateway{
		db:       db,
		listener: listener,
		feed:     newTournamentFeed(),
		logger:   logger,
		done:     make(chan struct{}),
	}

	initial, err := g.ListTournaments(ctx)
	if err != nil {
		listener.Close()
		return nil, err
	}
	g.feed.publish(initial)

	loopCtx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	go g.listen(loopCtx)
	return g, nil
}

func (g *PostgresGateway) listen(ctx context.Context) {
	defer close(g.done)
	ping := time.NewTicker(90 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-g.listener.Notify:
			// nil означает переподключение: данные могли измениться, перечитываем.
			g.drainNotifications()
			g.reload(ctx)
		case <-ping.C:
			if err := g.listener.Ping(); err != nil {
				g.logger.Warn("postgres listener ping failed", slog.Any("error", err))
			}
		}
	}
}

// drainNotifications coalesces a burst of notifications into one reload.
func (g *PostgresGateway) drainNotifications() {
	for {
		select {
		case <-g.listener.Notify:
		default:
			return
		}
	}
}

func (g *PostgresGateway) reload(ctx context.Context) {
	reloadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	snapshot, err := g.ListTournaments(reloadCtx)
	if err != nil {
		g.logger.Error("failed to reload tournaments after notification", slog.Any("error", err))
		return
	}
	g.feed.publish(snapshot)
}

func (g *PostgresGateway) SaveUser(ctx context.Context, user *models.User) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", user.ID, err)
	}
	query := `
		INSERT INTO users (id, doc, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`
	if _, err := g.db.ExecContext(ctx, query, user.ID, doc); err != nil {
		return unavailable("save user", err)
	}
	return nil
}

func (g *PostgresGateway) GetUser(ctx context.Context, id string) (*models.User, error) {
	var doc []byte
	err := g.db.QueryRowContext(ctx, `SELECT doc FROM users WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, unavailable("get user", err)
	}
	var user models.User
	if err := json.Unmarshal(doc, &user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return &user, nil
}

func (g *PostgresGateway) CreateTournament(ctx context.Context, t *models.Tournament) error {
	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode tournament %s: %w", t.ID, err)
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO tournaments (id, doc, version, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, query, t.ID, doc, t.Version, t.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrTournamentExists
		}
		return unavailable("create tournament", err)
	}
	if err := notifyChanged(ctx, tx, t.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return unavailable("commit", err)
	}
	return nil
}

func (g *PostgresGateway) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	return g.getTournament(ctx, g.db, id, false)
}

func (g *PostgresGateway) getTournament(ctx context.Context, exec SQLExecutor, id string, forUpdate bool) (*models.Tournament, error) {
	query := `SELECT doc FROM tournaments WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var doc []byte
	err := exec.QueryRowContext(ctx, query, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTournamentNotFound
	}
	if err != nil {
		return nil, unavailable("get tournament", err)
	}
	var t models.Tournament
	if err := json.Unmarshal(doc, &t); err != nil {
		return nil, fmt.Errorf("decode tournament %s: %w", id, err)
	}
	return &t, nil
}

func (g *PostgresGateway) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	rows, err := g.db.QueryContext(ctx, `SELECT doc FROM tournaments ORDER BY created_at, id`)
	if err != nil {
		return nil, unavailable("list tournaments", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, unavailable("scan tournament", err)
		}
		var t models.Tournament
		if err := json.Unmarshal(doc, &t); err != nil {
			return nil, fmt.Errorf("decode tournament: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate tournaments", err)
	}
	return tournaments, nil
}

func (g *PostgresGateway) UpdateTournament(ctx context.Context, id string, upd TournamentUpdate) error {
	return g.modify(ctx, id, func(t *models.Tournament) (bool, error) {
		if err := checkVersion(t, upd); err != nil {
			return false, err
		}
		upd.Apply(t)
		return true, nil
	})
}

func (g *PostgresGateway) JoinTournamentParticipant(ctx context.Context, id string, p models.Participant, limit int) error {
	return g.modify(ctx, id, func(t *models.Tournament) (bool, error) {
		return appendParticipant(t, p, limit)
	})
}

// modify locks the row for the duration of the read-modify-write.
func (g *PostgresGateway) modify(ctx context.Context, id string, fn func(t *models.Tournament) (bool, error)) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin", err)
	}
	defer tx.Rollback()

	t, err := g.getTournament(ctx, tx, id, true)
	if err != nil {
		return err
	}
	changed, err := fn(t)
	if err != nil || !changed {
		return err
	}

	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode tournament %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `UPDATE tournaments SET doc = $1, version = $2 WHERE id = $3`, doc, t.Version, id)
	if err != nil {
		return unavailable("update tournament", err)
	}
	if err := checkAffectedRows(res, ErrTournamentNotFound); err != nil {
		return err
	}
	if err := notifyChanged(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return unavailable("commit", err)
	}
	return nil
}

// notifyChanged is delivered by postgres only when the transaction commits.
func notifyChanged(ctx context.Context, exec SQLExecutor, id string) error {
	if _, err := exec.ExecContext(ctx, `SELECT pg_notify($1, $2)`, tournamentsChannel, id); err != nil {
		return unavailable("notify", err)
	}
	return nil
}

func (g *PostgresGateway) SubscribeToTournaments(onChange TournamentsListener) func() {
	return g.feed.subscribe(onChange)
}

func (g *PostgresGateway) Close() error {
	g.cancel()
	<-g.done
	g.feed.closeAll()
	return g.listener.Close()
}

package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/torvix-arena/models"
	"github.com/redis/go-redis/v9"
)

const (
	redisUserPrefix       = "arena:user:"
	redisTournamentPrefix = "arena:tournament:"
	redisTournamentIndex  = "arena:tournaments"
	redisChangedChannel   = "arena:tournaments:changed"

	redisTxAttempts = 8
)

type RedisGateway struct {
	rdb    *redis.Client
	pubsub *redis.PubSub
	feed   *tournamentFeed
	logger *slog.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRedisGateway(ctx context.Context, rdb *redis.Client, logger *slog.Logger) (*RedisGateway, error) {
	pubsub := rdb.Subscribe(ctx, redisChangedChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, unavailable("subscribe", err)
	}

	g := &RedisGateway{
		rdb:    rdb,
		pubsub: pubsub,
		feed:   newTournamentFeed(),
		logger: logger,
		done:   make(chan struct{}),
	}
	initial, err := g.ListTournaments(ctx)
	if err != nil {
		pubsub.Close()
		return nil, err
	}
	g.feed.publish(initial)

	loopCtx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	go g.listen(loopCtx)
	return g, nil
}

func (g *RedisGateway) listen(ctx context.Context) {
	defer close(g.done)
	messages := g.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-messages:
			if !ok {
				return
			}
			// схлопываем пачку сообщений в одну перезагрузку
		drain:
			for {
				select {
				case <-messages:
				default:
					break drain
				}
			}
			reloadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			snapshot, err := g.ListTournaments(reloadCtx)
			cancel()
			if err != nil {
				g.logger.Error("failed to reload tournaments after publish", slog.Any("error", err))
				continue
			}
			g.feed.publish(snapshot)
		}
	}
}

func (g *RedisGateway) SaveUser(ctx context.Context, user *models.User) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", user.ID, err)
	}
	if err := g.rdb.Set(ctx, redisUserPrefix+user.ID, doc, 0).Err(); err != nil {
		return unavailable("save user", err)
	}
	return nil
}

func (g *RedisGateway) GetUser(ctx context.Context, id string) (*models.User, error) {
	doc, err := g.rdb.Get(ctx, redisUserPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
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

func (g *RedisGateway) CreateTournament(ctx context.Context, t *models.Tournament) error {
	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode tournament %s: %w", t.ID, err)
	}
	key := redisTournamentPrefix + t.ID

	return g.withTx(ctx, key, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return unavailable("exists", err)
		}
		if n > 0 {
			return ErrTournamentExists
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, doc, 0)
			pipe.ZAdd(ctx, redisTournamentIndex, redis.Z{Score: float64(t.CreatedAt.UnixMilli()), Member: t.ID})
			pipe.Publish(ctx, redisChangedChannel, t.ID)
			return nil
		})
		return err
	})
}

func (g *RedisGateway) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	return getRedisTournament(ctx, g.rdb, id)
}

func getRedisTournament(ctx context.Context, c redis.Cmdable, id string) (*models.Tournament, error) {
	doc, err := c.Get(ctx, redisTournamentPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
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

func (g *RedisGateway) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	ids, err := g.rdb.ZRange(ctx, redisTournamentIndex, 0, -1).Result()
	if err != nil {
		return nil, unavailable("list tournament ids", err)
	}
	tournaments := make([]models.Tournament, 0, len(ids))
	if len(ids) == 0 {
		return tournaments, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisTournamentPrefix + id
	}
	docs, err := g.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, unavailable("load tournaments", err)
	}
	for i, raw := range docs {
		s, ok := raw.(string)
		if !ok {
			// индекс может опережать документ
			continue
		}
		var t models.Tournament
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			return nil, fmt.Errorf("decode tournament %s: %w", ids[i], err)
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, nil
}

func (g *RedisGateway) UpdateTournament(ctx context.Context, id string, upd TournamentUpdate) error {
	return g.modify(ctx, id, func(t *models.Tournament) (bool, error) {
		if err := checkVersion(t, upd); err != nil {
			return false, err
		}
		upd.Apply(t)
		return true, nil
	})
}

func (g *RedisGateway) JoinTournamentParticipant(ctx context.Context, id string, p models.Participant, limit int) error {
	return g.modify(ctx, id, func(t *models.Tournament) (bool, error) {
		return appendParticipant(t, p, limit)
	})
}

func (g *RedisGateway) modify(ctx context.Context, id string, fn func(t *models.Tournament) (bool, error)) error {
	key := redisTournamentPrefix + id
	return g.withTx(ctx, key, func(tx *redis.Tx) error {
		t, err := getRedisTournament(ctx, tx, id)
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
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, doc, 0)
			pipe.Publish(ctx, redisChangedChannel, id)
			return nil
		})
		return err
	})
}

// withTx runs fn under WATCH key and retries when another client touched the key first.
func (g *RedisGateway) withTx(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	for attempt := 0; attempt < redisTxAttempts; attempt++ {
		err := g.rdb.Watch(ctx, fn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err == nil || isGatewayError(err) {
			return err
		}
		return unavailable("transaction", err)
	}
	return ErrVersionConflict
}

func isGatewayError(err error) bool {
	for _, target := range []error{ErrTournamentNotFound, ErrTournamentExists, ErrTournamentFull, ErrTournamentClosed,
		ErrVersionConflict, ErrUnavailable, context.Canceled, context.DeadlineExceeded} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (g *RedisGateway) SubscribeToTournaments(onChange TournamentsListener) func() {
	return g.feed.subscribe(onChange)
}

// Close leaves the redis client open; it belongs to the caller.
func (g *RedisGateway) Close() error {
	g.cancel()
	err := g.pubsub.Close()
	<-g.done
	g.feed.closeAll()
	return err
}

package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Dosada05/torvix-arena/models"
	"github.com/Dosada05/torvix-arena/repositories"
)

// SnapshotListener receives the full collection and the tournaments whose
// version changed since the previous delivery.
type SnapshotListener func(all []models.Tournament, changed []models.Tournament)

// SnapshotHolder keeps the latest tournament collection pushed by the gateway
// and serves reads from memory.
type SnapshotHolder struct {
	logger *slog.Logger

	mu        sync.RWMutex
	list      []models.Tournament
	byID      map[string]int
	listeners []SnapshotListener

	ready       chan struct{}
	readyOnce   sync.Once
	unsubscribe func()
}

func NewSnapshotHolder(logger *slog.Logger) *SnapshotHolder {
	return &SnapshotHolder{
		logger: logger,
		byID:   make(map[string]int),
		ready:  make(chan struct{}),
	}
}

// OnChange registers fn for every later delivery.
func (h *SnapshotHolder) OnChange(fn SnapshotListener) {
	h.mu.Lock()
	h.listeners = append(h.listeners, fn)
	h.mu.Unlock()
}

func (h *SnapshotHolder) Start(gateway repositories.Gateway) {
	unsubscribe := gateway.SubscribeToTournaments(h.apply)
	h.mu.Lock()
	h.unsubscribe = unsubscribe
	h.mu.Unlock()
}

func (h *SnapshotHolder) Stop() {
	h.mu.Lock()
	unsubscribe := h.unsubscribe
	h.unsubscribe = nil
	h.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// WaitReady blocks until the first snapshot arrives.
func (h *SnapshotHolder) WaitReady(ctx context.Context) error {
	select {
	case <-h.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *SnapshotHolder) List() []models.Tournament {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return models.CloneTournaments(h.list)
}

func (h *SnapshotHolder) Get(id string) (*models.Tournament, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	idx, ok := h.byID[id]
	if !ok {
		return nil, false
	}
	t := h.list[idx].Clone()
	return &t, true
}

func (h *SnapshotHolder) apply(list []models.Tournament) {
	h.mu.Lock()
	var changed []models.Tournament
	byID := make(map[string]int, len(list))
	for i, t := range list {
		byID[t.ID] = i
		if idx, ok := h.byID[t.ID]; !ok || h.list[idx].Version != t.Version {
			changed = append(changed, t.Clone())
		}
	}
	h.list = list
	h.byID = byID
	listeners := append([]SnapshotListener(nil), h.listeners...)
	h.mu.Unlock()

	h.readyOnce.Do(func() { close(h.ready) })
	h.logger.Debug("tournament snapshot updated", slog.Int("total", len(list)), slog.Int("changed", len(changed)))

	for _, fn := range listeners {
		fn(models.CloneTournaments(list), changed)
	}
}

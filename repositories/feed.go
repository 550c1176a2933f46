package repositories

import (
	"sync"

	"github.com/Dosada05/torvix-arena/models"
	"github.com/Dosada05/torvix-arena/observability"
)

// tournamentFeed fans collection snapshots out to subscribers. Every subscriber
// owns a goroutine and an unbounded FIFO queue, so a slow callback never blocks writers.
type tournamentFeed struct {
	mu     sync.Mutex
	nextID uint64
	last   []models.Tournament
	subs   map[uint64]*subscription
}

type subscription struct {
	onChange TournamentsListener

	mu     sync.Mutex
	queue  [][]models.Tournament
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

func newTournamentFeed() *tournamentFeed {
	return &tournamentFeed{subs: make(map[uint64]*subscription)}
}

func (f *tournamentFeed) subscribe(onChange TournamentsListener) func() {
	s := &subscription{
		onChange: onChange,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	f.mu.Lock()
	f.nextID++
	id := f.nextID
	s.push(models.CloneTournaments(f.last))
	f.subs[id] = s
	observability.SetFeedSubscribers(len(f.subs))
	f.mu.Unlock()

	go s.run()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			observability.SetFeedSubscribers(len(f.subs))
			f.mu.Unlock()
			s.close()
		})
	}
}

// publish must be called in backend write order.
func (f *tournamentFeed) publish(snapshot []models.Tournament) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = models.CloneTournaments(snapshot)
	for _, s := range f.subs {
		s.push(models.CloneTournaments(snapshot))
	}
}

func (f *tournamentFeed) closeAll() {
	f.mu.Lock()
	subs := f.subs
	f.subs = make(map[uint64]*subscription)
	observability.SetFeedSubscribers(0)
	f.mu.Unlock()
	for _, s := range subs {
		s.close()
	}
}

func (s *subscription) push(snapshot []models.Tournament) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, snapshot)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.queue = nil
	close(s.done)
}

func (s *subscription) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}
		for {
			next, ok := s.pop()
			if !ok {
				break
			}
			s.onChange(next)
		}
	}
}

// pop is the point where a delivery starts; once closed is set nothing is popped.
func (s *subscription) pop() ([]models.Tournament, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || len(s.queue) == 0 {
		return nil, false
	}
	next := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	return next, true
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

type Scheduler struct {
	sched       gocron.Scheduler
	tournaments TournamentService
	logger      *slog.Logger
	timeout     time.Duration
}

// StartScheduler runs the LIVE promotion job every interval, first run immediately.
func StartScheduler(ctx context.Context, tournaments TournamentService, interval time.Duration, logger *slog.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	s := &Scheduler{sched: sched, tournaments: tournaments, logger: logger, timeout: interval}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { s.promote(ctx) }),
		gocron.WithName("promote-started-tournaments"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to register promotion job: %w", err)
	}

	sched.Start()
	logger.Info("scheduler started", slog.Duration("interval", interval))
	return s, nil
}

func (s *Scheduler) promote(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.tournaments.PromoteStarted(ctx, time.Now())
	if err != nil {
		s.logger.Error("[Scheduler] promotion run failed", slog.Any("error", err))
		return
	}
	if n > 0 {
		s.logger.Debug("[Scheduler] promoted tournaments", slog.Int("count", n))
	}
}

func (s *Scheduler) Stop() error {
	return s.sched.Shutdown()
}

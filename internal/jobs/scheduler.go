package jobs

import (
	"context"
	"time"

	"github.com/vytor/chessreview/internal/logger"
)

// Scheduler enqueues a sync every interval until its context is cancelled.
type Scheduler struct {
	queue    JobQueue
	interval time.Duration
	log      *logger.Logger
}

func NewScheduler(queue JobQueue, interval time.Duration) *Scheduler {
	return &Scheduler{
		queue:    queue,
		interval: interval,
		log:      logger.Default().WithPrefix("scheduler"),
	}
}

// Run blocks until ctx is done. The first sync is enqueued immediately. A
// non-positive interval disables scheduling and Run returns at once.
func (s *Scheduler) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Debug("periodic sync disabled")
		return
	}
	s.log.Info("scheduling sync every %v", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.enqueue()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.enqueue()
		}
	}
}

func (s *Scheduler) enqueue() {
	if err := s.queue.EnqueueSync(); err != nil {
		s.log.Warn("failed to enqueue sync: %v", err)
	}
}

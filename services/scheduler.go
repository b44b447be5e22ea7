// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// DefaultFlushInterval is how often dirty collections are retried.
const DefaultFlushInterval = 30 * time.Second

// StartFlushScheduler retries failed writes on a fixed interval until the
// returned scheduler is shut down.
func (s *Store) StartFlushScheduler(interval time.Duration) (gocron.Scheduler, error) {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	// Every interval: re-persist collections whose last write failed
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			dirty := s.Dirty()
			if len(dirty) == 0 {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			if err := s.Flush(ctx); err != nil {
				log.Printf("[FLUSH] Still dirty %v: %v", dirty, err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	log.Printf("[FLUSH] ⏱️ Flush scheduler running every %s", interval)
	return sched, nil
}

// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartRankScheduler recomputes all leaderboard snapshots once an hour.
// A failed cycle is logged and retried wholesale on the next tick.
func (s *LeaderboardService) StartRankScheduler() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[Scheduler] Failed to create scheduler: %v", err)
		return
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			started := time.Now()
			if err := s.RecomputeAll(); err != nil {
				log.Printf("[Scheduler] Leaderboard recompute failed: %v", err)
				return
			}
			log.Printf("✅ Leaderboard recompute finished in %s", time.Since(started).Round(time.Millisecond))
		}),
	)
	if err != nil {
		log.Printf("[Scheduler] Failed to register leaderboard job: %v", err)
	}
}

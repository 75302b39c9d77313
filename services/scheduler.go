// services/scheduler.go
package services

import (
	"log"
	"time"

	"garage-club-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartActivationScheduler flips challenge activity flags as their windows
// open and close. Listing endpoints also filter on the window, so a missed
// tick only delays the flag, never shows a closed challenge as active.
func (s *ChallengeService) StartActivationScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now()

			res := s.DB.Model(&models.Challenge{}).
				Where("is_active = ? AND starts_at <= ? AND ends_at >= ?", false, now, now).
				Update("is_active", true)
			if res.Error != nil {
				log.Printf("[Scheduler] activation sweep failed: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("✅ Activated %d challenge(s)", res.RowsAffected)
			}

			res = s.DB.Model(&models.Challenge{}).
				Where("is_active = ? AND ends_at < ?", true, now).
				Update("is_active", false)
			if res.Error != nil {
				log.Printf("[Scheduler] deactivation sweep failed: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("✅ Deactivated %d ended challenge(s)", res.RowsAffected)
			}
		}),
	)
}

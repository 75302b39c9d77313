package services

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"garage-club-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StreamUserUnlocksSSE streams newly granted unlocks for the authenticated
// user, so the client can fire its reveal animation the moment a milestone
// lands rather than on the next full refresh.
func (s *UnlockService) StreamUserUnlocksSSE(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	// SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	db := s.DB

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		var lastMaxUnlockedAt time.Time

		// Initialize cursor at the user's latest grant
		var latest models.Unlock
		if err := db.
			Where("user_id = ?", userID).
			Order("unlocked_at DESC").
			First(&latest).Error; err == nil {
			lastMaxUnlockedAt = latest.UnlockedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("SSE init error for user %s: %v", userID, err)
		}

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		w.Flush()

		for {
			select {
			case <-ticker.C:
				var newUnlocks []models.Unlock

				err := db.
					Where("user_id = ?", userID).
					Where("unlocked_at > ?", lastMaxUnlockedAt).
					Order("unlocked_at ASC").
					Find(&newUnlocks).Error

				if err != nil {
					log.Printf("SSE query error for user %s: %v", userID, err)
					continue
				}

				if len(newUnlocks) == 0 {
					continue
				}

				lastMaxUnlockedAt = newUnlocks[len(newUnlocks)-1].UnlockedAt

				for _, u := range newUnlocks {
					payload, _ := json.Marshal(u)

					fmt.Fprintf(w,
						"event: unlock\ndata: %s\n\n",
						payload,
					)
				}

				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}

			case <-c.Context().Done():
				return
			}
		}
	})

	return nil
}

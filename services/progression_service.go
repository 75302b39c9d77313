package services

import (
	"log"
	"time"

	"garage-club-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressionService struct {
	DB *gorm.DB
}

func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{DB: db}
}

// EnsureProgressRecord ensures a UserProgress row exists (idempotent)
func (s *ProgressionService) EnsureProgressRecord(externalUserID string) (*models.UserProgress, error) {
	return s.ensureProgressRecord(s.DB, externalUserID)
}

func (s *ProgressionService) ensureProgressRecord(db *gorm.DB, externalUserID string) (*models.UserProgress, error) {
	var prog models.UserProgress
	err := db.Where("external_user_id = ?", externalUserID).First(&prog).Error
	if err == gorm.ErrRecordNotFound {
		prog = models.UserProgress{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			Points:         0,
			Streak:         0,
		}
		if err := db.Create(&prog).Error; err != nil {
			return nil, err
		}
		return &prog, nil
	}
	if err != nil {
		return nil, err
	}
	return &prog, nil
}

// AwardPoints atomically adds to the user's point total and refreshes
// last-active time.
func (s *ProgressionService) AwardPoints(externalUserID string, points int64, reason string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.AwardPointsTx(tx, externalUserID, points, reason)
	})
}

// AwardPointsTx is AwardPoints composed into a caller-owned transaction.
func (s *ProgressionService) AwardPointsTx(tx *gorm.DB, externalUserID string, points int64, reason string) error {
	if _, err := s.ensureProgressRecord(tx, externalUserID); err != nil {
		return err
	}

	now := time.Now()
	if err := tx.Model(&models.UserProgress{}).
		Where("external_user_id = ?", externalUserID).
		Updates(map[string]interface{}{
			"points":         gorm.Expr("points + ?", points),
			"last_active_at": now,
		}).Error; err != nil {
		return err
	}

	log.Printf("🏁 Points awarded: %s → +%d (reason: %s)", externalUserID, points, reason)
	return nil
}

// TouchLastActive refreshes the last-active timestamp without awarding points.
func (s *ProgressionService) TouchLastActive(externalUserID string) error {
	now := time.Now()
	return s.DB.Model(&models.UserProgress{}).
		Where("external_user_id = ?", externalUserID).
		Update("last_active_at", now).Error
}

// Stats assembles the aggregate counters for a user. Counts are computed
// from rows on every call, not cached; only points and streak are stored.
func (s *ProgressionService) Stats(externalUserID string) (*models.UserStats, error) {
	prog, err := s.EnsureProgressRecord(externalUserID)
	if err != nil {
		return nil, err
	}

	stats := &models.UserStats{
		TotalPoints:   prog.Points,
		CurrentStreak: prog.Streak,
		// No separate longest-streak tracking; mirrors the current value.
		LongestStreak: prog.Streak,
	}

	if err := s.DB.Model(&models.ChallengeParticipation{}).
		Where("user_id = ? AND completed_at IS NOT NULL", externalUserID).
		Count(&stats.TotalChallenges).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Invite{}).
		Where("sender_id = ?", externalUserID).
		Count(&stats.InvitesSent).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Invite{}).
		Where("sender_id = ? AND status = ?", externalUserID, models.InviteStatusAccepted).
		Count(&stats.InvitesAccepted).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Garage{}).
		Where("user_id = ?", externalUserID).
		Count(&stats.GaragesCreated).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Reaction{}).
		Where("user_id = ?", externalUserID).
		Count(&stats.TotalReactions).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Unlock{}).
		Where("user_id = ?", externalUserID).
		Count(&stats.UnlocksEarned).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

package services

import (
	"fmt"
	"log"

	"garage-club-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UnlockService struct {
	DB *gorm.DB
}

func NewUnlockService(db *gorm.DB) *UnlockService {
	return &UnlockService{DB: db}
}

// Evaluate re-checks every milestone rule for the given metric and grants
// whatever the user now qualifies for. Deliberately recomputes the counter
// from rows and re-walks the whole table on every event: redundant passes are
// harmless because grants are keyed on a unique (user, type, item) index.
func (s *UnlockService) Evaluate(externalUserID string, metric models.Metric) error {
	count, err := s.metricCount(externalUserID, metric)
	if err != nil {
		return fmt.Errorf("count %s for %s: %w", metric, externalUserID, err)
	}

	for _, rule := range models.MilestoneRules {
		if rule.Metric != metric || count < rule.Threshold {
			continue
		}

		var existing int64
		if err := s.DB.Model(&models.Unlock{}).
			Where("user_id = ? AND type = ? AND item_id = ?", externalUserID, rule.RewardType, rule.ItemID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			continue
		}

		unlock := models.Unlock{
			ID:     uuid.NewString(),
			UserID: externalUserID,
			Type:   rule.RewardType,
			ItemID: rule.ItemID,
		}
		// DoNothing guards the race between the count above and the insert
		if err := s.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "type"}, {Name: "item_id"},
			},
			DoNothing: true,
		}).Create(&unlock).Error; err != nil {
			return err
		}
		log.Printf("🏆 Unlock granted: %s/%s → %s (%s ≥ %d)",
			rule.RewardType, rule.ItemID, externalUserID, metric, rule.Threshold)
	}

	return nil
}

func (s *UnlockService) metricCount(externalUserID string, metric models.Metric) (int64, error) {
	var count int64
	var err error
	switch metric {
	case models.MetricChallengesCompleted:
		err = s.DB.Model(&models.ChallengeParticipation{}).
			Where("user_id = ? AND completed_at IS NOT NULL", externalUserID).
			Count(&count).Error
	case models.MetricInvitesAccepted:
		err = s.DB.Model(&models.Invite{}).
			Where("sender_id = ? AND status = ?", externalUserID, models.InviteStatusAccepted).
			Count(&count).Error
	case models.MetricReactionsGiven:
		err = s.DB.Model(&models.Reaction{}).
			Where("user_id = ?", externalUserID).
			Count(&count).Error
	default:
		return 0, fmt.Errorf("unknown metric %q", metric)
	}
	return count, err
}

// ListUnlocks returns the user's grants, newest first.
func (s *UnlockService) ListUnlocks(externalUserID string) ([]models.Unlock, error) {
	var unlocks []models.Unlock
	err := s.DB.Where("user_id = ?", externalUserID).
		Order("unlocked_at DESC").
		Find(&unlocks).Error
	return unlocks, err
}

// ListUnlockables returns the reward gallery metadata.
func (s *UnlockService) ListUnlockables() ([]models.UnlockableItem, error) {
	var items []models.UnlockableItem
	err := s.DB.Order("type ASC, required_count ASC").Find(&items).Error
	return items, err
}

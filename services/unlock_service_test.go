package services

import (
	"testing"

	"garage-club-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAcceptedInvites(t *testing.T, db *gorm.DB, senderID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		receiverID := uuid.NewString()
		invite := models.Invite{
			ID:         uuid.NewString(),
			Code:       uuid.NewString()[:8],
			SenderID:   senderID,
			Status:     models.InviteStatusAccepted,
			ReceiverID: &receiverID,
		}
		require.NoError(t, db.Create(&invite).Error)
	}
}

func TestEvaluateGrantsEveryReachedThreshold(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUnlockService(db)

	// Jumping straight to 3 accepted invites grants all three tiers at once
	seedAcceptedInvites(t, db, "sender-1", 3)
	require.NoError(t, svc.Evaluate("sender-1", models.MetricInvitesAccepted))

	unlocks, err := svc.ListUnlocks("sender-1")
	require.NoError(t, err)
	require.Len(t, unlocks, 3)

	items := make(map[string]models.UnlockType)
	for _, u := range unlocks {
		items[u.ItemID] = u.Type
	}
	assert.Equal(t, models.UnlockStickerPack, items["jdm_pack"])
	assert.Equal(t, models.UnlockFeature, items["provenance_mode"])
	assert.Equal(t, models.UnlockGarageTheme, items["tokyo_drift_neon"])
}

func TestEvaluateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUnlockService(db)

	seedAcceptedInvites(t, db, "sender-1", 1)

	require.NoError(t, svc.Evaluate("sender-1", models.MetricInvitesAccepted))
	require.NoError(t, svc.Evaluate("sender-1", models.MetricInvitesAccepted))
	require.NoError(t, svc.Evaluate("sender-1", models.MetricInvitesAccepted))

	var count int64
	require.NoError(t, db.Model(&models.Unlock{}).
		Where("user_id = ?", "sender-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEvaluateBelowThreshold(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUnlockService(db)

	// 24 reactions is one short of the custom_reactions feature
	for i := 0; i < 24; i++ {
		r := models.Reaction{
			ID:           uuid.NewString(),
			UserID:       "user-1",
			SubmissionID: uuid.NewString(),
			Type:         models.ReactionFire,
		}
		require.NoError(t, db.Create(&r).Error)
	}
	require.NoError(t, svc.Evaluate("user-1", models.MetricReactionsGiven))

	unlocks, err := svc.ListUnlocks("user-1")
	require.NoError(t, err)
	assert.Empty(t, unlocks)

	// The 25th tips it over
	r := models.Reaction{
		ID:           uuid.NewString(),
		UserID:       "user-1",
		SubmissionID: uuid.NewString(),
		Type:         models.ReactionFire,
	}
	require.NoError(t, db.Create(&r).Error)
	require.NoError(t, svc.Evaluate("user-1", models.MetricReactionsGiven))

	unlocks, err = svc.ListUnlocks("user-1")
	require.NoError(t, err)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "custom_reactions", unlocks[0].ItemID)
}

func TestEvaluateScopedToOneUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUnlockService(db)

	seedAcceptedInvites(t, db, "sender-1", 1)
	require.NoError(t, svc.Evaluate("sender-1", models.MetricInvitesAccepted))
	require.NoError(t, svc.Evaluate("sender-2", models.MetricInvitesAccepted))

	unlocks, err := svc.ListUnlocks("sender-2")
	require.NoError(t, err)
	assert.Empty(t, unlocks)
}

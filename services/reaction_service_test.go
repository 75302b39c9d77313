package services

import (
	"testing"

	"garage-club-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSubmission(t *testing.T, db *gorm.DB, userID string) models.GarageSubmission {
	t.Helper()
	challenge := seedChallenge(t, db, nil)
	sub := models.GarageSubmission{
		ID:          uuid.NewString(),
		UserID:      userID,
		ChallengeID: challenge.ID,
	}
	require.NoError(t, db.Create(&sub).Error)
	return sub
}

func TestReact(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReactionService(db, NewUnlockService(db))

	sub := seedSubmission(t, db, "owner-1")

	reaction, created, err := svc.React("user-1", sub.ID, models.ReactionFire)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.ReactionFire, reaction.Type)
}

func TestReactOverwritesPrevious(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReactionService(db, NewUnlockService(db))

	sub := seedSubmission(t, db, "owner-1")

	_, created, err := svc.React("user-1", sub.ID, models.ReactionFire)
	require.NoError(t, err)
	assert.True(t, created)

	reaction, created, err := svc.React("user-1", sub.ID, models.ReactionSleeper)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, models.ReactionSleeper, reaction.Type)

	// Still a single row — last write wins, no history
	var reactions []models.Reaction
	require.NoError(t, db.Where("user_id = ? AND submission_id = ?", "user-1", sub.ID).
		Find(&reactions).Error)
	require.Len(t, reactions, 1)
	assert.Equal(t, models.ReactionSleeper, reactions[0].Type)
}

func TestReactInvalidType(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReactionService(db, NewUnlockService(db))

	sub := seedSubmission(t, db, "owner-1")

	_, _, err := svc.React("user-1", sub.ID, models.ReactionType("thumbs_up"))
	assert.ErrorIs(t, err, ErrInvalidReaction)
}

func TestReactUnknownSubmission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReactionService(db, NewUnlockService(db))

	_, _, err := svc.React("user-1", uuid.NewString(), models.ReactionFire)
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestUnreact(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReactionService(db, NewUnlockService(db))

	sub := seedSubmission(t, db, "owner-1")

	_, _, err := svc.React("user-1", sub.ID, models.ReactionFire)
	require.NoError(t, err)

	require.NoError(t, svc.Unreact("user-1", sub.ID))

	var count int64
	require.NoError(t, db.Model(&models.Reaction{}).
		Where("user_id = ?", "user-1").Count(&count).Error)
	assert.Zero(t, count)

	// Removing again reports not found
	assert.ErrorIs(t, svc.Unreact("user-1", sub.ID), ErrReactionNotFound)
}

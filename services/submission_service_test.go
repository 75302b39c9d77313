package services

import (
	"testing"

	"garage-club-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSubmissionService(db *gorm.DB) *SubmissionService {
	unlocks := NewUnlockService(db)
	return NewSubmissionService(db, NewProgressionService(db), unlocks)
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func TestCreateSubmission(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubmissionService(db)

	car := seedCar(t, db, 1994, 60000, 40000)
	challenge := seedChallenge(t, db, nil)

	sub, err := svc.CreateSubmission("user-1", CreateSubmissionInput{
		ChallengeID: challenge.ID,
		CarIDs:      []string{car.ID},
		Title:       "My Supra",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(60000), sub.TotalValue)

	// Points landed on the progress record
	var prog models.UserProgress
	require.NoError(t, db.First(&prog, "external_user_id = ?", "user-1").Error)
	assert.Equal(t, int64(100), prog.Points)

	// Exactly one participation row, marked completed
	var parts []models.ChallengeParticipation
	require.NoError(t, db.Where("user_id = ?", "user-1").Find(&parts).Error)
	require.Len(t, parts, 1)
	assert.NotNil(t, parts[0].CompletedAt)

	// First completed challenge grants the first_challenge badge
	var unlock models.Unlock
	require.NoError(t, db.First(&unlock, "user_id = ?", "user-1").Error)
	assert.Equal(t, models.UnlockBadge, unlock.Type)
	assert.Equal(t, "first_challenge", unlock.ItemID)
}

func TestSubmissionBudgetInclusive(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubmissionService(db)

	car := seedCar(t, db, 1994, 100000, 0)
	challenge := seedChallenge(t, db, func(ch *models.Challenge) {
		ch.BudgetLimit = int64Ptr(100000)
	})

	// Total exactly at the limit passes
	_, err := svc.CreateSubmission("user-1", CreateSubmissionInput{
		ChallengeID: challenge.ID,
		CarIDs:      []string{car.ID},
	})
	assert.NoError(t, err)

	// One dollar over gets rejected
	over := seedCar(t, db, 1994, 100001, 0)
	_, err = svc.CreateSubmission("user-2", CreateSubmissionInput{
		ChallengeID: challenge.ID,
		CarIDs:      []string{over.ID},
	})
	assert.ErrorIs(t, err, ErrOverBudget)
}

func TestSubmissionValueFallback(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubmissionService(db)

	// No market value: MSRP counts. Neither: zero.
	msrpOnly := seedCar(t, db, 1994, 0, 35000)
	unpriced := seedCar(t, db, 1994, 0, 0)
	challenge := seedChallenge(t, db, nil)

	sub, err := svc.CreateSubmission("user-1", CreateSubmissionInput{
		ChallengeID: challenge.ID,
		CarIDs:      []string{msrpOnly.ID, unpriced.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(35000), sub.TotalValue)
}

func TestSubmissionEraWindow(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubmissionService(db)

	challenge := seedChallenge(t, db, func(ch *models.Challenge) {
		ch.Type = models.ChallengeTypeEra
		ch.EraStart = intPtr(1980)
		ch.EraEnd = intPtr(1989)
	})

	inEra := seedCar(t, db, 1985, 20000, 0)
	_, err := svc.CreateSubmission("user-1", CreateSubmissionInput{
		ChallengeID: challenge.ID,
		CarIDs:      []string{inEra.ID},
	})
	assert.NoError(t, err)

	outOfEra := seedCar(t, db, 1995, 20000, 0)
	_, err = svc.CreateSubmission("user-2", CreateSubmissionInput{
		ChallengeID: challenge.ID,
		CarIDs:      []string{outOfEra.ID},
	})
	assert.ErrorIs(t, err, ErrOutsideEra)
}

func TestSubmissionLineupBounds(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubmissionService(db)

	challenge := seedChallenge(t, db, nil)

	_, err := svc.CreateSubmission("user-1", CreateSubmissionInput{
		ChallengeID: challenge.ID,
		CarIDs:      nil,
	})
	assert.ErrorIs(t, err, ErrEmptyLineup)

	ids := make([]string, MaxSubmissionCars+1)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	_, err = svc.CreateSubmission("user-1", CreateSubmissionInput{
		ChallengeID: challenge.ID,
		CarIDs:      ids,
	})
	assert.ErrorIs(t, err, ErrTooManyCars)
}

func TestSubmissionMissingChallenge(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubmissionService(db)

	car := seedCar(t, db, 1994, 20000, 0)
	_, err := svc.CreateSubmission("user-1", CreateSubmissionInput{
		ChallengeID: uuid.NewString(),
		CarIDs:      []string{car.ID},
	})
	assert.ErrorIs(t, err, ErrChallengeNotFound)

	// Nothing was written
	var count int64
	require.NoError(t, db.Model(&models.GarageSubmission{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.ChallengeParticipation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmissionUnknownCar(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubmissionService(db)

	challenge := seedChallenge(t, db, nil)
	car := seedCar(t, db, 1994, 20000, 0)

	_, err := svc.CreateSubmission("user-1", CreateSubmissionInput{
		ChallengeID: challenge.ID,
		CarIDs:      []string{car.ID, uuid.NewString()},
	})
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestResubmissionKeepsOneParticipation(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubmissionService(db)

	car := seedCar(t, db, 1994, 20000, 0)
	challenge := seedChallenge(t, db, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateSubmission("user-1", CreateSubmissionInput{
			ChallengeID: challenge.ID,
			CarIDs:      []string{car.ID},
		})
		require.NoError(t, err)
	}

	var subCount, partCount int64
	require.NoError(t, db.Model(&models.GarageSubmission{}).
		Where("user_id = ?", "user-1").Count(&subCount).Error)
	require.NoError(t, db.Model(&models.ChallengeParticipation{}).
		Where("user_id = ?", "user-1").Count(&partCount).Error)

	assert.Equal(t, int64(3), subCount)
	assert.Equal(t, int64(1), partCount)

	// Points accumulate per submission even on the same challenge
	var prog models.UserProgress
	require.NoError(t, db.First(&prog, "external_user_id = ?", "user-1").Error)
	assert.Equal(t, int64(300), prog.Points)
}

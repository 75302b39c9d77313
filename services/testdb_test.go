package services

import (
	"fmt"
	"testing"

	"garage-club-system/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test. Each test gets its
// own named shared-cache DB so the pool's connections all see the same data.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Car{},
		&models.Challenge{},
		&models.ChallengeParticipation{},
		&models.GarageSubmission{},
		&models.Reaction{},
		&models.Garage{},
		&models.GarageEntry{},
		&models.Invite{},
		&models.Unlock{},
		&models.UnlockableItem{},
		&models.UserProgress{},
		&models.ClubMember{},
		&models.MarketValuation{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedCar(t *testing.T, db *gorm.DB, year int, currentValue, msrp int64) models.Car {
	t.Helper()
	car := models.Car{
		ID:           uuid.NewString(),
		Make:         "Toyota",
		Model:        "Supra",
		Year:         year,
		CurrentValue: currentValue,
		MSRP:         msrp,
		Rarity:       models.RarityRare,
	}
	if err := db.Create(&car).Error; err != nil {
		t.Fatalf("failed to seed car: %v", err)
	}
	return car
}

func seedChallenge(t *testing.T, db *gorm.DB, mutate func(*models.Challenge)) models.Challenge {
	t.Helper()
	ch := models.Challenge{
		ID:         uuid.NewString(),
		Title:      "90s Heroes",
		Slug:       "90s-heroes-" + uuid.NewString()[:8],
		Theme:      models.ThemeGranTurismo,
		Type:       models.ChallengeTypeBudget,
		Difficulty: models.DifficultyMedium,
		Points:     100,
		IsActive:   true,
	}
	if mutate != nil {
		mutate(&ch)
	}
	if err := db.Create(&ch).Error; err != nil {
		t.Fatalf("failed to seed challenge: %v", err)
	}
	return ch
}

package services

import (
	"testing"

	"garage-club-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGaragePreservesOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGarageService(db)

	first := seedCar(t, db, 1994, 20000, 0)
	second := seedCar(t, db, 1987, 15000, 0)
	third := seedCar(t, db, 1999, 30000, 0)

	garage, err := svc.CreateGarage("user-1", CreateGarageInput{
		Name:   "Weekend Toys",
		Theme:  models.GarageThemeJDMLegends,
		CarIDs: []string{second.ID, third.ID, first.ID},
	})
	require.NoError(t, err)
	require.Len(t, garage.Entries, 3)

	// Entries come back in pick order, cars preloaded
	assert.Equal(t, second.ID, garage.Entries[0].CarID)
	assert.Equal(t, third.ID, garage.Entries[1].CarID)
	assert.Equal(t, first.ID, garage.Entries[2].CarID)
	require.NotNil(t, garage.Entries[0].Car)
	assert.Equal(t, 1987, garage.Entries[0].Car.Year)
}

func TestCreateGarageDefaultsPublic(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGarageService(db)

	garage, err := svc.CreateGarage("user-1", CreateGarageInput{Name: "Empty"})
	require.NoError(t, err)
	assert.True(t, garage.IsPublic)
	assert.Empty(t, garage.Entries)

	private := false
	garage, err = svc.CreateGarage("user-1", CreateGarageInput{
		Name:     "Hidden",
		IsPublic: &private,
	})
	require.NoError(t, err)
	assert.False(t, garage.IsPublic)

	// The false must survive the round trip to the database
	var stored models.Garage
	require.NoError(t, db.First(&stored, "id = ?", garage.ID).Error)
	assert.False(t, stored.IsPublic)
}

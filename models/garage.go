// models/garage.go
package models

type GarageTheme string

const (
	GarageThemeTokyoDrift   GarageTheme = "tokyo_drift"
	GarageThemeSeinfeld     GarageTheme = "seinfeld"
	GarageThemeTopGearCool  GarageTheme = "top_gear_cool"
	GarageThemeRadwood      GarageTheme = "radwood"
	GarageThemeMovieLegends GarageTheme = "movie_legends"
	GarageThemeJDMLegends   GarageTheme = "jdm_legends"
	GarageThemeMuscleMayhem GarageTheme = "muscle_mayhem"
	GarageThemeEuroElegance GarageTheme = "euro_elegance"
)

// Garage is a user-curated, ordered collection of cars.
type Garage struct {
	ID          string      `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      string      `json:"userId" gorm:"index;not null"`
	Name        string      `json:"name" gorm:"not null"`
	Description string      `json:"description,omitempty"`
	Theme       GarageTheme `json:"theme,omitempty" gorm:"type:varchar(32)"`
	// No column default: CreateGarage defaults this in code, and a default
	// tag would make GORM drop an explicit false from the insert.
	IsPublic bool `json:"isPublic"`

	Entries []GarageEntry `json:"entries" gorm:"foreignKey:GarageID"`

	Timestamps
}

type GarageEntry struct {
	ID       string `json:"id" gorm:"primaryKey;type:uuid"`
	GarageID string `json:"garageId" gorm:"index;not null"`
	CarID    string `json:"carId" gorm:"index;not null"`
	Notes    string `json:"notes,omitempty"`
	Position int    `json:"position" gorm:"not null"`

	Car *Car `json:"car,omitempty" gorm:"foreignKey:CarID"`
}

// models/valuation.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// MarketValuation mirrors car valuations from the pricing service.
// Table name: market_valuations
type MarketValuation struct {
	ID        string    `gorm:"primaryKey;type:uuid;not null" json:"id"`
	CarID     string    `gorm:"type:uuid;not null;uniqueIndex" json:"carId"` // primary lookup key
	Value     int64     `gorm:"not null" json:"value"`
	Source    string    `gorm:"type:varchar(64);not null" json:"source"` // e.g. "bat", "hagerty"
	SampledAt time.Time `gorm:"not null" json:"sampledAt"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

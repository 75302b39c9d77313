// models/car.go
package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Car is a catalog entry. Created by admins, never edited by members.
// CurrentValue is refreshed by the valuation sync worker.
type Car struct {
	ID    string `json:"id" gorm:"primaryKey;type:uuid"`
	Make  string `json:"make" gorm:"index;not null"`
	Model string `json:"model" gorm:"not null"`
	Year  int    `json:"year" gorm:"index;not null"`
	Trim  string `json:"trim,omitempty"`
	VIN   string `json:"vin,omitempty"`

	// ⚙️ Drivetrain / performance
	EngineType   string  `json:"engineType,omitempty"`
	Horsepower   int     `json:"horsepower,omitempty"`
	Torque       int     `json:"torque,omitempty"`
	Transmission string  `json:"transmission,omitempty"`
	Drivetrain   string  `json:"drivetrain,omitempty"`
	Weight       int     `json:"weight,omitempty"`
	ZeroToSixty  float64 `json:"zeroToSixty,omitempty"`
	TopSpeed     int     `json:"topSpeed,omitempty"`

	// 💰 Valuation (whole dollars)
	MSRP         int64 `json:"msrp,omitempty"`
	CurrentValue int64 `json:"currentValue,omitempty" gorm:"index"`

	// 🎬 Pop-culture metadata
	ImageURL         string `json:"imageUrl,omitempty" gorm:"type:text"`
	MovieAppearances string `json:"movieAppearances,omitempty"`
	FamousOwners     string `json:"famousOwners,omitempty"`
	ProductionCount  int    `json:"productionCount,omitempty"`
	Rarity           Rarity `json:"rarity,omitempty" gorm:"type:varchar(16);index"`

	// Historical records, stored as JSON lists of AuctionRecord / OwnershipRecord
	AuctionHistory datatypes.JSON `json:"auctionHistory,omitempty"`
	Provenance     datatypes.JSON `json:"provenance,omitempty"`

	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// AuctionRecord is one element of Car.AuctionHistory.
type AuctionRecord struct {
	Date      string `json:"date"`
	House     string `json:"house"`
	Price     int64  `json:"price"`
	Condition string `json:"condition"`
	URL       string `json:"url,omitempty"`
}

// OwnershipRecord is one element of Car.Provenance.
type OwnershipRecord struct {
	Owner    string `json:"owner"`
	Period   string `json:"period"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// ResolvedValue is the value used for challenge budget math:
// current market value, else MSRP, else zero.
func (c *Car) ResolvedValue() int64 {
	if c.CurrentValue > 0 {
		return c.CurrentValue
	}
	if c.MSRP > 0 {
		return c.MSRP
	}
	return 0
}

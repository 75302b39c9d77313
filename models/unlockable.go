// models/unlockable.go
package models

// UnlockableItem is display metadata for a grantable reward (name, art,
// requirement copy). The milestone rules decide *when* something unlocks;
// this table describes *what* the user sees in the unlocks gallery.
type UnlockableItem struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	Type        UnlockType `json:"type" gorm:"uniqueIndex:idx_unlockable_type_item;type:varchar(32);not null"`
	ItemID      string     `json:"itemId" gorm:"uniqueIndex:idx_unlockable_type_item;not null"`
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	ImageURL    string     `json:"imageUrl,omitempty" gorm:"type:text"`

	// e.g. "challenge_complete_5", "invites_3"
	Requirement   string `json:"requirement"`
	RequiredCount int64  `json:"requiredCount"`
	Category      string `json:"category,omitempty" gorm:"type:varchar(16)"` // pop_culture | collector | both

	Timestamps
}

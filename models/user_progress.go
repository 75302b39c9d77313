package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress stores the only progression state persisted directly: the
// point total and the streak. Everything else (challenges completed, invites
// accepted, reactions given, garages created) is derived by counting rows.
type UserProgress struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"externalUserId"` // links to profile service

	Points int64 `json:"points" gorm:"default:0"`

	// Maintained by the activity service; opaque to this core
	Streak int `json:"streak" gorm:"default:0"`

	LastActiveAt *time.Time `json:"lastActiveAt,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// UserStats is the aggregate view behind GET /users/stats.
type UserStats struct {
	TotalChallenges int64 `json:"totalChallenges"`
	CurrentStreak   int   `json:"currentStreak"`
	LongestStreak   int   `json:"longestStreak"`
	TotalPoints     int64 `json:"totalPoints"`
	InvitesSent     int64 `json:"invitesSent"`
	InvitesAccepted int64 `json:"invitesAccepted"`
	GaragesCreated  int64 `json:"garagesCreated"`
	TotalReactions  int64 `json:"totalReactions"`
	UnlocksEarned   int64 `json:"unlocksEarned"`
}

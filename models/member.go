package models

import (
	"time"

	"gorm.io/gorm"
)

// ClubMember is a local snapshot of user data needed to decorate submissions,
// invites and the member directory. Owned by this service and populated via
// the member sync worker from the profile service.
type ClubMember struct {
	ID                string     `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID    string     `gorm:"uniqueIndex;not null" json:"externalUserId"` // the profile service's UUID
	Username          string     `gorm:"index;not null" json:"username"`
	Email             string     `json:"email,omitempty"`
	ProfilePictureURL *string    `json:"profilePictureUrl,omitempty"`
	FirstName         *string    `json:"firstName,omitempty"`
	LastName          *string    `json:"lastName,omitempty"`
	Bio               *string    `json:"bio,omitempty"`
	ReferralCode      string     `json:"referralCode,omitempty"`
	CreatedAt         time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`

	LastSeen *time.Time `json:"lastSeen,omitempty"`
	IsBanned bool       `json:"isBanned" gorm:"default:false"` // local club ban

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// models/invite.go
package models

import "time"

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
)

// Invite is a single-use referral code. pending → accepted is the only
// transition; expiry is detected lazily at accept time, never swept.
type Invite struct {
	ID         string       `json:"id" gorm:"primaryKey;type:uuid"`
	Code       string       `json:"code" gorm:"uniqueIndex;type:varchar(16);not null"`
	SenderID   string       `json:"senderId" gorm:"index;not null"`
	ReceiverID *string      `json:"receiverId,omitempty" gorm:"index"`
	Status     InviteStatus `json:"status" gorm:"type:varchar(16);default:'pending';index"`
	ExpiresAt  time.Time    `json:"expiresAt" gorm:"not null"`
	UsedAt     *time.Time   `json:"usedAt,omitempty"`

	Receiver *ClubMember `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID;references:ExternalUserID"`

	Timestamps
}

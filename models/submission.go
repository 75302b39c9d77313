// models/submission.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// GarageSubmission is a user's car line-up entered into a challenge.
// Immutable after creation — there is no edit or delete path.
type GarageSubmission struct {
	ID          string `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      string `json:"userId" gorm:"index;not null"`
	ChallengeID string `json:"challengeId" gorm:"index;not null"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty" gorm:"type:text"`

	// Sum of each car's resolved value at submission time
	TotalValue int64 `json:"totalValue"`

	// JSON array of car IDs, in the order the user picked them
	CarIDs datatypes.JSON `json:"carIds"`

	Challenge *Challenge  `json:"challenge,omitempty" gorm:"foreignKey:ChallengeID"`
	User      *ClubMember `json:"user,omitempty" gorm:"foreignKey:UserID;references:ExternalUserID"`
	Reactions []Reaction  `json:"reactions" gorm:"foreignKey:SubmissionID"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

type ReactionType string

const (
	ReactionFire     ReactionType = "fire"
	ReactionRespect  ReactionType = "respect"
	ReactionLegend   ReactionType = "legend"
	ReactionSleeper  ReactionType = "sleeper"
	ReactionBarnFind ReactionType = "barn_find"
	ReactionMoneyPit ReactionType = "money_pit"
)

// ValidReactionType reports whether t is one of the supported reaction kinds.
func ValidReactionType(t ReactionType) bool {
	switch t {
	case ReactionFire, ReactionRespect, ReactionLegend, ReactionSleeper, ReactionBarnFind, ReactionMoneyPit:
		return true
	}
	return false
}

// Reaction is unique per (user, submission); re-reacting overwrites Type.
type Reaction struct {
	ID           string       `json:"id" gorm:"primaryKey;type:uuid"`
	UserID       string       `json:"userId" gorm:"uniqueIndex:idx_reaction_user_submission;not null"`
	SubmissionID string       `json:"submissionId" gorm:"uniqueIndex:idx_reaction_user_submission;not null"`
	Type         ReactionType `json:"type" gorm:"type:varchar(16);not null"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

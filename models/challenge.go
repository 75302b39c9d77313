// models/challenge.go
package models

import (
	"time"
)

type ChallengeTheme string

const (
	ThemeGranTurismo ChallengeTheme = "gran_turismo"
	ThemeFastFurious ChallengeTheme = "fast_furious"
	ThemeTopGear     ChallengeTheme = "top_gear"
	ThemeDougDemuro  ChallengeTheme = "doug_demuro"
	ThemeRadwood     ChallengeTheme = "radwood"
	ThemeBatAuction  ChallengeTheme = "bat_auction"
)

type ChallengeType string

const (
	ChallengeTypeBudget    ChallengeType = "budget"
	ChallengeTypeEra       ChallengeType = "era"
	ChallengeTypeMovie     ChallengeType = "movie"
	ChallengeTypeWildcard  ChallengeType = "wildcard"
	ChallengeTypeOddball   ChallengeType = "oddball"
	ChallengeTypeCollector ChallengeType = "collector"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// Challenge is a time-boxed themed task. Immutable after creation except
// IsActive, which the activation scheduler flips as the window opens/closes.
type Challenge struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string         `json:"title" gorm:"not null"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Theme       ChallengeTheme `json:"theme" gorm:"type:varchar(32);index;not null"`
	Type        ChallengeType  `json:"type" gorm:"type:varchar(16);index;not null"`

	// Constraints — nil means unconstrained
	BudgetLimit    *int64  `json:"budgetLimit,omitempty"`
	EraStart       *int    `json:"eraStart,omitempty"`
	EraEnd         *int    `json:"eraEnd,omitempty"`
	MovieReference *string `json:"movieReference,omitempty"`

	Difficulty Difficulty `json:"difficulty" gorm:"type:varchar(16);default:'medium'"`
	Points     int64      `json:"points" gorm:"default:100"`
	ImageURL   string     `json:"imageUrl,omitempty" gorm:"type:text"`

	IsActive bool      `json:"isActive" gorm:"index;default:false"`
	StartsAt time.Time `json:"startsAt" gorm:"index;not null"`
	EndsAt   time.Time `json:"endsAt" gorm:"index;not null"`

	SubmissionCount int64 `json:"submissionCount" gorm:"-"`

	Timestamps
}

// ChallengeParticipation records that a user completed a challenge.
// One row per (user, challenge); resubmitting refreshes CompletedAt.
type ChallengeParticipation struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      string     `json:"userId" gorm:"uniqueIndex:idx_participation_user_challenge;not null"`
	ChallengeID string     `json:"challengeId" gorm:"uniqueIndex:idx_participation_user_challenge;not null"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	Timestamps
}

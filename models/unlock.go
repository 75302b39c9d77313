// models/unlock.go
package models

import "time"

type UnlockType string

const (
	UnlockGarageTheme   UnlockType = "garage_theme"
	UnlockStickerPack   UnlockType = "sticker_pack"
	UnlockBadge         UnlockType = "badge"
	UnlockFeature       UnlockType = "feature"
	UnlockChallengeType UnlockType = "challenge_type"
)

// Metric names the counters the milestone rules watch.
type Metric string

const (
	MetricChallengesCompleted Metric = "challenges_completed"
	MetricInvitesAccepted     Metric = "invites_accepted"
	MetricReactionsGiven      Metric = "reactions_given"
)

// Unlock marks a permanently granted reward. Unique per (user, type, item);
// granted once, never revoked.
type Unlock struct {
	ID         string     `json:"id" gorm:"primaryKey;type:uuid"`
	UserID     string     `json:"userId" gorm:"uniqueIndex:idx_unlock_user_type_item;not null"`
	Type       UnlockType `json:"type" gorm:"uniqueIndex:idx_unlock_user_type_item;type:varchar(32);not null"`
	ItemID     string     `json:"itemId" gorm:"uniqueIndex:idx_unlock_user_type_item;not null"`
	UnlockedAt time.Time  `json:"unlockedAt" gorm:"autoCreateTime;index"`
}

// MilestoneRule maps a counter threshold to a reward grant.
type MilestoneRule struct {
	Metric     Metric
	Threshold  int64
	RewardType UnlockType
	ItemID     string
}

// MilestoneRules is the static rule table, ascending threshold per metric.
// Every qualifying rule is granted on each evaluation pass, so ordering has
// no observable effect; it just keeps the table readable.
var MilestoneRules = []MilestoneRule{
	{MetricChallengesCompleted, 1, UnlockBadge, "first_challenge"},
	{MetricChallengesCompleted, 5, UnlockGarageTheme, "seinfeld"},
	{MetricChallengesCompleted, 7, UnlockFeature, "vin_lookup"},
	{MetricChallengesCompleted, 10, UnlockGarageTheme, "radwood"},
	{MetricChallengesCompleted, 15, UnlockChallengeType, "expert_mode"},

	{MetricInvitesAccepted, 1, UnlockStickerPack, "jdm_pack"},
	{MetricInvitesAccepted, 2, UnlockFeature, "provenance_mode"},
	{MetricInvitesAccepted, 3, UnlockGarageTheme, "tokyo_drift_neon"},
	{MetricInvitesAccepted, 5, UnlockBadge, "social_butterfly"},

	{MetricReactionsGiven, 25, UnlockFeature, "custom_reactions"},
}

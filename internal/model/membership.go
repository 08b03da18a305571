package model

import (
	"math"
	"time"
)

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

type MemberStatus string

const (
	StatusActive   MemberStatus = "active"
	StatusInactive MemberStatus = "inactive"
	StatusBanned   MemberStatus = "banned"
)

type SubscriptionStatus string

const (
	SubscriptionFree    SubscriptionStatus = "free"
	SubscriptionPaid    SubscriptionStatus = "paid"
	SubscriptionExpired SubscriptionStatus = "expired"
)

// Subscription is only present on paid memberships. Stored as a JSON column
// so free memberships carry NULL and serialize without subscription fields.
type Subscription struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Plan      string     `json:"plan,omitempty"`
	AutoRenew bool       `json:"autoRenew"`
}

type MembershipLevel struct {
	CurrentLevel int   `gorm:"not null;default:1" json:"currentLevel"`
	Points       int64 `gorm:"not null;default:0;index" json:"points"`
	Progress     int   `gorm:"not null;default:0" json:"progress"`
}

// Membership binds a user to a community. Exactly one row per
// (user_id, community_id), enforced by uk_member.
type Membership struct {
	ID                 uint64             `gorm:"primaryKey" json:"id"`
	UserID             uint64             `gorm:"not null;index;uniqueIndex:uk_member" json:"userId"`
	CommunityID        uint64             `gorm:"not null;index;uniqueIndex:uk_member" json:"communityId"`
	Role               Role               `gorm:"size:16;not null;default:'member'" json:"role"`
	Status             MemberStatus       `gorm:"size:16;not null;default:'active'" json:"status"`
	MembershipType     MembershipType     `gorm:"size:16;not null" json:"membershipType"`
	SubscriptionStatus SubscriptionStatus `gorm:"size:16" json:"subscriptionStatus,omitempty"`
	Subscription       *Subscription      `gorm:"type:json;serializer:json" json:"subscription,omitempty"`
	Level              MembershipLevel    `gorm:"embedded;embeddedPrefix:level_" json:"level"`
	JoinedAt           time.Time          `gorm:"not null" json:"joinedAt"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

func (m *Membership) IsActive() bool {
	return m.Status == StatusActive
}

// CanPerformAdminActions guards role changes and other admin transitions.
func (m *Membership) CanPerformAdminActions() bool {
	return m.Status == StatusActive && m.Role == RoleAdmin
}

// HasActiveSubscription reports whether a paid subscription is currently in
// force: status paid and either no end date or an end date in the future.
func (m *Membership) HasActiveSubscription(now time.Time) bool {
	if m.SubscriptionStatus != SubscriptionPaid {
		return false
	}
	if m.Subscription != nil && m.Subscription.EndDate != nil {
		return m.Subscription.EndDate.After(now)
	}
	return true
}

// LevelForPoints derives the level from a points total:
// floor(sqrt(points)/10) + 1.
func LevelForPoints(points int64) int {
	if points < 0 {
		points = 0
	}
	return int(math.Sqrt(float64(points))/10) + 1
}

// PointsForLevel is the points floor of a level: ((L-1)*10)^2.
func PointsForLevel(level int) int64 {
	if level < 1 {
		level = 1
	}
	n := int64(level-1) * 10
	return n * n
}

// AddPoints applies a points increment and recomputes level and progress.
// A level-up resets progress to 0; otherwise progress is the percentage of
// the current level's point band that has been earned, capped at 100.
func (l *MembershipLevel) AddPoints(points int64) {
	if points <= 0 {
		return
	}
	l.Points += points

	newLevel := LevelForPoints(l.Points)
	if newLevel > l.CurrentLevel {
		l.CurrentLevel = newLevel
		l.Progress = 0
		return
	}

	floor := PointsForLevel(l.CurrentLevel)
	ceil := PointsForLevel(l.CurrentLevel + 1)
	band := ceil - floor
	if band <= 0 {
		band = 1
	}
	progress := int((l.Points - floor) * 100 / band)
	if progress > 100 {
		progress = 100
	}
	l.Progress = progress
}

package model

import "time"

// Engagement event rows back the denormalized counters on Post. Counters are
// at-least-once approximations; the reconciler trues them up from these rows.

type PostLike struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_post_like"`
	PostID    uint64 `gorm:"not null;index;uniqueIndex:uk_post_like"`
	CreatedAt time.Time
}

func (PostLike) TableName() string { return "post_likes" }

type PostComment struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index"`
	PostID    uint64 `gorm:"not null;index"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (PostComment) TableName() string { return "post_comments" }

type PostShare struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index"`
	PostID    uint64 `gorm:"not null;index"`
	CreatedAt time.Time
}

func (PostShare) TableName() string { return "post_shares" }

type PostView struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"index"`
	PostID    uint64 `gorm:"not null;index"`
	CreatedAt time.Time
}

func (PostView) TableName() string { return "post_views" }

// EngagementOutbox records engagement events for asynchronous delivery to
// kafka. Status: 0=pending, 1=sent, 2=failed.
type EngagementOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // like / unlike / comment / share / view
	UserID    uint64 `gorm:"not null"`
	PostID    uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EngagementOutbox) TableName() string { return "engagement_outbox" }

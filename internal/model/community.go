package model

import "time"

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type MembershipType string

const (
	MembershipFree MembershipType = "free"
	MembershipPaid MembershipType = "paid"
)

type Community struct {
	ID             uint64         `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	OwnerID        uint64         `gorm:"not null;index" json:"ownerId"`
	Visibility     Visibility     `gorm:"size:16;not null;default:'public'" json:"visibility"`
	MembershipType MembershipType `gorm:"size:16;not null;default:'free'" json:"membershipType"`
	Interests      []string       `gorm:"type:json;serializer:json" json:"interests"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// CommunityPaymentMethod rows are removed together with the community.
type CommunityPaymentMethod struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	CommunityID uint64    `gorm:"not null;index" json:"communityId"`
	Provider    string    `gorm:"size:32;not null" json:"provider"`
	AccountRef  string    `gorm:"size:128" json:"accountRef"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

package model

import "time"

type Post struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	CommunityID  uint64    `gorm:"not null;index:idx_community_time,priority:1" json:"communityId"`
	AuthorID     uint64    `gorm:"not null;index:idx_author_time" json:"authorId"`
	Content      string    `gorm:"type:text" json:"content"`
	Status       int       `gorm:"not null;default:0" json:"-"` // 0=normal 1=deleted 2=banned
	LikeCount    int64     `gorm:"not null;default:0" json:"likeCount"`
	CommentCount int64     `gorm:"not null;default:0" json:"commentCount"`
	ShareCount   int64     `gorm:"not null;default:0" json:"shareCount"`
	ViewsCount   int64     `gorm:"not null;default:0" json:"viewsCount"`
	CreatedAt    time.Time `gorm:"index:idx_community_time,priority:2,sort:desc" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

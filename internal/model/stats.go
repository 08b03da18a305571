package model

// EngagementCounters is the read-only counter snapshot for one post.
// The redis tags let the counter cache scan hashes straight into it.
type EngagementCounters struct {
	Likes    int64 `redis:"likes" json:"likes"`
	Comments int64 `redis:"comments" json:"comments"`
	Shares   int64 `redis:"shares" json:"shares"`
	Views    int64 `redis:"views" json:"views"`
}

// CommunityStats carries the aggregate signals the suggestion score needs,
// computed per community in one pass over posts and memberships.
type CommunityStats struct {
	CommunityID     uint64 `json:"communityId"`
	PostCount       int64  `json:"postCount"`
	TotalEngagement int64  `json:"totalEngagement"`
	RecentPostCount int64  `json:"recentPostCount"`
	MemberCount     int64  `json:"memberCount"`
}

package ranking

import (
	"sort"
	"time"
)

// Scoring weights. These encode product policy (share > comment > like >
// view, interest overlap above raw engagement for suggestions) and are kept
// as named constants so they can be tuned without touching the formulas.
const (
	WeightLike    = 2.0
	WeightComment = 3.0
	WeightView    = 1.0
	WeightShare   = 4.0

	WeightSimilarEngagement = 5.0
	WeightInterestOverlap   = 3.0

	WeightSuggestOverlap = 5.0
	WeightAvgEngagement  = 0.5
	WeightActivity       = 1.0
	BoostPublic          = 2.0
	BoostFree            = 2.0
)

// MaxAgeHours is assigned to candidates with no engagement record so they
// decay to the bottom of the ranking instead of failing the request.
const MaxAgeHours = 24 * 365

// Engagement is the read-only counter snapshot for one candidate.
type Engagement struct {
	Likes    int64
	Comments int64
	Shares   int64
	Views    int64
	AgeHours float64
}

// Raw is the weighted engagement sum before time decay.
func (e Engagement) Raw() float64 {
	return WeightLike*float64(e.Likes) +
		WeightComment*float64(e.Comments) +
		WeightView*float64(e.Views) +
		WeightShare*float64(e.Shares)
}

// PostSignals combines base engagement with the optional personalization
// boosts computed against one snapshot per request.
type PostSignals struct {
	Engagement
	SimilarUserEngagement int64
	InterestOverlap       int
}

// TrendingScore divides weighted engagement by (1 + age) so a day-old post
// needs roughly 24x the raw engagement of a brand-new one to tie it. The
// +1 keeps age=0 from dividing by zero.
func TrendingScore(s PostSignals) float64 {
	raw := s.Raw()
	raw += WeightSimilarEngagement * float64(s.SimilarUserEngagement)
	raw += WeightInterestOverlap * float64(s.InterestOverlap)
	return raw / (1 + s.AgeHours)
}

// CommunitySignals feed the suggestion score for a candidate community.
type CommunitySignals struct {
	InterestOverlap      int
	AvgEngagementPerPost float64
	ActivityLevel        float64
	Public               bool
	Free                 bool
}

func SuggestionScore(s CommunitySignals) float64 {
	score := WeightSuggestOverlap*float64(s.InterestOverlap) +
		WeightAvgEngagement*s.AvgEngagementPerPost +
		WeightActivity*s.ActivityLevel
	if s.Public {
		score += BoostPublic
	}
	if s.Free {
		score += BoostFree
	}
	return score
}

// ActivityLevel weighs recent posting over sheer member count.
func ActivityLevel(recentPosts int64, memberCount int64) float64 {
	return float64(recentPosts) + float64(memberCount)/10
}

// AvgEngagementPerPost guards the division for communities without posts.
func AvgEngagementPerPost(totalEngagement, postCount int64) float64 {
	if postCount < 1 {
		postCount = 1
	}
	return float64(totalEngagement) / float64(postCount)
}

// AgeHours returns now-createdAt in hours, floored at zero.
func AgeHours(createdAt, now time.Time) float64 {
	h := now.Sub(createdAt).Hours()
	if h < 0 {
		return 0
	}
	return h
}

// Scored is one ranked candidate.
type Scored struct {
	ID    uint64
	Score float64
}

// Order sorts by score descending with candidate ID ascending as the
// secondary key. Equal scores need the total order, otherwise a candidate
// can show up twice or be skipped across page fetches.
func Order(items []Scored) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
}

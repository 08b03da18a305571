package service

import (
	"context"
	"sort"
	"time"

	"communehub/internal/model"
	"communehub/internal/pkg"
)

// In-memory store fakes. Not safe for concurrent use; tests are serial.

type fakeUsers struct {
	byID    map[uint64]*model.User
	similar []uint64
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{byID: make(map[uint64]*model.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) FindByID(_ context.Context, id uint64) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, pkg.NotFoundf("user %d not found", id)
	}
	return u, nil
}

func (f *fakeUsers) SimilarUserIDs(_ context.Context, _ uint64, _ []string, limit int) ([]uint64, error) {
	if len(f.similar) > limit {
		return f.similar[:limit], nil
	}
	return f.similar, nil
}

func (f *fakeUsers) UpdateInterests(_ context.Context, userID uint64, interests []string) error {
	u, ok := f.byID[userID]
	if !ok {
		return pkg.NotFoundf("user %d not found", userID)
	}
	u.Interests = interests
	return nil
}

type fakeCommunities struct {
	byID    map[uint64]model.Community
	stats   map[uint64]model.CommunityStats
	deleted []uint64
}

func newFakeCommunities(communities ...model.Community) *fakeCommunities {
	f := &fakeCommunities{
		byID:  make(map[uint64]model.Community),
		stats: make(map[uint64]model.CommunityStats),
	}
	for _, c := range communities {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCommunities) Create(_ context.Context, c *model.Community) error {
	if c.ID == 0 {
		c.ID = uint64(len(f.byID) + 1)
	}
	f.byID[c.ID] = *c
	return nil
}

func (f *fakeCommunities) FindByID(_ context.Context, id uint64) (*model.Community, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, pkg.NotFoundf("community %d not found", id)
	}
	return &c, nil
}

func (f *fakeCommunities) FindByIDs(_ context.Context, ids []uint64) (map[uint64]model.Community, error) {
	out := make(map[uint64]model.Community, len(ids))
	for _, id := range ids {
		if c, ok := f.byID[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (f *fakeCommunities) ListAll(_ context.Context) ([]model.Community, error) {
	out := make([]model.Community, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCommunities) Stats(_ context.Context, ids []uint64, _ time.Duration) (map[uint64]model.CommunityStats, error) {
	out := make(map[uint64]model.CommunityStats, len(ids))
	for _, id := range ids {
		out[id] = f.stats[id]
	}
	return out, nil
}

func (f *fakeCommunities) DeleteCascade(_ context.Context, communityID uint64) error {
	delete(f.byID, communityID)
	f.deleted = append(f.deleted, communityID)
	return nil
}

type fakePosts struct {
	byID map[uint64]model.Post
}

func newFakePosts(posts ...model.Post) *fakePosts {
	f := &fakePosts{byID: make(map[uint64]model.Post)}
	for _, p := range posts {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakePosts) Create(_ context.Context, post *model.Post) error {
	if post.ID == 0 {
		post.ID = uint64(len(f.byID) + 1)
	}
	f.byID[post.ID] = *post
	return nil
}

func (f *fakePosts) FindByID(_ context.Context, id uint64) (*model.Post, error) {
	p, ok := f.byID[id]
	if !ok || p.Status != 0 {
		return nil, pkg.NotFoundf("post %d not found", id)
	}
	return &p, nil
}

func (f *fakePosts) FindByIDs(_ context.Context, ids []uint64) (map[uint64]model.Post, error) {
	out := make(map[uint64]model.Post, len(ids))
	for _, id := range ids {
		if p, ok := f.byID[id]; ok && p.Status == 0 {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakePosts) ListCandidates(_ context.Context, communityID uint64) ([]model.Post, error) {
	out := make([]model.Post, 0, len(f.byID))
	for _, p := range f.byID {
		if p.Status != 0 {
			continue
		}
		if communityID != 0 && p.CommunityID != communityID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memberKey struct{ user, community uint64 }

type fakeMemberships struct {
	rows map[memberKey]*model.Membership
}

func newFakeMemberships(rows ...*model.Membership) *fakeMemberships {
	f := &fakeMemberships{rows: make(map[memberKey]*model.Membership)}
	for _, m := range rows {
		f.rows[memberKey{m.UserID, m.CommunityID}] = m
	}
	return f
}

func (f *fakeMemberships) Create(_ context.Context, m *model.Membership) error {
	k := memberKey{m.UserID, m.CommunityID}
	if _, exists := f.rows[k]; exists {
		return pkg.Conflictf("user %d already joined community %d", m.UserID, m.CommunityID)
	}
	if m.ID == 0 {
		m.ID = uint64(len(f.rows) + 1)
	}
	f.rows[k] = m
	return nil
}

func (f *fakeMemberships) Find(_ context.Context, userID, communityID uint64) (*model.Membership, error) {
	m, ok := f.rows[memberKey{userID, communityID}]
	if !ok {
		return nil, pkg.NotFoundf("membership of user %d in community %d not found", userID, communityID)
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMemberships) Save(_ context.Context, m *model.Membership) error {
	f.rows[memberKey{m.UserID, m.CommunityID}] = m
	return nil
}

func (f *fakeMemberships) ActiveCommunityIDs(_ context.Context, userID uint64) ([]uint64, error) {
	var out []uint64
	for k, m := range f.rows {
		if k.user == userID && m.Status == model.StatusActive {
			out = append(out, k.community)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (f *fakeMemberships) MemberCommunityIDs(_ context.Context, userID uint64) ([]uint64, error) {
	var out []uint64
	for k := range f.rows {
		if k.user == userID {
			out = append(out, k.community)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (f *fakeMemberships) Leaderboard(_ context.Context, communityID uint64, offset, limit int) ([]model.Membership, int64, error) {
	var rows []model.Membership
	for k, m := range f.rows {
		if k.community == communityID && m.Status == model.StatusActive {
			rows = append(rows, *m)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Level.Points != rows[j].Level.Points {
			return rows[i].Level.Points > rows[j].Level.Points
		}
		return rows[i].UserID < rows[j].UserID
	})
	total := int64(len(rows))
	if offset >= len(rows) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], total, nil
}

type fakeEngagement struct {
	similarCounts map[uint64]int64
	recent        []uint64
	recounted     []uint64
}

func (f *fakeEngagement) Like(_ context.Context, _, _ uint64) (bool, error)   { return true, nil }
func (f *fakeEngagement) Unlike(_ context.Context, _, _ uint64) (bool, error) { return true, nil }
func (f *fakeEngagement) AddComment(_ context.Context, userID, postID uint64, content string) (*model.PostComment, error) {
	return &model.PostComment{UserID: userID, PostID: postID, Content: content}, nil
}
func (f *fakeEngagement) AddShare(_ context.Context, _, _ uint64) error { return nil }
func (f *fakeEngagement) AddView(_ context.Context, _, _ uint64) error  { return nil }

func (f *fakeEngagement) CountBySimilarUsers(_ context.Context, postIDs, _ []uint64) (map[uint64]int64, error) {
	out := make(map[uint64]int64, len(postIDs))
	for _, id := range postIDs {
		if n, ok := f.similarCounts[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (f *fakeEngagement) Recount(_ context.Context, postID uint64) error {
	f.recounted = append(f.recounted, postID)
	return nil
}

func (f *fakeEngagement) RecentPostIDs(_ context.Context, _ time.Time, _ int) ([]uint64, error) {
	return f.recent, nil
}

type fakeCache struct {
	counters map[uint64]model.EngagementCounters
	deleted  []uint64
}

func newFakeCache() *fakeCache {
	return &fakeCache{counters: make(map[uint64]model.EngagementCounters)}
}

func (f *fakeCache) Get(_ context.Context, postID uint64) (model.EngagementCounters, bool, error) {
	c, ok := f.counters[postID]
	return c, ok, nil
}

func (f *fakeCache) Set(_ context.Context, postID uint64, c model.EngagementCounters) error {
	f.counters[postID] = c
	return nil
}

func (f *fakeCache) Delete(_ context.Context, postID uint64, _ ...time.Duration) error {
	delete(f.counters, postID)
	f.deleted = append(f.deleted, postID)
	return nil
}

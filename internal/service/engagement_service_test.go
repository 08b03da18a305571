package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communehub/internal/model"
	"communehub/internal/pkg"
)

func TestCreatePostRequiresActiveMembership(t *testing.T) {
	posts := newFakePosts()
	members := newFakeMemberships(&model.Membership{
		UserID: 1, CommunityID: 10, Status: model.StatusActive,
	})
	svc := NewEngagementService(&fakeEngagement{}, posts, members, nil)

	post, err := svc.CreatePost(context.Background(), 1, 10, "hello")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, uint64(10), post.CommunityID)

	// non-member cannot post
	_, err = svc.CreatePost(context.Background(), 2, 10, "hello")
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	// banned member cannot post either
	members.rows[memberKey{1, 10}].Status = model.StatusBanned
	_, err = svc.CreatePost(context.Background(), 1, 10, "hello")
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	_, err = svc.CreatePost(context.Background(), 1, 10, "")
	assert.ErrorIs(t, err, pkg.ErrValidation)
}

func TestLikeUnknownPost(t *testing.T) {
	svc := NewEngagementService(&fakeEngagement{}, newFakePosts(), newFakeMemberships(), nil)
	_, err := svc.Like(context.Background(), 1, 404)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestLikeInvalidatesCache(t *testing.T) {
	posts := newFakePosts(model.Post{ID: 1, CreatedAt: fixedNow()})
	cache := newFakeCache()
	cache.counters[1] = model.EngagementCounters{Likes: 3}

	svc := NewEngagementService(&fakeEngagement{}, posts, newFakeMemberships(), cache)

	changed, err := svc.Like(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []uint64{1}, cache.deleted)
}

func TestViewUnknownPost(t *testing.T) {
	svc := NewEngagementService(&fakeEngagement{}, newFakePosts(), newFakeMemberships(), nil)
	err := svc.View(context.Background(), 1, 404)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestCommentRequiresContent(t *testing.T) {
	posts := newFakePosts(model.Post{ID: 1, CreatedAt: fixedNow()})
	svc := NewEngagementService(&fakeEngagement{}, posts, newFakeMemberships(), nil)

	_, err := svc.Comment(context.Background(), 1, 1, "")
	assert.ErrorIs(t, err, pkg.ErrValidation)

	c, err := svc.Comment(context.Background(), 1, 1, "nice post")
	require.NoError(t, err)
	assert.Equal(t, "nice post", c.Content)
}

func TestWrapStoreMapsDeadline(t *testing.T) {
	assert.ErrorIs(t, pkg.WrapStore(context.DeadlineExceeded), pkg.ErrTimeout)
	assert.ErrorIs(t, pkg.WrapStore(pkg.NotFoundf("x")), pkg.ErrNotFound)
	assert.NoError(t, pkg.WrapStore(nil))
}

type stubOutbox struct {
	pending []model.EngagementOutbox
	sent    []uint64
	failed  []uint64
}

func (s *stubOutbox) ListPending(_ context.Context, _ int) ([]model.EngagementOutbox, error) {
	return s.pending, nil
}
func (s *stubOutbox) MarkFailed(_ context.Context, id uint64) error {
	s.failed = append(s.failed, id)
	return nil
}
func (s *stubOutbox) MarkSent(_ context.Context, id uint64) error {
	s.sent = append(s.sent, id)
	return nil
}

func TestRelayerDrainMarksSentAndFailed(t *testing.T) {
	repo := &stubOutbox{pending: []model.EngagementOutbox{
		{ID: 1, EventType: "like", PostID: 10},
		{ID: 2, EventType: "share", PostID: 11},
		{ID: 3, EventType: "like", PostID: 12},
	}}
	relayer := NewOutboxRelayer(repo, func(_ context.Context, ob *model.EngagementOutbox) error {
		if ob.ID == 2 {
			return errors.New("broker down")
		}
		return nil
	})

	relayer.drainOnce(context.Background())
	assert.Equal(t, []uint64{1, 3}, repo.sent)
	assert.Equal(t, []uint64{2}, repo.failed)
}

func TestReconcilerRecountsAndDropsCache(t *testing.T) {
	eng := &fakeEngagement{recent: []uint64{7}}
	cache := newFakeCache()
	cache.counters[7] = model.EngagementCounters{Likes: 1}

	r := NewCounterReconciler(eng, cache)
	r.reconcileOnce(context.Background())
	assert.Equal(t, []uint64{7}, eng.recounted)
	assert.Equal(t, []uint64{7}, cache.deleted)
}

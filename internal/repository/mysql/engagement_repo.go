package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"communehub/internal/model"
	"communehub/internal/pkg"

	"gorm.io/gorm"
)

type EngagementRepository struct {
	DB *gorm.DB
}

// Like records a like event, bumps the denormalized counter and writes the
// outbox row in one transaction. Returns changed=false when the user already
// liked the post.
func (r *EngagementRepository) Like(ctx context.Context, userID, postID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.PostLike
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		if err == nil {
			changed = false
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&model.PostLike{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		if err := bumpCounter(tx, postID, "like_count", +1); err != nil {
			return err
		}
		changed = true
		return insertOutbox(tx, "like", userID, postID)
	})
	return changed, pkg.WrapStore(err)
}

// Unlike removes the like event and decrements the counter, never below
// zero. Idempotent when no like exists.
func (r *EngagementRepository) Unlike(ctx context.Context, userID, postID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			changed = false
			return nil
		}
		if err := bumpCounter(tx, postID, "like_count", -1); err != nil {
			return err
		}
		changed = true
		return insertOutbox(tx, "unlike", userID, postID)
	})
	return changed, pkg.WrapStore(err)
}

func (r *EngagementRepository) AddComment(ctx context.Context, userID, postID uint64, content string) (*model.PostComment, error) {
	comment := &model.PostComment{UserID: userID, PostID: postID, Content: content}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if err := bumpCounter(tx, postID, "comment_count", +1); err != nil {
			return err
		}
		return insertOutbox(tx, "comment", userID, postID)
	})
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	return comment, nil
}

func (r *EngagementRepository) AddShare(ctx context.Context, userID, postID uint64) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.PostShare{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		if err := bumpCounter(tx, postID, "share_count", +1); err != nil {
			return err
		}
		return insertOutbox(tx, "share", userID, postID)
	})
	return pkg.WrapStore(err)
}

func (r *EngagementRepository) AddView(ctx context.Context, userID, postID uint64) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.PostView{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		if err := bumpCounter(tx, postID, "views_count", +1); err != nil {
			return err
		}
		return insertOutbox(tx, "view", userID, postID)
	})
	return pkg.WrapStore(err)
}

// CountBySimilarUsers counts like/comment/share events on the given posts
// authored by users in the similar-user set. The caller caps userIDs so the
// IN list stays bounded.
func (r *EngagementRepository) CountBySimilarUsers(ctx context.Context, postIDs, userIDs []uint64) (map[uint64]int64, error) {
	out := make(map[uint64]int64, len(postIDs))
	if len(postIDs) == 0 || len(userIDs) == 0 {
		return out, nil
	}
	type row struct {
		PostID uint64
		N      int64
	}
	var rows []row
	err := r.DB.WithContext(ctx).Raw(`
		SELECT post_id, COUNT(*) AS n FROM (
			SELECT post_id FROM post_likes    WHERE post_id IN ? AND user_id IN ?
			UNION ALL
			SELECT post_id FROM post_comments WHERE post_id IN ? AND user_id IN ?
			UNION ALL
			SELECT post_id FROM post_shares   WHERE post_id IN ? AND user_id IN ?
		) ev GROUP BY post_id`,
		postIDs, userIDs, postIDs, userIDs, postIDs, userIDs,
	).Scan(&rows).Error
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	for _, r := range rows {
		out[r.PostID] = r.N
	}
	return out, nil
}

// Recount trues up the denormalized counters on one post from the event
// rows. Used by the reconciler; counters are approximations in between.
func (r *EngagementRepository) Recount(ctx context.Context, postID uint64) error {
	err := r.DB.WithContext(ctx).Exec(`
		UPDATE posts SET
			like_count    = (SELECT COUNT(*) FROM post_likes    WHERE post_id = ?),
			comment_count = (SELECT COUNT(*) FROM post_comments WHERE post_id = ?),
			share_count   = (SELECT COUNT(*) FROM post_shares   WHERE post_id = ?),
			views_count   = (SELECT COUNT(*) FROM post_views    WHERE post_id = ?)
		WHERE id = ?`,
		postID, postID, postID, postID, postID,
	).Error
	return pkg.WrapStore(err)
}

// RecentPostIDs lists posts with outbox activity since the cutoff, for the
// reconciler to recount.
func (r *EngagementRepository) RecentPostIDs(ctx context.Context, since time.Time, limit int) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).Model(&model.EngagementOutbox{}).
		Where("created_at > ?", since).
		Distinct("post_id").
		Limit(limit).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	return ids, nil
}

func bumpCounter(tx *gorm.DB, postID uint64, column string, delta int64) error {
	expr := gorm.Expr(column+" + ?", delta)
	if delta < 0 {
		expr = gorm.Expr("CASE WHEN "+column+" > 0 THEN "+column+" - 1 ELSE 0 END")
	}
	return tx.Model(&model.Post{}).
		Where("id = ?", postID).
		UpdateColumn(column, expr).Error
}

func insertOutbox(tx *gorm.DB, event string, userID, postID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"event":      event,
		"user_id":    userID,
		"post_id":    postID,
	})
	return tx.Create(&model.EngagementOutbox{
		EventType: event,
		UserID:    userID,
		PostID:    postID,
		Payload:   string(payload),
		Status:    0,
	}).Error
}

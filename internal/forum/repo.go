package forum

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) CreateThread(ctx context.Context, t *Thread) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) GetThread(ctx context.Context, id uuid.UUID) (*Thread, error) {
	var t Thread
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormRepo) ListThreads(ctx context.Context, offset, limit int) (int64, []Thread, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&Thread{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var threads []Thread
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&threads).Error; err != nil {
		return 0, nil, err
	}
	return total, threads, nil
}

func (r *GormRepo) DeleteThread(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uuid.UUID
		if err := tx.Model(&Post{}).Where("thread_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&Comment{}).Error; err != nil {
				return err
			}
			// Session skips the post hooks: the thread goes with its counter.
			if err := tx.Session(&gorm.Session{SkipHooks: true}).
				Where("thread_id = ?", id).Delete(&Post{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&Thread{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) CreatePost(ctx context.Context, p *Post) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	var p Post
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) ListPosts(ctx context.Context, threadID uuid.UUID, offset, limit int) (int64, []Post, error) {
	q := r.DB.WithContext(ctx).Model(&Post{}).Where("thread_id = ?", threadID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var posts []Post
	if err := q.Order("created_at ASC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return 0, nil, err
	}
	return total, posts, nil
}

// DeletePost loads the row first so the AfterDelete hook sees the thread id.
func (r *GormRepo) DeletePost(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Post
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

func (r *GormRepo) CreateComment(ctx context.Context, c *Comment) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) ListComments(ctx context.Context, postID uuid.UUID) ([]Comment, error) {
	var comments []Comment
	err := r.DB.WithContext(ctx).Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *GormRepo) DeleteComment(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&Comment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

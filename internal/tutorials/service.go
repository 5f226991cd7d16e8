package tutorials

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/httpx"
	"github.com/keymaxprot/backend/internal/logging"
)

// Indexer mirrors tutorial writes into the search index; nil disables it.
type Indexer interface {
	IndexTutorial(ctx context.Context, t *Tutorial) error
	RemoveTutorial(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	DB    *gorm.DB
	Index Indexer
}

type CreateTutorialRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	VideoURL string `json:"video_url"`
	Category string `json:"category"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *Service) Create(ctx context.Context, authorID uuid.UUID, req CreateTutorialRequest) (*Tutorial, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title required", httpx.ErrValidation)
	}
	// A tutorial with nothing to show is useless: text, video, or both.
	if req.Body == "" && req.VideoURL == "" {
		return nil, fmt.Errorf("%w: body or video_url required", httpx.ErrValidation)
	}

	t := &Tutorial{
		Title:    req.Title,
		Body:     req.Body,
		VideoURL: req.VideoURL,
		AuthorID: authorID,
		Category: req.Category,
	}
	if err := s.DB.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}

	s.reindex(ctx, t)
	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Tutorial, error) {
	var t Tutorial
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tutorial", httpx.ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func (s *Service) List(ctx context.Context, category string, offset, limit int) (int64, []Tutorial, error) {
	q := s.DB.WithContext(ctx).Model(&Tutorial{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []Tutorial
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (s *Service) Delete(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && t.AuthorID != requesterID {
		return fmt.Errorf("%w: not your tutorial", httpx.ErrForbidden)
	}

	if err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tutorial_id = ?", id).Delete(&Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Tutorial{}, "id = ?", id).Error
	}); err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.RemoveTutorial(ctx, id); err != nil {
			logging.FromContext(ctx).Error("search deindex failed", "error", err)
		}
	}
	return nil
}

// AddReview stores the review and folds it into the tutorial's rating
// aggregate inside one transaction.
func (s *Service) AddReview(ctx context.Context, authorID, tutorialID uuid.UUID, req ReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be 1-5", httpx.ErrValidation)
	}

	review := &Review{
		TutorialID: tutorialID,
		AuthorID:   authorID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	var updated Tutorial
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t Tutorial
		if err := tx.Where("id = ?", tutorialID).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: tutorial", httpx.ErrNotFound)
			}
			return err
		}

		if err := tx.Create(review).Error; err != nil {
			return err
		}

		t.RatingRate = (t.RatingRate*float64(t.RatingCount) + float64(req.Rating)) / float64(t.RatingCount+1)
		t.RatingCount++
		if err := tx.Save(&t).Error; err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.reindex(ctx, &updated)
	return review, nil
}

func (s *Service) ListReviews(ctx context.Context, tutorialID uuid.UUID) ([]Review, error) {
	var reviews []Review
	err := s.DB.WithContext(ctx).Where("tutorial_id = ?", tutorialID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (s *Service) reindex(ctx context.Context, t *Tutorial) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexTutorial(ctx, t); err != nil {
		logging.FromContext(ctx).Error("search index failed", "error", err)
	}
}

package forum

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/httpx"
)

type Service struct {
	Repo *GormRepo
}

func (s *Service) CreateThread(ctx context.Context, authorID uuid.UUID, title, body string) (*Thread, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title required", httpx.ErrValidation)
	}

	t := &Thread{Title: title, Body: body, AuthorID: authorID}
	if err := s.Repo.CreateThread(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) GetThread(ctx context.Context, id uuid.UUID) (*Thread, error) {
	t, err := s.Repo.GetThread(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: thread", httpx.ErrNotFound)
	}
	return t, err
}

func (s *Service) ListThreads(ctx context.Context, offset, limit int) (int64, []Thread, error) {
	return s.Repo.ListThreads(ctx, offset, limit)
}

func (s *Service) DeleteThread(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) error {
	t, err := s.GetThread(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && t.AuthorID != requesterID {
		return fmt.Errorf("%w: not your thread", httpx.ErrForbidden)
	}
	return s.Repo.DeleteThread(ctx, id)
}

func (s *Service) CreatePost(ctx context.Context, authorID, threadID uuid.UUID, body string) (*Post, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: body required", httpx.ErrValidation)
	}
	if _, err := s.GetThread(ctx, threadID); err != nil {
		return nil, err
	}

	p := &Post{ThreadID: threadID, AuthorID: authorID, Body: body}
	if err := s.Repo.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPosts(ctx context.Context, threadID uuid.UUID, offset, limit int) (int64, []Post, error) {
	if _, err := s.GetThread(ctx, threadID); err != nil {
		return 0, nil, err
	}
	return s.Repo.ListPosts(ctx, threadID, offset, limit)
}

func (s *Service) DeletePost(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) error {
	p, err := s.Repo.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: post", httpx.ErrNotFound)
		}
		return err
	}
	if !isAdmin && p.AuthorID != requesterID {
		return fmt.Errorf("%w: not your post", httpx.ErrForbidden)
	}
	return s.Repo.DeletePost(ctx, id)
}

func (s *Service) CreateComment(ctx context.Context, authorID, postID uuid.UUID, body string) (*Comment, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: body required", httpx.ErrValidation)
	}
	if _, err := s.Repo.GetPost(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post", httpx.ErrNotFound)
		}
		return nil, err
	}

	c := &Comment{PostID: postID, AuthorID: authorID, Body: body}
	if err := s.Repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListComments(ctx context.Context, postID uuid.UUID) ([]Comment, error) {
	return s.Repo.ListComments(ctx, postID)
}

func (s *Service) DeleteComment(ctx context.Context, id uuid.UUID) error {
	err := s.Repo.DeleteComment(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: comment", httpx.ErrNotFound)
	}
	return err
}

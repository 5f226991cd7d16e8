package forum

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/httpx"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Thread{}, &Post{}, &Comment{}))
	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return &Service{Repo: &GormRepo{DB: initTestDB(t)}}
}

func TestPostCountTracksPosts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := uuid.New()

	thread, err := svc.CreateThread(ctx, author, "Best wrap shops?", "Looking for recommendations")
	require.NoError(t, err)
	require.EqualValues(t, 0, thread.PostCount)

	p1, err := svc.CreatePost(ctx, author, thread.ID, "Try the one on 5th")
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, author, thread.ID, "Second this")
	require.NoError(t, err)

	fresh, err := svc.GetThread(ctx, thread.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, fresh.PostCount)

	require.NoError(t, svc.DeletePost(ctx, p1.ID, author, false))

	fresh, err = svc.GetThread(ctx, thread.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, fresh.PostCount)
}

func TestDeleteThreadCascades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := uuid.New()

	thread, err := svc.CreateThread(ctx, author, "Title", "")
	require.NoError(t, err)
	post, err := svc.CreatePost(ctx, author, thread.ID, "post body")
	require.NoError(t, err)
	_, err = svc.CreateComment(ctx, author, post.ID, "comment body")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteThread(ctx, thread.ID, author, false))

	_, err = svc.GetThread(ctx, thread.ID)
	require.True(t, errors.Is(err, httpx.ErrNotFound))

	db := svc.Repo.DB
	var posts, comments int64
	require.NoError(t, db.Model(&Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&Comment{}).Count(&comments).Error)
	require.Zero(t, posts)
	require.Zero(t, comments)
}

func TestAuthorizationChecks(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := uuid.New()
	stranger := uuid.New()

	thread, err := svc.CreateThread(ctx, author, "Title", "")
	require.NoError(t, err)
	post, err := svc.CreatePost(ctx, author, thread.ID, "body")
	require.NoError(t, err)

	require.True(t, errors.Is(svc.DeletePost(ctx, post.ID, stranger, false), httpx.ErrForbidden))
	require.True(t, errors.Is(svc.DeleteThread(ctx, thread.ID, stranger, false), httpx.ErrForbidden))

	// Admins moderate anything.
	require.NoError(t, svc.DeletePost(ctx, post.ID, stranger, true))
	require.NoError(t, svc.DeleteThread(ctx, thread.ID, stranger, true))
}

func TestCreatePostValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	author := uuid.New()

	_, err := svc.CreateThread(ctx, author, "", "body")
	require.True(t, errors.Is(err, httpx.ErrValidation))

	thread, err := svc.CreateThread(ctx, author, "Title", "")
	require.NoError(t, err)

	_, err = svc.CreatePost(ctx, author, thread.ID, "")
	require.True(t, errors.Is(err, httpx.ErrValidation))

	_, err = svc.CreatePost(ctx, author, uuid.New(), "body")
	require.True(t, errors.Is(err, httpx.ErrNotFound))
}

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/httpx"
	"github.com/keymaxprot/backend/pkg/tokens"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	return &Service{
		Repo:      &GormRepo{DB: initTestDB(t)},
		JWTSecret: []byte("test-secret"),
		JWTExpiry: time.Hour,
	}
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alex", "Alex@Example.com", "password")
	require.NoError(t, err)
	require.NotEqual(t, "", user.ID.String())
	require.Equal(t, "alex@example.com", user.Email)
	require.Equal(t, RoleUser, user.Role)
	require.NotEqual(t, "password", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alex", "alex@example.com", "password")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "alex@example.com", "password2")
	require.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "alex@example.com", "password")
	require.True(t, errors.Is(err, httpx.ErrValidation))

	_, err = svc.Register(ctx, "Alex", "not-an-email", "password")
	require.True(t, errors.Is(err, httpx.ErrValidation))

	_, err = svc.Register(ctx, "Alex", "alex@example.com", "short")
	require.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alex", "alex@example.com", "password")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "alex@example.com", "password")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.True(t, res.ExpiresAt.After(time.Now()))

	claims, err := tokens.AccessClaimsFromToken(res.Token, svc.JWTSecret)
	require.NoError(t, err)
	require.Equal(t, res.User.ID.String(), claims.Subject)
	require.Equal(t, RoleUser, claims.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alex", "alex@example.com", "password")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alex@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alex", "alex@example.com", "password")
	require.NoError(t, err)

	updated, err := svc.UpdateRole(ctx, user.ID, RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, updated.Role)

	_, err = svc.UpdateRole(ctx, user.ID, "superuser")
	require.True(t, errors.Is(err, httpx.ErrValidation))
}

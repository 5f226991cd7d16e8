package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/httpx"
	"github.com/keymaxprot/backend/internal/logging"
	"github.com/keymaxprot/backend/pkg/hash"
	"github.com/keymaxprot/backend/pkg/tokens"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	Repo      *GormRepo
	JWTSecret []byte
	JWTExpiry time.Duration
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: name and valid email required", httpx.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", httpx.ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         RoleUser,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return nil, fmt.Errorf("%w: email already registered", httpx.ErrConflict)
		}
		l.Error("register_error", "error", err)
		return nil, err
	}

	l.Info("register_success", "user_id", user.ID)
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error("login_error", "error", err)
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := tokens.Issue(s.JWTSecret, user.ID.String(), user.Role, s.JWTExpiry)
	if err != nil {
		l.Error("login_error", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user", httpx.ErrNotFound)
	}
	return user, err
}

func (s *Service) ListUsers(ctx context.Context, offset, limit int) (int64, []User, error) {
	return s.Repo.ListUsers(ctx, offset, limit)
}

func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*User, error) {
	if role != RoleUser && role != RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", httpx.ErrValidation, role)
	}
	user, err := s.Repo.UpdateRole(ctx, id, role)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user", httpx.ErrNotFound)
	}
	return user, err
}

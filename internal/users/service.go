package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"poi-platform/internal/auth"
	"poi-platform/internal/rbac"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrAlreadyExists      = errors.New("user already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// AttemptLimiter bounds failed logins per identifier. Failures count against
// a rolling window; a successful login clears the counter.
type AttemptLimiter interface {
	Exhausted(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Clear(ctx context.Context, key string) error
}

// Service owns account registration and credential verification.
//
// Invariants:
//   - Password digests are write-only; they never leave this package.
//   - Tokens carry the user id and role at issuance time, nothing else.
//   - Every login failure (unknown identifier or bad password) is
//     indistinguishable to the caller and counts against the attempt limit.
type Service struct {
	repo    Repository
	hasher  *auth.Hasher
	tokens  *auth.Manager
	limiter AttemptLimiter

	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(repo Repository, hasher *auth.Hasher, tokens *auth.Manager, limiter AttemptLimiter) *Service {
	return &Service{
		repo:    repo,
		hasher:  hasher,
		tokens:  tokens,
		limiter: limiter,
		clock:   time.Now,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return User{}, ErrInvalidArgument
	}
	if len(req.Password) < 8 {
		return User{}, ErrPasswordTooShort
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		Role:         rbac.RoleUser,
		PasswordHash: digest,
		CreatedAt:    s.clock().UTC(),
	}
	return s.repo.Create(ctx, u)
}

// Login verifies credentials and issues a bearer token. The identifier may be
// a username or an email address.
func (s *Service) Login(ctx context.Context, identifier, password string) (User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return User{}, "", ErrInvalidArgument
	}

	key := "login_attempts:" + strings.ToLower(identifier)
	if s.limiter != nil {
		exhausted, err := s.limiter.Exhausted(ctx, key)
		if err != nil {
			return User{}, "", fmt.Errorf("attempt limiter: %w", err)
		}
		if exhausted {
			return User{}, "", ErrTooManyAttempts
		}
	}

	u, err := s.repo.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.recordFailure(ctx, key)
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		s.recordFailure(ctx, key)
		return User{}, "", ErrInvalidCredentials
	}

	if s.limiter != nil {
		// A stale counter must not lock out a user who just proved identity.
		if err := s.limiter.Clear(ctx, key); err != nil {
			return User{}, "", fmt.Errorf("attempt limiter: %w", err)
		}
	}

	token, err := s.tokens.Issue(s.clock(), u.ID, u.Role)
	if err != nil {
		return User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	if id == "" {
		return User{}, ErrInvalidArgument
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) recordFailure(ctx context.Context, key string) {
	if s.limiter == nil {
		return
	}
	// Best effort; a limiter outage must not mask the credential failure.
	_ = s.limiter.RecordFailure(ctx, key)
}

package admin

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"quotewizard/internal/pkg/jwt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type tokenService interface {
	GenerateToken(adminID, username, role string) (string, *jwt.Claims, error)
	ValidateToken(token string) (*jwt.Claims, error)
}

// Service authenticates admins and manages their sessions
type Service struct {
	admins   Repository
	jwt      tokenService
	sessions SessionStore
}

type LoginResult struct {
	AccessToken string     `json:"access_token"`
	ExpiresAt   time.Time  `json:"expires_at"`
	Admin       *AdminUser `json:"admin"`
}

func NewService(admins Repository, tokens tokenService, sessions SessionStore) *Service {
	return &Service{admins: admins, jwt: tokens, sessions: sessions}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// unknown usernames still pay for one bcrypt compare
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// VerifyCredentials checks a username and password. Unknown users and wrong
// passwords both return ErrInvalidCredentials.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (*AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			compareDummy(password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// Login verifies credentials, issues a token and records its session
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	admin, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, claims, err := s.jwt.GenerateToken(admin.ID.String(), admin.Username, RoleAdmin)
	if err != nil {
		return nil, err
	}

	expiresAt := claims.ExpiresAt.Time
	if err := s.sessions.Set(ctx, Session{
		ID:        claims.ID,
		AdminID:   admin.ID,
		Username:  admin.Username,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}

	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// Authenticate resolves a bearer token to its live session
func (s *Service) Authenticate(ctx context.Context, token string) (*Session, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Role != RoleAdmin {
		return nil, jwt.ErrInvalidToken
	}
	return s.sessions.Get(ctx, claims.ID)
}

// Logout ends the session
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}

func (s *Service) GetAdminByID(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	return s.admins.GetByID(ctx, id)
}

// HashPassword returns a bcrypt hash for storing in AdminUser.PasswordHash
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Upsert creates the admin or resets the password of an existing one
func (s *Service) Upsert(ctx context.Context, username, password string) (*AdminUser, bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, false, ErrInvalidCredentials
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, false, err
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrAdminNotFound):
		admin = &AdminUser{Username: username, PasswordHash: hash}
		if err := s.admins.Create(ctx, admin); err != nil {
			return nil, false, err
		}
		return admin, true, nil
	case err != nil:
		return nil, false, err
	}

	admin.PasswordHash = hash
	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, false, err
	}
	return admin, false, nil
}

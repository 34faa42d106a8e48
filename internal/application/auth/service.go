package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-music-gateway/internal/domain"
	"github.com/go-music-gateway/internal/infrastructure/token"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the minimal user persistence interface the service requires.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenProvider signs and verifies bearer credentials.
type TokenProvider interface {
	Sign(userID int64, email string) (string, error)
	Verify(tokenStr string) (*token.Claims, error)
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error)
	Verify(tokenStr string) (*token.Claims, error)
}

type service struct {
	users  UserStore
	tokens TokenProvider
	log    *slog.Logger
}

func NewService(users UserStore, tokens TokenProvider, log *slog.Logger) Service {
	return &service{users: users, tokens: tokens, log: log}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.Create(ctx, req.Email, string(hash))
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// Login checks the credentials and issues a signed bearer token. Both an
// unknown email and a wrong password map to the same unauthorized error.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	tok, err := s.tokens.Sign(u.ID, u.Email)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	s.log.Info("user logged in", "user_id", u.ID, "email", u.Email)
	return tok, u, nil
}

func (s *service) Verify(tokenStr string) (*token.Claims, error) {
	claims, err := s.tokens.Verify(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}
	return claims, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/carson-networks/neofin-server/internal/auth"
	"github.com/carson-networks/neofin-server/internal/operator/actions"
	"github.com/carson-networks/neofin-server/internal/storage"
	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

type User struct {
	ID    string
	Email string
}

// Session is an issued token and the user it belongs to.
type Session struct {
	Token string
	User  User
}

type AuthService struct {
	storage    *storage.Storage
	operator   ActionProcessor
	jwtManager *auth.JWTManager
}

func NewAuthService(store *storage.Storage, operator ActionProcessor, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		storage:    store,
		operator:   operator,
		jwtManager: jwtManager,
	}
}

// Register creates a user and signs them in.
func (s *AuthService) Register(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, &ValidationError{Details: []string{"email is invalid"}}
	}

	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrWeakPassword) || errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, &ValidationError{Details: []string{err.Error()}}
	}
	if err != nil {
		return nil, err
	}

	action := &actions.RegisterUser{Email: email, PasswordHash: hash}
	if err := s.operator.Process(ctx, action); err != nil {
		if errors.Is(err, sqlconfig.ErrDuplicate) {
			return nil, fmt.Errorf("register %s: %w", email, ErrConflict)
		}
		return nil, fmt.Errorf("register %s: %w", email, err)
	}

	return s.session(action.Result)
}

// Login returns auth.ErrInvalidCredentials for unknown emails and wrong passwords alike.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.storage.Users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}

	return s.session(user)
}

func (s *AuthService) session(user *sqlconfig.User) (*Session, error) {
	token, err := s.jwtManager.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token: token,
		User:  User{ID: user.ID.String(), Email: user.Email},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

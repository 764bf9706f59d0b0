// Package auth validates credentials and manages session identities.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gotodo/forms"
	"gotodo/models"
	"gotodo/sessions"
	"gotodo/store"
)

// ErrInvalidCredentials covers both unknown usernames and wrong
// passwords so the login form leaks nothing about which it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is the authenticated user bound to a request's session token.
type Identity struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

type Service struct {
	users      store.UserStore
	sessions   sessions.Store
	sessionTTL time.Duration
}

func NewService(users store.UserStore, sessionStore sessions.Store, sessionTTL time.Duration) *Service {
	return &Service{users: users, sessions: sessionStore, sessionTTL: sessionTTL}
}

func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(digest), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register validates the form, hashes the password and stores the user.
// A taken username comes back as a field error on the form.
func (s *Service) Register(ctx context.Context, form forms.RegisterForm) (int64, error) {
	if err := forms.Validate(form); err != nil {
		return 0, err
	}

	hash, err := HashPassword(form.Password)
	if err != nil {
		return 0, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, form.Username, hash)
	if errors.Is(err, store.ErrUsernameTaken) {
		return 0, &forms.ValidationError{Fields: map[string]string{
			"Username": "このユーザー名は既に使われています。",
		}}
	}
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Login checks the credentials against the stored digest and, on
// success, establishes a session bound to the user id.
func (s *Service) Login(ctx context.Context, username, password string) (models.Session, error) {
	user, err := s.users.UserByName(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, err
	}

	// The guest row carries an empty digest and must never authenticate.
	if user.PasswordHash == "" || !CheckPasswordHash(password, user.PasswordHash) {
		return models.Session{}, ErrInvalidCredentials
	}

	return s.sessions.Create(ctx, user.ID, s.sessionTTL)
}

// Logout destroys the session. Unknown or empty tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

// Current resolves a session token to its identity. A missing, expired
// or orphaned session yields (nil, nil): the request is simply logged out.
func (s *Service) Current(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessions.Get(ctx, token)
	if errors.Is(err, sessions.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := s.users.UserByID(ctx, session.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &Identity{UserID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin}, nil
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"flightdeck.io/console/internal/authz"
	"flightdeck.io/console/internal/travel"
)

// persistedUser is the serialized form of the "user" entry.
type persistedUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Store owns the session lifecycle: it authenticates against the booking
// platform, persists the resulting identity in the keyring and restores or
// destroys it. Side effects are confined to the keyring.
type Store struct {
	ring Keyring
	auth travel.Authenticator
	now  func() time.Time
}

// Option configures Store behavior.
type Option func(*Store)

// WithClock overrides the time source (used by tests for token expiry).
func WithClock(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewStore constructs a session store over ring and auth.
func NewStore(ring Keyring, auth travel.Authenticator, opts ...Option) *Store {
	s := &Store{ring: ring, auth: auth, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login authenticates the operator. Invalid credentials and malformed
// platform responses surface as *AuthError; the persisted state is only
// written when the whole session is known good, and a failed write tears
// down whatever was persisted so callers never observe a partial session.
func (s *Store) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, &AuthError{Reason: "email and password are required"}
	}
	payload, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, authFailure(err)
	}
	return s.adopt(ctx, payload)
}

// Register creates a new identity on the platform and opens a session with
// the same contract as Login.
func (s *Store) Register(ctx context.Context, email, password, username, nationalID string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)
	if email == "" || password == "" || username == "" {
		return nil, &AuthError{Reason: "email, password and username are required"}
	}
	payload, err := s.auth.Register(ctx, travel.RegisterRequest{
		Email:      email,
		Password:   password,
		Username:   username,
		NationalID: strings.TrimSpace(nationalID),
	})
	if err != nil {
		return nil, authFailure(err)
	}
	return s.adopt(ctx, payload)
}

// adopt normalizes an auth payload and persists it as the current session.
func (s *Store) adopt(ctx context.Context, payload travel.AuthPayload) (*Session, error) {
	role, ok := authz.ParseRole(payload.User.Role)
	if !ok || payload.AccessToken == "" || payload.User.ID == 0 {
		return nil, &AuthError{Reason: "malformed authentication response"}
	}
	sess := &Session{
		UserID:       payload.User.ID,
		Email:        payload.User.Email,
		Username:     payload.User.Username,
		Role:         role,
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
	}
	if err := s.persist(ctx, sess); err != nil {
		// Never leave a half-written session behind.
		s.clear(ctx)
		return nil, fmt.Errorf("session: persist: %w", err)
	}
	return sess, nil
}

func (s *Store) persist(ctx context.Context, sess *Session) error {
	userJSON, err := json.Marshal(persistedUser{
		ID:       sess.UserID,
		Email:    sess.Email,
		Username: sess.Username,
		Role:     string(sess.Role),
	})
	if err != nil {
		return err
	}
	entries := []struct{ key, value string }{
		{KeyAuthToken, sess.AccessToken},
		{KeyRefreshToken, sess.RefreshToken},
		{KeyIsAuthenticated, "true"},
		{KeyUser, string(userJSON)},
	}
	for _, e := range entries {
		if err := s.ring.Set(ctx, e.key, e.value); err != nil {
			return err
		}
	}
	return nil
}

// Restore reads the persisted session at startup. Missing or unparsable
// entries yield (nil, nil) — "no session" — never an error; only keyring
// infrastructure failures are reported.
func (s *Store) Restore(ctx context.Context) (*Session, error) {
	token, ok, err := s.ring.Get(ctx, KeyAuthToken)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return nil, nil
	}
	flag, ok, err := s.ring.Get(ctx, KeyIsAuthenticated)
	if err != nil {
		return nil, err
	}
	if !ok || flag != "true" {
		return nil, nil
	}
	rawUser, ok, err := s.ring.Get(ctx, KeyUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var user persistedUser
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, nil
	}
	role, ok := authz.ParseRole(user.Role)
	if !ok || user.ID == 0 {
		return nil, nil
	}
	if s.tokenExpired(token) {
		return nil, nil
	}
	refresh, ok, err := s.ring.Get(ctx, KeyRefreshToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &Session{
		UserID:       user.ID,
		Email:        user.Email,
		Username:     user.Username,
		Role:         role,
		AccessToken:  token,
		RefreshToken: refresh,
	}, nil
}

// Logout destroys the persisted session. It is idempotent and deliberately
// forgiving: a keyring delete failure is reported but a second call is
// always safe.
func (s *Store) Logout(ctx context.Context) error {
	return s.clear(ctx)
}

func (s *Store) clear(ctx context.Context) error {
	var errs []error
	for _, key := range sessionKeys() {
		if err := s.ring.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// tokenExpired inspects the access token's exp claim without verifying the
// signature (verification belongs to the platform). Tokens that are not
// JWTs or carry no expiry are presumed live; the platform rejects them with
// a 401 on first use if they are not.
func (s *Store) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return s.now().After(exp.Time)
}

// authFailure maps platform auth errors into the session error taxonomy.
func authFailure(err error) error {
	if errors.Is(err, travel.ErrUnauthorized) {
		return &AuthError{Reason: "invalid credentials"}
	}
	var oe *travel.OperationError
	if errors.As(err, &oe) {
		if oe.Status >= 400 && oe.Status < 500 {
			return &AuthError{Reason: oe.Message}
		}
	}
	return fmt.Errorf("session: authenticate: %w", err)
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"fuelops/internal/api"
	"fuelops/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotAuthenticated is returned when an operation needs a logged-in user
var ErrNotAuthenticated = errors.New("not authenticated - please log in")

// state is what gets persisted between CLI invocations
type state struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Store holds the current authenticated user and token. It is created at
// app start, injected into everything that needs identity, and torn down
// at logout. A 401 from any request clears it.
type Store struct {
	client *api.Client
	path   string
	state  state
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	OK    bool         `json:"ok"`
	Token string       `json:"token,omitempty"`
	User  *models.User `json:"user,omitempty"`
}

// NewStore creates the session store, restoring any persisted session and
// wiring the client's 401 handling to clear it
func NewStore(client *api.Client, path string) *Store {
	s := &Store{client: client, path: path}

	if err := s.load(); err == nil && s.state.Token != "" {
		client.SetToken(s.state.Token)
		if exp, ok := tokenExpiry(s.state.Token); ok && time.Now().After(exp) {
			log.Printf("⚠️  Stored session token expired at %v - clearing", exp)
			s.Clear()
		}
	}

	client.OnUnauthorized(s.Clear)
	return s
}

// Login authenticates against the station API and stores the session
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	log.Printf("🔐 Login attempt for: %s", email)

	var resp loginResponse
	err := s.client.PostRaw(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil && !resp.OK {
		if errors.Is(err, api.ErrUnauthorized) {
			return nil, errors.New("invalid email or password")
		}
		return nil, err
	}
	if !resp.OK || resp.Token == "" {
		return nil, errors.New("invalid email or password")
	}
	if resp.User == nil {
		return nil, errors.New("malformed login response: missing user")
	}

	s.state = state{Token: resp.Token, User: resp.User}
	s.client.SetToken(resp.Token)

	if err := s.save(); err != nil {
		log.Printf("⚠️  Failed to persist session: %v", err)
	}

	log.Printf("✅ Login successful: %s (%s)", resp.User.Email, resp.User.Role)
	return resp.User, nil
}

// Logout tears the session down
func (s *Store) Logout() {
	s.Clear()
	log.Printf("✅ Logged out")
}

// Clear wipes the in-memory session and the session file. Also invoked by
// the API client whenever the server answers 401.
func (s *Store) Clear() {
	s.state = state{}
	s.client.SetToken("")
	if s.path != "" {
		os.Remove(s.path)
	}
}

// CurrentUser returns the logged-in user, or nil
func (s *Store) CurrentUser() *models.User {
	return s.state.User
}

// IsAuthenticated returns true while a session is held
func (s *Store) IsAuthenticated() bool {
	return s.state.Token != ""
}

func (s *Store) load() error {
	if s.path == "" {
		return errors.New("no session path")
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, &s.state)
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// tokenExpiry extracts the exp claim without verifying the signature.
// Verification is the server's job; the client only uses exp to avoid
// sending requests with a token it already knows is dead.
func tokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

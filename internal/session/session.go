package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/datascope/datascope-cli/internal/config"
)

// Session is the persisted auth state. The refresh token is stored but
// never used beyond storage; expiry is handled reactively when a
// protected call comes back rejected.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
}

// Store persists the session under the config directory.
type Store struct {
	path    string
	current Session
}

func sessionPath() string {
	configDir, err := config.EnsureConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "session.json")
}

// Load reads the persisted session, if any. A missing file is simply an
// anonymous session.
func Load() (*Store, error) {
	s := &Store{path: sessionPath()}
	if s.path == "" {
		return s, nil
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if err := json.Unmarshal(data, &s.current); err != nil {
		// A corrupt session file degrades to anonymous
		s.current = Session{}
	}
	return s, nil
}

// Current returns the in-memory session.
func (s *Store) Current() Session {
	return s.current
}

// Username returns the logged-in username, empty when anonymous.
func (s *Store) Username() string {
	return s.current.Username
}

// AccessToken returns the bearer credential for protected calls.
func (s *Store) AccessToken() string {
	return s.current.AccessToken
}

// Authenticated reports whether a non-empty access token is present. This
// is the protected-route guard: it never makes a network call.
func (s *Store) Authenticated() bool {
	return s.current.AccessToken != ""
}

// Set persists tokens and username after a successful login.
func (s *Store) Set(access, refresh, username string) error {
	s.current = Session{
		AccessToken:  access,
		RefreshToken: refresh,
		Username:     username,
	}
	if s.path == "" {
		return fmt.Errorf("cannot determine session path")
	}

	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear drops the session, both in memory and on disk. Safe to call any
// number of times; concurrent 401 handlers may all end up here.
func (s *Store) Clear() error {
	s.current = Session{}
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

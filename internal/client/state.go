package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gamebalance/internal/defaults"

	"gopkg.in/yaml.v3"
)

// State is what the client keeps between runs. Without an access token the
// client is in demo mode.
type State struct {
	AccessToken  string             `yaml:"accessToken,omitempty"`
	UserID       string             `yaml:"userId,omitempty"`
	Email        string             `yaml:"email,omitempty"`
	Username     string             `yaml:"username,omitempty"`
	DemoSettings *defaults.Settings `yaml:"demoSettings,omitempty"`

	path string
}

// DefaultStatePath returns $XDG_CONFIG_HOME/gamebalance/state.yml, falling back to the
// platform config directory under the user's home.
func DefaultStatePath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error getting user home directory: %w", err)
		}
		if runtime.GOOS == "windows" {
			configHome = filepath.Join(homeDir, "AppData", "Roaming")
		} else {
			configHome = filepath.Join(homeDir, ".config")
		}
	}
	return filepath.Join(configHome, "gamebalance", "state.yml"), nil
}

// LoadState reads the state file at path. A missing file yields an empty state bound to path.
func LoadState(path string) (*State, error) {
	state := &State{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading state file: %w", err)
	}

	if err := yaml.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("error parsing state file %s: %w", path, err)
	}
	return state, nil
}

func (s *State) Save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("error writing state file: %w", err)
	}
	return nil
}

func (s *State) Path() string {
	return s.path
}

func (s *State) Demo() bool {
	return s.AccessToken == ""
}

// SignOut drops the account fields. Demo settings are kept.
func (s *State) SignOut() {
	s.AccessToken = ""
	s.UserID = ""
	s.Email = ""
	s.Username = ""
}

// Package settings persists per-user presentation settings (theme, language,
// currency) as one JSON file per user. There is no global current-language
// state: callers load the settings object they need and pass it along.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/language"

	"finanger/internal/currency"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var (
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrInvalidLanguage = errors.New("invalid language tag")
	ErrUnreadable      = errors.New("settings unreadable")
)

// Settings is the full per-user settings record.
type Settings struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
	Currency string `json:"currency"`
}

// Default is what a user gets before ever saving settings.
func Default() Settings {
	return Settings{Theme: ThemeLight, Language: "en", Currency: currency.CNY}
}

func (s Settings) Validate() error {
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, s.Theme)
	}
	if _, err := language.Parse(s.Language); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, s.Language)
	}
	if !currency.IsSupported(s.Currency) {
		return fmt.Errorf("%w: %s", currency.ErrUnsupportedCurrency, s.Currency)
	}
	return nil
}

// Store reads and writes settings files under a base directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (st *Store) path(userID string) string {
	return filepath.Join(st.dir, userID+".json")
}

// Load returns the user's settings, or the defaults when none were saved.
func (st *Store) Load(userID string) (Settings, error) {
	data, err := os.ReadFile(st.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return s, nil
}

// Save validates and persists the settings, creating the directory on demand.
func (st *Store) Save(userID string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(st.dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	tmp := st.path(userID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, st.path(userID)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

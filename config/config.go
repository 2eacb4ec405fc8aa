/*
Package config persists and validates the tool's user configuration.

PURPOSE:
  A small SQLite-backed key-value store holding credentials and preferences,
  plus an explicit Settings value the rest of the program receives once at
  startup. Core logic never performs ambient configuration lookups.

KEYS:
  absenceIOCreds    "<id>:<key>" pair for the absence service
  workHoursPerWeek  contracted hours per week (default 38.5)
  removeLunchBreak  "true"/"false" (default true)
  workCalendar      ICS URL or file path of the work calendar

VALIDATION:
  Writes are validated per key; an invalid value is rejected with a
  descriptive message and the previously stored value stays untouched.

OVERRIDES:
  A .env file (when present) and the environment are consulted when loading
  Settings: WORKTIME_ABSENCE_CREDS and WORKTIME_CALENDAR take precedence
  over stored values. WORKTIME_DB relocates the store itself and is handled
  by the CLI wiring.
*/
package config

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const (
	KeyCredentials      = "absenceIOCreds"
	KeyHoursPerWeek     = "workHoursPerWeek"
	KeyRemoveLunchBreak = "removeLunchBreak"
	KeyCalendar         = "workCalendar"
)

// Keys lists the known configuration keys in display order.
func Keys() []string {
	return []string{KeyCredentials, KeyHoursPerWeek, KeyRemoveLunchBreak, KeyCalendar}
}

// ValidationError reports a rejected configuration write.
type ValidationError struct {
	Key   string
	Value string
	Hint  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Key, e.Hint)
}

// Settings is the explicit configuration value handed to the driver once at
// process start.
type Settings struct {
	CredentialsID    string
	CredentialsKey   string
	HoursPerWeek     decimal.Decimal
	RemoveLunchBreak bool
	Calendar         string
}

// HasCredentials reports whether the absence service can be reached.
func (s Settings) HasCredentials() bool {
	return s.CredentialsID != "" && s.CredentialsKey != ""
}

// DefaultPath returns the default location of the settings database.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "worktime", "config.db"), nil
}

// =============================================================================
// STORE
// =============================================================================

// Store is the SQLite-backed settings store.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (and if necessary creates) the settings database at path.
// ":memory:" gives an ephemeral store for tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening settings database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS settings (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating settings schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Get returns the stored value for key and whether one exists.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set validates and stores a value. On validation failure nothing changes.
func (s *Store) Set(key, value string) error {
	if err := validate(key, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

func validate(key, value string) error {
	switch key {
	case KeyCredentials:
		parts := strings.Split(value, ":")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return &ValidationError{Key: key, Value: value, Hint: "expected format <ID>:<KEY>"}
		}
	case KeyHoursPerWeek:
		hours, err := strconv.ParseFloat(value, 64)
		if err != nil || hours <= 0 {
			return &ValidationError{Key: key, Value: value, Hint: "expected a positive number of hours"}
		}
	case KeyRemoveLunchBreak:
		lower := strings.ToLower(value)
		if lower != "true" && lower != "false" {
			return &ValidationError{Key: key, Value: value, Hint: "expected 'true' or 'false'"}
		}
	case KeyCalendar:
		if value == "" {
			return &ValidationError{Key: key, Value: value, Hint: "expected an ICS URL or file path"}
		}
	default:
		return &ValidationError{Key: key, Value: value, Hint: "unknown configuration key"}
	}
	return nil
}

// =============================================================================
// SETTINGS LOADING
// =============================================================================

// Load assembles Settings from stored values, defaults, and environment
// overrides. A .env file in the working directory is honored when present.
func (s *Store) Load() (Settings, error) {
	_ = godotenv.Load()

	settings := Settings{
		HoursPerWeek:     decimal.NewFromFloat(38.5),
		RemoveLunchBreak: true,
	}

	if creds := firstNonEmpty(os.Getenv("WORKTIME_ABSENCE_CREDS"), s.stored(KeyCredentials)); creds != "" {
		// Stored values were validated at write time; the env override was
		// not, so both go through the same check here.
		if err := validate(KeyCredentials, creds); err != nil {
			return Settings{}, err
		}
		parts := strings.SplitN(creds, ":", 2)
		settings.CredentialsID = parts[0]
		settings.CredentialsKey = parts[1]
	}

	if hours := s.stored(KeyHoursPerWeek); hours != "" {
		parsed, err := decimal.NewFromString(hours)
		if err != nil {
			return Settings{}, &ValidationError{Key: KeyHoursPerWeek, Value: hours, Hint: "stored value is not a number"}
		}
		settings.HoursPerWeek = parsed
	}

	if lunch := s.stored(KeyRemoveLunchBreak); lunch != "" {
		settings.RemoveLunchBreak = strings.EqualFold(lunch, "true")
	}

	settings.Calendar = firstNonEmpty(os.Getenv("WORKTIME_CALENDAR"), s.stored(KeyCalendar))

	return settings, nil
}

// stored reads a key, treating lookup failures as absence. Load reports
// malformed values, not storage hiccups on optional keys.
func (s *Store) stored(key string) string {
	value, _, _ := s.Get(key)
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

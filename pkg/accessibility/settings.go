// Package accessibility holds the learner's display preferences and
// persists them through a [store.Store].
package accessibility

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/matzehuels/abclisten/pkg/errors"
	"github.com/matzehuels/abclisten/pkg/store"
)

// StoreKey is the key the settings are persisted under.
const StoreKey = "settings:accessibility"

// Color schemes.
const (
	SchemeSystem = "system"
	SchemeLight  = "light"
	SchemeDark   = "dark"
)

// Settings are the accessibility preferences.
type Settings struct {
	FontScale     float64 `json:"fontScale" yaml:"fontScale" validate:"gte=0.5,lte=3"`
	HighContrast  bool    `json:"highContrast" yaml:"highContrast"`
	ReducedMotion bool    `json:"reducedMotion" yaml:"reducedMotion"`
	DyslexiaFont  bool    `json:"dyslexiaFont" yaml:"dyslexiaFont"`
	LineSpacing   float64 `json:"lineSpacing" yaml:"lineSpacing" validate:"gte=1,lte=3"`
	ColorScheme   string  `json:"colorScheme" yaml:"colorScheme" validate:"oneof=system light dark"`
}

// Default returns the settings used before the learner changes anything.
func Default() Settings {
	return Settings{
		FontScale:   1,
		LineSpacing: 1.5,
		ColorScheme: SchemeSystem,
	}
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	return errors.ValidateStruct(errors.ErrCodeInvalidSetting, s)
}

// Keys lists the setting names accepted by [Manager.Set].
var Keys = []string{"fontScale", "highContrast", "reducedMotion", "dyslexiaFont", "lineSpacing", "colorScheme"}

// With returns a copy of s with the named setting parsed from value.
func (s Settings) With(key, value string) (Settings, error) {
	value = strings.TrimSpace(value)
	var err error
	switch key {
	case "fontScale":
		s.FontScale, err = strconv.ParseFloat(value, 64)
	case "lineSpacing":
		s.LineSpacing, err = strconv.ParseFloat(value, 64)
	case "highContrast":
		s.HighContrast, err = strconv.ParseBool(value)
	case "reducedMotion":
		s.ReducedMotion, err = strconv.ParseBool(value)
	case "dyslexiaFont":
		s.DyslexiaFont, err = strconv.ParseBool(value)
	case "colorScheme":
		s.ColorScheme = strings.ToLower(value)
	default:
		return s, errors.New(errors.ErrCodeInvalidSetting, "unknown setting %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	if err != nil {
		return s, errors.Wrap(errors.ErrCodeInvalidSetting, err, "invalid value %q for %s", value, key)
	}
	return s, s.Validate()
}

// Manager owns the current settings and writes every change through to the
// store. It is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	store    store.Store
	settings Settings
}

// NewManager creates a manager holding [Default] settings. Call Load to
// read persisted values.
func NewManager(s store.Store) *Manager {
	return &Manager{store: s, settings: Default()}
}

// Load reads persisted settings. Missing settings leave the defaults in
// place; invalid persisted values are rejected and the defaults kept.
func (m *Manager) Load(ctx context.Context) (Settings, error) {
	data, ok, err := m.store.Get(ctx, StoreKey)
	if err != nil {
		return m.Current(), errors.Wrap(errors.ErrCodeStorage, err, "load settings")
	}
	if !ok {
		return m.Current(), nil
	}
	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return m.Current(), errors.Wrap(errors.ErrCodeStorage, err, "decode settings")
	}
	if err := s.Validate(); err != nil {
		return m.Current(), err
	}

	m.mu.Lock()
	m.settings = s
	m.mu.Unlock()
	return s, nil
}

// Current returns the settings in effect.
func (m *Manager) Current() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Update applies fn to a copy of the current settings, validates the result
// and persists it.
func (m *Manager) Update(ctx context.Context, fn func(*Settings)) (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.settings
	fn(&next)
	if err := next.Validate(); err != nil {
		return m.settings, err
	}
	if err := m.save(ctx, next); err != nil {
		return m.settings, err
	}
	m.settings = next
	return next, nil
}

// Replace validates and persists s as a whole.
func (m *Manager) Replace(ctx context.Context, s Settings) (Settings, error) {
	return m.Update(ctx, func(cur *Settings) { *cur = s })
}

// Set changes one setting by name, e.g. Set(ctx, "fontScale", "1.25").
func (m *Manager) Set(ctx context.Context, key, value string) (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := m.settings.With(key, value)
	if err != nil {
		return m.settings, err
	}
	if err := m.save(ctx, next); err != nil {
		return m.settings, err
	}
	m.settings = next
	return next, nil
}

// Reset restores the defaults and removes the persisted settings.
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Remove(ctx, StoreKey); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "reset settings")
	}
	m.settings = Default()
	return nil
}

func (m *Manager) save(ctx context.Context, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := m.store.Set(ctx, StoreKey, data); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save settings")
	}
	return nil
}

// Package prefs holds the user's persisted display preference.
package prefs

import (
	"context"
	"fmt"
	"strings"

	"github.com/zoomerslab/hsclab/internal/store"
)

// DisplayModeKey is the preference key for the display mode.
const DisplayModeKey = "display_mode"

// DisplayMode is the UI palette choice.
type DisplayMode string

const (
	Standard DisplayMode = "standard"
	Stealth  DisplayMode = "stealth"
)

// Valid reports whether m is one of the two known modes.
func (m DisplayMode) Valid() bool {
	return m == Standard || m == Stealth
}

// Toggled returns the other mode.
func (m DisplayMode) Toggled() DisplayMode {
	if m == Stealth {
		return Standard
	}
	return Stealth
}

// ParseDisplayMode accepts "standard" or "stealth" in any case.
func ParseDisplayMode(s string) (DisplayMode, bool) {
	m := DisplayMode(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}

// LoadDisplayMode reads the stored mode. A missing or unrecognized value
// yields Standard.
func LoadDisplayMode(ctx context.Context, repo store.PreferenceRepo) (DisplayMode, error) {
	v, ok, err := repo.Get(ctx, DisplayModeKey)
	if err != nil {
		return Standard, fmt.Errorf("load display mode: %w", err)
	}
	if !ok {
		return Standard, nil
	}
	m, ok := ParseDisplayMode(v)
	if !ok {
		return Standard, nil
	}
	return m, nil
}

// SaveDisplayMode persists m.
func SaveDisplayMode(ctx context.Context, repo store.PreferenceRepo, m DisplayMode) error {
	if !m.Valid() {
		return fmt.Errorf("invalid display mode %q", m)
	}
	return repo.Set(ctx, DisplayModeKey, string(m))
}

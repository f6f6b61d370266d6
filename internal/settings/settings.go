// Package settings manages user preferences for the calculator UI.
package settings

import (
	"context"
	"fmt"
)

// Settings holds the user-facing preferences.
type Settings struct {
	Theme       string `json:"theme"`
	DisplayName string `json:"displayName"`
	Currency    string `json:"currency"`
	Locale      string `json:"locale"`
}

// Defaults returns the settings used before the user has saved any.
func Defaults() Settings {
	return Settings{
		Theme:    "light",
		Currency: "RUB",
		Locale:   "ru-RU",
	}
}

// Validate checks that the settings values are acceptable.
func (s Settings) Validate() error {
	switch s.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("invalid theme %q, must be light or dark", s.Theme)
	}
	if len(s.Currency) != 3 {
		return fmt.Errorf("invalid currency %q, must be a 3-letter code", s.Currency)
	}
	return nil
}

// Store persists user settings.
type Store interface {
	Get(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
	Close() error
}

package config

import (
	"os"

	"fyne.io/fyne/v2"

	"github.com/amreinch/removebg-pro/internal/model"
	"github.com/amreinch/removebg-pro/internal/platform"
	"github.com/amreinch/removebg-pro/internal/policy"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL   = "api_base_url"
	KeySaveDir      = "save_directory"
	KeyOutputFormat = "output_format"
	KeyAuthToken    = "auth_token"
	KeyAutoReveal   = "auto_reveal_on_save"
)

// Environment overrides, loaded from the process environment or a .env file
const (
	EnvAPIBaseURL = "REMOVEBG_API_URL"
	EnvGatingMode = "REMOVEBG_GATING_MODE"
)

// Default values
const (
	DefaultAPIBaseURL   = "https://api.removebg.pro"
	DefaultOutputFormat = model.FormatPNG
	DefaultAutoReveal   = true
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetAPIBaseURL returns the service base URL. The environment variable wins
// over the stored preference so a .env file can point a build at a staging
// deployment without touching preferences.
func (s *Settings) GetAPIBaseURL() string {
	if url := os.Getenv(EnvAPIBaseURL); url != "" {
		return url
	}
	url := s.app.Preferences().String(KeyAPIBaseURL)
	if url == "" {
		s.SetAPIBaseURL(DefaultAPIBaseURL)
		return DefaultAPIBaseURL
	}
	return url
}

// SetAPIBaseURL sets the service base URL
func (s *Settings) SetAPIBaseURL(url string) {
	s.app.Preferences().SetString(KeyAPIBaseURL, url)
}

// GetGatingMode returns the configured credit gating mode. Unknown values
// fall back to the default rather than failing startup.
func (s *Settings) GetGatingMode() policy.Mode {
	mode, err := policy.ParseMode(os.Getenv(EnvGatingMode))
	if err != nil {
		return policy.DefaultMode
	}
	return mode
}

// GetSaveDirectory returns the directory downloaded images are saved to
func (s *Settings) GetSaveDirectory() string {
	dir := s.app.Preferences().String(KeySaveDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = os.TempDir()
		}
		s.SetSaveDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetSaveDirectory sets the save directory
func (s *Settings) SetSaveDirectory(dir string) {
	s.app.Preferences().SetString(KeySaveDir, dir)
}

// GetOutputFormat returns the preferred output format
func (s *Settings) GetOutputFormat() model.OutputFormat {
	format, err := model.ParseOutputFormat(s.app.Preferences().String(KeyOutputFormat))
	if err != nil {
		s.SetOutputFormat(DefaultOutputFormat)
		return DefaultOutputFormat
	}
	return format
}

// SetOutputFormat sets the preferred output format
func (s *Settings) SetOutputFormat(format model.OutputFormat) {
	s.app.Preferences().SetString(KeyOutputFormat, string(format))
}

// GetOutputFormatOptions returns available output format options
func (s *Settings) GetOutputFormatOptions() []model.OutputFormat {
	return model.OutputFormats()
}

// GetAutoRevealOnSave returns whether to reveal saved images in the file
// manager
func (s *Settings) GetAutoRevealOnSave() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoReveal, DefaultAutoReveal)
}

// SetAutoRevealOnSave sets whether to reveal saved images in the file manager
func (s *Settings) SetAutoRevealOnSave(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoReveal, autoReveal)
}

// Token returns the persisted session token, or "" when logged out
func (s *Settings) Token() string {
	return s.app.Preferences().String(KeyAuthToken)
}

// SetToken persists the session token
func (s *Settings) SetToken(token string) {
	s.app.Preferences().SetString(KeyAuthToken, token)
}

// ClearToken removes the persisted session token
func (s *Settings) ClearToken() {
	s.app.Preferences().RemoveValue(KeyAuthToken)
}

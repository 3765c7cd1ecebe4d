package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/amreinch/removebg-pro/internal/model"
	"github.com/amreinch/removebg-pro/internal/policy"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestAPIBaseURL(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	url := settings.GetAPIBaseURL()
	if url != DefaultAPIBaseURL {
		t.Errorf("Expected default base URL %s, got %s", DefaultAPIBaseURL, url)
	}

	// Test setting custom value
	customURL := "https://staging.removebg.pro"
	settings.SetAPIBaseURL(customURL)

	retrievedURL := settings.GetAPIBaseURL()
	if retrievedURL != customURL {
		t.Errorf("Expected base URL %s, got %s", customURL, retrievedURL)
	}
}

func TestAPIBaseURL_EnvironmentOverride(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)
	settings.SetAPIBaseURL("https://stored.example.com")

	t.Setenv(EnvAPIBaseURL, "https://env.example.com")

	if url := settings.GetAPIBaseURL(); url != "https://env.example.com" {
		t.Errorf("Environment must override the stored preference, got %s", url)
	}
}

func TestGatingMode(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if mode := settings.GetGatingMode(); mode != policy.DefaultMode {
		t.Errorf("Expected default gating mode %s, got %s", policy.DefaultMode, mode)
	}

	// Test environment value
	t.Setenv(EnvGatingMode, string(policy.GateOnProcess))
	if mode := settings.GetGatingMode(); mode != policy.GateOnProcess {
		t.Errorf("Expected gating mode %s, got %s", policy.GateOnProcess, mode)
	}

	// Unknown values fall back to the default
	t.Setenv(EnvGatingMode, "gate_on_everything")
	if mode := settings.GetGatingMode(); mode != policy.DefaultMode {
		t.Errorf("Expected fallback to %s, got %s", policy.DefaultMode, mode)
	}
}

func TestSaveDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetSaveDirectory()
	if dir == "" {
		t.Error("Save directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/pictures"
	settings.SetSaveDirectory(customDir)

	retrievedDir := settings.GetSaveDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected save directory %s, got %s", customDir, retrievedDir)
	}
}

func TestOutputFormat(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	format := settings.GetOutputFormat()
	if format != DefaultOutputFormat {
		t.Errorf("Expected default output format %s, got %s", DefaultOutputFormat, format)
	}

	// Test setting custom value
	settings.SetOutputFormat(model.FormatWebP)

	retrievedFormat := settings.GetOutputFormat()
	if retrievedFormat != model.FormatWebP {
		t.Errorf("Expected output format %s, got %s", model.FormatWebP, retrievedFormat)
	}
}

func TestGetOutputFormatOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetOutputFormatOptions()
	expectedOptions := []model.OutputFormat{model.FormatPNG, model.FormatJPG, model.FormatWebP}

	if len(options) != len(expectedOptions) {
		t.Fatalf("Expected %d format options, got %d", len(expectedOptions), len(options))
	}

	for i, expected := range expectedOptions {
		if options[i] != expected {
			t.Errorf("Format option %d: expected %s, got %s", i, expected, options[i])
		}
	}
}

func TestAutoRevealOnSave(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if !settings.GetAutoRevealOnSave() {
		t.Error("Auto reveal should default to true")
	}

	settings.SetAutoRevealOnSave(false)
	if settings.GetAutoRevealOnSave() {
		t.Error("Expected auto reveal disabled after SetAutoRevealOnSave(false)")
	}
}

func TestTokenStore(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.Token() != "" {
		t.Error("Token should be empty initially")
	}

	settings.SetToken("tok-1")
	if settings.Token() != "tok-1" {
		t.Errorf("Expected token tok-1, got %q", settings.Token())
	}

	settings.ClearToken()
	if settings.Token() != "" {
		t.Error("Token should be empty after ClearToken")
	}
}

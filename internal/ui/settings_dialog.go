package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/amreinch/removebg-pro/internal/config"
	"github.com/amreinch/removebg-pro/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog

	// UI components
	saveDirEntry    *widget.Entry
	apiURLEntry     *widget.Entry
	formatSelect    *widget.Select
	autoRevealCheck *widget.Check
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Save directory selection
	sd.saveDirEntry = widget.NewEntry()
	sd.saveDirEntry.SetPlaceHolder("Save directory path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	saveDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.saveDirEntry)

	// Service base URL
	sd.apiURLEntry = widget.NewEntry()
	sd.apiURLEntry.SetPlaceHolder(config.DefaultAPIBaseURL)

	// Output format selection
	formatOptions := []string{}
	for _, format := range sd.settings.GetOutputFormatOptions() {
		formatOptions = append(formatOptions, string(format))
	}
	sd.formatSelect = widget.NewSelect(formatOptions, nil)

	// Auto reveal toggle
	sd.autoRevealCheck = widget.NewCheck("Reveal saved images in the file manager", nil)

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Download Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Save Directory:"),
		saveDirRow,

		widget.NewLabel("Output Format:"),
		sd.formatSelect,

		sd.autoRevealCheck,

		widget.NewSeparator(),
		widget.NewLabel("Service Settings"),
		widget.NewSeparator(),

		widget.NewLabel("API Base URL:"),
		sd.apiURLEntry,
		widget.NewLabel("Takes effect after restart"),
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 400))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.saveDirEntry.SetText(sd.settings.GetSaveDirectory())
	sd.apiURLEntry.SetText(sd.settings.GetAPIBaseURL())
	sd.formatSelect.SetSelected(string(sd.settings.GetOutputFormat()))
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnSave())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.saveDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Validate and save save directory
	saveDir := sd.saveDirEntry.Text
	if saveDir != "" {
		sd.settings.SetSaveDirectory(saveDir)
	}

	// Save base URL
	if sd.apiURLEntry.Text != "" {
		sd.settings.SetAPIBaseURL(sd.apiURLEntry.Text)
	}

	// Save output format
	if format, err := model.ParseOutputFormat(sd.formatSelect.Selected); err == nil {
		sd.settings.SetOutputFormat(format)
	}

	// Save auto reveal
	sd.settings.SetAutoRevealOnSave(sd.autoRevealCheck.Checked)

	// Show confirmation
	dialog.ShowInformation("Settings", "Settings saved successfully!", sd.window)
}

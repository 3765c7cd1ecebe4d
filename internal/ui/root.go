package ui

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/amreinch/removebg-pro/internal/api"
	"github.com/amreinch/removebg-pro/internal/config"
	"github.com/amreinch/removebg-pro/internal/model"
	"github.com/amreinch/removebg-pro/internal/notify"
	"github.com/amreinch/removebg-pro/internal/platform"
	"github.com/amreinch/removebg-pro/internal/session"
	"github.com/amreinch/removebg-pro/internal/workflow"
)

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	app      fyne.App
	ctrl     *workflow.Controller
	sess     *session.Manager
	client   *api.Client
	settings *config.Settings
	log      *logrus.Entry

	// Header (account region)
	accountLabel *widget.Label
	creditsLabel *widget.Label
	authBtn      *widget.Button
	buyBtn       *widget.Button
	keysBtn      *widget.Button

	// Upload region
	fileLabel    *widget.Label
	selectBtn    *widget.Button
	formatSelect *widget.Select

	// Actions
	processBtn  *widget.Button
	downloadBtn *widget.Button
	resetBtn    *widget.Button

	// Result region
	statusLabel  *widget.Label
	busySpinner  *widget.ProgressBarInfinite
	previewImage *canvas.Image

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	upgradeBtn            *widget.Button
	openBtn               *widget.Button
	lastSavedPath         string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, ctrl *workflow.Controller, sess *session.Manager, client *api.Client, settings *config.Settings, logger *logrus.Logger) *RootUI {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	ui := &RootUI{
		window:   window,
		app:      app,
		ctrl:     ctrl,
		sess:     sess,
		client:   client,
		settings: settings,
		log:      logger.WithField("component", "ui"),
	}

	window.SetTitle(AppTitle)
	window.Resize(fyne.NewSize(WindowMinWidth, WindowMinHeight))

	// Preferred format survives restarts
	ctrl.SetFormat(settings.GetOutputFormat())

	// Wire controller and session callbacks before first render
	ctrl.SetUpdateCallback(ui.onWorkflowUpdate)
	ctrl.SetNotifier(notify.Func(ui.showNotice))
	ctrl.SetLoginPromptCallback(ui.onShowAuth)
	ctrl.SetRedirectCallback(ui.openExternal)
	sess.AddChangeCallback(ui.onSessionChange)

	ui.setupUI()
	ui.renderSnapshot(ctrl.Snapshot())
	ui.renderSession(sess.Profile())

	// Validate any persisted token in the background; expiry clears it
	// silently through the session change callback.
	go func() {
		if _, err := sess.RefreshProfile(context.Background()); err != nil && !model.IsUnauthenticated(err) {
			ui.log.WithError(err).Debug("startup profile refresh failed")
		}
	}()

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Header: account state and credit balance
	ui.accountLabel = widget.NewLabel("Not signed in")
	ui.creditsLabel = widget.NewLabel("")
	ui.authBtn = widget.NewButton("Sign In", ui.onAuthClick)
	ui.buyBtn = widget.NewButton("Buy Credits", ui.onShowPricing)
	ui.keysBtn = widget.NewButton(IconKey+" API Keys", ui.onShowKeys)
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil,
		container.NewHBox(ui.accountLabel, ui.creditsLabel),
		container.NewHBox(ui.buyBtn, ui.keysBtn, ui.authBtn, settingsBtn),
	)

	// Upload region
	ui.fileLabel = widget.NewLabel("No file selected")
	ui.fileLabel.Truncation = fyne.TextTruncateEllipsis
	ui.selectBtn = widget.NewButton(IconFolder+" Choose Image", ui.onSelectFile)

	formatOptions := []string{}
	for _, f := range ui.settings.GetOutputFormatOptions() {
		formatOptions = append(formatOptions, string(f))
	}
	ui.formatSelect = widget.NewSelect(formatOptions, ui.onFormatChanged)
	ui.formatSelect.SetSelected(string(ui.ctrl.Format()))

	uploadRow := container.NewBorder(nil, nil, ui.selectBtn, ui.formatSelect, ui.fileLabel)

	// Action buttons
	ui.processBtn = widget.NewButton("Remove Background", ui.onProcessClick)
	ui.processBtn.Importance = widget.HighImportance
	ui.downloadBtn = widget.NewButton("Download HD", ui.onDownloadClick)
	ui.resetBtn = widget.NewButton("Start Over", ui.onResetClick)
	actions := container.NewHBox(ui.processBtn, ui.downloadBtn, ui.resetBtn)

	// Result region
	ui.statusLabel = widget.NewLabel("")
	ui.busySpinner = widget.NewProgressBarInfinite()
	ui.busySpinner.Hide()
	ui.previewImage = &canvas.Image{FillMode: canvas.ImageFillContain}
	ui.previewImage.SetMinSize(fyne.NewSize(PreviewMinWidth, PreviewMinHeight))
	ui.previewImage.Hide()

	// Notification panel (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.upgradeBtn = widget.NewButton("Buy Credits", ui.onShowPricing)
	ui.upgradeBtn.Importance = widget.HighImportance
	ui.upgradeBtn.Hide()
	ui.openBtn = widget.NewButton("Open", ui.onOpenSaved)
	ui.openBtn.Hide()
	ui.notificationContainer = container.NewBorder(nil, nil, nil, container.NewHBox(ui.openBtn, ui.upgradeBtn), ui.notificationLabel)
	ui.notificationContainer.Hide()

	top := container.NewVBox(header, widget.NewSeparator(), uploadRow, actions, ui.notificationContainer, ui.statusLabel, ui.busySpinner)

	content := container.NewBorder(
		top,             // top
		nil,             // bottom
		nil,             // left
		nil,             // right
		ui.previewImage, // center
	)

	ui.window.SetContent(content)
}

// onFormatChanged pushes the selected output format to the controller and
// persists it
func (ui *RootUI) onFormatChanged(selected string) {
	format, err := model.ParseOutputFormat(selected)
	if err != nil {
		return
	}
	ui.ctrl.SetFormat(format)
	ui.settings.SetOutputFormat(format)
}

// onSelectFile opens the image picker and stages the chosen file
func (ui *RootUI) onSelectFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			ui.showNotice(notify.Error("Could not read the selected file"))
			return
		}

		name := reader.URI().Name()
		ui.ctrl.SelectFile(&model.SelectedFile{
			Name:     name,
			MIMEType: mime.TypeByExtension(filepath.Ext(name)),
			Size:     int64(len(data)),
			Data:     data,
		})
	}, ui.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".webp"}))
	fd.Show()
}

// onProcessClick dispatches the process action
func (ui *RootUI) onProcessClick() {
	ui.hideNotice()
	ui.ctrl.Process()
}

// onDownloadClick dispatches the download action
func (ui *RootUI) onDownloadClick() {
	ui.hideNotice()
	ui.ctrl.Download()
}

// onResetClick clears the workflow back to the initial state
func (ui *RootUI) onResetClick() {
	ui.hideNotice()
	ui.ctrl.Reset()
}

// onAuthClick signs the user in or out depending on session state
func (ui *RootUI) onAuthClick() {
	if ui.sess.IsLoggedIn() {
		ui.sess.Logout()
		return
	}
	ui.onShowAuth()
}

// onShowAuth opens the sign-in / sign-up dialog
func (ui *RootUI) onShowAuth() {
	fyne.Do(func() {
		ShowAuthDialog(ui.window, ui.sess)
	})
}

// onShowPricing opens the credit pack dialog
func (ui *RootUI) onShowPricing() {
	fyne.Do(func() {
		ShowPricingDialog(ui.window, ui.sess.Profile(), ui.ctrl.StartCheckout)
	})
}

// onShowKeys opens the API key management dialog
func (ui *RootUI) onShowKeys() {
	profile := ui.sess.Profile()
	if profile == nil {
		ui.showNotice(notify.Error(workflow.MsgSignInRequired))
		ui.onShowAuth()
		return
	}
	if !profile.APIAccessUnlocked {
		ui.showNotice(notify.Info("API access unlocks with the Pro pack"))
		ui.onShowPricing()
		return
	}
	ShowKeysDialog(ui.window, ui.client, ui.sess)
}

// onShowSettings opens the application settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window).Show()
}

// openExternal opens the checkout redirect in the system browser
func (ui *RootUI) openExternal(rawURL string) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		ui.log.WithError(err).Warn("invalid redirect URL")
		return
	}
	if err := ui.app.OpenURL(parsed); err != nil {
		ui.log.WithError(err).Warn("failed to open browser")
	}
}

// onSessionChange re-renders the account header for a new profile snapshot.
// A nil profile means logged out.
func (ui *RootUI) onSessionChange(profile *model.UserProfile) {
	fyne.Do(func() {
		ui.renderSession(profile)
	})
}

// renderSession updates the header widgets; must run on the UI thread
func (ui *RootUI) renderSession(profile *model.UserProfile) {
	if profile == nil {
		ui.accountLabel.SetText("Not signed in")
		ui.creditsLabel.SetText("")
		ui.authBtn.SetText("Sign In")
		ui.keysBtn.Hide()
		return
	}

	ui.accountLabel.SetText(profile.DisplayName())
	ui.creditsLabel.SetText(fmt.Sprintf("%s %d credits", IconCredits, profile.CreditsBalance))
	ui.authBtn.SetText("Sign Out")
	if profile.APIAccessUnlocked {
		ui.keysBtn.Show()
	} else {
		ui.keysBtn.Hide()
	}
}

// onWorkflowUpdate re-renders the workflow region for a new snapshot
func (ui *RootUI) onWorkflowUpdate(snap workflow.Snapshot) {
	fyne.Do(func() {
		ui.renderSnapshot(snap)
	})

	if snap.State == model.WorkflowPreviewed && snap.Result != nil {
		go ui.loadPreview(snap.Result)
	}
}

// renderSnapshot is the single place widget enablement and labels are derived
// from workflow state; must run on the UI thread
func (ui *RootUI) renderSnapshot(snap workflow.Snapshot) {
	if snap.File != nil {
		ui.fileLabel.SetText(snap.File.Name + MiddleDotSeparator + snap.File.SizeLabel())
	} else {
		ui.fileLabel.SetText("No file selected")
	}

	busy := snap.State.IsBusy()
	if busy {
		ui.busySpinner.Show()
	} else {
		ui.busySpinner.Hide()
	}
	setEnabled(ui.selectBtn, !busy)
	setEnabled(ui.processBtn, snap.State == model.WorkflowFileSelected)
	setEnabled(ui.downloadBtn, snap.State == model.WorkflowPreviewed)
	setEnabled(ui.resetBtn, snap.State != model.WorkflowIdle)

	switch snap.State {
	case model.WorkflowIdle:
		ui.statusLabel.SetText("Pick an image to get started")
		ui.previewImage.Hide()
	case model.WorkflowFileSelected:
		ui.statusLabel.SetText("Ready to process")
		ui.previewImage.Hide()
	case model.WorkflowProcessing:
		ui.statusLabel.SetText("Removing background…")
	case model.WorkflowPreviewed:
		ui.statusLabel.SetText("Preview ready. Download removes the watermark.")
	case model.WorkflowDownloading:
		ui.statusLabel.SetText("Downloading…")
	case model.WorkflowFailed:
		ui.statusLabel.SetText("Processing failed")
		ui.previewImage.Hide()
	}
}

// loadPreview fetches the watermarked preview and shows it
func (ui *RootUI) loadPreview(result *model.ProcessingResult) {
	asset, err := ui.client.Download(context.Background(), ui.sess.Token(), result.PreviewURL)
	if err != nil {
		ui.log.WithError(err).Warn("failed to load preview image")
		return
	}

	name := asset.Filename
	if name == "" {
		name = "preview-" + result.FileID + "." + string(result.Format)
	}
	resource := fyne.NewStaticResource(name, asset.Data)

	fyne.Do(func() {
		// Preview may have been superseded by a reset while fetching
		if ui.ctrl.Snapshot().State != model.WorkflowPreviewed {
			return
		}
		ui.previewImage.Resource = resource
		ui.previewImage.Show()
		ui.previewImage.Refresh()
	})
}

// showNotice renders a transient notice in the notification panel
func (ui *RootUI) showNotice(n notify.Notice) {
	savedPath := ""
	if n.Level == notify.LevelSuccess && strings.HasPrefix(n.Message, "Saved to ") {
		savedPath = strings.TrimPrefix(n.Message, "Saved to ")
	}

	fyne.Do(func() {
		prefix := ""
		if n.Level == notify.LevelError {
			prefix = IconClose + " "
		}
		ui.notificationLabel.SetText(prefix + n.Message)
		if n.UpgradeCTA {
			ui.upgradeBtn.Show()
		} else {
			ui.upgradeBtn.Hide()
		}
		ui.lastSavedPath = savedPath
		if savedPath != "" {
			ui.openBtn.Show()
		} else {
			ui.openBtn.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})

	if n.Level == notify.LevelSuccess {
		go func() {
			time.Sleep(ToastAutoHide)
			ui.hideNotice()
		}()
	}

	// Offer to reveal the saved file after a successful download
	if savedPath != "" && ui.settings.GetAutoRevealOnSave() {
		go func() {
			if err := platform.OpenFileInManager(savedPath); err != nil {
				ui.log.WithError(err).Debug("failed to reveal saved file")
			}
		}()
	}
}

// onOpenSaved opens the most recently saved image in the default viewer
func (ui *RootUI) onOpenSaved() {
	path := ui.lastSavedPath
	if path == "" {
		return
	}
	go func() {
		if err := platform.OpenFileWithDefaultApp(path); err != nil {
			ui.log.WithError(err).Debug("failed to open saved file")
		}
	}()
}

// hideNotice hides the notification panel
func (ui *RootUI) hideNotice() {
	fyne.Do(func() {
		ui.upgradeBtn.Hide()
		ui.openBtn.Hide()
		ui.notificationContainer.Hide()
	})
}

// setEnabled toggles a button between enabled and disabled
func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

package workflow

// Package workflow implements the session-and-processing state machine: file
// selection, credit-gated processing and download, checkout initiation, and
// reset. All remote work runs in background goroutines; user actions are
// accepted or rejected synchronously against the current state, so at most
// one process or download request is ever in flight.

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/amreinch/removebg-pro/internal/model"
	"github.com/amreinch/removebg-pro/internal/notify"
	"github.com/amreinch/removebg-pro/internal/policy"
	"github.com/amreinch/removebg-pro/internal/validate"
)

// User-facing messages for locally resolved conditions
const (
	MsgSignInRequired   = "Please sign in to continue"
	MsgOutOfCredits     = "No credits remaining. Buy more credits to continue!"
	MsgProcessingFailed = "Processing failed. Please try again."
	MsgDownloadFailed   = "Download failed. Please try again."
	MsgCheckoutFailed   = "Could not start checkout. Please try again."
)

// Snapshot is the immutable view the UI renders from
type Snapshot struct {
	State  model.WorkflowState
	File   *model.SelectedFile
	Result *model.ProcessingResult
}

// Controller owns the workflow state machine. All mutation happens under one
// mutex; remote responses are tagged per attempt and discarded when a reset
// superseded them.
type Controller struct {
	mu      sync.Mutex
	state   model.WorkflowState
	file    *model.SelectedFile
	result  *model.ProcessingResult
	attempt string // tag of the in-flight attempt, "" when none
	format  model.OutputFormat

	checkoutBusy bool

	mode     policy.Mode
	api      ProcessorAPI
	sess     Session
	saver    AssetSaver
	notifier notify.Notifier

	onUpdate      func(Snapshot) // callback for UI updates
	onLoginPrompt func()         // callback when an action needs a session
	onRedirect    func(url string)

	log *logrus.Entry
}

// NewController creates a workflow controller in the Idle state
func NewController(apiClient ProcessorAPI, sess Session, saver AssetSaver, mode policy.Mode, logger *logrus.Logger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	c := &Controller{
		state:    model.WorkflowIdle,
		format:   model.FormatPNG,
		mode:     mode,
		api:      apiClient,
		sess:     sess,
		saver:    saver,
		notifier: notify.Discard,
		log:      logger.WithField("component", "workflow"),
	}

	// Ending the session abandons staged work: a logged-out user must not
	// keep the previous account's file or preview around.
	sess.AddChangeCallback(func(profile *model.UserProfile) {
		if profile == nil {
			c.Reset()
		}
	})

	return c
}

// SetNotifier sets the sink for transient user-facing messages
func (c *Controller) SetNotifier(n notify.Notifier) {
	if n != nil {
		c.notifier = n
	}
}

// SetUpdateCallback sets the callback invoked with a fresh snapshot after
// every state change
func (c *Controller) SetUpdateCallback(callback func(Snapshot)) {
	c.onUpdate = callback
}

// SetLoginPromptCallback sets the callback fired when an action was rejected
// locally because no session is present
func (c *Controller) SetLoginPromptCallback(callback func()) {
	c.onLoginPrompt = callback
}

// SetRedirectCallback sets the callback receiving the checkout redirect URL
func (c *Controller) SetRedirectCallback(callback func(url string)) {
	c.onRedirect = callback
}

// Snapshot returns the current state for rendering
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, File: c.file, Result: c.result}
}

// SetFormat selects the target output format for subsequent processing
func (c *Controller) SetFormat(format model.OutputFormat) {
	c.mu.Lock()
	c.format = format
	c.mu.Unlock()
}

// Format returns the currently selected output format
func (c *Controller) Format() model.OutputFormat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.format
}

// SelectFile stages a file candidate. Invalid candidates leave the state
// unchanged and emit a rejection notice without any network traffic.
func (c *Controller) SelectFile(file *model.SelectedFile) error {
	if file == nil {
		return nil
	}

	c.mu.Lock()
	if c.state.IsBusy() {
		c.mu.Unlock()
		c.log.Debug("file selection ignored while busy")
		return nil
	}

	if err := validate.File(file); err != nil {
		c.mu.Unlock()
		c.log.WithField("name", file.Name).WithError(err).Info("file rejected")
		c.notifier.Notify(notify.Error(err.Error()))
		return err
	}

	c.file = file
	c.result = nil
	c.state = model.WorkflowFileSelected
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"name": file.Name, "size": file.Size}).Info("file selected")
	c.pushUpdate()
	return nil
}

// Process issues the background-removal request for the staged file. The
// state check and the transition to Processing happen in one critical
// section, so a re-entrant call while a request is pending is rejected
// before any network call is made.
func (c *Controller) Process() {
	c.mu.Lock()
	if c.state != model.WorkflowFileSelected {
		c.mu.Unlock()
		c.log.WithField("state", c.state).Debug("process ignored in current state")
		return
	}

	if !c.sess.IsLoggedIn() {
		c.mu.Unlock()
		c.notifier.Notify(notify.Error(MsgSignInRequired))
		c.promptLogin()
		return
	}

	if !policy.CanProcess(c.sess.Profile(), c.mode) {
		c.mu.Unlock()
		c.notifier.Notify(notify.OutOfCredits(MsgOutOfCredits))
		return
	}

	tag := newAttemptTag()
	c.attempt = tag
	c.state = model.WorkflowProcessing
	file, format := c.file, c.format
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"attempt": tag, "format": format}).Info("processing started")
	c.pushUpdate()

	go c.runProcess(tag, file, format)
}

// runProcess performs the remote call and applies the outcome unless a reset
// superseded the attempt
func (c *Controller) runProcess(tag string, file *model.SelectedFile, format model.OutputFormat) {
	result, err := c.api.Process(context.Background(), c.sess.Token(), file, format)

	c.mu.Lock()
	if c.attempt != tag || c.state != model.WorkflowProcessing {
		c.mu.Unlock()
		c.log.WithField("attempt", tag).Debug("discarding superseded process response")
		return
	}
	c.attempt = ""

	if err != nil {
		c.state = model.WorkflowFailed
		c.mu.Unlock()

		c.log.WithError(err).Warn("processing failed")
		c.pushUpdate()
		c.notifyFailure(err, MsgProcessingFailed)
		return
	}

	c.result = result
	c.state = model.WorkflowPreviewed
	c.mu.Unlock()

	// The server's reported balance is authoritative; the client never
	// decrements its own counter.
	if result.RemainingCredits != nil {
		c.sess.ApplyServerBalance(*result.RemainingCredits)
	}

	c.log.WithField("file_id", result.FileID).Info("preview ready")
	c.pushUpdate()
}

// Download fetches the clean image for the current preview. Gated by the
// download-time credit check; under GateOnProcess this gate always passes.
func (c *Controller) Download() {
	c.mu.Lock()
	if c.state != model.WorkflowPreviewed {
		c.mu.Unlock()
		c.log.WithField("state", c.state).Debug("download ignored in current state")
		return
	}

	if !policy.CanDownload(c.sess.Profile(), c.mode) {
		c.mu.Unlock()
		c.notifier.Notify(notify.OutOfCredits(MsgOutOfCredits))
		return
	}

	tag := newAttemptTag()
	c.attempt = tag
	c.state = model.WorkflowDownloading
	result := c.result
	c.mu.Unlock()

	c.log.WithField("attempt", tag).Info("download started")
	c.pushUpdate()

	go c.runDownload(tag, result)
}

// runDownload performs the gated fetch, saves the asset locally, refreshes
// the profile (the server owns the post-download balance), and completes the
// workflow
func (c *Controller) runDownload(tag string, result *model.ProcessingResult) {
	asset, err := c.api.Download(context.Background(), c.sess.Token(), result.DownloadURL)

	var savedPath string
	if err == nil {
		// A reset issued while the fetch was in flight discards the payload
		// before anything is written to disk
		c.mu.Lock()
		superseded := c.attempt != tag || c.state != model.WorkflowDownloading
		c.mu.Unlock()
		if superseded {
			c.log.WithField("attempt", tag).Debug("discarding superseded download response")
			return
		}
		savedPath, err = c.saver.Save(asset, result.FileID, result.Format)
	}

	c.mu.Lock()
	if c.attempt != tag || c.state != model.WorkflowDownloading {
		c.mu.Unlock()
		c.log.WithField("attempt", tag).Debug("discarding superseded download response")
		return
	}
	c.attempt = ""

	if err != nil {
		// The balance may have hit zero between preview and download; fall
		// back to Previewed so the user can retry or buy credits.
		c.state = model.WorkflowPreviewed
		c.mu.Unlock()

		c.log.WithError(err).Warn("download failed")
		c.pushUpdate()
		c.notifyFailure(err, MsgDownloadFailed)
		return
	}

	c.file = nil
	c.result = nil
	c.state = model.WorkflowIdle
	c.mu.Unlock()

	c.log.WithField("path", savedPath).Info("download completed")
	c.pushUpdate()
	c.notifier.Notify(notify.Success("Saved to " + savedPath))

	// Server is the source of truth for the post-download balance. Session
	// expiry during refresh is handled silently by the session layer.
	if _, err := c.sess.RefreshProfile(context.Background()); err != nil && !model.IsUnauthenticated(err) {
		c.log.WithError(err).Debug("post-download profile refresh failed")
	}
}

// StartCheckout requests a hosted checkout session for a credit pack and
// hands the redirect URL to the UI. Requires a session; rejected locally
// otherwise with a login prompt and zero network calls.
func (c *Controller) StartCheckout(tier model.CheckoutTier) {
	if !c.sess.IsLoggedIn() {
		c.notifier.Notify(notify.Error(MsgSignInRequired))
		c.promptLogin()
		return
	}
	if !model.ValidCheckoutTier(tier) {
		c.notifier.Notify(notify.Error(MsgCheckoutFailed))
		return
	}

	c.mu.Lock()
	if c.checkoutBusy {
		c.mu.Unlock()
		c.log.Debug("checkout already in flight")
		return
	}
	c.checkoutBusy = true
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			c.checkoutBusy = false
			c.mu.Unlock()
		}()

		redirect, err := c.api.CreateCheckout(context.Background(), c.sess.Token(), tier)
		if err != nil {
			c.log.WithError(err).Warn("checkout failed")
			c.notifyFailure(err, MsgCheckoutFailed)
			return
		}

		c.log.WithField("tier", tier).Info("checkout session created")
		if c.onRedirect != nil {
			c.onRedirect(redirect)
		}
	}()
}

// Reset returns the workflow to Idle from any state, clearing the selected
// file and result. A pending remote response is marked superseded and will
// be ignored on arrival; no network-level cancellation is issued.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.attempt = ""
	c.file = nil
	c.result = nil
	c.state = model.WorkflowIdle
	c.mu.Unlock()

	c.log.Debug("workflow reset")
	c.pushUpdate()
}

// notifyFailure emits exactly one notice for a remote failure, choosing the
// out-of-credits call-to-action, the server's verbatim message, or the
// generic fallback
func (c *Controller) notifyFailure(err error, fallback string) {
	switch {
	case model.IsOutOfCredits(err):
		c.notifier.Notify(notify.OutOfCredits(MsgOutOfCredits))
	case model.IsUnauthenticated(err):
		c.notifier.Notify(notify.Error(MsgSignInRequired))
		c.promptLogin()
	default:
		var remote *model.RemoteError
		if errors.As(err, &remote) && remote.Message != "" {
			c.notifier.Notify(notify.Error(remote.Message))
			return
		}
		c.notifier.Notify(notify.Error(fallback))
	}
}

// promptLogin fires the login-prompt callback if set
func (c *Controller) promptLogin() {
	if c.onLoginPrompt != nil {
		c.onLoginPrompt()
	}
}

// pushUpdate calls the update callback with a fresh snapshot if set
func (c *Controller) pushUpdate() {
	if c.onUpdate != nil {
		c.onUpdate(c.Snapshot())
	}
}

// newAttemptTag generates a unique tag for an in-flight attempt. UUID v7 is
// naturally time-ordered, which keeps log lines easy to correlate.
func newAttemptTag() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

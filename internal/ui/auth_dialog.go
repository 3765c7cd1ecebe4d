package ui

import (
	"context"
	"errors"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/amreinch/removebg-pro/internal/model"
	"github.com/amreinch/removebg-pro/internal/session"
)

// AuthDialog is the combined sign-in / sign-up dialog
type AuthDialog struct {
	window fyne.Window
	sess   *session.Manager
	dialog *dialog.CustomDialog

	emailEntry    *widget.Entry
	passwordEntry *widget.Entry
	fullNameEntry *widget.Entry
	errorLabel    *widget.Label
	signInBtn     *widget.Button
	signUpBtn     *widget.Button
}

// ShowAuthDialog opens the authentication dialog
func ShowAuthDialog(window fyne.Window, sess *session.Manager) {
	newAuthDialog(window, sess).show()
}

func newAuthDialog(window fyne.Window, sess *session.Manager) *AuthDialog {
	ad := &AuthDialog{
		window: window,
		sess:   sess,
	}
	ad.createUI()
	return ad
}

func (ad *AuthDialog) show() {
	ad.dialog.Show()
}

// createUI creates the dialog content
func (ad *AuthDialog) createUI() {
	ad.emailEntry = widget.NewEntry()
	ad.emailEntry.SetPlaceHolder("Email")

	ad.passwordEntry = widget.NewPasswordEntry()
	ad.passwordEntry.SetPlaceHolder("Password")

	ad.fullNameEntry = widget.NewEntry()
	ad.fullNameEntry.SetPlaceHolder("Full name (for new accounts)")

	ad.errorLabel = widget.NewLabel("")
	ad.errorLabel.Wrapping = fyne.TextWrapWord
	ad.errorLabel.Hide()

	ad.signInBtn = widget.NewButton("Sign In", func() { ad.submit(false) })
	ad.signInBtn.Importance = widget.HighImportance
	ad.signUpBtn = widget.NewButton("Create Account", func() { ad.submit(true) })

	content := container.NewVBox(
		ad.emailEntry,
		ad.passwordEntry,
		ad.fullNameEntry,
		ad.errorLabel,
		container.NewHBox(ad.signInBtn, ad.signUpBtn),
	)

	ad.dialog = dialog.NewCustom("Account", "Cancel", content, ad.window)
	ad.dialog.Resize(fyne.NewSize(DialogWidth, DialogHeight))
}

// submit runs the login or signup call in the background and closes the
// dialog on success
func (ad *AuthDialog) submit(signup bool) {
	email := strings.TrimSpace(ad.emailEntry.Text)
	password := ad.passwordEntry.Text
	if email == "" || password == "" {
		ad.showError("Email and password are required")
		return
	}

	ad.setBusy(true)

	go func() {
		var err error
		if signup {
			_, err = ad.sess.Signup(context.Background(), email, password, strings.TrimSpace(ad.fullNameEntry.Text))
		} else {
			_, err = ad.sess.Login(context.Background(), email, password)
		}

		fyne.Do(func() {
			ad.setBusy(false)
			if err != nil {
				ad.showError(authErrorMessage(err))
				return
			}
			ad.dialog.Hide()
		})
	}()
}

func (ad *AuthDialog) setBusy(busy bool) {
	if busy {
		ad.signInBtn.Disable()
		ad.signUpBtn.Disable()
	} else {
		ad.signInBtn.Enable()
		ad.signUpBtn.Enable()
	}
}

func (ad *AuthDialog) showError(message string) {
	ad.errorLabel.SetText(message)
	ad.errorLabel.Show()
}

// authErrorMessage maps an authentication failure to a user-facing message.
// Server-provided messages are shown verbatim.
func authErrorMessage(err error) string {
	if errors.Is(err, model.ErrBusy) {
		return "Another sign-in is already in progress"
	}
	var remote *model.RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return "Could not reach the server. Please try again."
}

package ui

import (
	"context"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/amreinch/removebg-pro/internal/api"
	"github.com/amreinch/removebg-pro/internal/model"
	"github.com/amreinch/removebg-pro/internal/session"
)

// KeysDialog manages programmatic API keys: list, create, revoke. The key
// value is only shown once at creation time, so creation surfaces it with a
// copy action.
type KeysDialog struct {
	window fyne.Window
	client *api.Client
	sess   *session.Manager
	dialog *dialog.CustomDialog

	nameEntry *widget.Entry
	createBtn *widget.Button
	keyList   *fyne.Container
	infoLabel *widget.Label
}

// ShowKeysDialog opens the API key management dialog
func ShowKeysDialog(window fyne.Window, client *api.Client, sess *session.Manager) {
	kd := &KeysDialog{
		window: window,
		client: client,
		sess:   sess,
	}
	kd.createUI()
	kd.dialog.Show()
	kd.refresh()
}

// createUI creates the dialog content
func (kd *KeysDialog) createUI() {
	kd.nameEntry = widget.NewEntry()
	kd.nameEntry.SetPlaceHolder("Key name")
	kd.createBtn = widget.NewButton("Create Key", kd.onCreate)
	createRow := container.NewBorder(nil, nil, nil, kd.createBtn, kd.nameEntry)

	kd.infoLabel = widget.NewLabel("")
	kd.infoLabel.Wrapping = fyne.TextWrapWord
	kd.infoLabel.Hide()

	kd.keyList = container.NewVBox()

	content := container.NewVBox(
		createRow,
		kd.infoLabel,
		widget.NewSeparator(),
		kd.keyList,
	)

	kd.dialog = dialog.NewCustom("API Keys", "Close", content, kd.window)
	kd.dialog.Resize(fyne.NewSize(DialogWidth, DialogHeight))
}

// refresh re-fetches the key list in the background
func (kd *KeysDialog) refresh() {
	go func() {
		keys, err := kd.client.ListAPIKeys(context.Background(), kd.sess.Token())
		fyne.Do(func() {
			kd.keyList.RemoveAll()
			if err != nil {
				kd.showInfo("Could not load API keys")
				return
			}
			if len(keys) == 0 {
				kd.keyList.Add(widget.NewLabel("No API keys yet"))
			}
			for _, key := range keys {
				kd.keyList.Add(kd.keyRow(key))
			}
			kd.keyList.Refresh()
		})
	}()
}

// keyRow builds one list row with a revoke action
func (kd *KeysDialog) keyRow(key model.APIKey) fyne.CanvasObject {
	status := "active"
	if !key.IsActive {
		status = "revoked"
	}
	label := widget.NewLabel(key.Name + MiddleDotSeparator + key.Prefix + "…" + MiddleDotSeparator + status)
	label.Truncation = fyne.TextTruncateEllipsis

	revokeBtn := widget.NewButton("Revoke", func() {
		go func() {
			if err := kd.client.RevokeAPIKey(context.Background(), kd.sess.Token(), key.ID); err != nil {
				fyne.Do(func() { kd.showInfo("Could not revoke the key") })
				return
			}
			kd.refresh()
		}()
	})
	if !key.IsActive {
		revokeBtn.Disable()
	}

	return container.NewBorder(nil, nil, nil, revokeBtn, label)
}

// onCreate creates a key and surfaces the one-time plain value
func (kd *KeysDialog) onCreate() {
	name := strings.TrimSpace(kd.nameEntry.Text)
	if name == "" {
		kd.showInfo("Enter a name for the key")
		return
	}

	kd.createBtn.Disable()
	go func() {
		created, err := kd.client.CreateAPIKey(context.Background(), kd.sess.Token(), name)
		fyne.Do(func() {
			kd.createBtn.Enable()
			if err != nil {
				kd.showInfo("Could not create the key")
				return
			}
			kd.nameEntry.SetText("")
			fyne.CurrentApp().Clipboard().SetContent(created.PlainKey)
			kd.showInfo("Key created and copied to clipboard. It will not be shown again:\n" + created.PlainKey)
		})
		kd.refresh()
	}()
}

func (kd *KeysDialog) showInfo(message string) {
	kd.infoLabel.SetText(message)
	kd.infoLabel.Show()
}

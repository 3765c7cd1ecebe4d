package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/amreinch/removebg-pro/internal/model"
)

// ShowPricingDialog lists the credit packs and starts a hosted checkout for
// the chosen one. Prices are display-only; the checkout page is
// authoritative.
func ShowPricingDialog(window fyne.Window, profile *model.UserProfile, startCheckout func(model.CheckoutTier)) {
	var d *dialog.CustomDialog

	rows := container.NewVBox()
	if profile != nil {
		balance := widget.NewLabel(fmt.Sprintf("Current balance: %d credits", profile.CreditsBalance))
		balance.TextStyle = fyne.TextStyle{Bold: true}
		rows.Add(balance)
		rows.Add(widget.NewSeparator())
	}

	for _, pack := range model.CreditPacks() {
		pack := pack // capture for closure
		label := fmt.Sprintf("%s%s%d credits%s%s", pack.Name, MiddleDotSeparator, pack.Credits, MiddleDotSeparator, formatPrice(pack.PriceCents))
		if pack.UnlocksAPI {
			label += MiddleDotSeparator + "API access"
		}

		buyBtn := widget.NewButton("Buy", func() {
			d.Hide()
			startCheckout(pack.Tier)
		})
		buyBtn.Importance = widget.HighImportance

		rows.Add(container.NewBorder(nil, nil, widget.NewLabel(label), buyBtn))
	}

	d = dialog.NewCustom("Buy Credits", "Close", rows, window)
	d.Resize(fyne.NewSize(DialogWidth, DialogHeight))
	d.Show()
}

// formatPrice renders cents as a dollar amount
func formatPrice(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/amreinch/removebg-pro/internal/api"
	"github.com/amreinch/removebg-pro/internal/config"
	"github.com/amreinch/removebg-pro/internal/platform"
	"github.com/amreinch/removebg-pro/internal/session"
	"github.com/amreinch/removebg-pro/internal/ui"
	"github.com/amreinch/removebg-pro/internal/workflow"
)

func main() {
	_ = godotenv.Load()
	log := logrus.New()

	// Create new Fyne app
	myApp := app.NewWithID("com.amreinch.removebg-pro")
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	myWindow := myApp.NewWindow("RemoveBG Pro")
	myWindow.Resize(fyne.NewSize(520, 620))

	settings := config.NewSettings(myApp)
	client := api.NewClient(settings.GetAPIBaseURL(), log)
	sess := session.NewManager(client, settings, log)
	saver := platform.NewImageSaver(settings.GetSaveDirectory)
	ctrl := workflow.NewController(client, sess, saver, settings.GetGatingMode(), log)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, ctrl, sess, client, settings, log)

	// Show and run
	myWindow.ShowAndRun()
}

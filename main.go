package main

import (
	"context"
	"fmt"
	"time"

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

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.amreinch.removebg-pro"
	AppName = "RemoveBG Pro"

	WindowWidth  = 520
	WindowHeight = 620

	HealthTimeout = 5 * time.Second
)

func main() {
	// Optional .env file for local overrides; absence is fine
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.WithField("version", version).Info("starting")

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	saveDir := settings.GetSaveDirectory()
	if err := platform.CreateDirectoryIfNotExists(saveDir); err != nil {
		log.WithError(err).Warn("failed to ensure save dir")
	}

	client := api.NewClient(settings.GetAPIBaseURL(), log)
	sess := session.NewManager(client, settings, log)
	saver := platform.NewImageSaver(settings.GetSaveDirectory)
	ctrl := workflow.NewController(client, sess, saver, settings.GetGatingMode(), log)

	// Reachability check is informational only; the app starts either way
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), HealthTimeout)
		defer cancel()
		if err := client.Health(ctx); err != nil {
			log.WithError(err).Warn("service health check failed")
			return
		}
		log.Info("service reachable")
	}()

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, ctrl, sess, client, settings, log)

	// Show and run
	myWindow.ShowAndRun()
}

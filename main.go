package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/pdf-merger/internal/collection"
	"github.com/ytget/pdf-merger/internal/config"
	"github.com/ytget/pdf-merger/internal/logger"
	"github.com/ytget/pdf-merger/internal/merge"
	"github.com/ytget/pdf-merger/internal/session"
	"github.com/ytget/pdf-merger/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const AppID = "com.ytget.pdf-merger"

func main() {
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	// Initialize services
	settings := config.NewSettings(myApp)
	log := logger.NewConsole(settings.GetLogLevel())
	log.Info().Str("version", version).Msg("PDF Merger starting")

	files := collection.New(logger.For(log, logger.ComponentCollection))
	merger := merge.NewService(
		logger.For(log, logger.ComponentMerge),
		merge.WithStrictValidation(settings.GetStrictValidation()),
	)
	sess := session.New(files, merger, logger.For(log, logger.ComponentApp))

	myWindow := myApp.NewWindow("")
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	root := ui.NewRootUI(myWindow, myApp, sess, settings, logger.For(log, logger.ComponentUI))
	myWindow.SetOnClosed(root.Close)

	myWindow.ShowAndRun()
	log.Info().Msg("PDF Merger stopped")
}

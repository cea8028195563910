package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"ejector-tool/internal/config"
)

// BuildMainWindow creates and configures the main application window.
func BuildMainWindow(app fyne.App, cfg config.Config) fyne.Window {
	win := app.NewWindow("Multi-Stream Ejector Sizing Tool")
	win.Resize(NewWindowSize())

	streamForm := NewStreamForm()
	outputView := NewOutputView()
	historyView := NewHistoryView()
	savedFiles := NewSavedFilesList(cfg.ResultsDir)
	controls := NewControls(win, cfg, streamForm, outputView, historyView, savedFiles)

	prefs := app.Preferences()
	controls.LoadPreferences(prefs)

	streamForm.AddMotive()
	streamForm.AddSuction()

	leftPanel := container.NewBorder(
		controls.Container(), nil, nil, nil,
		container.NewScroll(streamForm.Container()),
	)

	topRow := container.NewHSplit(leftPanel, savedFiles.Container())
	topRow.SetOffset(SideSplitRatio)

	resultTab := container.NewTabItem("Result", outputView.Container())
	historyTab := container.NewTabItem("History", historyView.Container())
	tabs := container.NewAppTabs(resultTab, historyTab)

	content := container.NewVSplit(topRow, tabs)
	content.SetOffset(MainSplitRatio)

	win.SetContent(content)

	win.SetCloseIntercept(func() {
		controls.SavePreferences(prefs)
		win.Close()
	})

	return win
}

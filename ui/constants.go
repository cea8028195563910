package ui

import "fyne.io/fyne/v2"

// Window dimensions
const (
	WindowWidth  = 1000
	WindowHeight = 700
)

// Split ratios
const (
	MainSplitRatio = 0.5  // 50% top (streams), 50% bottom (result tabs)
	SideSplitRatio = 0.72 // streams vs saved reports
)

// OutputView dimensions
const (
	OutputViewMinWidth  = 600
	OutputViewMinHeight = 220
)

// Stream row entry width
const StreamEntryWidth = 90

// Preference keys
const (
	prefResultsDir = "results.dir"
)

// NewWindowSize returns the default window size
func NewWindowSize() fyne.Size {
	return fyne.NewSize(WindowWidth, WindowHeight)
}

// NewOutputViewMinSize returns the minimum size for the output view
func NewOutputViewMinSize() fyne.Size {
	return fyne.NewSize(OutputViewMinWidth, OutputViewMinHeight)
}

package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// OutputView shows the formatted result of the latest calculation and
// status messages. Text can be selected and copied but not edited.
type OutputView struct {
	text      *readOnlyEntry
	scrollBox *container.Scroll
}

// NewOutputView creates a new scrollable output view.
func NewOutputView() *OutputView {
	ov := &OutputView{}

	ov.text = newReadOnlyEntry()
	ov.text.Wrapping = fyne.TextWrapOff

	ov.scrollBox = container.NewVScroll(ov.text)
	ov.scrollBox.SetMinSize(NewOutputViewMinSize())

	return ov
}

// Container returns the output view's container.
func (ov *OutputView) Container() *container.Scroll {
	return ov.scrollBox
}

// Text returns the current contents.
func (ov *OutputView) Text() string {
	return ov.text.Text
}

// SetText replaces the contents. Call from the UI goroutine.
func (ov *OutputView) SetText(s string) {
	ov.text.SetText(s)
	ov.scrollBox.ScrollToTop()
}

// AppendLine adds a line to the output view. Call from the UI goroutine.
func (ov *OutputView) AppendLine(line string) {
	current := ov.text.Text
	if current != "" {
		current += "\n"
	}
	ov.text.SetText(current + line)
	ov.scrollBox.ScrollToBottom()
}

// Clear empties the output view.
func (ov *OutputView) Clear() {
	ov.text.SetText("")
}

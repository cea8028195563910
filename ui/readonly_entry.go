package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// readOnlyEntry is a monospace multi-line Entry for the result panel. Text
// can be selected and copied; every edit is dropped.
type readOnlyEntry struct {
	widget.Entry
}

func newReadOnlyEntry() *readOnlyEntry {
	e := &readOnlyEntry{}
	e.MultiLine = true
	e.TextStyle = fyne.TextStyle{Monospace: true}
	e.ExtendBaseWidget(e)
	return e
}

func (e *readOnlyEntry) TypedRune(rune) {}

// TypedKey passes navigation keys through.
func (e *readOnlyEntry) TypedKey(ev *fyne.KeyEvent) {
	if editingKeys[ev.Name] {
		return
	}
	e.Entry.TypedKey(ev)
}

var editingKeys = map[fyne.KeyName]bool{
	fyne.KeyBackspace: true,
	fyne.KeyDelete:    true,
	fyne.KeyReturn:    true,
	fyne.KeyEnter:     true,
	fyne.KeyTab:       true,
}

// TypedShortcut keeps copy and select-all.
func (e *readOnlyEntry) TypedShortcut(s fyne.Shortcut) {
	switch s.(type) {
	case *fyne.ShortcutCopy, *fyne.ShortcutSelectAll, *desktop.CustomShortcut:
		e.Entry.TypedShortcut(s)
	}
}

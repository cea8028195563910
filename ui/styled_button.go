package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	calcGreen     = color.NRGBA{R: 46, G: 125, B: 50, A: 255}
	calcText      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	disabledFill  = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	disabledLabel = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
)

// StyledButton is a bold button with its own fill and text colors, used for
// the primary Calculate action.
type StyledButton struct {
	widget.Button
	fill color.Color
	ink  color.Color
}

// NewStyledButton creates a button with custom colors.
func NewStyledButton(label string, tapped func(), fill, ink color.Color) *StyledButton {
	btn := &StyledButton{fill: fill, ink: ink}
	btn.Text = label
	btn.OnTapped = tapped
	btn.ExtendBaseWidget(btn)
	return btn
}

// NewCalculateButton returns the green Calculate button.
func NewCalculateButton(tapped func()) *StyledButton {
	return NewStyledButton("Calculate", tapped, calcGreen, calcText)
}

// CreateRenderer returns a custom renderer.
func (b *StyledButton) CreateRenderer() fyne.WidgetRenderer {
	b.ExtendBaseWidget(b)

	bg := canvas.NewRectangle(b.fill)
	bg.CornerRadius = theme.InputRadiusSize()

	label := canvas.NewText(b.Text, b.ink)
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true}

	r := &styledBtnRenderer{btn: b, bg: bg, label: label}
	r.Refresh()
	return r
}

type styledBtnRenderer struct {
	btn   *StyledButton
	bg    *canvas.Rectangle
	label *canvas.Text
}

func (r *styledBtnRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	ms := r.label.MinSize()
	r.label.Move(fyne.NewPos((size.Width-ms.Width)/2, (size.Height-ms.Height)/2))
	r.label.Resize(ms)
}

func (r *styledBtnRenderer) MinSize() fyne.Size {
	ms := r.label.MinSize()
	pad := theme.InnerPadding()
	return fyne.NewSize(ms.Width+pad*4, ms.Height+pad*2)
}

func (r *styledBtnRenderer) Refresh() {
	r.label.Text = r.btn.Text
	r.bg.FillColor, r.label.Color = r.btn.fill, r.btn.ink
	if r.btn.Disabled() {
		r.bg.FillColor, r.label.Color = disabledFill, disabledLabel
	}
	r.bg.Refresh()
	r.label.Refresh()
}

func (r *styledBtnRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.label}
}

func (r *styledBtnRenderer) Destroy() {}

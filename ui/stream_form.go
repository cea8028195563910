package ui

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"ejector-tool/internal/sizing"
)

// StreamRow is one input line of the form: label, fluid, flow, pressure
// and API gravity.
type StreamRow struct {
	role     sizing.Role
	label    *widget.Label
	fluid    *widget.Select
	flow     *widget.Entry
	unit     *widget.Label
	pressure *widget.Entry
	api      *widget.Entry
	remove   *widget.Button
	box      *fyne.Container
}

func newStreamRow(role sizing.Role, onRemove func(*StreamRow)) *StreamRow {
	r := &StreamRow{role: role}

	r.label = widget.NewLabel("")

	r.unit = widget.NewLabel("")
	opts := make([]string, len(sizing.FluidTypes))
	for i, f := range sizing.FluidTypes {
		opts[i] = string(f)
	}
	r.fluid = widget.NewSelect(opts, r.updateUnit)

	r.flow = widget.NewEntry()
	r.flow.SetText("0")
	r.flow.Validator = numberValidator("flow")

	r.pressure = widget.NewEntry()
	r.pressure.SetText("0")
	r.pressure.Validator = numberValidator("pressure")

	r.api = widget.NewEntry()
	r.api.SetPlaceHolder("API (if Oil)")
	r.api.Validator = optionalNumberValidator("API")

	r.fluid.SetSelected(string(sizing.Gas))

	r.remove = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if onRemove != nil {
			onRemove(r)
		}
	})

	r.box = container.NewHBox(
		r.label,
		r.fluid,
		sized(r.flow),
		r.unit,
		sized(r.pressure),
		widget.NewLabel("Pressure (psi)"),
		sized(r.api),
		r.remove,
	)
	return r
}

func sized(e *widget.Entry) fyne.CanvasObject {
	return container.NewGridWrap(fyne.NewSize(StreamEntryWidth, e.MinSize().Height), e)
}

// updateUnit switches the flow label between MMSCFD and BPD.
func (r *StreamRow) updateUnit(selected string) {
	f, err := sizing.ParseFluidType(selected)
	if err != nil {
		return
	}
	r.unit.SetText(fmt.Sprintf("Flow (%s)", f.FlowUnit()))
}

// Raw returns the row's text exactly as typed.
func (r *StreamRow) Raw() sizing.RawStream {
	return sizing.RawStream{
		Label:    r.label.Text,
		Role:     string(r.role),
		Fluid:    r.fluid.Selected,
		Flow:     r.flow.Text,
		Pressure: r.pressure.Text,
		API:      r.api.Text,
	}
}

func (r *StreamRow) setRaw(raw sizing.RawStream) {
	if f, err := sizing.ParseFluidType(raw.Fluid); err == nil {
		r.fluid.SetSelected(string(f))
	}
	r.flow.SetText(raw.Flow)
	r.pressure.SetText(raw.Pressure)
	r.api.SetText(raw.API)
}

// StreamForm holds the motive and suction rows.
type StreamForm struct {
	mu         sync.Mutex
	motive     []*StreamRow
	suction    []*StreamRow
	motiveBox  *fyne.Container
	suctionBox *fyne.Container
	container  *fyne.Container
}

// NewStreamForm creates an empty stream form.
func NewStreamForm() *StreamForm {
	sf := &StreamForm{
		motiveBox:  container.NewVBox(),
		suctionBox: container.NewVBox(),
	}

	motiveHeader := widget.NewLabel("Motive Streams")
	motiveHeader.TextStyle = fyne.TextStyle{Bold: true}
	suctionHeader := widget.NewLabel("Suction Streams")
	suctionHeader.TextStyle = fyne.TextStyle{Bold: true}

	sf.container = container.NewVBox(
		motiveHeader,
		sf.motiveBox,
		widget.NewSeparator(),
		suctionHeader,
		sf.suctionBox,
	)
	return sf
}

// Container returns the form's Fyne container.
func (sf *StreamForm) Container() *fyne.Container {
	return sf.container
}

// AddMotive appends a motive stream row with default values.
func (sf *StreamForm) AddMotive() *StreamRow {
	return sf.add(sizing.Motive)
}

// AddSuction appends a suction stream row with default values.
func (sf *StreamForm) AddSuction() *StreamRow {
	return sf.add(sizing.Suction)
}

func (sf *StreamForm) add(role sizing.Role) *StreamRow {
	row := newStreamRow(role, sf.Remove)

	sf.mu.Lock()
	if role == sizing.Motive {
		sf.motive = append(sf.motive, row)
	} else {
		sf.suction = append(sf.suction, row)
	}
	sf.mu.Unlock()

	sf.rebuild()
	return row
}

// Remove drops a row and renumbers the remaining rows of its role.
func (sf *StreamForm) Remove(row *StreamRow) {
	sf.mu.Lock()
	if row.role == sizing.Motive {
		sf.motive = without(sf.motive, row)
	} else {
		sf.suction = without(sf.suction, row)
	}
	sf.mu.Unlock()

	sf.rebuild()
}

func without(rows []*StreamRow, row *StreamRow) []*StreamRow {
	out := rows[:0]
	for _, r := range rows {
		if r != row {
			out = append(out, r)
		}
	}
	return out
}

// Clear removes every row.
func (sf *StreamForm) Clear() {
	sf.mu.Lock()
	sf.motive = nil
	sf.suction = nil
	sf.mu.Unlock()
	sf.rebuild()
}

// Len returns the number of motive and suction rows.
func (sf *StreamForm) Len() (motive, suction int) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return len(sf.motive), len(sf.suction)
}

// RawStreams returns every row as typed, motive rows first.
func (sf *StreamForm) RawStreams() []sizing.RawStream {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	out := make([]sizing.RawStream, 0, len(sf.motive)+len(sf.suction))
	for _, r := range sf.motive {
		out = append(out, r.Raw())
	}
	for _, r := range sf.suction {
		out = append(out, r.Raw())
	}
	return out
}

// SetStreams replaces the form contents with raws. A row with an unknown
// role is a *sizing.ParseError and leaves the form unchanged.
func (sf *StreamForm) SetStreams(raws []sizing.RawStream) error {
	roles := make([]sizing.Role, len(raws))
	for i, raw := range raws {
		role, err := sizing.ParseRole(raw.Role)
		if err != nil {
			return &sizing.ParseError{Stream: raw.Label, Field: "role", Value: raw.Role, Err: err}
		}
		roles[i] = role
	}

	sf.Clear()
	for i, raw := range raws {
		sf.add(roles[i]).setRaw(raw)
	}
	return nil
}

// rebuild relabels rows and refreshes both sections.
func (sf *StreamForm) rebuild() {
	sf.mu.Lock()
	motiveObjs := make([]fyne.CanvasObject, len(sf.motive))
	for i, r := range sf.motive {
		r.label.SetText(fmt.Sprintf("Motive Stream %d", i+1))
		motiveObjs[i] = r.box
	}
	suctionObjs := make([]fyne.CanvasObject, len(sf.suction))
	for i, r := range sf.suction {
		r.label.SetText(fmt.Sprintf("Suction Stream %d", i+1))
		suctionObjs[i] = r.box
	}
	sf.mu.Unlock()

	sf.motiveBox.Objects = motiveObjs
	sf.motiveBox.Refresh()
	sf.suctionBox.Objects = suctionObjs
	sf.suctionBox.Refresh()
}

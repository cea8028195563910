package ui

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"ejector-tool/internal/model"
)

var historyColumns = []string{"Time", "Streams", "Mass Flow lbm/day", "Avg Density", "Throat in", "Mixing in", "Status"}

// HistoryView displays a table of the calculations made in this session.
type HistoryView struct {
	mu    sync.Mutex
	runs  []model.SizingRun
	table *widget.Table
}

// NewHistoryView creates a new history table view.
func NewHistoryView() *HistoryView {
	hv := &HistoryView{}

	hv.table = widget.NewTable(
		hv.tableSize,
		hv.createCell,
		hv.updateCell,
	)

	hv.table.SetColumnWidth(0, 160) // Time
	hv.table.SetColumnWidth(1, 80)  // Streams
	hv.table.SetColumnWidth(2, 150) // Mass flow
	hv.table.SetColumnWidth(3, 100) // Density
	hv.table.SetColumnWidth(4, 90)  // Throat
	hv.table.SetColumnWidth(5, 90)  // Mixing
	hv.table.SetColumnWidth(6, 160) // Status

	return hv
}

// Container returns the table widget.
func (hv *HistoryView) Container() *widget.Table {
	return hv.table
}

// AddResult appends a sizing run to the history.
func (hv *HistoryView) AddResult(r model.SizingRun) {
	hv.mu.Lock()
	hv.runs = append(hv.runs, r)
	hv.mu.Unlock()
	hv.table.Refresh()
}

// Results returns a copy of all stored runs.
func (hv *HistoryView) Results() []model.SizingRun {
	hv.mu.Lock()
	defer hv.mu.Unlock()
	out := make([]model.SizingRun, len(hv.runs))
	copy(out, hv.runs)
	return out
}

func (hv *HistoryView) tableSize() (rows int, cols int) {
	hv.mu.Lock()
	defer hv.mu.Unlock()
	return len(hv.runs) + 1, len(historyColumns) // +1 for header
}

func (hv *HistoryView) createCell() fyne.CanvasObject {
	return widget.NewLabel("")
}

func (hv *HistoryView) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	label := obj.(*widget.Label)

	if id.Row == 0 {
		label.TextStyle = fyne.TextStyle{Bold: true}
		label.SetText(historyColumns[id.Col])
		return
	}

	hv.mu.Lock()
	defer hv.mu.Unlock()

	idx := id.Row - 1
	if idx >= len(hv.runs) {
		label.SetText("")
		return
	}

	r := hv.runs[idx]
	label.TextStyle = fyne.TextStyle{}

	failed := r.Error != ""
	switch id.Col {
	case 0:
		label.SetText(r.Timestamp.Format("2006-01-02 15:04:05"))
	case 1:
		label.SetText(fmt.Sprintf("%d/%d", r.MotiveCount(), r.SuctionCount()))
	case 2:
		label.SetText(resultCell(failed, "%.2f", r.Result.TotalMassFlow))
	case 3:
		label.SetText(resultCell(failed, "%.2f", r.Result.AverageDensity))
	case 4:
		label.SetText(resultCell(failed, "%.2f", r.Result.ThroatDiameter))
	case 5:
		label.SetText(resultCell(failed, "%.2f", r.Result.MixingChamberDiameter))
	case 6:
		label.SetText(r.Status())
	}
}

func resultCell(failed bool, layout string, v float64) string {
	if failed {
		return "-"
	}
	return fmt.Sprintf(layout, v)
}

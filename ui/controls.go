package ui

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"ejector-tool/internal/cli"
	"ejector-tool/internal/config"
	"ejector-tool/internal/export"
	"ejector-tool/internal/format"
	"ejector-tool/internal/importer"
	"ejector-tool/internal/model"
	"ejector-tool/internal/sizing"
)

var errNothingToExport = errors.New("no results to export: calculate first")

// Controls manages the Add/Calculate/Import/Export buttons.
type Controls struct {
	mu              sync.Mutex
	exportedRuns    int // runs already appended to the results CSV
	exportedStreams int // runs already appended to the streams CSV

	win        fyne.Window
	outputBase string
	resultsDir *widget.Entry

	addMotiveBtn  *widget.Button
	addSuctionBtn *widget.Button
	calcBtn       *StyledButton
	importBtn     *widget.Button
	exportBtn     *widget.Button

	streamForm  *StreamForm
	outputView  *OutputView
	historyView *HistoryView
	savedFiles  *SavedFilesList

	container *fyne.Container
}

// NewControls creates the control buttons wired to the given views.
func NewControls(win fyne.Window, cfg config.Config, sf *StreamForm, ov *OutputView, hv *HistoryView, sfl *SavedFilesList) *Controls {
	c := &Controls{
		win:         win,
		outputBase:  cfg.OutputBase,
		streamForm:  sf,
		outputView:  ov,
		historyView: hv,
		savedFiles:  sfl,
	}

	c.addMotiveBtn = widget.NewButton("Add Motive Stream", func() { sf.AddMotive() })
	c.addSuctionBtn = widget.NewButton("Add Suction Stream", func() { sf.AddSuction() })
	c.calcBtn = NewCalculateButton(c.onCalculate)
	c.importBtn = widget.NewButton("Import", c.onImport)
	c.exportBtn = widget.NewButton("Export", c.onExport)

	c.resultsDir = widget.NewEntry()
	c.resultsDir.SetText(cfg.ResultsDir)
	c.resultsDir.OnSubmitted = func(dir string) { c.savedFiles.SetDir(dir) }

	c.container = container.NewVBox(
		container.NewHBox(c.addMotiveBtn, c.addSuctionBtn, c.calcBtn, c.importBtn, c.exportBtn),
		widget.NewForm(widget.NewFormItem("Results dir", c.resultsDir)),
	)
	return c
}

// Container returns the controls container.
func (c *Controls) Container() *fyne.Container {
	return c.container
}

// LoadPreferences restores the results directory.
func (c *Controls) LoadPreferences(prefs fyne.Preferences) {
	if v := prefs.String(prefResultsDir); v != "" {
		c.resultsDir.SetText(v)
		c.savedFiles.SetDir(v)
	}
}

// SavePreferences persists the results directory.
func (c *Controls) SavePreferences(prefs fyne.Preferences) {
	prefs.SetString(prefResultsDir, c.resultsDir.Text)
}

func (c *Controls) onCalculate() {
	if _, err := c.Calculate(); err != nil {
		dialog.ShowError(err, c.win)
	}
}

// Calculate parses every stream row and sizes the ejector. The first row
// that does not parse aborts the calculation and nothing is shown.
func (c *Controls) Calculate() (*model.SizingRun, error) {
	recs, err := sizing.ParseStreams(c.streamForm.RawStreams())
	if err != nil {
		return nil, err
	}

	run, err := cli.NewRun(recs, "GUI", "")
	c.historyView.AddResult(run)
	if err != nil {
		c.outputView.Clear()
		return nil, err
	}

	c.outputView.SetText(format.FormatResult(&run))
	return &run, nil
}

func (c *Controls) onImport() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, c.win)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if err := c.Import(path); err != nil {
			dialog.ShowError(err, c.win)
		}
	}, c.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx", ".xlsm", ".csv"}))
	d.Show()
}

// Import replaces the stream rows with the table at path. The table must
// parse as a whole, as it does for the command line; otherwise the form is
// left untouched.
func (c *Controls) Import(path string) error {
	raws, err := importer.ReadFile(path)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	if _, err := sizing.ParseStreams(raws); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	if err := c.streamForm.SetStreams(raws); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	c.outputView.AppendLine(fmt.Sprintf("Imported %d streams from %s", len(raws), path))
	return nil
}

func (c *Controls) onExport() {
	if _, err := c.Export(); err != nil {
		dialog.ShowError(err, c.win)
	}
}

// Export writes the session's runs to dated reports in the results
// directory. CSV reports only receive runs not exported before; the text
// and workbook reports are rewritten with the whole session; the PDF holds
// the latest successful run.
func (c *Controls) Export() (export.ReportPaths, error) {
	runs := c.historyView.Results()
	if len(runs) == 0 {
		return export.ReportPaths{}, errNothingToExport
	}

	var latest *model.SizingRun
	for i := len(runs) - 1; i >= 0; i-- {
		if runs[i].Error == "" {
			latest = &runs[i]
			break
		}
	}

	mid := runs[len(runs)-1].MeasurementID
	if latest != nil {
		mid = latest.MeasurementID
	}
	dir := c.resultsDir.Text
	paths := export.BuildReportPaths(dir, c.outputBase, mid, time.Now())
	if err := export.EnsureDir(paths.CSV); err != nil {
		return paths, fmt.Errorf("create results dir: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := export.WriteCSV(paths.CSV, runs[c.exportedRuns:]); err != nil {
		return paths, err
	}
	c.exportedRuns = len(runs)

	for ; c.exportedStreams < len(runs); c.exportedStreams++ {
		if err := export.WriteStreamsCSV(paths.Streams, &runs[c.exportedStreams]); err != nil {
			return paths, err
		}
	}

	if err := export.WriteTXT(paths.TXT, runs); err != nil {
		return paths, err
	}
	if err := export.WriteXLSX(paths.XLSX, runs); err != nil {
		return paths, err
	}
	if latest != nil {
		if err := export.WritePDF(paths.PDF, latest); err != nil {
			return paths, err
		}
	}

	c.outputView.AppendLine(fmt.Sprintf("Exported %d results to %s", len(runs), dir))
	c.savedFiles.SetDir(dir)
	return paths, nil
}

package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ejector-tool/internal/config"
	"ejector-tool/internal/export"
	"ejector-tool/internal/sizing"
)

type harness struct {
	win      fyne.Window
	form     *StreamForm
	output   *OutputView
	history  *HistoryView
	controls *Controls
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	a := test.NewTempApp(t)

	cfg := config.Default()
	cfg.ResultsDir = t.TempDir()

	h := &harness{win: a.NewWindow("test")}
	h.form = NewStreamForm()
	h.output = NewOutputView()
	h.history = NewHistoryView()
	saved := NewSavedFilesList(cfg.ResultsDir)
	h.controls = NewControls(h.win, cfg, h.form, h.output, h.history, saved)
	t.Cleanup(h.win.Close)
	return h
}

func TestStreamRow_Defaults(t *testing.T) {
	newHarness(t)
	sf := NewStreamForm()
	row := sf.AddMotive()

	raw := row.Raw()
	assert.Equal(t, "Motive Stream 1", raw.Label)
	assert.Equal(t, "motive", raw.Role)
	assert.Equal(t, "Gas", raw.Fluid)
	assert.Equal(t, "0", raw.Flow)
	assert.Equal(t, "0", raw.Pressure)
	assert.Equal(t, "", raw.API)
	assert.Equal(t, "Flow (MMSCFD)", row.unit.Text)
}

func TestStreamRow_UnitFollowsFluid(t *testing.T) {
	newHarness(t)
	row := NewStreamForm().AddSuction()

	row.fluid.SetSelected("Oil")
	assert.Equal(t, "Flow (BPD)", row.unit.Text)
	row.fluid.SetSelected("Gas")
	assert.Equal(t, "Flow (MMSCFD)", row.unit.Text)
}

func TestStreamForm_OrderAndRenumber(t *testing.T) {
	newHarness(t)
	sf := NewStreamForm()
	s1 := sf.AddSuction()
	m1 := sf.AddMotive()
	sf.AddSuction()
	sf.AddMotive()

	raws := sf.RawStreams()
	require.Len(t, raws, 4)
	assert.Equal(t, []string{"Motive Stream 1", "Motive Stream 2", "Suction Stream 1", "Suction Stream 2"},
		[]string{raws[0].Label, raws[1].Label, raws[2].Label, raws[3].Label})

	sf.Remove(m1)
	sf.Remove(s1)
	m, s := sf.Len()
	assert.Equal(t, 1, m)
	assert.Equal(t, 1, s)

	raws = sf.RawStreams()
	assert.Equal(t, "Motive Stream 1", raws[0].Label)
	assert.Equal(t, "Suction Stream 1", raws[1].Label)
}

func TestCalculate_EndToEnd(t *testing.T) {
	h := newHarness(t)
	m := h.form.AddMotive()
	m.flow.SetText("10")
	m.pressure.SetText("1000")

	s := h.form.AddSuction()
	s.fluid.SetSelected("Water")
	s.flow.SetText("5000")

	run, err := h.controls.Calculate()
	require.NoError(t, err)
	assert.InDelta(t, 0.960762, run.Result.ThroatDiameter, 1e-3)
	assert.InDelta(t, 1.921524, run.Result.MixingChamberDiameter, 2e-3)
	assert.Equal(t, "GUI", run.Mode)

	out := h.output.Text()
	assert.Contains(t, out, "Nozzle Throat Diameter: 0.96 in")
	assert.Contains(t, out, "Mixing Chamber Diameter: 1.92 in")
	assert.Len(t, h.history.Results(), 1)
}

func TestCalculate_ParseErrorProducesNothing(t *testing.T) {
	h := newHarness(t)
	m := h.form.AddMotive()
	m.flow.SetText("10")
	m.pressure.SetText("1000")
	s := h.form.AddSuction()
	s.flow.SetText("abc")

	_, err := h.controls.Calculate()
	require.Error(t, err)

	var pe *sizing.ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "", h.output.Text())
	assert.Empty(t, h.history.Results())
}

func TestCalculate_NoValidInput(t *testing.T) {
	h := newHarness(t)
	h.form.AddMotive()

	_, err := h.controls.Calculate()
	assert.ErrorIs(t, err, sizing.ErrNoValidInput)
	assert.Equal(t, "", h.output.Text())
}

func TestImportAndExport(t *testing.T) {
	h := newHarness(t)

	path := filepath.Join(t.TempDir(), "streams.csv")
	data := "role,fluid,flow,pressure,api\nsuction,Oil,2000,0,35\nmotive,Gas,10,1000,\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	require.NoError(t, h.controls.Import(path))
	m, s := h.form.Len()
	assert.Equal(t, 1, m)
	assert.Equal(t, 1, s)

	raws := h.form.RawStreams()
	assert.Equal(t, "Gas", raws[0].Fluid)
	assert.Equal(t, "Oil", raws[1].Fluid)
	assert.Equal(t, "35", raws[1].API)

	_, err := h.controls.Export()
	assert.ErrorIs(t, err, errNothingToExport)

	_, err = h.controls.Calculate()
	require.NoError(t, err)

	paths, err := h.controls.Export()
	require.NoError(t, err)
	for _, p := range []string{paths.CSV, paths.Streams, paths.TXT, paths.XLSX, paths.PDF} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}

	// a second export without new runs does not duplicate CSV rows
	_, err = h.controls.Export()
	require.NoError(t, err)
	csv, err := os.ReadFile(paths.CSV)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(string(csv)), "\n")+1)
}

func TestPreferences_ResultsDir(t *testing.T) {
	h := newHarness(t)
	prefs := fyne.CurrentApp().Preferences()

	dir := t.TempDir()
	h.controls.resultsDir.SetText(dir)
	h.controls.SavePreferences(prefs)
	assert.Equal(t, dir, prefs.String(prefResultsDir))

	h.controls.resultsDir.SetText("elsewhere")
	h.controls.LoadPreferences(prefs)
	assert.Equal(t, dir, h.controls.resultsDir.Text)
	assert.Equal(t, dir, h.controls.savedFiles.Dir())
}

func TestNumberValidators(t *testing.T) {
	assert.NoError(t, numberValidator("flow")("12.5"))
	assert.Error(t, numberValidator("flow")(""))
	assert.Error(t, numberValidator("flow")("NaN"))
	assert.NoError(t, optionalNumberValidator("API")(""))
	assert.Error(t, optionalNumberValidator("API")("x"))
}

func TestImport_UnknownRoleLeavesForm(t *testing.T) {
	h := newHarness(t)
	h.form.AddMotive()

	path := filepath.Join(t.TempDir(), "streams.csv")
	data := "role,fluid,flow,pressure\nmotive,Gas,10,1000\ndriver,Water,5000,0\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	err := h.controls.Import(path)
	require.Error(t, err)

	var pe *sizing.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "role", pe.Field)

	m, s := h.form.Len()
	assert.Equal(t, 1, m)
	assert.Equal(t, 0, s)
}

func TestStreamForm_SetStreamsRejectsUnknownRole(t *testing.T) {
	newHarness(t)
	sf := NewStreamForm()
	sf.AddSuction()

	err := sf.SetStreams([]sizing.RawStream{{Label: "Row 2", Role: "driver", Fluid: "Gas"}})
	var pe *sizing.ParseError
	require.ErrorAs(t, err, &pe)

	m, s := sf.Len()
	assert.Equal(t, 0, m)
	assert.Equal(t, 1, s)
}

func TestExport_RetryAfterStreamsFailure(t *testing.T) {
	h := newHarness(t)
	m := h.form.AddMotive()
	m.flow.SetText("10")
	m.pressure.SetText("1000")
	s := h.form.AddSuction()
	s.fluid.SetSelected("Water")
	s.flow.SetText("5000")

	_, err := h.controls.Calculate()
	require.NoError(t, err)

	// a directory in place of the streams CSV makes that write fail
	dir := h.controls.resultsDir.Text
	blocked := export.BuildReportPaths(dir, config.Default().OutputBase, "x", time.Now()).Streams
	require.NoError(t, os.MkdirAll(blocked, 0o755))

	_, err = h.controls.Export()
	require.Error(t, err)

	require.NoError(t, os.Remove(blocked))
	paths, err := h.controls.Export()
	require.NoError(t, err)

	lines := func(path string) int {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		return strings.Count(string(data), "\n")
	}
	assert.Equal(t, 2, lines(paths.CSV))     // header + one run
	assert.Equal(t, 3, lines(paths.Streams)) // header + two streams
}

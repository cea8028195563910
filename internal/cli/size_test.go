package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ejector-tool/internal/casefile"
	"ejector-tool/internal/config"
	"ejector-tool/internal/sizing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(config.Default(), func() error { return errors.New("gui not available") })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRoot_NoArgsRunsGUI(t *testing.T) {
	called := false
	root := NewRootCmd(config.Default(), func() error {
		called = true
		return nil
	})
	root.SetArgs(nil)
	require.NoError(t, root.Execute())
	assert.True(t, called)
}

func TestSize_FromFlags(t *testing.T) {
	out, err := execute(t, "size", "--motive", "gas:10:1000", "--suction", "water:5000")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Ejector Sizing ===")
	assert.Contains(t, out, "Nozzle Throat Diameter: 0.96 in")
	assert.Contains(t, out, "Mixing Chamber Diameter: 1.92 in")
	assert.Contains(t, out, "1 motive / 1 suction")
}

func TestSize_InvalidSpecAborts(t *testing.T) {
	_, err := execute(t, "size", "--motive", "gas:ten:1000", "--suction", "water:5000")
	require.Error(t, err)

	var pe *sizing.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestSize_NoValidInput(t *testing.T) {
	_, err := execute(t, "size", "--motive", "gas:0:1000")
	require.Error(t, err)
	assert.ErrorIs(t, err, sizing.ErrNoValidInput)
}

func TestSize_WritesReports(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out", "results.csv")
	txtPath := filepath.Join(dir, "out", "results.txt")
	pdfPath := filepath.Join(dir, "out", "report.pdf")
	xlsxPath := filepath.Join(dir, "out", "results.xlsx")

	_, err := execute(t, "size",
		"-m", "gas:10:1000", "-s", "water:5000",
		"-o", csvPath, "--txt", txtPath, "--pdf", pdfPath, "--xlsx", xlsxPath)
	require.NoError(t, err)

	for _, p := range []string{csvPath, txtPath, pdfPath, xlsxPath} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}
}

func TestLoadStreams_CaseAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, casefile.Default().SaveToFile(path))

	recs, name, err := LoadStreams(SizeOptions{
		CaseFile: path,
		Suction:  []string{"oil:2000:0:35"},
		Motive:   []string{"water:100"},
	})
	require.NoError(t, err)
	assert.Equal(t, "example", name)
	require.Len(t, recs, 4)

	// motive streams come first regardless of source
	assert.Equal(t, sizing.Motive, recs[0].Role)
	assert.Equal(t, sizing.Motive, recs[1].Role)
	assert.Equal(t, sizing.Suction, recs[2].Role)
	assert.Equal(t, sizing.Suction, recs[3].Role)
	assert.Equal(t, sizing.Water, recs[1].Fluid)
	require.NotNil(t, recs[3].API)
	assert.Equal(t, 35.0, *recs[3].API)
}

func TestLoadStreams_NameOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, casefile.Default().SaveToFile(path))

	_, name, err := LoadStreams(SizeOptions{CaseFile: path, CaseName: "well 7"})
	require.NoError(t, err)
	assert.Equal(t, "well 7", name)
}

func TestLoadStreams_ImportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streams.csv")
	data := "role;fluid;flow;pressure;api\nmotive;Gas;10;1000;\nsuction;Water;5000;0;\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	recs, _, err := LoadStreams(SizeOptions{ImportFile: path})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	run, err := NewRun(recs, "CLI", "")
	require.NoError(t, err)
	assert.InDelta(t, 0.960762, run.Result.ThroatDiameter, 1e-3)
	assert.NotEmpty(t, run.ID)
	assert.NotEmpty(t, run.MeasurementID)
}

func TestLoadStreams_MissingCase(t *testing.T) {
	_, _, err := LoadStreams(SizeOptions{CaseFile: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestNewRun_RecordsError(t *testing.T) {
	run, err := NewRun(nil, "CLI", "")
	require.ErrorIs(t, err, sizing.ErrNoValidInput)
	assert.Equal(t, sizing.ErrNoValidInput.Error(), run.Error)
	assert.Equal(t, "CLI", run.Mode)
}

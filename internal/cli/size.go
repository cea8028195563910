package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ejector-tool/internal/casefile"
	"ejector-tool/internal/config"
	"ejector-tool/internal/export"
	"ejector-tool/internal/format"
	"ejector-tool/internal/id"
	"ejector-tool/internal/importer"
	"ejector-tool/internal/model"
	"ejector-tool/internal/sizing"
)

// SizeOptions holds all CLI options for one sizing run.
type SizeOptions struct {
	// Inputs
	Motive     []string // fluid:flow[:pressure[:api]]
	Suction    []string
	CaseFile   string
	ImportFile string
	CaseName   string

	// Outputs
	OutputCSV  string
	OutputTXT  string
	OutputPDF  string
	OutputXLSX string
	Verbose    bool
}

func newSizeCmd(cfg config.Config) *cobra.Command {
	opts := SizeOptions{Verbose: cfg.Verbose}

	cmd := &cobra.Command{
		Use:   "size",
		Short: "Size an ejector from motive and suction streams",
		Long: `Computes total mass flow, average density, nozzle throat diameter and
mixing chamber diameter.

Streams are given as fluid:flow[:pressure[:api]]. Gas flow is in MMSCFD,
oil and water flow in BPD, pressure in psia. Streams with flow <= 0 are
skipped. Any value that is not a number aborts the whole calculation.`,
		Example: `  ejector-tool size --motive gas:10:1000 --suction water:5000
  ejector-tool size --case well.yaml -o results.csv --pdf well.pdf
  ejector-tool size --import streams.xlsx --xlsx results.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := RunSize(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			PrintResult(cmd.OutOrStdout(), run)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&opts.Motive, "motive", "m", nil, "motive stream fluid:flow[:pressure[:api]] (repeatable)")
	f.StringArrayVarP(&opts.Suction, "suction", "s", nil, "suction stream fluid:flow[:pressure[:api]] (repeatable)")
	f.StringVarP(&opts.CaseFile, "case", "c", "", "YAML case file with motive and suction streams")
	f.StringVar(&opts.ImportFile, "import", "", "stream table (.xlsx or .csv) with role,fluid,flow,pressure[,api] columns")
	f.StringVar(&opts.CaseName, "name", "", "case name shown in reports (defaults to the case file name)")
	f.StringVarP(&opts.OutputCSV, "output", "o", "", "append result to CSV file")
	f.StringVar(&opts.OutputTXT, "txt", "", "write formatted result to text file")
	f.StringVar(&opts.OutputPDF, "pdf", "", "write PDF report")
	f.StringVar(&opts.OutputXLSX, "xlsx", "", "write Excel workbook")
	f.BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "verbose output")

	return cmd
}

// LoadStreams gathers streams from the case file, the import file and the
// command-line specs, in that order, and returns them motive first. The first
// invalid stream aborts loading.
func LoadStreams(opts SizeOptions) ([]sizing.StreamRecord, string, error) {
	var all []sizing.StreamRecord
	name := opts.CaseName

	if opts.CaseFile != "" {
		c, err := casefile.LoadFromFile(opts.CaseFile)
		if err != nil {
			return nil, "", err
		}
		recs, err := c.Records()
		if err != nil {
			return nil, "", err
		}
		all = append(all, recs...)
		if name == "" {
			name = c.Name
		}
	}

	if opts.ImportFile != "" {
		raws, err := importer.ReadFile(opts.ImportFile)
		if err != nil {
			return nil, "", fmt.Errorf("import %s: %w", opts.ImportFile, err)
		}
		recs, err := sizing.ParseStreams(raws)
		if err != nil {
			return nil, "", fmt.Errorf("import %s: %w", opts.ImportFile, err)
		}
		all = append(all, recs...)
	}

	for i, spec := range opts.Motive {
		rec, err := sizing.ParseStreamSpec(sizing.Motive, fmt.Sprintf("Motive Stream %d", i+1), spec)
		if err != nil {
			return nil, "", err
		}
		all = append(all, rec)
	}
	for i, spec := range opts.Suction {
		rec, err := sizing.ParseStreamSpec(sizing.Suction, fmt.Sprintf("Suction Stream %d", i+1), spec)
		if err != nil {
			return nil, "", err
		}
		all = append(all, rec)
	}

	var motive, suction []sizing.StreamRecord
	for _, r := range all {
		if r.Role == sizing.Motive {
			motive = append(motive, r)
		} else {
			suction = append(suction, r)
		}
	}
	return sizing.Concat(motive, suction), name, nil
}

// NewRun calculates a sizing run for streams. The run is returned even when
// the calculation fails, with Error set, so callers can record the failure.
func NewRun(streams []sizing.StreamRecord, mode, caseName string) (model.SizingRun, error) {
	now := time.Now()
	hostname, _ := os.Hostname()
	run := model.SizingRun{
		ID:            id.NewAt(now),
		MeasurementID: export.NextMeasurementID(now),
		Timestamp:     now,
		Mode:          mode,
		CaseName:      caseName,
		LocalHostname: hostname,
		Streams:       streams,
	}

	res, err := sizing.Calculate(streams)
	if err != nil {
		run.Error = err.Error()
		return run, err
	}
	run.Result = res
	return run, nil
}

// RunSize loads the streams, sizes the ejector and writes the requested
// reports. Diagnostics go to logw.
func RunSize(opts SizeOptions, logw io.Writer) (*model.SizingRun, error) {
	log := newLogger(logw, opts.Verbose)

	streams, name, err := LoadStreams(opts)
	if err != nil {
		return nil, err
	}
	log.Debug("streams loaded", "count", len(streams), "case", name)

	run, err := NewRun(streams, "CLI", name)
	if err != nil {
		return nil, err
	}
	log.Debug("sized", "id", run.ID, "included", run.Result.IncludedStreams)

	if err := SaveReports(opts, &run); err != nil {
		return &run, err
	}
	for _, p := range []string{opts.OutputCSV, opts.OutputTXT, opts.OutputPDF, opts.OutputXLSX} {
		if p != "" {
			log.Debug("report written", "path", p)
		}
	}
	return &run, nil
}

// SaveReports writes every report named in opts.
func SaveReports(opts SizeOptions, run *model.SizingRun) error {
	runs := []model.SizingRun{*run}

	if opts.OutputCSV != "" {
		if err := export.EnsureDir(opts.OutputCSV); err != nil {
			return fmt.Errorf("save CSV: %w", err)
		}
		if err := export.WriteCSV(opts.OutputCSV, runs); err != nil {
			return fmt.Errorf("save CSV: %w", err)
		}
	}
	if opts.OutputTXT != "" {
		if err := export.EnsureDir(opts.OutputTXT); err != nil {
			return fmt.Errorf("save TXT: %w", err)
		}
		if err := export.WriteTXT(opts.OutputTXT, runs); err != nil {
			return fmt.Errorf("save TXT: %w", err)
		}
	}
	if opts.OutputPDF != "" {
		if err := export.EnsureDir(opts.OutputPDF); err != nil {
			return fmt.Errorf("save PDF: %w", err)
		}
		if err := export.WritePDF(opts.OutputPDF, run); err != nil {
			return fmt.Errorf("save PDF: %w", err)
		}
	}
	if opts.OutputXLSX != "" {
		if err := export.EnsureDir(opts.OutputXLSX); err != nil {
			return fmt.Errorf("save XLSX: %w", err)
		}
		if err := export.WriteXLSX(opts.OutputXLSX, runs); err != nil {
			return fmt.Errorf("save XLSX: %w", err)
		}
	}
	return nil
}

// PrintResult writes the formatted run to w.
func PrintResult(w io.Writer, run *model.SizingRun) {
	fmt.Fprintln(w, format.FormatResult(run))
}

package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"ejector-tool/internal/model"
	"ejector-tool/internal/sizing"
)

var csvHeaders = []string{
	"date",
	"time",
	"run_id",
	"measurement_id",
	"case",
	"hostname",
	"mode",
	"motive_streams",
	"suction_streams",
	"included_streams",
	"total_mass_flow_lbm_day",
	"mass_flow_rate_lbm_s",
	"avg_density_lb_ft3",
	"throat_diameter_in",
	"mixing_chamber_diameter_in",
	"error",
}

// WriteCSV writes sizing runs to a CSV file (semicolon-separated), creating
// it with headers if it doesn't exist, or appending rows if it does.
func WriteCSV(path string, runs []model.SizingRun) error {
	exists := fileExists(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if !exists {
		if err := w.Write(csvHeaders); err != nil {
			return fmt.Errorf("write csv headers: %w", err)
		}
	}

	for _, r := range runs {
		if err := w.Write(runRow(&r)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func runRow(r *model.SizingRun) []string {
	// Result columns stay empty for failed runs.
	mass, rate, rho, throat, mixing := "", "", "", "", ""
	if r.Error == "" {
		mass = fmt.Sprintf("%.2f", r.Result.TotalMassFlow)
		rate = fmt.Sprintf("%.4f", r.TotalMassFlowRate())
		rho = fmt.Sprintf("%.3f", r.Result.AverageDensity)
		throat = fmt.Sprintf("%.3f", r.Result.ThroatDiameter)
		mixing = fmt.Sprintf("%.3f", r.Result.MixingChamberDiameter)
	}
	return []string{
		r.Timestamp.Format("02.01.2006"),
		r.Timestamp.Format("15:04:05"),
		r.ID,
		r.MeasurementID,
		r.CaseName,
		r.LocalHostname,
		r.Mode,
		strconv.Itoa(r.MotiveCount()),
		strconv.Itoa(r.SuctionCount()),
		strconv.Itoa(r.Result.IncludedStreams),
		mass,
		rate,
		rho,
		throat,
		mixing,
		r.Error,
	}
}

var streamHeaders = []string{
	"run_id",
	"measurement_id",
	"index",
	"role",
	"fluid",
	"flow",
	"flow_unit",
	"pressure_psia",
	"api",
	"density_lb_ft3",
	"mass_flow_lbm_day",
	"included",
}

// WriteStreamsCSV appends one row per input stream of run to a CSV file
// (semicolon-separated), with per-stream density and mass flow.
func WriteStreamsCSV(path string, run *model.SizingRun) error {
	exists := fileExists(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open streams csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if !exists {
		if err := w.Write(streamHeaders); err != nil {
			return fmt.Errorf("write streams headers: %w", err)
		}
	}

	for i, s := range run.Streams {
		if err := w.Write(streamRow(run, i, s)); err != nil {
			return fmt.Errorf("write streams row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush streams csv: %w", err)
	}
	return nil
}

func streamRow(run *model.SizingRun, i int, s sizing.StreamRecord) []string {
	api := ""
	if s.API != nil {
		api = fmt.Sprintf("%.2f", *s.API)
	}
	density, mass, included := "", "", "0"
	if c, ok := sizing.Contribute(s); ok {
		density = fmt.Sprintf("%.3f", c.Density)
		mass = fmt.Sprintf("%.2f", c.MassFlow)
		included = "1"
	}
	return []string{
		run.ID,
		run.MeasurementID,
		strconv.Itoa(i + 1),
		string(s.Role),
		string(s.Fluid),
		strconv.FormatFloat(s.Flow, 'f', -1, 64),
		s.Fluid.FlowUnit(),
		strconv.FormatFloat(s.Pressure, 'f', -1, 64),
		api,
		density,
		mass,
		included,
	}
}

package format

import (
	"fmt"
	"strings"

	"ejector-tool/internal/model"
	"ejector-tool/internal/sizing"
)

// FormatStreamHeader returns a header line for the stream table.
func FormatStreamHeader() string {
	return fmt.Sprintf("%-3s %-8s %-6s %14s %-7s %12s %8s", "#", "Role", "Fluid", "Flow", "Unit", "Pressure", "API")
}

// FormatStream produces a single formatted line for one input stream.
func FormatStream(i int, s sizing.StreamRecord) string {
	api := "-"
	if s.API != nil {
		api = fmt.Sprintf("%.1f", *s.API)
	}
	line := fmt.Sprintf("%-3d %-8s %-6s %14.2f %-7s %12.2f %8s",
		i, s.Role, s.Fluid, s.Flow, s.Fluid.FlowUnit(), s.Pressure, api)
	if s.Flow <= 0 {
		line += "  (skipped)"
	}
	return line
}

// FormatSummary returns the four result lines shown in the result panel.
func FormatSummary(r sizing.Result) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Total Mass Flow: %.2f lbm/day\n", r.TotalMassFlow))
	b.WriteString(fmt.Sprintf("Avg Density: %.2f lb/ft³\n", r.AverageDensity))
	b.WriteString(fmt.Sprintf("Nozzle Throat Diameter: %.2f in\n", r.ThroatDiameter))
	b.WriteString(fmt.Sprintf("Mixing Chamber Diameter: %.2f in", r.MixingChamberDiameter))
	return b.String()
}

// FormatResult produces a human-readable formatted output of a sizing run.
func FormatResult(r *model.SizingRun) string {
	var b strings.Builder

	b.WriteString("=== Ejector Sizing ===\n")
	b.WriteString(fmt.Sprintf("Timestamp:       %s\n", r.Timestamp.Format("2006-01-02 15:04:05")))
	if r.CaseName != "" {
		b.WriteString(fmt.Sprintf("Case:            %s\n", r.CaseName))
	}
	if r.MeasurementID != "" {
		b.WriteString(fmt.Sprintf("Measurement:     %s\n", r.MeasurementID))
	}
	b.WriteString(fmt.Sprintf("Streams:         %d motive / %d suction\n", r.MotiveCount(), r.SuctionCount()))

	if len(r.Streams) > 0 {
		b.WriteString("\n--- Streams ---\n")
		b.WriteString(FormatStreamHeader() + "\n")
		for i, s := range r.Streams {
			b.WriteString(FormatStream(i+1, s) + "\n")
		}
	}

	if r.Error != "" {
		b.WriteString(fmt.Sprintf("\nError: %s\n", r.Error))
		b.WriteString("======================")
		return b.String()
	}

	b.WriteString("\n--- Result ---\n")
	b.WriteString(FormatSummary(r.Result) + "\n")
	b.WriteString(fmt.Sprintf("Mass Flow Rate:  %.3f lbm/s\n", r.TotalMassFlowRate()))
	b.WriteString(fmt.Sprintf("Throat Area:     %.4f in²\n", r.ThroatAreaSqIn()))
	b.WriteString(fmt.Sprintf("Mix Velocity:    %.0f ft/s (assumed)\n", sizing.MixtureVelocity))
	if r.HasGas() {
		b.WriteString(fmt.Sprintf("Gas Sonic Vel.:  %.1f ft/s (reference only)\n", sizing.GasSonicVelocity()))
	}

	b.WriteString("======================")
	return b.String()
}

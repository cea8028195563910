package export

import (
	"fmt"

	"github.com/phpdave11/gofpdf"

	"ejector-tool/internal/format"
	"ejector-tool/internal/model"
	"ejector-tool/internal/sizing"
)

// WritePDF renders a single sizing run as an A4 report.
func WritePDF(path string, run *model.SizingRun) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Ejector Sizing Report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Multi-Stream Ejector Sizing")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if run.CaseName != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Case: %s", run.CaseName)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", run.Timestamp.Format("2006-01-02 15:04:05")))
	pdf.Ln(6)
	if run.MeasurementID != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Measurement: %s", run.MeasurementID))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Input Streams")
	pdf.Ln(9)

	widths := []float64{10, 25, 20, 35, 20, 35, 20}
	headers := []string{"#", "Role", "Fluid", "Flow", "Unit", "Pressure (psia)", "API"}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for i, s := range run.Streams {
		api := "-"
		if s.API != nil {
			api = fmt.Sprintf("%.1f", *s.API)
		}
		cells := []string{
			fmt.Sprintf("%d", i+1),
			string(s.Role),
			string(s.Fluid),
			fmt.Sprintf("%.2f", s.Flow),
			s.Fluid.FlowUnit(),
			fmt.Sprintf("%.2f", s.Pressure),
			api,
		}
		for j, c := range cells {
			align := "R"
			if j == 1 || j == 2 || j == 4 {
				align = "L"
			}
			pdf.CellFormat(widths[j], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Result")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	if run.Error != "" {
		pdf.MultiCell(0, 6, tr("Error: "+run.Error), "", "L", false)
	} else {
		pdf.MultiCell(0, 6, tr(format.FormatSummary(run.Result)), "", "L", false)
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, tr(fmt.Sprintf(
			"Assumes a mixture velocity of %.0f ft/s and a mixing chamber %.0fx the throat diameter. "+
				"Gas at %.0f °R, MW %.0f; oil without API gravity at %.0f lb/ft³.",
			sizing.MixtureVelocity, sizing.MixingChamberRatio,
			sizing.StandardTemperatureR, sizing.GasMolecularWeight, sizing.FallbackOilDensity)), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf file: %w", err)
	}
	return nil
}

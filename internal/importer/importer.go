package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"ejector-tool/internal/sizing"
)

// ErrEmptyTable is returned when a file has no header row or no stream rows.
var ErrEmptyTable = errors.New("stream table is empty")

var requiredColumns = []string{"role", "fluid", "flow", "pressure"}

// ReadFile reads streams from an .xlsx or .csv file, chosen by extension.
func ReadFile(path string) ([]sizing.RawStream, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path)
	case ".csv":
		return ReadCSV(path)
	}
	return nil, fmt.Errorf("unsupported stream file %q (want .xlsx or .csv)", path)
}

// ReadXLSX reads streams from the first sheet of a workbook.
func ReadXLSX(path string) ([]sizing.RawStream, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return fromRows(rows)
}

// ReadCSV reads streams from a comma- or semicolon-separated file.
func ReadCSV(path string) ([]sizing.RawStream, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if firstLine, _, _ := strings.Cut(string(data), "\n"); strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		r.Comma = ';'
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return fromRows(rows)
}

// fromRows maps a header row plus data rows to raw streams. Columns are
// matched by name in any order; blank rows are skipped.
func fromRows(rows [][]string) ([]sizing.RawStream, error) {
	if len(rows) < 2 {
		return nil, ErrEmptyTable
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("missing column %q in header", c)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []sizing.RawStream
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		out = append(out, sizing.RawStream{
			Label:    fmt.Sprintf("Row %d", n+2),
			Role:     cell(row, "role"),
			Fluid:    cell(row, "fluid"),
			Flow:     cell(row, "flow"),
			Pressure: cell(row, "pressure"),
			API:      cell(row, "api"),
		})
	}
	if len(out) == 0 {
		return nil, ErrEmptyTable
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

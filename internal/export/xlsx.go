package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ejector-tool/internal/model"
)

const (
	resultsSheet = "Results"
	streamsSheet = "Streams"
)

// WriteXLSX writes sizing runs to a workbook with a Results sheet (one row per
// run) and a Streams sheet (one row per input stream). The file is replaced.
func WriteXLSX(path string, runs []model.SizingRun) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(streamsSheet); err != nil {
		return fmt.Errorf("create streams sheet: %w", err)
	}

	if err := writeRows(f, resultsSheet, csvHeaders, func(add func([]string) error) error {
		for i := range runs {
			if err := add(runRow(&runs[i])); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := writeRows(f, streamsSheet, streamHeaders, func(add func([]string) error) error {
		for i := range runs {
			for j, s := range runs[i].Streams {
				if err := add(streamRow(&runs[i], j, s)); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx file: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, headers []string, fill func(add func([]string) error) error) error {
	row := 1
	add := func(values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		vals := make([]interface{}, len(values))
		for i, v := range values {
			vals[i] = v
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, row, err)
		}
		row++
		return nil
	}
	if err := add(headers); err != nil {
		return err
	}
	return fill(add)
}

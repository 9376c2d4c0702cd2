package spreadsheet

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/fpdsverify/pkg/archive"
	"github.com/agentstation/fpdsverify/pkg/errors"
	"github.com/agentstation/fpdsverify/pkg/report"
	"github.com/agentstation/fpdsverify/pkg/verify"
)

// Export sheet names.
const (
	resultsSheet = "Verification Results"
	summarySheet = "Summary"
)

// maxColumnWidth caps auto-sized spreadsheet column widths.
const maxColumnWidth = 50

// ExportPaths holds the locations of the written report files.
type ExportPaths struct {
	Excel string
	CSV   string
}

// WriteReports writes the full results table and the summary into the
// run's archive directory, as a multi-sheet Excel workbook and a flat CSV
// (results only). Base name: fpds_verification_<run_timestamp>.
func WriteReports(run archive.RunContext, records []verify.ContractRecord, summary report.Summary) (ExportPaths, error) {
	// Runs where every fetch fails archive nothing, so the directory may
	// not exist yet.
	if err := run.Ensure(); err != nil {
		return ExportPaths{}, err
	}

	base := "fpds_verification_" + run.TimestampString()
	paths := ExportPaths{
		Excel: filepath.Join(run.Dir, base+".xlsx"),
		CSV:   filepath.Join(run.Dir, base+".csv"),
	}

	headers := report.Headers()
	rows := report.Rows(records)

	if err := writeExcel(paths.Excel, headers, rows, summary); err != nil {
		return ExportPaths{}, err
	}
	if err := writeCSV(paths.CSV, headers, rows); err != nil {
		return ExportPaths{}, err
	}

	return paths, nil
}

func writeExcel(path string, headers []string, rows [][]string, summary report.Summary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := writeSheet(f, resultsSheet, headers, rows); err != nil {
		return errors.WrapIO("write", path, err)
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := writeSheet(f, summarySheet, report.SummaryHeaders(), report.SummaryRows(summary)); err != nil {
		return errors.WrapIO("write", path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// writeSheet fills one sheet with a header row plus data rows and sizes
// each column to its longest cell, up to the cap.
func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))

	writeRow := func(rowNum int, cells []string) error {
		for i, value := range cells {
			cellName, err := excelize.CoordinatesToCellName(i+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cellName, value); err != nil {
				return err
			}
			if i < len(widths) && len(value) > widths[i] {
				widths[i] = len(value)
			}
		}
		return nil
	}

	if err := writeRow(1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(i+2, row); err != nil {
			return err
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		adjusted := width + 2
		if adjusted > maxColumnWidth {
			adjusted = maxColumnWidth
		}
		if err := f.SetColWidth(sheet, col, col, float64(adjusted)); err != nil {
			return err
		}
	}

	return nil
}

func writeCSV(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return errors.WrapIO("write", path, err)
	}

	w.Flush()
	return errors.WrapIO("write", path, w.Error())
}

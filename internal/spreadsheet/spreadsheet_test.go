package spreadsheet_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/fpdsverify/internal/spreadsheet"
	"github.com/agentstation/fpdsverify/pkg/archive"
	"github.com/agentstation/fpdsverify/pkg/fpds"
	"github.com/agentstation/fpdsverify/pkg/report"
	"github.com/agentstation/fpdsverify/pkg/verify"
)

// writeWorkbook creates a test workbook with a header row and data rows.
func writeWorkbook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	for r, row := range rows {
		for c, value := range row {
			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cellName, value))
		}
	}

	path := filepath.Join(t.TempDir(), "contracts.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestReadContracts(t *testing.T) {
	t.Run("reads valid rows", func(t *testing.T) {
		path := writeWorkbook(t, "Contracts", [][]string{
			{"AGENCY", "DESCRIPTION", "SAVED", "LINK"},
			{"DoD", "Widget", "500000", "https://x/?PIID=P"},
			{"GSA", "Service", "$1,250.50", "https://y"},
		})

		records, err := spreadsheet.ReadContracts(path, spreadsheet.DefaultSheet)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "DoD", records[0].Agency)
		assert.True(t, records[0].ClaimedSaved.Equal(decimal.NewFromInt(500000)))
		assert.Equal(t, verify.StatusNotVerified, records[0].Status)

		// Currency symbols and separators in SAVED are tolerated.
		assert.True(t, records[1].ClaimedSaved.Equal(decimal.RequireFromString("1250.50")))
	})

	t.Run("drops rows with missing required cells", func(t *testing.T) {
		path := writeWorkbook(t, "Contracts", [][]string{
			{"AGENCY", "DESCRIPTION", "SAVED", "LINK"},
			{"DoD", "Widget", "500000", "https://x"},
			{"", "No agency", "1", "https://y"},
			{"GSA", "", "1", "https://z"},
			{"GSA", "No saved", "", "https://z"},
			{"GSA", "No link", "1", ""},
		})

		records, err := spreadsheet.ReadContracts(path, spreadsheet.DefaultSheet)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "DoD", records[0].Agency)
	})

	t.Run("columns in any order", func(t *testing.T) {
		path := writeWorkbook(t, "Contracts", [][]string{
			{"LINK", "SAVED", "AGENCY", "DESCRIPTION", "EXTRA"},
			{"https://x", "42", "DoD", "Widget", "ignored"},
		})

		records, err := spreadsheet.ReadContracts(path, spreadsheet.DefaultSheet)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "https://x", records[0].SourceLink)
	})

	t.Run("missing required column is fatal", func(t *testing.T) {
		path := writeWorkbook(t, "Contracts", [][]string{
			{"AGENCY", "DESCRIPTION", "LINK"},
			{"DoD", "Widget", "https://x"},
		})

		_, err := spreadsheet.ReadContracts(path, spreadsheet.DefaultSheet)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SAVED")
	})

	t.Run("unparseable SAVED is fatal", func(t *testing.T) {
		path := writeWorkbook(t, "Contracts", [][]string{
			{"AGENCY", "DESCRIPTION", "SAVED", "LINK"},
			{"DoD", "Widget", "lots", "https://x"},
		})

		_, err := spreadsheet.ReadContracts(path, spreadsheet.DefaultSheet)
		assert.Error(t, err)
	})

	t.Run("missing sheet is fatal", func(t *testing.T) {
		path := writeWorkbook(t, "Other", [][]string{
			{"AGENCY", "DESCRIPTION", "SAVED", "LINK"},
		})

		_, err := spreadsheet.ReadContracts(path, "Contracts")
		assert.Error(t, err)
	})

	t.Run("missing file is fatal", func(t *testing.T) {
		_, err := spreadsheet.ReadContracts(filepath.Join(t.TempDir(), "absent.xlsx"), "Contracts")
		assert.Error(t, err)
	})
}

func TestWriteReports(t *testing.T) {
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	run := archive.NewRunContext(t.TempDir(), at)

	total := decimal.NewFromInt(500000)
	exercised := decimal.NewFromInt(400000)
	obligated := decimal.NewFromInt(100000)

	records := []verify.ContractRecord{
		{
			Agency:       "DoD",
			Description:  "Widget",
			ClaimedSaved: decimal.NewFromInt(500000),
			SourceLink:   "https://x/?PIID=P",
			Status:       verify.StatusVerified,
			ArchiveID:    "P_20250101_120000",
			AccessedAt:   &at,
			Total: fpds.ContractAmounts{
				ActionObligation:  &obligated,
				BaseAndExercised:  &exercised,
				BaseAndAllOptions: &total,
			},
		},
		{
			Agency:       "GSA",
			Description:  "Service",
			ClaimedSaved: decimal.NewFromInt(100),
			SourceLink:   "https://y",
			Status:       verify.StatusError,
			Error:        "request failed: connection refused",
		},
	}

	summary := report.Summarize(records)

	paths, err := spreadsheet.WriteReports(run, records, summary)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(run.Dir, "fpds_verification_20250101_120000.xlsx"), paths.Excel)
	assert.Equal(t, filepath.Join(run.Dir, "fpds_verification_20250101_120000.csv"), paths.CSV)

	t.Run("excel workbook", func(t *testing.T) {
		f, err := excelize.OpenFile(paths.Excel)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		rows, err := f.GetRows("Verification Results")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, report.Headers(), rows[0])
		assert.Equal(t, "DoD", rows[1][0])
		assert.Contains(t, rows[1], "$500,000.00")
		assert.Contains(t, rows[2], "request failed: connection refused")

		summaryRows, err := f.GetRows("Summary")
		require.NoError(t, err)
		require.Len(t, summaryRows, 7)
		assert.Equal(t, []string{"Metric", "Value"}, summaryRows[0])
		assert.Equal(t, []string{"Total Contracts", "2"}, summaryRows[1])
		assert.Equal(t, []string{"Total Amount Obligated", "$100,000.00"}, summaryRows[5])
		assert.Equal(t, []string{"Total Potential Savings", "$100,000.00"}, summaryRows[6])
	})

	t.Run("csv export", func(t *testing.T) {
		f, err := os.Open(paths.CSV)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, report.Headers(), rows[0])
		assert.Equal(t, "GSA", rows[2][0])
	})
}

// A run where every fetch fails archives no pages, so the archive
// directory does not exist when the reports are written. The export must
// still succeed so the per-record error messages reach the reader.
func TestWriteReportsAllFetchesFailed(t *testing.T) {
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	run := archive.NewRunContext(filepath.Join(t.TempDir(), "work"), at)

	_, err := os.Stat(run.Dir)
	require.True(t, os.IsNotExist(err))

	records := []verify.ContractRecord{
		{
			Agency:       "DoD",
			Description:  "Widget",
			ClaimedSaved: decimal.NewFromInt(500000),
			SourceLink:   "https://x/?PIID=P",
			Status:       verify.StatusError,
			Error:        "request failed: connection refused",
		},
		{
			Agency:       "GSA",
			Description:  "Service",
			ClaimedSaved: decimal.NewFromInt(100),
			SourceLink:   "https://y",
			Status:       verify.StatusError,
			Error:        "request failed: connection refused",
		},
	}

	paths, err := spreadsheet.WriteReports(run, records, report.Summarize(records))
	require.NoError(t, err)

	f, err := os.Open(paths.CSV)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Contains(t, rows[1], "request failed: connection refused")

	_, err = os.Stat(paths.Excel)
	assert.NoError(t, err)
}

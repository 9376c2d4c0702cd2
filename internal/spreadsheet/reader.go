// Package spreadsheet reads contract claims from Excel workbooks and
// writes verification reports as Excel and CSV files. It is the tabular
// I/O boundary around the verification core.
package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/fpdsverify/pkg/errors"
	"github.com/agentstation/fpdsverify/pkg/verify"
)

// DefaultSheet is the sheet contract rows are read from when no sheet
// name is supplied.
const DefaultSheet = "Contracts"

// Required input columns, matched against the header row by exact name.
const (
	columnAgency      = "AGENCY"
	columnDescription = "DESCRIPTION"
	columnSaved       = "SAVED"
	columnLink        = "LINK"
)

// ReadContracts loads contract records from the named sheet of an Excel
// workbook. Rows missing any required cell are dropped before reaching
// the verification core; a malformed workbook, missing sheet, missing
// header column, or unparseable SAVED amount is fatal.
func ReadContracts(path, sheet string) ([]verify.ContractRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.NewParseError("xlsx", path, fmt.Sprintf("sheet %q: %s", sheet, err), err)
	}
	if len(rows) == 0 {
		return nil, errors.NewParseError("xlsx", path, fmt.Sprintf("sheet %q has no header row", sheet), nil)
	}

	columns, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]verify.ContractRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		agency := cell(row, columns[columnAgency])
		description := cell(row, columns[columnDescription])
		saved := cell(row, columns[columnSaved])
		link := cell(row, columns[columnLink])

		if agency == "" || description == "" || saved == "" || link == "" {
			continue
		}

		claimed, err := parseSaved(saved)
		if err != nil {
			return nil, errors.NewValidationError(columnSaved, saved,
				fmt.Sprintf("row %d: not a number", i+2))
		}

		record, err := verify.NewContractRecord(agency, description, claimed, link)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// headerIndex maps required column names to their positions in the header
// row. Columns may appear in any order.
func headerIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, 4)
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	for _, required := range []string{columnAgency, columnDescription, columnSaved, columnLink} {
		if _, ok := columns[required]; !ok {
			return nil, errors.NewValidationError(required, nil, "required column missing")
		}
	}
	return columns, nil
}

// cell returns the trimmed cell at index, tolerating short rows.
func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// parseSaved normalizes a claimed amount cell into a decimal, tolerating
// currency symbols and group separators.
func parseSaved(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(value))
	return decimal.NewFromString(cleaned)
}

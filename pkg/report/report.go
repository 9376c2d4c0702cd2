// Package report aggregates finalized contract records into summary
// statistics and tabular rows for export and console display.
package report

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/agentstation/fpdsverify/pkg/archive"
	"github.com/agentstation/fpdsverify/pkg/verify"
)

// printer formats currency amounts with US-style thousands grouping.
var printer = message.NewPrinter(language.English)

// FormatAmount renders an optional amount as a display currency string.
// A nil amount renders as "N/A", never as zero.
func FormatAmount(amount *decimal.Decimal) string {
	if amount == nil {
		return "N/A"
	}
	f, _ := amount.Float64()
	return printer.Sprintf("$%v", number.Decimal(f, number.Scale(2)))
}

// Summary holds the aggregate statistics for one verification run.
type Summary struct {
	TotalContracts int
	Verified       int
	Mismatches     int
	Errors         int

	// TotalObligated sums Total.ActionObligation across records where it
	// is present; absent values are excluded, not treated as zero.
	TotalObligated decimal.Decimal

	// TotalPotentialSavings sums (Total.BaseAndAllOptions −
	// Total.BaseAndExercised) across records where both are present.
	TotalPotentialSavings decimal.Decimal
}

// Summarize computes run statistics from finalized records.
func Summarize(records []verify.ContractRecord) Summary {
	s := Summary{TotalContracts: len(records)}

	for _, record := range records {
		switch record.Status {
		case verify.StatusVerified:
			s.Verified++
		case verify.StatusMismatch:
			s.Mismatches++
		case verify.StatusError:
			s.Errors++
		}

		if record.Total.ActionObligation != nil {
			s.TotalObligated = s.TotalObligated.Add(*record.Total.ActionObligation)
		}
		if savings := record.PotentialSavings(); savings != nil {
			s.TotalPotentialSavings = s.TotalPotentialSavings.Add(*savings)
		}
	}

	return s
}

// Headers returns the column headers of the full results table.
func Headers() []string {
	return []string{
		"Agency",
		"Description",
		"Saved Amount",
		"Current Action Obligation",
		"Current Base & Exercised",
		"Current Total Value",
		"Total Action Obligation",
		"Total Base & Exercised",
		"Total Contract Value",
		"Status",
		"Error",
		"Link",
		"Archive ID",
		"Accessed Date",
		"Potential Savings",
		"Already Obligated",
	}
}

// Row renders one finalized record as a results table row.
func Row(record verify.ContractRecord) []string {
	claimed := record.ClaimedSaved
	accessed := ""
	if record.AccessedAt != nil {
		accessed = record.AccessedAt.Format(archive.TimestampLayout)
	}

	return []string{
		record.Agency,
		record.Description,
		FormatAmount(&claimed),
		FormatAmount(record.Current.ActionObligation),
		FormatAmount(record.Current.BaseAndExercised),
		FormatAmount(record.Current.BaseAndAllOptions),
		FormatAmount(record.Total.ActionObligation),
		FormatAmount(record.Total.BaseAndExercised),
		FormatAmount(record.Total.BaseAndAllOptions),
		string(record.Status),
		record.Error,
		record.SourceLink,
		record.ArchiveID,
		accessed,
		FormatAmount(record.PotentialSavings()),
		FormatAmount(record.Total.ActionObligation),
	}
}

// Rows renders all records, preserving input order.
func Rows(records []verify.ContractRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, Row(record))
	}
	return rows
}

// SummaryHeaders returns the column headers of the summary table.
func SummaryHeaders() []string {
	return []string{"Metric", "Value"}
}

// SummaryRows renders the summary as metric/value pairs.
func SummaryRows(s Summary) [][]string {
	obligated := s.TotalObligated
	savings := s.TotalPotentialSavings

	return [][]string{
		{"Total Contracts", strconv.Itoa(s.TotalContracts)},
		{"Verified", strconv.Itoa(s.Verified)},
		{"Mismatches", strconv.Itoa(s.Mismatches)},
		{"Errors", strconv.Itoa(s.Errors)},
		{"Total Amount Obligated", FormatAmount(&obligated)},
		{"Total Potential Savings", FormatAmount(&savings)},
	}
}

// Package table converts verification results into console table data.
package table

import (
	"github.com/agentstation/fpdsverify/internal/cmd/output"
	"github.com/agentstation/fpdsverify/pkg/report"
	"github.com/agentstation/fpdsverify/pkg/verify"
)

// maxTextWidth truncates free-text columns so the console table stays
// readable.
const maxTextWidth = 30

// ResultsToTableData converts verified records to the console results
// table: the condensed view with one row per contract.
func ResultsToTableData(records []verify.ContractRecord) output.Data {
	headers := []string{
		"Agency",
		"Description",
		"Saved Amount",
		"Total Contract Value",
		"Already Obligated",
		"Potential Savings",
		"Status",
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		claimed := record.ClaimedSaved
		rows = append(rows, []string{
			truncate(record.Agency),
			truncate(record.Description),
			report.FormatAmount(&claimed),
			report.FormatAmount(record.Total.BaseAndAllOptions),
			report.FormatAmount(record.Total.ActionObligation),
			report.FormatAmount(record.PotentialSavings()),
			string(record.Status),
		})
	}

	return output.Data{
		Headers: headers,
		Rows:    rows,
		ColumnAlignment: []output.Align{
			output.AlignLeft,
			output.AlignLeft,
			output.AlignRight,
			output.AlignRight,
			output.AlignRight,
			output.AlignRight,
			output.AlignDefault,
		},
	}
}

// SummaryToTableData converts run statistics to the console summary table.
func SummaryToTableData(summary report.Summary) output.Data {
	return output.Data{
		Headers: report.SummaryHeaders(),
		Rows:    report.SummaryRows(summary),
	}
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) > maxTextWidth {
		return string(runes[:maxTextWidth])
	}
	return s
}

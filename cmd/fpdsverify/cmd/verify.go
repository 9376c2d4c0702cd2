package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/fpdsverify/internal/cmd/output"
	"github.com/agentstation/fpdsverify/internal/cmd/table"
	"github.com/agentstation/fpdsverify/internal/spreadsheet"
	"github.com/agentstation/fpdsverify/pkg/archive"
	"github.com/agentstation/fpdsverify/pkg/errors"
	"github.com/agentstation/fpdsverify/pkg/logging"
	"github.com/agentstation/fpdsverify/pkg/report"
	"github.com/agentstation/fpdsverify/pkg/verify"
)

var sheetName string

// verifyCmd reconciles a spreadsheet of claimed savings against FPDS.
var verifyCmd = &cobra.Command{
	Use:   "verify <spreadsheet.xlsx>",
	Short: "Verify claimed contract savings against FPDS",
	Long: `Verify loads contract claims from an Excel spreadsheet, fetches each
contract's FPDS page, archives the raw HTML as evidence, and classifies
each claim as Verified, Mismatch, or Error.

The spreadsheet must contain the columns AGENCY, DESCRIPTION, SAVED, and
LINK; rows with any of them empty are skipped. Results and archived pages
are written to a fresh verification_archive_<timestamp> directory.`,
	Example: `  fpdsverify verify contracts.xlsx
  fpdsverify verify contracts.xlsx --sheet "FY25 Claims"`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&sheetName, "sheet", spreadsheet.DefaultSheet,
		"Name of the sheet containing contract data")
	rootCmd.AddCommand(verifyCmd)
}

// verifyResult is the structured output for json/yaml formats.
type verifyResult struct {
	Results []verify.ContractRecord `json:"results" yaml:"results"`
	Summary report.Summary          `json:"summary" yaml:"summary"`
	Archive string                  `json:"archive_dir" yaml:"archive_dir"`
	Excel   string                  `json:"excel_report" yaml:"excel_report"`
	CSV     string                  `json:"csv_report" yaml:"csv_report"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	records, err := spreadsheet.ReadContracts(inputPath, sheetName)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.NewValidationError("", inputPath, "no contract data found in the spreadsheet")
	}

	run := archive.NewRunContext(".", time.Now())
	if err := run.Ensure(); err != nil {
		return err
	}
	ctx := logging.WithRunID(cmd.Context(), run.TimestampString())

	opts := []verify.Option{}
	if !globalFlags.Quiet {
		total := len(records)
		opts = append(opts, verify.WithProgress(func(i int, record verify.ContractRecord) {
			fmt.Fprintf(os.Stderr, "Verifying %d/%d: %s [%s]\n", i+1, total, record.Agency, record.Status)
		}))
	}

	verifier := verify.New(run, opts...)
	results, err := verifier.VerifyAll(ctx, records)
	if err != nil {
		return err
	}

	summary := report.Summarize(results)

	paths, err := spreadsheet.WriteReports(run, results, summary)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(globalFlags.Output)
	if err != nil {
		return err
	}

	if format == output.FormatTable || format == "" {
		return printConsole(results, summary, run, paths)
	}

	formatter := output.NewFormatter(format)
	return formatter.Format(os.Stdout, verifyResult{
		Results: results,
		Summary: summary,
		Archive: run.Dir,
		Excel:   paths.Excel,
		CSV:     paths.CSV,
	})
}

// printConsole renders the human-readable results and summary tables and
// reports where the evidence and exports were written.
func printConsole(results []verify.ContractRecord, summary report.Summary, run archive.RunContext, paths spreadsheet.ExportPaths) error {
	formatter := output.NewFormatter(output.FormatTable)

	fmt.Println("\nVerification Results:")
	if err := formatter.Format(os.Stdout, table.ResultsToTableData(results)); err != nil {
		return err
	}

	fmt.Println("\nSummary:")
	if err := formatter.Format(os.Stdout, table.SummaryToTableData(summary)); err != nil {
		return err
	}

	fmt.Println("\nResults and archives saved to:")
	fmt.Printf("Archive directory: %s\n", run.Dir)
	fmt.Printf("Excel report: %s\n", paths.Excel)
	fmt.Printf("CSV report: %s\n", paths.CSV)

	return nil
}

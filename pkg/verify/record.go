// Package verify reconciles claimed contract-savings records against live
// FPDS contract pages. For each record it fetches the contract page,
// archives the raw evidence, extracts the reported amounts, and classifies
// the claim as Verified, Mismatch, or Error.
package verify

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agentstation/fpdsverify/pkg/errors"
	"github.com/agentstation/fpdsverify/pkg/fpds"
)

// Status is the terminal classification of one contract record.
type Status string

// Record statuses. Every record ends in exactly one of the terminal
// statuses; StatusNotVerified only appears before reconciliation.
const (
	StatusNotVerified Status = "Not Verified"
	StatusVerified    Status = "Verified"
	StatusMismatch    Status = "Mismatch"
	StatusError       Status = "Error"
)

// ContractRecord is one unit of verification work and its result. The
// engine returns a fully-populated copy; finalized records are treated as
// immutable facts for reporting.
type ContractRecord struct {
	// Input fields, from the source spreadsheet.
	Agency       string          `json:"agency" yaml:"agency"`
	Description  string          `json:"description" yaml:"description"`
	ClaimedSaved decimal.Decimal `json:"claimed_saved_amount" yaml:"claimed_saved_amount"`
	SourceLink   string          `json:"source_link" yaml:"source_link"`

	// Outcome fields, populated exactly once during reconciliation.
	Current    fpds.ContractAmounts `json:"current_amounts" yaml:"current_amounts"`
	Total      fpds.ContractAmounts `json:"total_amounts" yaml:"total_amounts"`
	Status     Status               `json:"status" yaml:"status"`
	Error      string               `json:"error,omitempty" yaml:"error,omitempty"`
	ArchiveID  string               `json:"archive_id,omitempty" yaml:"archive_id,omitempty"`
	AccessedAt *time.Time           `json:"accessed_at,omitempty" yaml:"accessed_at,omitempty"`
}

// NewContractRecord constructs a record from an input row. All input
// fields are required.
func NewContractRecord(agency, description string, claimedSaved decimal.Decimal, sourceLink string) (ContractRecord, error) {
	switch {
	case agency == "":
		return ContractRecord{}, errors.NewValidationError("agency", agency, "cannot be empty")
	case description == "":
		return ContractRecord{}, errors.NewValidationError("description", description, "cannot be empty")
	case sourceLink == "":
		return ContractRecord{}, errors.NewValidationError("source_link", sourceLink, "cannot be empty")
	}

	return ContractRecord{
		Agency:       agency,
		Description:  description,
		ClaimedSaved: claimedSaved,
		SourceLink:   sourceLink,
		Status:       StatusNotVerified,
	}, nil
}

// PotentialSavings returns the difference between the total contract value
// and the exercised value, or nil when either side is missing.
func (r ContractRecord) PotentialSavings() *decimal.Decimal {
	if r.Total.BaseAndAllOptions == nil || r.Total.BaseAndExercised == nil {
		return nil
	}
	savings := r.Total.BaseAndAllOptions.Sub(*r.Total.BaseAndExercised)
	return &savings
}

// Package fpds extracts contract monetary fields from FPDS contract pages.
//
// FPDS (the Federal Procurement Data System) renders contract amounts as
// semi-structured HTML form inputs. This package locates the relevant input
// fields by their fixed element ids and normalizes their values into
// decimals. A missing or unparseable field degrades to a nil amount rather
// than an error; classification of unusable pages happens downstream.
package fpds

import (
	"github.com/shopspring/decimal"
)

// ContractAmounts is a snapshot of the three monetary fields FPDS reports
// for a contract. A nil field means the source page lacked that value; it
// must propagate as nil and never be coerced to zero.
type ContractAmounts struct {
	// ActionObligation is the incrementally committed funding amount.
	ActionObligation *decimal.Decimal `json:"action_obligation" yaml:"action_obligation"`

	// BaseAndExercised is the contract value including exercised options only.
	BaseAndExercised *decimal.Decimal `json:"base_and_exercised" yaml:"base_and_exercised"`

	// BaseAndAllOptions is the maximum potential contract value, used as
	// the total contract value in verification.
	BaseAndAllOptions *decimal.Decimal `json:"base_and_all_options" yaml:"base_and_all_options"`
}

// IsEmpty reports whether no field was extracted.
func (a ContractAmounts) IsEmpty() bool {
	return a.ActionObligation == nil && a.BaseAndExercised == nil && a.BaseAndAllOptions == nil
}

// FPDS input element ids for the latest-modification amounts.
const (
	fieldObligatedAmount    = "obligatedAmount"
	fieldBaseAndExercised   = "baseAndExercisedOptionsValue"
	fieldUltimateValue      = "ultimateContractValue"
	fieldTotalObligated     = "totalObligatedAmount"
	fieldTotalBaseExercised = "totalBaseAndExercisedOptionsValue"
	fieldTotalUltimateValue = "totalUltimateContractValue"
)

package fpds_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fpdsverify/pkg/fpds"
)

func contractPage(fields map[string]string) string {
	page := `<html><body><form id="contractForm">`
	for id, value := range fields {
		page += fmt.Sprintf(`<input type="text" id=%q value=%q>`, id, value)
	}
	page += `</form></body></html>`
	return page
}

func TestExtractAmounts(t *testing.T) {
	t.Run("all fields present", func(t *testing.T) {
		page := contractPage(map[string]string{
			"obligatedAmount":                   "$1,000.00",
			"baseAndExercisedOptionsValue":      "$2,000.00",
			"ultimateContractValue":             "$3,000.00",
			"totalObligatedAmount":              "$10,000.00",
			"totalBaseAndExercisedOptionsValue": "$20,000.00",
			"totalUltimateContractValue":        "$30,000.00",
		})

		current, total := fpds.ExtractAmounts(page)

		require.NotNil(t, current.ActionObligation)
		assert.True(t, current.ActionObligation.Equal(decimal.NewFromInt(1000)))
		require.NotNil(t, current.BaseAndExercised)
		assert.True(t, current.BaseAndExercised.Equal(decimal.NewFromInt(2000)))
		require.NotNil(t, current.BaseAndAllOptions)
		assert.True(t, current.BaseAndAllOptions.Equal(decimal.NewFromInt(3000)))

		require.NotNil(t, total.ActionObligation)
		assert.True(t, total.ActionObligation.Equal(decimal.NewFromInt(10000)))
		require.NotNil(t, total.BaseAndExercised)
		assert.True(t, total.BaseAndExercised.Equal(decimal.NewFromInt(20000)))
		require.NotNil(t, total.BaseAndAllOptions)
		assert.True(t, total.BaseAndAllOptions.Equal(decimal.NewFromInt(30000)))
	})

	t.Run("missing fields stay nil", func(t *testing.T) {
		page := contractPage(map[string]string{
			"obligatedAmount": "123.45",
		})

		current, total := fpds.ExtractAmounts(page)

		require.NotNil(t, current.ActionObligation)
		assert.True(t, current.ActionObligation.Equal(decimal.RequireFromString("123.45")))
		assert.Nil(t, current.BaseAndExercised)
		assert.Nil(t, current.BaseAndAllOptions)
		assert.True(t, total.IsEmpty())
	})

	t.Run("empty value yields nil", func(t *testing.T) {
		page := contractPage(map[string]string{
			"ultimateContractValue": "  ",
		})

		current, _ := fpds.ExtractAmounts(page)
		assert.Nil(t, current.BaseAndAllOptions)
	})

	t.Run("unparseable value yields nil", func(t *testing.T) {
		page := contractPage(map[string]string{
			"totalUltimateContractValue": "pending",
		})

		_, total := fpds.ExtractAmounts(page)
		assert.Nil(t, total.BaseAndAllOptions)
	})

	t.Run("currency symbols and separators stripped", func(t *testing.T) {
		page := contractPage(map[string]string{
			"totalUltimateContractValue": " $500,000.00 ",
		})

		_, total := fpds.ExtractAmounts(page)
		require.NotNil(t, total.BaseAndAllOptions)
		assert.True(t, total.BaseAndAllOptions.Equal(decimal.RequireFromString("500000.00")))
	})

	t.Run("input without value attribute yields nil", func(t *testing.T) {
		page := `<html><body><input type="text" id="obligatedAmount"></body></html>`

		current, _ := fpds.ExtractAmounts(page)
		assert.Nil(t, current.ActionObligation)
	})

	t.Run("field id on non-input element is ignored", func(t *testing.T) {
		page := `<html><body><div id="obligatedAmount" value="99"></div></body></html>`

		current, _ := fpds.ExtractAmounts(page)
		assert.Nil(t, current.ActionObligation)
	})

	t.Run("degrades to empty on unusable markup", func(t *testing.T) {
		// html.Parse is tolerant, so even mangled markup parses; the
		// fields are simply absent and everything stays nil.
		current, total := fpds.ExtractAmounts("<<<<not really html")
		assert.True(t, current.IsEmpty())
		assert.True(t, total.IsEmpty())
	})

	t.Run("empty document", func(t *testing.T) {
		current, total := fpds.ExtractAmounts("")
		assert.True(t, current.IsEmpty())
		assert.True(t, total.IsEmpty())
	})
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, fpds.ContractAmounts{}.IsEmpty())

	amount := decimal.NewFromInt(1)
	assert.False(t, fpds.ContractAmounts{ActionObligation: &amount}.IsEmpty())
}

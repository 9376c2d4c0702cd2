package fpds

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractAmounts extracts the current (latest modification) and total
// (cumulative) contract amounts from raw FPDS HTML. It is a pure function:
// a document that cannot be parsed yields two empty ContractAmounts rather
// than an error, and individual missing or malformed fields yield nil.
func ExtractAmounts(htmlContent string) (current, total ContractAmounts) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ContractAmounts{}, ContractAmounts{}
	}

	current = ContractAmounts{
		ActionObligation:  parseAmount(doc, fieldObligatedAmount),
		BaseAndExercised:  parseAmount(doc, fieldBaseAndExercised),
		BaseAndAllOptions: parseAmount(doc, fieldUltimateValue),
	}

	total = ContractAmounts{
		ActionObligation:  parseAmount(doc, fieldTotalObligated),
		BaseAndExercised:  parseAmount(doc, fieldTotalBaseExercised),
		BaseAndAllOptions: parseAmount(doc, fieldTotalUltimateValue),
	}

	return current, total
}

// parseAmount locates the input field with the given id and normalizes its
// value attribute into a decimal. Returns nil when the field is absent,
// empty, or unparseable.
func parseAmount(doc *html.Node, fieldID string) *decimal.Decimal {
	value, ok := lookupField(doc, fieldID)
	if !ok {
		return nil
	}

	cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(value))
	if cleaned == "" {
		return nil
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	return &amount
}

// lookupField finds the value attribute of the <input> element with the
// given id. It is the single dynamic lookup primitive over the document.
func lookupField(doc *html.Node, fieldID string) (string, bool) {
	var value string
	var found bool

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Input {
			var id string
			var val string
			var hasVal bool
			for _, attr := range n.Attr {
				switch attr.Key {
				case "id":
					id = attr.Val
				case "value":
					val = attr.Val
					hasVal = true
				}
			}
			if id == fieldID && hasVal {
				value = val
				found = true
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return value, found
}

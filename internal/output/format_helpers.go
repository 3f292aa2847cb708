package output

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCurrency formats a decimal as Brazilian reais, e.g. "R$ 1.234,57".
func FormatCurrency(amount decimal.Decimal) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("R$ %.2f", amount.Round(2).InexactFloat64())
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatNumber formats a decimal with pt-BR separators and the given number of places.
func FormatNumber(amount decimal.Decimal, places int) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("%."+strconv.Itoa(places)+"f", amount.Round(int32(places)).InexactFloat64())
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func optionalFixed(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

// internal/estimator/report.go
package estimator

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var dollarPrinter = message.NewPrinter(language.English)

// FormatDollars renders whole dollars with thousands separators, e.g. "$1,250,000".
func FormatDollars(amount int) string {
	if amount < 0 {
		return "-$" + dollarPrinter.Sprintf("%d", -amount)
	}
	return "$" + dollarPrinter.Sprintf("%d", amount)
}

// Render formats a prediction as the text shown to the person who asked for it.
func Render(p PricePrediction) string {
	var b strings.Builder

	b.WriteString("Predicted House Price: ")
	b.WriteString(FormatDollars(p.Price))
	b.WriteString("\n")

	b.WriteString("Confidence Range: ")
	b.WriteString(FormatDollars(p.Confidence.Lower))
	b.WriteString(" - ")
	b.WriteString(FormatDollars(p.Confidence.Upper))
	b.WriteString("\n")

	b.WriteString("Location: ")
	b.WriteString(p.Location.Name)
	if p.Location.Description != "" {
		b.WriteString(" (")
		b.WriteString(p.Location.Description)
		b.WriteString(")")
	}
	b.WriteString("\n")

	b.WriteString("Market: ")
	b.WriteString(p.MarketTier)
	b.WriteString("\n")

	b.WriteString("Strategy: ")
	b.WriteString(string(p.Strategy))
	b.WriteString("\n")

	if len(p.Factors) > 0 {
		b.WriteString("Factors:\n")
		for _, factor := range p.Factors {
			b.WriteString("  - ")
			b.WriteString(factor)
			b.WriteString("\n")
		}
	}

	return b.String()
}

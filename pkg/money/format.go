package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNGN renders a whole-naira amount with grouping, e.g. ₦1,200,000.
func FormatNGN(amount int64) string {
	if amount < 0 {
		return "-" + printer.Sprintf("₦%d", -amount)
	}
	return printer.Sprintf("₦%d", amount)
}

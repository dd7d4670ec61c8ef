package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BahtSymbol is appended to every formatted amount
const BahtSymbol = "฿"

var thaiPrinter = message.NewPrinter(language.Thai)

// FormatBaht formats an integer amount of baht the way the poster shows it,
// with Thai digit grouping: 2647 -> "2,647฿".
func FormatBaht(amount int) string {
	return thaiPrinter.Sprintf("%d", amount) + BahtSymbol
}

// FormatBahtBold wraps the amount in Markdown bold, as used in webhook messages
func FormatBahtBold(amount int) string {
	return "**" + FormatBaht(amount) + "**"
}

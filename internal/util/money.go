package util

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount with thousands separators for notification
// messages, e.g. 1500 -> "1,500" and 1500.5 -> "1,500.5". Trailing zero
// decimals are dropped so whole amounts read as plain integers.
func FormatMoney(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	return moneyPrinter.Sprintf("%v", number.Decimal(f))
}

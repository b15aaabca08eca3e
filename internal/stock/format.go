package stock

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencyPrinter = message.NewPrinter(language.MustParse("en-PK"))

// FormatCurrency renders an amount the way the shop writes prices:
// "Rs." prefix, en-PK digit grouping. Display-only, callers keep raw floats.
func FormatCurrency(amount float64) string {
	return currencyPrinter.Sprintf("Rs. %v", number.Decimal(amount, number.MaxFractionDigits(3)))
}

// TodayISO returns today's date as "YYYY-MM-DD" (UTC).
func TodayISO() string {
	return time.Now().UTC().Format("2006-01-02")
}

// ThisMonthISO returns the current month as "YYYY-MM" (UTC).
func ThisMonthISO() string {
	return time.Now().UTC().Format("2006-01")
}

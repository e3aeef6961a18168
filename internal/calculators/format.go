package calculators

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display formatting follows en-CA conventions: "$1,234", "-$50", "12.3%".
// Non-finite values render as zero. Rounding is half away from zero and
// happens only here, never inside the calculations.

var printer = message.NewPrinter(language.MustParse("en-CA"))

// Currency formats whole dollars.
func Currency(v float64) string {
	d := rounded(v, 0)
	if d.IsNegative() {
		return "-$" + grouped(d.Abs(), 0)
	}
	return "$" + grouped(d, 0)
}

// Percent formats a decimal rate (0.123) with one decimal place.
func Percent(rate float64) string {
	if !isFinite(rate) {
		rate = 0
	}
	d := rounded(rate*100, 1)
	if d.IsNegative() {
		return "-" + grouped(d.Abs(), 1) + "%"
	}
	return grouped(d, 1) + "%"
}

// Number formats a whole number with thousands separators.
func Number(v float64) string {
	d := rounded(v, 0)
	if d.IsNegative() {
		return "-" + grouped(d.Abs(), 0)
	}
	return grouped(d, 0)
}

// Ratio formats a multiplier such as "1.67x".
func Ratio(v float64) string {
	return rounded(v, 2).StringFixed(2) + "x"
}

func rounded(v float64, places int32) decimal.Decimal {
	if !isFinite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(places)
}

// grouped renders an already rounded, non-negative value with thousands
// separators and exactly places fraction digits.
func grouped(d decimal.Decimal, places int) string {
	return printer.Sprint(number.Decimal(d.InexactFloat64(),
		number.MinFractionDigits(places),
		number.MaxFractionDigits(places)))
}

// chartValue rounds a plotted value to whole units; halves round up.
// Non-finite values plot as 0 so chart rows always serialize.
func chartValue(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return math.Floor(v + 0.5)
}

// PlainNumber renders v without grouping or rounding, the form used in
// share links and exports.
func PlainNumber(v float64) string {
	return formatPlain(v)
}

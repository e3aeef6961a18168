package calculation

import (
	"math"

	"github.com/olsonco/calckit/internal/domain"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal and BC brackets come from the year's rule table; no indexing
//    is applied to years that are not in the table.
//
// 2. The only credit applied is the basic personal amount, valued at the
//    jurisdiction's lowest bracket rate. Other non-refundable credits,
//    surtaxes and the BC tax reduction are not modelled.
//
// 3. RRSP contributions and other deductions reduce taxable income dollar
//    for dollar with no contribution-limit check.

// BracketTax returns the progressive tax owed on income. Brackets must be
// sorted ascending with the unbounded bracket last.
func BracketTax(income float64, brackets []domain.TaxBracket) float64 {
	if income <= 0 {
		return 0
	}

	remaining := income
	previousCap := 0.0
	total := 0.0

	for _, b := range brackets {
		if remaining <= 0 {
			break
		}
		upper := bracketCap(b)
		slice := math.Max(0, math.Min(remaining, upper-previousCap))

		total += slice * b.Rate
		remaining -= slice
		previousCap = upper
	}

	return total
}

// MarginalRate returns the rate of the bracket the next dollar of income
// falls into.
func MarginalRate(income float64, brackets []domain.TaxBracket) float64 {
	if income <= 0 || len(brackets) == 0 {
		return 0
	}
	for _, b := range brackets {
		if income <= bracketCap(b) {
			return b.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}

// basicPersonalCredit values the basic personal amount at the lowest rate.
func basicPersonalCredit(j domain.JurisdictionRules) float64 {
	if len(j.Brackets) == 0 {
		return 0
	}
	return math.Max(0, j.BasicPersonalAmount) * j.Brackets[0].Rate
}

func bracketCap(b domain.TaxBracket) float64 {
	if upper, ok := b.Cap(); ok {
		return upper
	}
	return math.Inf(1)
}

package finmath

import "math"

// DefaultGSTRate is the federal GST rate applied in British Columbia.
const DefaultGSTRate = 0.05

// BreakEvenUnits returns the units needed to cover fixedCosts. It returns
// +Inf when each unit loses money or breaks even, meaning no volume works.
func BreakEvenUnits(fixedCosts, pricePerUnit, variableCostPerUnit float64) float64 {
	contribution := pricePerUnit - variableCostPerUnit
	if contribution <= 0 {
		return math.Inf(1)
	}
	return fixedCosts / contribution
}

// GSTResult splits a reporting period into tax collected, input tax
// credits and the net remittance. A negative Remittance is a refund.
type GSTResult struct {
	Collected  float64 `json:"collected"`
	ITC        float64 `json:"itc"`
	Remittance float64 `json:"remittance"`
}

// GSTRemittance computes the net GST/HST owing for a period.
func GSTRemittance(taxableSales, taxableExpenses, rate float64) GSTResult {
	collected := taxableSales * rate
	itc := taxableExpenses * rate
	return GSTResult{
		Collected:  collected,
		ITC:        itc,
		Remittance: collected - itc,
	}
}

package finmath

import (
	"fmt"
	"math"
)

// MonthlyRateFromAnnualPercent converts 6 (percent per year) to 0.005.
func MonthlyRateFromAnnualPercent(annualPercent float64) float64 {
	return annualPercent / 100 / 12
}

// MortgagePayment returns the fixed monthly payment that amortizes
// principal over years at annualRatePercent.
func MortgagePayment(principal, annualRatePercent, years float64) float64 {
	monthlyRate := MonthlyRateFromAnnualPercent(annualRatePercent)
	periods := math.Max(1, years*12)

	if monthlyRate == 0 {
		return principal / periods
	}

	growth := math.Pow(1+monthlyRate, periods)
	return principal * monthlyRate * growth / (growth - 1)
}

// AmortizationArgs describes a fixed-rate loan.
type AmortizationArgs struct {
	Principal         float64
	AnnualRatePercent float64
	AmortizationYears float64
}

// AmortizationYear summarizes one year (or the trailing partial year).
type AmortizationYear struct {
	Year          string  `json:"year"`
	Balance       float64 `json:"balance"`
	InterestPaid  float64 `json:"interestPaid"`
	PrincipalPaid float64 `json:"principalPaid"`
}

// AmortizationSchedule is the result of BuildAmortizationSchedule.
type AmortizationSchedule struct {
	Payment       float64            `json:"payment"`
	TotalInterest float64            `json:"totalInterest"`
	TotalPaid     float64            `json:"totalPaid"`
	Yearly        []AmortizationYear `json:"yearly"`
}

// BuildAmortizationSchedule simulates the loan month by month and emits a
// summary at every twelfth month and at the final period. Terms longer than
// MaxSimulationMonths are amortized over MaxSimulationMonths.
func BuildAmortizationSchedule(args AmortizationArgs) AmortizationSchedule {
	monthlyRate := MonthlyRateFromAnnualPercent(args.AnnualRatePercent)
	years := math.Min(args.AmortizationYears, MaxSimulationMonths/12)
	payment := MortgagePayment(args.Principal, args.AnnualRatePercent, years)
	periods := years * 12

	balance := args.Principal
	totalInterest := 0.0
	var yearInterest, yearPrincipal float64
	var yearly []AmortizationYear

	for i := 1; float64(i) <= periods; i++ {
		interest := 0.0
		if monthlyRate != 0 {
			interest = balance * monthlyRate
		}
		principalPaid := math.Min(balance, payment-interest)

		balance = math.Max(0, balance-principalPaid)
		totalInterest += interest
		yearInterest += interest
		yearPrincipal += principalPaid

		if i%12 == 0 || float64(i) == periods {
			yearly = append(yearly, AmortizationYear{
				Year:          fmt.Sprintf("Year %d", (i+11)/12),
				Balance:       balance,
				InterestPaid:  yearInterest,
				PrincipalPaid: yearPrincipal,
			})
			yearInterest, yearPrincipal = 0, 0
		}
	}

	return AmortizationSchedule{
		Payment:       payment,
		TotalInterest: totalInterest,
		TotalPaid:     payment * periods,
		Yearly:        yearly,
	}
}

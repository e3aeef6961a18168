package finmath

import "fmt"

// ProjectionArgs describes a savings balance with monthly contributions.
type ProjectionArgs struct {
	Initial             float64
	MonthlyContribution float64
	AnnualReturnPercent float64
	Years               float64
}

// YearBalance is a year-end snapshot.
type YearBalance struct {
	Year    string  `json:"year"`
	Balance float64 `json:"balance"`
}

// Projection is the result of FutureValueProjection.
type Projection struct {
	FinalBalance float64       `json:"finalBalance"`
	ByYear       []YearBalance `json:"byYear"`
}

// FutureValueProjection compounds monthly: each month the balance grows by
// the monthly rate, then the contribution is added.
func FutureValueProjection(args ProjectionArgs) Projection {
	monthlyRate := args.AnnualReturnPercent / 100 / 12
	months := args.Years * 12
	balance := args.Initial

	var byYear []YearBalance
	for m := 1; float64(m) <= months && m <= MaxSimulationMonths; m++ {
		balance = balance*(1+monthlyRate) + args.MonthlyContribution

		if m%12 == 0 || float64(m) == months {
			byYear = append(byYear, YearBalance{
				Year:    fmt.Sprintf("Y%d", (m+11)/12),
				Balance: balance,
			})
		}
	}

	return Projection{FinalBalance: balance, ByYear: byYear}
}

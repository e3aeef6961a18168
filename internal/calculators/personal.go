package calculators

import (
	"fmt"
	"math"
	"strconv"

	"github.com/olsonco/calckit/internal/domain"
	"github.com/olsonco/calckit/internal/finmath"
)

// maxHorizonYears bounds year-by-year loops driven by inputs.
const maxHorizonYears = finmath.MaxSimulationMonths / 12

func tfsaTracker(in domain.Inputs) domain.Output {
	startingRoom := asNumber(in, "startingRoom", 0)
	yearlyLimit := asNumber(in, "yearlyLimit", 0)
	contributions := asNumber(in, "contributionsThisYear", 0)
	withdrawals := asNumber(in, "withdrawalsThisYear", 0)

	remaining := math.Max(0, startingRoom+yearlyLimit-contributions)
	recontribution := math.Max(0, withdrawals)

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "Estimated Remaining Room", Value: Currency(remaining)},
			{Label: "Current-Year Contributions", Value: Currency(contributions)},
			{Label: "Current-Year Withdrawals", Value: Currency(withdrawals)},
			{Label: "Potential Next-Year Recontribution", Value: Currency(recontribution)},
		},
		Narrative: []string{
			"This tracker is intentionally simple and should be validated with CRA contribution-room records.",
			"Withdrawals are shown as potential recontribution room for the next calendar year.",
		},
		Warnings: []string{"Estimate only. Confirm exact TFSA room directly with CRA records."},
		Chart: &domain.Chart{
			Type: domain.ChartBar,
			XKey: "name",
			Data: []domain.ChartRow{
				{"name": "Starting Room", "amount": chartValue(startingRoom)},
				{"name": "This Year Limit", "amount": chartValue(yearlyLimit)},
				{"name": "Remaining", "amount": chartValue(remaining)},
			},
			Series: []domain.ChartSeries{{Key: "amount", Name: "Amount", Color: "#0284c7"}},
		},
	}
}

func mortgagePaymentAmortization(in domain.Inputs) domain.Output {
	homePrice := asNumber(in, "homePrice", 0)
	downPaymentPercent := asNumber(in, "downPaymentPercent", 20)
	interestRate := asNumber(in, "interestRate", 5)
	years := math.Min(asNumber(in, "amortizationYears", 25), maxHorizonYears)

	principal := math.Max(0, homePrice-homePrice*(downPaymentPercent/100))
	schedule := finmath.BuildAmortizationSchedule(finmath.AmortizationArgs{
		Principal:         principal,
		AnnualRatePercent: interestRate,
		AmortizationYears: years,
	})

	data := make([]domain.ChartRow, 0, len(schedule.Yearly))
	for _, y := range schedule.Yearly {
		data = append(data, domain.ChartRow{
			"year":         y.Year,
			"balance":      chartValue(y.Balance),
			"interestPaid": chartValue(y.InterestPaid),
		})
	}

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "Estimated Monthly Payment", Value: Currency(schedule.Payment)},
			{Label: "Mortgage Principal", Value: Currency(principal)},
			{Label: "Total Interest", Value: Currency(schedule.TotalInterest)},
			{Label: "Total Paid", Value: Currency(schedule.TotalPaid)},
		},
		Narrative: []string{
			"Payment assumes a fixed interest rate across the full amortization period.",
			"Use this estimate for planning; lender qualification and terms can differ.",
		},
		Chart: &domain.Chart{
			Type: domain.ChartLine,
			XKey: "year",
			Data: data,
			Series: []domain.ChartSeries{
				{Key: "balance", Name: "Remaining Balance", Color: "#0ea5e9"},
				{Key: "interestPaid", Name: "Yearly Interest", Color: "#64748b"},
			},
		},
	}
}

func rentVsBuy(in domain.Inputs) domain.Output {
	monthlyRent := asNumber(in, "monthlyRent", 0)
	rentIncrease := asNumber(in, "rentIncrease", 0) / 100
	homePrice := asNumber(in, "homePrice", 0)
	downPaymentPercent := asNumber(in, "downPaymentPercent", 20)
	mortgageRate := asNumber(in, "mortgageRate", 5)
	years := math.Min(math.Max(1, asNumber(in, "years", 10)), maxHorizonYears)
	maintenance := asNumber(in, "annualMaintenance", 0)
	propertyTax := asNumber(in, "annualPropertyTax", 0)
	investmentReturn := asNumber(in, "investmentReturn", 0) / 100

	downPayment := homePrice * (downPaymentPercent / 100)
	principal := math.Max(0, homePrice-downPayment)

	schedule := finmath.BuildAmortizationSchedule(finmath.AmortizationArgs{
		Principal:         principal,
		AnnualRatePercent: mortgageRate,
		AmortizationYears: math.Max(25, years),
	})

	carrying := maintenance + propertyTax
	ownCost := func(y float64) float64 { return schedule.Payment*12*y + carrying*y }
	rentForYear := func(i int) float64 { return monthlyRent * math.Pow(1+rentIncrease, float64(i)) * 12 }

	totalRent := 0.0
	for i := 0; float64(i) < years; i++ {
		totalRent += rentForYear(i)
	}
	ownershipCost := ownCost(years)

	remainingBalance := principal
	elapsed := math.Min(years, float64(len(schedule.Yearly)))
	if elapsed >= 1 && elapsed == math.Trunc(elapsed) {
		remainingBalance = schedule.Yearly[int(elapsed)-1].Balance
	}
	equity := math.Max(0, homePrice-remainingBalance)

	netRent := downPayment*math.Pow(1+investmentReturn, years) - totalRent
	netBuy := equity - ownershipCost

	chartYears := int(years)
	data := make([]domain.ChartRow, 0, chartYears)
	rentSoFar := 0.0
	for y := 1; y <= chartYears; y++ {
		rentSoFar += rentForYear(y - 1)
		data = append(data, domain.ChartRow{
			"year":     fmt.Sprintf("Y%d", y),
			"rentCost": chartValue(rentSoFar),
			"ownCost":  chartValue(ownCost(float64(y))),
		})
	}

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "Total Rent Cost", Value: Currency(totalRent)},
			{Label: "Total Ownership Cash Cost", Value: Currency(ownershipCost)},
			{Label: "Estimated Home Equity", Value: Currency(equity)},
			{Label: "Net Difference (Buy - Rent)", Value: Currency(netBuy - netRent)},
		},
		Narrative: []string{
			"This model compares projected cash costs and estimated equity outcomes over your selected horizon.",
			"Transaction costs, renovations, and market value changes are excluded by default.",
		},
		Chart: &domain.Chart{
			Type: domain.ChartLine,
			XKey: "year",
			Data: data,
			Series: []domain.ChartSeries{
				{Key: "rentCost", Name: "Rent Cost", Color: "#64748b"},
				{Key: "ownCost", Name: "Ownership Cost", Color: "#0ea5e9"},
			},
		},
	}
}

func debtPayoffPlanner(in domain.Inputs) domain.Output {
	debtA := asNumber(in, "debtA", 0)
	debtAApr := asNumber(in, "debtAApr", 0)
	debtAMin := asNumber(in, "debtAMin", 0)
	debtB := asNumber(in, "debtB", 0)
	debtBApr := asNumber(in, "debtBApr", 0)
	debtBMin := asNumber(in, "debtBMin", 0)
	budget := asNumber(in, "monthlyBudget", debtAMin+debtBMin)

	method := finmath.Snowball
	methodLabel := "Snowball"
	if asString(in, "method", string(finmath.Avalanche)) == string(finmath.Avalanche) {
		method = finmath.Avalanche
		methodLabel = "Avalanche"
	}

	schedule := finmath.DebtPayoffSchedule(finmath.DebtPayoffArgs{
		Debts: []domain.DebtInput{
			{Name: "Debt A", Balance: debtA, APR: debtAApr, MinimumPayment: debtAMin},
			{Name: "Debt B", Balance: debtB, APR: debtBApr, MinimumPayment: debtBMin},
		},
		MonthlyBudget: budget,
		Method:        method,
	})

	ending := 0.0
	if n := len(schedule.History); n > 0 {
		ending = schedule.History[n-1].TotalBalance
	}

	data := make([]domain.ChartRow, 0, len(schedule.History))
	for _, p := range schedule.History {
		data = append(data, domain.ChartRow{"month": p.Month, "balance": chartValue(p.TotalBalance)})
	}

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "Months to Debt Free (Estimate)", Value: Number(float64(schedule.MonthsToDebtFree))},
			{Label: "Starting Balance", Value: Currency(debtA + debtB)},
			{Label: "Ending Balance", Value: Currency(ending)},
			{Label: "Method", Value: methodLabel},
		},
		Narrative: []string{
			"Avalanche prioritizes highest interest, while snowball prioritizes smallest balance.",
			"Real payoff timing will vary with changing rates, fees, and payment behaviour.",
		},
		Chart: &domain.Chart{
			Type:   domain.ChartLine,
			XKey:   "month",
			Data:   data,
			Series: []domain.ChartSeries{{Key: "balance", Name: "Total Balance", Color: "#0284c7"}},
		},
	}
}

func retirementProjection(in domain.Inputs) domain.Output {
	currentAge := asNumber(in, "currentAge", 35)
	retirementAge := asNumber(in, "retirementAge", 65)
	savings := asNumber(in, "currentSavings", 0)
	contribution := asNumber(in, "monthlyContribution", 0)
	annualReturn := asNumber(in, "annualReturn", 5)
	inflation := asNumber(in, "inflationRate", 2)
	adjust := asBool(in, "adjustForInflation", true)

	years := math.Min(math.Max(1, retirementAge-currentAge), maxHorizonYears)
	projection := finmath.FutureValueProjection(finmath.ProjectionArgs{
		Initial:             savings,
		MonthlyContribution: contribution,
		AnnualReturnPercent: annualReturn,
		Years:               years,
	})

	shown := projection.FinalBalance
	if adjust {
		shown = projection.FinalBalance / math.Pow(1+inflation/100, years)
	}

	data := make([]domain.ChartRow, 0, len(projection.ByYear))
	for i, y := range projection.ByYear {
		year := i + 1
		data = append(data, domain.ChartRow{
			"year":     fmt.Sprintf("Y%d", year),
			"nominal":  chartValue(y.Balance),
			"adjusted": chartValue(y.Balance / math.Pow(1+inflation/100, float64(year))),
		})
	}

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "Projected Balance at Retirement", Value: Currency(projection.FinalBalance)},
			{Label: "Inflation-Adjusted Value", Value: Currency(shown)},
			{Label: "Projection Length", Value: strconv.FormatFloat(years, 'f', -1, 64) + " years"},
			{Label: "Monthly Contribution", Value: Currency(contribution)},
		},
		Narrative: []string{
			"Projection assumes constant contribution and return rates throughout the timeline.",
			"Use conservative ranges and compare multiple scenarios before making decisions.",
		},
		Chart: &domain.Chart{
			Type: domain.ChartLine,
			XKey: "year",
			Data: data,
			Series: []domain.ChartSeries{
				{Key: "nominal", Name: "Nominal", Color: "#0284c7"},
				{Key: "adjusted", Name: "Inflation-Adjusted", Color: "#334155"},
			},
		},
	}
}

func netWorthSnapshot(in domain.Inputs) domain.Output {
	cash := asNumber(in, "cash", 0)
	investments := asNumber(in, "investments", 0)
	property := asNumber(in, "property", 0)
	liabilities := asNumber(in, "mortgage", 0) + asNumber(in, "loans", 0) + asNumber(in, "credit", 0)

	assets := cash + investments + property
	leverage := 0.0
	if assets != 0 {
		leverage = liabilities / assets
	}

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "Total Assets", Value: Currency(assets)},
			{Label: "Total Liabilities", Value: Currency(liabilities)},
			{Label: "Net Worth", Value: Currency(assets - liabilities)},
			{Label: "Leverage Ratio", Value: Percent(leverage)},
		},
		Narrative: []string{
			"A periodic net-worth snapshot helps track long-term financial progress.",
			"High leverage can indicate debt-management priorities.",
		},
		Chart: &domain.Chart{
			Type: domain.ChartBar,
			XKey: "name",
			Data: []domain.ChartRow{
				{"name": "Cash", "value": chartValue(cash)},
				{"name": "Investments", "value": chartValue(investments)},
				{"name": "Property", "value": chartValue(property)},
				{"name": "Liabilities", "value": chartValue(liabilities)},
			},
			Series: []domain.ChartSeries{{Key: "value", Name: "Amount", Color: "#0ea5e9"}},
		},
	}
}

package calculators

import (
	"math"

	"github.com/olsonco/calckit/internal/domain"
	"github.com/olsonco/calckit/internal/finmath"
)

// notApplicable stands in for figures that have no finite value.
const notApplicable = "N/A"

func incorporationVsSoleProp(in domain.Inputs) domain.Output {
	profit := asNumber(in, "annualProfit", 0)
	draw := asNumber(in, "salaryDraw", 0)
	corpRate := asNumber(in, "corpTaxRate", 12) / 100
	personalRate := asNumber(in, "personalTaxRate", 30) / 100

	soleNet := profit - profit*personalRate

	retained := profit - profit*corpRate - draw
	ownerNet := draw - draw*personalRate
	corpNet := ownerNet + retained

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "Sole Prop Net (Estimate)", Value: Currency(soleNet)},
			{Label: "Incorporated Structure Net", Value: Currency(corpNet)},
			{Label: "Retained Corporate Cash", Value: Currency(retained)},
			{Label: "Estimated Difference", Value: Currency(corpNet - soleNet)},
		},
		Narrative: []string{
			"This is a high-level estimate and does not include complete integration, deductions, or legal considerations.",
			"Use this output as a planning discussion starter with your accountant.",
		},
		Chart: &domain.Chart{
			Type: domain.ChartBar,
			XKey: "scenario",
			Data: []domain.ChartRow{
				{"scenario": "Sole Prop", "net": chartValue(soleNet)},
				{"scenario": "Incorporated", "net": chartValue(corpNet)},
			},
			Series: []domain.ChartSeries{{Key: "net", Name: "Estimated Net", Color: "#0284c7"}},
		},
	}
}

func gstHSTCalculator(in domain.Inputs) domain.Output {
	sales := asNumber(in, "taxableSales", 0)
	expenses := asNumber(in, "taxableExpenses", 0)
	rate := asNumber(in, "rate", finmath.DefaultGSTRate*100) / 100

	result := finmath.GSTRemittance(sales, expenses, rate)

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "GST/HST Collected", Value: Currency(result.Collected)},
			{Label: "Estimated ITCs", Value: Currency(result.ITC)},
			{Label: "Net Remittance", Value: Currency(result.Remittance)},
			{Label: "Rate Used", Value: Percent(rate)},
		},
		Narrative: []string{
			"Use this estimate to plan remittance cash impact before filing.",
			"Special supplies, zero-rated items, and exemptions require transaction-level review.",
		},
		Chart: &domain.Chart{
			Type: domain.ChartBar,
			XKey: "name",
			Data: []domain.ChartRow{
				{"name": "Collected", "amount": chartValue(result.Collected)},
				{"name": "ITCs", "amount": chartValue(result.ITC)},
				{"name": "Remittance", "amount": chartValue(result.Remittance)},
			},
			Series: []domain.ChartSeries{{Key: "amount", Name: "Amount", Color: "#0369a1"}},
		},
	}
}

func businessLoanPayment(in domain.Inputs) domain.Output {
	principal := asNumber(in, "principal", 0)
	rate := asNumber(in, "rate", 0)
	termYears := asNumber(in, "termYears", 1)

	payment := finmath.MortgagePayment(principal, rate, termYears)
	totalPaid := payment * termYears * 12
	totalInterest := totalPaid - principal

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "Estimated Monthly Payment", Value: Currency(payment)},
			{Label: "Annual Debt Service", Value: Currency(finmath.AnnualizeMonthlyValue(payment))},
			{Label: "Total Interest", Value: Currency(totalInterest)},
			{Label: "Total Paid", Value: Currency(totalPaid)},
		},
		Narrative: []string{
			"Use this estimate to understand payment pressure before committing to financing.",
			"Model multiple terms and rates to test resilience.",
		},
		Chart: &domain.Chart{
			Type: domain.ChartBar,
			XKey: "name",
			Data: []domain.ChartRow{
				{"name": "Principal", "amount": chartValue(principal)},
				{"name": "Interest", "amount": chartValue(totalInterest)},
			},
			Series: []domain.ChartSeries{{Key: "amount", Name: "Amount", Color: "#0ea5e9"}},
		},
	}
}

func breakEvenCalculator(in domain.Inputs) domain.Output {
	fixedCosts := asNumber(in, "fixedCosts", 0)
	price := asNumber(in, "pricePerUnit", 0)
	variableCost := asNumber(in, "variableCostPerUnit", 0)
	targetProfit := asNumber(in, "targetProfit", 0)

	units := finmath.BreakEvenUnits(fixedCosts, price, variableCost)
	targetUnits := finmath.BreakEvenUnits(fixedCosts+targetProfit, price, variableCost)

	var warnings []string
	unitsText, revenueText, targetText := notApplicable, notApplicable, notApplicable
	if isFinite(units) {
		unitsText = Number(math.Ceil(units))
		revenueText = Currency(math.Ceil(units) * price)
	} else {
		warnings = append(warnings, "Contribution margin is zero or negative. Increase price or reduce variable cost.")
	}
	if isFinite(targetUnits) {
		targetText = Number(math.Ceil(targetUnits))
	}

	// Chart volumes step in quarters of the break-even point, or of 100
	// units when there is no usable break-even point.
	base := units
	if !isFinite(base) || base == 0 {
		base = 100
	}
	data := make([]domain.ChartRow, 0, 8)
	for i := 1; i <= 8; i++ {
		count := math.Max(1, math.Ceil(base*float64(i)/4))
		data = append(data, domain.ChartRow{
			"units":   Number(count),
			"revenue": chartValue(count * price),
			"cost":    chartValue(fixedCosts + count*variableCost),
		})
	}

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "Break-even Units", Value: unitsText},
			{Label: "Break-even Revenue", Value: revenueText},
			{Label: "Units for Target Profit", Value: targetText},
			{Label: "Contribution per Unit", Value: Currency(price - variableCost)},
		},
		Narrative: []string{
			"Break-even analysis is sensitive to pricing and variable cost assumptions.",
			"Revisit this model whenever costs or pricing strategy change.",
		},
		Warnings: warnings,
		Chart: &domain.Chart{
			Type: domain.ChartLine,
			XKey: "units",
			Data: data,
			Series: []domain.ChartSeries{
				{Key: "revenue", Name: "Revenue", Color: "#0284c7"},
				{Key: "cost", Name: "Total Cost", Color: "#64748b"},
			},
		},
	}
}

func cashFlowForecast(in domain.Inputs) domain.Output {
	openingCash := asNumber(in, "openingCash", 0)
	rows := finmath.MonthGridToRows(asMonthGrid(in, "monthlyRevenue"), asMonthGrid(in, "monthlyExpenses"), openingCash)

	var revenue, expenses float64
	endingCash := openingCash
	data := make([]domain.ChartRow, 0, len(rows))
	for _, r := range rows {
		revenue += r.Revenue
		expenses += r.Expense
		endingCash = r.Cash
		data = append(data, domain.ChartRow{
			"month": r.Month,
			"cash":  chartValue(r.Cash),
			"net":   chartValue(r.Net),
		})
	}

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "Opening Cash", Value: Currency(openingCash)},
			{Label: "12-Month Revenue", Value: Currency(revenue)},
			{Label: "12-Month Expenses", Value: Currency(expenses)},
			{Label: "Projected Ending Cash", Value: Currency(endingCash)},
		},
		Narrative: []string{
			"Monthly cash view helps identify pressure months before they become operational risk.",
			"Update this forecast after each period close for better decision quality.",
		},
		Chart: &domain.Chart{
			Type: domain.ChartLine,
			XKey: "month",
			Data: data,
			Series: []domain.ChartSeries{
				{Key: "cash", Name: "Ending Cash", Color: "#0284c7"},
				{Key: "net", Name: "Monthly Net", Color: "#334155"},
			},
		},
	}
}

func marginMarkupCalculator(in domain.Inputs) domain.Output {
	cost := asNumber(in, "cost", 0)
	price := asNumber(in, "price", 0)

	profit := price - cost
	var margin, markup, ratio float64
	if price > 0 {
		margin = profit / price
	}
	if cost > 0 {
		markup = profit / cost
	}
	if cost != 0 {
		ratio = price / cost
	}

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "Gross Profit per Unit", Value: Currency(profit)},
			{Label: "Gross Margin", Value: Percent(margin)},
			{Label: "Markup", Value: Percent(markup)},
			{Label: "Price/Cost Ratio", Value: Ratio(ratio)},
		},
		Narrative: []string{
			"Margin and markup are both useful, but answer different profitability questions.",
			"Track both metrics for better pricing and purchasing decisions.",
		},
		Chart: &domain.Chart{
			Type: domain.ChartBar,
			XKey: "name",
			Data: []domain.ChartRow{
				{"name": "Cost", "value": chartValue(cost)},
				{"name": "Price", "value": chartValue(price)},
				{"name": "Profit", "value": chartValue(profit)},
			},
			Series: []domain.ChartSeries{{Key: "value", Name: "Amount", Color: "#0ea5e9"}},
		},
	}
}

func contractorVsEmployeeCost(in domain.Inputs) domain.Output {
	baseComp := asNumber(in, "baseComp", 0)
	burden := asNumber(in, "payrollBurdenPct", 0) / 100
	benefits := asNumber(in, "benefitsPct", 0) / 100
	multiplier := asNumber(in, "contractorMultiplier", 1)

	employee := baseComp * (1 + burden + benefits)
	contractor := baseComp * multiplier

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "Estimated Employee Annual Cost", Value: Currency(employee)},
			{Label: "Estimated Contractor Annual Cost", Value: Currency(contractor)},
			{Label: "Cost Difference", Value: Currency(contractor - employee)},
			{Label: "Base Compensation", Value: Currency(baseComp)},
		},
		Narrative: []string{
			"Classification has legal and tax implications beyond cost comparisons.",
			"Use this estimate with policy, compliance, and workload considerations.",
		},
		Chart: &domain.Chart{
			Type: domain.ChartBar,
			XKey: "model",
			Data: []domain.ChartRow{
				{"model": "Employee", "amount": chartValue(employee)},
				{"model": "Contractor", "amount": chartValue(contractor)},
			},
			Series: []domain.ChartSeries{{Key: "amount", Name: "Annual Cost", Color: "#0284c7"}},
		},
	}
}

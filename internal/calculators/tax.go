package calculators

import (
	"fmt"

	"github.com/olsonco/calckit/internal/calculation"
	"github.com/olsonco/calckit/internal/domain"
)

// defaultTaxYear is used when the year input is absent or unusable.
const defaultTaxYear = 2026

func incomeTaxEstimator(engine *calculation.TaxEngine) Runner {
	return func(in domain.Inputs) domain.Output {
		result := engine.Compute(domain.TaxComputationInput{
			Year:             asTaxYear(in, "year", defaultTaxYear),
			GrossIncome:      asNumber(in, "income", 0),
			RRSPContribution: asNumber(in, "rrspContribution", 0),
			OtherDeductions:  asNumber(in, "otherDeductions", 0),
		})

		return domain.Output{
			Summary: []domain.SummaryItem{
				{Label: "Estimated Total Tax", Value: Currency(result.TotalTax)},
				{Label: "Estimated Net Income", Value: Currency(result.NetIncome)},
				{Label: "Taxable Income", Value: Currency(result.TaxableIncome)},
				{Label: "Marginal Rate", Value: Percent(result.MarginalRate)},
				{Label: "Average Tax Rate", Value: Percent(result.AverageRate)},
			},
			Narrative: []string{
				fmt.Sprintf("Federal estimate: %s and BC estimate: %s.", Currency(result.FederalTax), Currency(result.BCTax)),
				"Review results against official CRA/BC data before using for filing or remittance decisions.",
			},
			Warnings: result.Warnings,
			Chart: &domain.Chart{
				Type: domain.ChartBar,
				XKey: "name",
				Data: []domain.ChartRow{
					{"name": "Federal", "amount": chartValue(result.FederalTax)},
					{"name": "BC", "amount": chartValue(result.BCTax)},
					{"name": "Net Income", "amount": chartValue(result.NetIncome)},
				},
				Series: []domain.ChartSeries{{Key: "amount", Name: "Amount", Color: "#0ea5e9"}},
			},
		}
	}
}

func rrspContributionImpact(engine *calculation.TaxEngine) Runner {
	return func(in domain.Inputs) domain.Output {
		year := asTaxYear(in, "year", defaultTaxYear)
		income := asNumber(in, "income", 0)
		contribution := asNumber(in, "rrspContribution", 0)

		without := engine.Compute(domain.TaxComputationInput{Year: year, GrossIncome: income})
		with := engine.Compute(domain.TaxComputationInput{Year: year, GrossIncome: income, RRSPContribution: contribution})
		savings := without.TotalTax - with.TotalTax

		return domain.Output{
			Summary: []domain.SummaryItem{
				{Label: "Estimated Tax Savings", Value: Currency(savings)},
				{Label: "Tax Without RRSP", Value: Currency(without.TotalTax)},
				{Label: "Tax With RRSP", Value: Currency(with.TotalTax)},
				{Label: "Contribution Amount", Value: Currency(contribution)},
			},
			Narrative: []string{
				"Tax savings are estimated by running two scenarios with the same income assumptions.",
				"Validate RRSP contribution room and deduction timing with CRA records.",
			},
			Warnings: with.Warnings,
			Chart: &domain.Chart{
				Type: domain.ChartBar,
				XKey: "scenario",
				Data: []domain.ChartRow{
					{"scenario": "No RRSP", "tax": chartValue(without.TotalTax)},
					{"scenario": "With RRSP", "tax": chartValue(with.TotalTax)},
				},
				Series: []domain.ChartSeries{{Key: "tax", Name: "Estimated Tax", Color: "#0369a1"}},
			},
		}
	}
}

func payrollPeriodsPerYear(frequency string) float64 {
	switch frequency {
	case "monthly":
		return 12
	case "semimonthly":
		return 24
	default:
		return 26
	}
}

func payrollGrossToNet(in domain.Inputs) domain.Output {
	grossPay := asNumber(in, "grossPay", 0)
	frequency := asString(in, "payFrequency", "biweekly")
	cppRate := asNumber(in, "cppRate", 5.95) / 100
	eiRate := asNumber(in, "eiRate", 1.66) / 100
	withholdingRate := asNumber(in, "taxWithholdingRate", 18) / 100

	cpp := grossPay * cppRate
	ei := grossPay * eiRate
	tax := grossPay * withholdingRate
	netPay := grossPay - cpp - ei - tax

	return domain.Output{
		Summary: []domain.SummaryItem{
			{Label: "Estimated Net Pay", Value: Currency(netPay)},
			{Label: "CPP Deduction", Value: Currency(cpp)},
			{Label: "EI Deduction", Value: Currency(ei)},
			{Label: "Tax Withholding", Value: Currency(tax)},
			{Label: "Estimated Annual Net", Value: Currency(netPay * payrollPeriodsPerYear(frequency))},
		},
		Narrative: []string{
			"Payroll results are placeholder estimates until official rates, limits, and formulas are configured by year.",
			"Do not use this output for finalized payroll processing.",
		},
		Warnings: []string{
			"Tax data missing: payroll tables and limits are placeholders.",
			"Estimate only. Confirm all payroll calculations using current CRA payroll resources.",
		},
		Chart: &domain.Chart{
			Type: domain.ChartBar,
			XKey: "name",
			Data: []domain.ChartRow{
				{"name": "Gross", "amount": chartValue(grossPay)},
				{"name": "Deductions", "amount": chartValue(cpp + ei + tax)},
				{"name": "Net", "amount": chartValue(netPay)},
			},
			Series: []domain.ChartSeries{{Key: "amount", Name: "Amount", Color: "#0284c7"}},
		},
	}
}

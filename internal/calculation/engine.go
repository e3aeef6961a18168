package calculation

import (
	"fmt"
	"math"

	"github.com/olsonco/calckit/internal/domain"
	"github.com/olsonco/calckit/internal/taxrules"
)

// EstimateOnlyWarning is attached to every successful estimate.
const EstimateOnlyWarning = "Estimate only. This tool is not tax advice."

// TaxEngine computes federal + BC personal income tax from a rule table.
// It holds no mutable state besides its logger and is safe for concurrent use.
type TaxEngine struct {
	Rules  *taxrules.Table
	Logger Logger
}

// NewTaxEngine creates an engine over the given table. A nil table falls
// back to the embedded rules.
func NewTaxEngine(rules *taxrules.Table) *TaxEngine {
	if rules == nil {
		rules = taxrules.Embedded()
	}
	return &TaxEngine{Rules: rules, Logger: NopLogger{}}
}

// SetLogger sets the logger; nil resets to a no-op logger.
func (e *TaxEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Years lists the years the engine has rules for, most recent first.
func (e *TaxEngine) Years() []int {
	return e.Rules.Years()
}

// RulesFor returns the rules for a year.
func (e *TaxEngine) RulesFor(year int) (domain.TaxYearRules, bool) {
	return e.Rules.Lookup(year)
}

func (e *TaxEngine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

// Compute produces an estimate. It never fails: a year without rules
// yields a zeroed result carrying a single "Tax data missing" warning.
func (e *TaxEngine) Compute(input domain.TaxComputationInput) domain.TaxComputationResult {
	rules, ok := e.Rules.Lookup(input.Year)
	if !ok {
		e.logger().Debugf("no tax rules for year %d", input.Year)
		return domain.TaxComputationResult{
			Year: input.Year,
			Warnings: []string{
				fmt.Sprintf("Tax data missing for %d. Add a tax rules module before relying on this estimate.", input.Year),
			},
		}
	}

	gross := finite(input.GrossIncome)
	rrsp := finite(input.RRSPContribution)
	other := finite(input.OtherDeductions)

	taxable := math.Max(0, gross-rrsp-other)

	federalTax := math.Max(0, BracketTax(taxable, rules.Federal.Brackets)-basicPersonalCredit(rules.Federal))
	bcTax := math.Max(0, BracketTax(taxable, rules.BC.Brackets)-basicPersonalCredit(rules.BC))
	total := federalTax + bcTax

	averageRate := 0.0
	if gross > 0 {
		averageRate = total / gross
	}

	var warnings []string
	if !rules.IsVerified() {
		e.logger().Warnf("tax rules for %d are %s", input.Year, rules.Status)
		warnings = append(warnings,
			fmt.Sprintf("Tax data for %d is placeholder only. Confirm rates and credits with CRA and BC official sources.", input.Year))
	}
	warnings = append(warnings, EstimateOnlyWarning)

	return domain.TaxComputationResult{
		Year:          input.Year,
		TaxableIncome: taxable,
		FederalTax:    federalTax,
		BCTax:         bcTax,
		TotalTax:      total,
		NetIncome:     math.Max(0, gross-total),
		MarginalRate:  MarginalRate(taxable, rules.Federal.Brackets) + MarginalRate(taxable, rules.BC.Brackets),
		AverageRate:   averageRate,
		Warnings:      warnings,
	}
}

var defaultEngine = NewTaxEngine(taxrules.Embedded())

// DefaultEngine returns the engine over the embedded rule tables.
func DefaultEngine() *TaxEngine {
	return defaultEngine
}

// ComputeCanadianBCIncomeTax estimates tax with the embedded rule tables.
func ComputeCanadianBCIncomeTax(input domain.TaxComputationInput) domain.TaxComputationResult {
	return defaultEngine.Compute(input)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

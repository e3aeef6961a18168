// Package calculators maps calculator slugs to pure scenario functions and
// describes each calculator's input fields.
package calculators

import (
	"errors"
	"fmt"

	"github.com/olsonco/calckit/internal/calculation"
	"github.com/olsonco/calckit/internal/domain"
)

// ErrUnknownCalculator is returned by Run for slugs with no calculator.
var ErrUnknownCalculator = errors.New("unknown calculator")

// Runner computes one calculator's output from raw inputs. Runners are
// pure: identical inputs always yield identical outputs.
type Runner func(domain.Inputs) domain.Output

// builders lists every calculator. Tax-driven calculators close over the
// registry's engine; the rest ignore it.
var builders = map[string]func(*calculation.TaxEngine) Runner{
	"canadian-income-tax-estimator": incomeTaxEstimator,
	"rrsp-contribution-impact":      rrspContributionImpact,
	"tfsa-tracker":                  static(tfsaTracker),
	"mortgage-payment-amortization": static(mortgagePaymentAmortization),
	"rent-vs-buy":                   static(rentVsBuy),
	"debt-payoff-planner":           static(debtPayoffPlanner),
	"retirement-projection":         static(retirementProjection),
	"net-worth-snapshot":            static(netWorthSnapshot),
	"incorporation-vs-sole-prop":    static(incorporationVsSoleProp),
	"gst-hst-calculator":            static(gstHSTCalculator),
	"payroll-gross-to-net":          static(payrollGrossToNet),
	"business-loan-payment":         static(businessLoanPayment),
	"break-even-calculator":         static(breakEvenCalculator),
	"cash-flow-forecast":            static(cashFlowForecast),
	"margin-markup-calculator":      static(marginMarkupCalculator),
	"contractor-vs-employee-cost":   static(contractorVsEmployeeCost),
}

func static(r Runner) func(*calculation.TaxEngine) Runner {
	return func(*calculation.TaxEngine) Runner { return r }
}

// Registry resolves calculators by slug. It is read-only once built and
// safe for concurrent use.
type Registry struct {
	engine  *calculation.TaxEngine
	runners map[string]Runner
	items   []domain.CatalogItem
	index   map[string]int
	logger  calculation.Logger
}

// NewRegistry builds a registry whose tax calculators use engine. A nil
// engine uses the embedded rule tables.
func NewRegistry(engine *calculation.TaxEngine) *Registry {
	if engine == nil {
		engine = calculation.DefaultEngine()
	}
	r := &Registry{
		engine:  engine,
		runners: make(map[string]Runner, len(builders)),
		items:   Catalog(engine.Years()),
		index:   make(map[string]int, len(builders)),
		logger:  calculation.NopLogger{},
	}
	for i, item := range r.items {
		build, ok := builders[item.Slug]
		if !ok {
			panic(fmt.Sprintf("calculators: catalog entry %s has no implementation", item.Slug))
		}
		r.runners[item.Slug] = build(engine)
		r.index[item.Slug] = i
	}
	return r
}

var defaultRegistry = NewRegistry(nil)

// Default returns the registry over the embedded tax rules.
func Default() *Registry {
	return defaultRegistry
}

// SetLogger sets the dispatch logger; nil resets to a no-op logger.
func (r *Registry) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	r.logger = l
}

// Engine returns the tax engine behind the tax calculators.
func (r *Registry) Engine() *calculation.TaxEngine {
	return r.engine
}

// Resolve returns the runner for slug.
func (r *Registry) Resolve(slug string) (Runner, bool) {
	run, ok := r.runners[slug]
	return run, ok
}

// Item returns the catalog entry for slug.
func (r *Registry) Item(slug string) (domain.CatalogItem, bool) {
	i, ok := r.index[slug]
	if !ok {
		return domain.CatalogItem{}, false
	}
	return cloneItem(r.items[i], nil), true
}

// Items returns every catalog entry in display order.
func (r *Registry) Items() []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(r.items))
	for i, item := range r.items {
		out[i] = cloneItem(item, nil)
	}
	return out
}

// Slugs returns every slug in display order.
func (r *Registry) Slugs() []string {
	out := make([]string, len(r.items))
	for i, item := range r.items {
		out[i] = item.Slug
	}
	return out
}

// Run dispatches to the calculator for slug.
func (r *Registry) Run(slug string, inputs domain.Inputs) (domain.Output, error) {
	run, ok := r.Resolve(slug)
	if !ok {
		r.logger.Warnf("calculator %q not found", slug)
		return domain.Output{}, fmt.Errorf("%w: %s", ErrUnknownCalculator, slug)
	}
	r.logger.Debugf("running calculator %s with %d inputs", slug, len(inputs))
	out := run(inputs)
	if len(out.Warnings) > 0 {
		r.logger.Debugf("calculator %s returned %d warnings", slug, len(out.Warnings))
	}
	return out, nil
}

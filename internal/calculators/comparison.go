package calculators

import "github.com/olsonco/calckit/internal/domain"

// ComparisonRow summarizes one calculator for side-by-side listings.
type ComparisonRow struct {
	Slug           string          `json:"slug" yaml:"slug"`
	Title          string          `json:"title" yaml:"title"`
	Category       domain.Category `json:"category" yaml:"category"`
	BestFor        string          `json:"bestFor" yaml:"best_for"`
	PrimaryOutcome string          `json:"primaryOutcome" yaml:"primary_outcome"`
	InputDepth     string          `json:"inputDepth" yaml:"input_depth"`
	EstimatedTime  string          `json:"estimatedTime" yaml:"estimated_time"`
}

type useCase struct {
	bestFor        string
	primaryOutcome string
}

var useCases = map[string]useCase{
	"canadian-income-tax-estimator": {"Personal tax planning before filing or installments", "Estimated federal + BC tax and net income"},
	"rrsp-contribution-impact":      {"RRSP contribution timing and impact checks", "Estimated tax savings from contribution"},
	"tfsa-tracker":                  {"Contribution-room tracking and annual TFSA planning", "Estimated remaining room snapshot"},
	"mortgage-payment-amortization": {"Home affordability and payment planning", "Monthly payment and amortization trend"},
	"rent-vs-buy":                   {"Housing decision comparisons over time", "Estimated cost/equity difference"},
	"debt-payoff-planner":           {"Debt prioritization and payoff strategy", "Estimated payoff timeline"},
	"retirement-projection":         {"Long-term savings and retirement pacing", "Projected retirement balance"},
	"net-worth-snapshot":            {"Personal balance-sheet check-ins", "Net worth and leverage snapshot"},
	"incorporation-vs-sole-prop":    {"Business structure scenario planning", "Estimated net outcome comparison"},
	"gst-hst-calculator":            {"GST/HST period-end remittance planning", "Collected tax, ITCs, and remittance"},
	"payroll-gross-to-net":          {"Payroll estimate planning", "Estimated gross-to-net breakdown"},
	"business-loan-payment":         {"Financing affordability checks", "Payment and total interest estimate"},
	"break-even-calculator":         {"Pricing and cost viability analysis", "Break-even units and revenue"},
	"cash-flow-forecast":            {"12-month operating cash planning", "Projected month-by-month cash balance"},
	"margin-markup-calculator":      {"Fast pricing quality checks", "Margin and markup percentages"},
	"contractor-vs-employee-cost":   {"Workforce model budgeting", "Estimated annual cost delta"},
}

// ComparisonRows describes the given calculators, or all of them when no
// slug is given. Unknown slugs are skipped.
func ComparisonRows(reg *Registry, slugs ...string) []ComparisonRow {
	if len(slugs) == 0 {
		slugs = reg.Slugs()
	}
	rows := make([]ComparisonRow, 0, len(slugs))
	for _, slug := range slugs {
		item, ok := reg.Item(slug)
		if !ok {
			continue
		}
		uc, ok := useCases[slug]
		if !ok {
			uc = useCase{bestFor: item.ShortDescription, primaryOutcome: "Scenario estimate"}
		}
		depth := inputDepth(item.Fields)
		rows = append(rows, ComparisonRow{
			Slug:           item.Slug,
			Title:          item.Title,
			Category:       item.Category,
			BestFor:        uc.bestFor,
			PrimaryOutcome: uc.primaryOutcome,
			InputDepth:     depth,
			EstimatedTime:  estimatedTime(item.Fields, depth),
		})
	}
	return rows
}

func hasMonthGrid(fields []domain.Field) bool {
	for _, f := range fields {
		if f.Type == domain.FieldMonthGrid {
			return true
		}
	}
	return false
}

// inputDepth weighs each field as one and a month grid as four more.
func inputDepth(fields []domain.Field) string {
	weight := len(fields)
	if hasMonthGrid(fields) {
		weight += 4
	}
	switch {
	case weight <= 3:
		return "Light"
	case weight <= 6:
		return "Standard"
	default:
		return "Advanced"
	}
}

func estimatedTime(fields []domain.Field, depth string) string {
	if hasMonthGrid(fields) {
		return "5-8 min"
	}
	switch depth {
	case "Light":
		return "1-2 min"
	case "Standard":
		return "2-4 min"
	default:
		return "4-6 min"
	}
}

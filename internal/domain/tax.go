package domain

// RuleStatus marks whether a tax year's figures have been confirmed against
// official sources.
type RuleStatus string

const (
	RuleStatusPlaceholder RuleStatus = "placeholder"
	RuleStatusVerified    RuleStatus = "verified"
)

// TaxBracket is one marginal band. UpTo is the inclusive upper bound in
// dollars; nil marks the unbounded top bracket.
type TaxBracket struct {
	UpTo *float64 `yaml:"up_to" json:"upTo"`
	Rate float64  `yaml:"rate" json:"rate"`
}

// Cap returns the bracket's upper bound, or ok=false for the top bracket.
func (b TaxBracket) Cap() (float64, bool) {
	if b.UpTo == nil {
		return 0, false
	}
	return *b.UpTo, true
}

// JurisdictionRules holds the brackets and basic personal amount of a
// single taxing authority.
type JurisdictionRules struct {
	Brackets            []TaxBracket `yaml:"brackets" json:"brackets"`
	BasicPersonalAmount float64      `yaml:"basic_personal_amount" json:"basicPersonalAmount"`
}

// TaxRuleMetadata describes where a year's figures came from
type TaxRuleMetadata struct {
	Notes     string `yaml:"notes" json:"notes"`
	SourceURL string `yaml:"source_url,omitempty" json:"sourceUrl,omitempty"`
	UpdatedAt string `yaml:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// TaxYearRules contains the federal and British Columbia rules for one tax
// year. Loaded from the rule files at startup and never modified afterwards.
type TaxYearRules struct {
	Year     int               `yaml:"year" json:"year"`
	Status   RuleStatus        `yaml:"status" json:"status"`
	Federal  JurisdictionRules `yaml:"federal" json:"federal"`
	BC       JurisdictionRules `yaml:"bc" json:"bc"`
	Metadata TaxRuleMetadata   `yaml:"metadata" json:"metadata"`
}

// IsVerified reports whether the rules have been confirmed.
func (r TaxYearRules) IsVerified() bool {
	return r.Status == RuleStatusVerified
}

// TaxComputationInput is the request side of a personal income tax estimate.
type TaxComputationInput struct {
	Year             int     `json:"year"`
	GrossIncome      float64 `json:"grossIncome"`
	RRSPContribution float64 `json:"rrspContribution"`
	OtherDeductions  float64 `json:"otherDeductions"`
}

// TaxComputationResult is the estimate returned by the tax engine.
// TotalTax always equals FederalTax + BCTax.
type TaxComputationResult struct {
	Year          int      `json:"year"`
	TaxableIncome float64  `json:"taxableIncome"`
	FederalTax    float64  `json:"federalTax"`
	BCTax         float64  `json:"bcTax"`
	TotalTax      float64  `json:"totalTax"`
	NetIncome     float64  `json:"netIncome"`
	MarginalRate  float64  `json:"marginalRate"`
	AverageRate   float64  `json:"averageRate"`
	Warnings      []string `json:"warnings"`
}

// DebtInput is one balance in a payoff simulation.
type DebtInput struct {
	Name           string  `json:"name"`
	Balance        float64 `json:"balance"`
	APR            float64 `json:"apr"` // annual percent, e.g. 19.99
	MinimumPayment float64 `json:"minimumPayment"`
}

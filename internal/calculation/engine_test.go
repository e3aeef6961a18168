package calculation

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/olsonco/calckit/internal/domain"
	"github.com/olsonco/calckit/internal/taxrules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records messages for assertions.
type TestLogger struct {
	mu       sync.Mutex
	Messages []string
}

func (l *TestLogger) record(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, level+": "+fmt.Sprintf(format, args...))
}

func (l *TestLogger) Debugf(format string, args ...any) { l.record("DEBUG", format, args...) }
func (l *TestLogger) Infof(format string, args ...any)  { l.record("INFO", format, args...) }
func (l *TestLogger) Warnf(format string, args ...any)  { l.record("WARN", format, args...) }
func (l *TestLogger) Errorf(format string, args ...any) { l.record("ERROR", format, args...) }

func TestNewTaxEngine(t *testing.T) {
	engine := NewTaxEngine(nil)

	assert.NotNil(t, engine.Rules, "Should fall back to embedded rules")
	assert.Equal(t, []int{2026, 2025}, engine.Years())
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestTaxEngine_SetLogger(t *testing.T) {
	engine := NewTaxEngine(nil)

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCompute_MissingYear(t *testing.T) {
	engine := NewTaxEngine(nil)
	logger := &TestLogger{}
	engine.SetLogger(logger)

	result := engine.Compute(domain.TaxComputationInput{Year: 1999, GrossIncome: 90000})

	assert.Equal(t, 1999, result.Year)
	assert.Zero(t, result.TotalTax)
	assert.Zero(t, result.NetIncome)
	assert.Zero(t, result.TaxableIncome)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, strings.ToLower(result.Warnings[0]), "tax data missing")
	assert.Contains(t, result.Warnings[0], "1999")
	assert.NotEmpty(t, logger.Messages)
}

func TestCompute_PlaceholderYear(t *testing.T) {
	result := ComputeCanadianBCIncomeTax(domain.TaxComputationInput{
		Year:             2026,
		GrossIncome:      95000,
		RRSPContribution: 5000,
	})

	assert.Greater(t, result.TotalTax, 0.0)
	assert.Equal(t, 90000.0, result.TaxableIncome)
	assert.InDelta(t, result.FederalTax+result.BCTax, result.TotalTax, 1e-9)
	assert.InDelta(t, 95000-result.TotalTax, result.NetIncome, 1e-9)
	assert.InDelta(t, result.TotalTax/95000, result.AverageRate, 1e-12)
	assert.InDelta(t, 0.205+0.077, result.MarginalRate, 1e-12)

	require.Len(t, result.Warnings, 2)
	assert.Contains(t, strings.ToLower(result.Warnings[0]), "placeholder")
	assert.Contains(t, strings.ToLower(result.Warnings[1]), "not tax advice")
}

func TestCompute_KnownValues2026(t *testing.T) {
	result := ComputeCanadianBCIncomeTax(domain.TaxComputationInput{Year: 2026, GrossIncome: 90000, RRSPContribution: 4000})

	federalGross := 57375*0.15 + (86000-57375)*0.205
	bcGross := 49279*0.0506 + (86000-49279)*0.077
	assert.InDelta(t, federalGross-15705*0.15, result.FederalTax, 1e-6)
	assert.InDelta(t, bcGross-12580*0.0506, result.BCTax, 1e-6)
}

func TestCompute_LowIncomeFloorsAtZero(t *testing.T) {
	result := ComputeCanadianBCIncomeTax(domain.TaxComputationInput{Year: 2025, GrossIncome: 10000})

	assert.Zero(t, result.FederalTax)
	assert.Zero(t, result.BCTax)
	assert.Equal(t, 10000.0, result.NetIncome)
	assert.Zero(t, result.AverageRate)
}

func TestCompute_DeductionsExceedIncome(t *testing.T) {
	result := ComputeCanadianBCIncomeTax(domain.TaxComputationInput{
		Year: 2025, GrossIncome: 20000, RRSPContribution: 15000, OtherDeductions: 15000,
	})
	assert.Zero(t, result.TaxableIncome)
	assert.Zero(t, result.TotalTax)
	assert.Zero(t, result.MarginalRate)
}

func TestCompute_NonFiniteInputsTreatedAsZero(t *testing.T) {
	inputs := []domain.TaxComputationInput{
		{Year: 2026, GrossIncome: math.NaN()},
		{Year: 2026, GrossIncome: math.Inf(1)},
		{Year: 2026, GrossIncome: 50000, RRSPContribution: math.Inf(-1)},
		{Year: 2026, GrossIncome: -100000},
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			result := ComputeCanadianBCIncomeTax(in)
			assert.False(t, math.IsNaN(result.TotalTax))
			assert.False(t, math.IsInf(result.TotalTax, 0))
			assert.False(t, math.IsNaN(result.AverageRate))
		})
	}
}

func TestCompute_VerifiedRulesOmitPlaceholderWarning(t *testing.T) {
	r, ok := taxrules.Embedded().Lookup(2026)
	require.True(t, ok)
	r.Status = domain.RuleStatusVerified
	table, err := taxrules.NewTable(r)
	require.NoError(t, err)

	result := NewTaxEngine(table).Compute(domain.TaxComputationInput{Year: 2026, GrossIncome: 80000})
	assert.Equal(t, []string{EstimateOnlyWarning}, result.Warnings)
}

func TestCompute_ConcurrentCallsAgree(t *testing.T) {
	engine := NewTaxEngine(nil)
	want := engine.Compute(domain.TaxComputationInput{Year: 2025, GrossIncome: 120000})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := engine.Compute(domain.TaxComputationInput{Year: 2025, GrossIncome: 120000})
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

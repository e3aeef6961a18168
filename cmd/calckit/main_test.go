package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olsonco/calckit/internal/calculators"
	"github.com/olsonco/calckit/internal/config"
	"github.com/olsonco/calckit/internal/domain"
	"github.com/olsonco/calckit/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "calckit", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"list", "fields", "run", "share", "compare", "tax", "years", "serve", "tui", "version"} {
		assert.Contains(t, names, want)
	}

	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--rules-dir")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "calckit dev")
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "canadian-income-tax-estimator")
	assert.Contains(t, out, "cash-flow-forecast")

	out, err = execute(t, "list", "--category", "payroll", "--format", "json")
	require.NoError(t, err)
	var entries []output.CatalogEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, domain.CategoryPayroll, e.Category)
	}

	_, err = execute(t, "list", "--category", "astrology")
	assert.ErrorContains(t, err, `no calculators in category "astrology"`)
}

func TestFields(t *testing.T) {
	out, err := execute(t, "fields", "mortgage-payment-amortization")
	require.NoError(t, err)
	assert.Contains(t, out, "downPaymentPercent")

	_, err = execute(t, "fields", "lottery-odds")
	assert.True(t, errors.Is(err, calculators.ErrUnknownCalculator))
}

func decodeReport(t *testing.T, out string) output.Report {
	t.Helper()
	var r output.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r), out)
	return r
}

func TestRunWithSetAndQuery(t *testing.T) {
	out, err := execute(t, "run", "margin-markup-calculator", "--set", "cost=40", "--set", "price=90", "--format", "json")
	require.NoError(t, err)
	r := decodeReport(t, out)
	assert.Equal(t, "margin-markup-calculator", r.Slug)
	assert.Equal(t, "$50", r.Result.Summary[0].Value)
	assert.Equal(t, "cost=40&price=90", r.Query)

	out, err = execute(t, "run", "margin-markup-calculator", "--query", "?cost=10&price=80", "--set", "price=90", "-f", "json")
	require.NoError(t, err)
	r = decodeReport(t, out)
	assert.Equal(t, "cost=10&price=90", r.Query)
}

func TestRunDefaultConsole(t *testing.T) {
	out, err := execute(t, "run", "break-even-calculator")
	require.NoError(t, err)
	assert.Contains(t, out, "BREAK-EVEN CALCULATOR")
	assert.Contains(t, out, "Share: ?")
}

func TestRunFromScenarioFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("calculator: margin-markup-calculator\ninputs:\n  cost: 20\n  price: 50\n"), 0o644))

	out, err := execute(t, "run", "--input", path, "--set", "price=60", "--format", "json")
	require.NoError(t, err)
	r := decodeReport(t, out)
	assert.Equal(t, "cost=20&price=60", r.Query)

	out, err = execute(t, "run", "--input", path, "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Section,Label,Value"))

	_, err = execute(t, "run", "tfsa-tracker", "--input", path)
	assert.ErrorContains(t, err, "scenario file is for margin-markup-calculator, not tfsa-tracker")
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "run")
	assert.ErrorContains(t, err, "slug or --input file is required")

	_, err = execute(t, "run", "margin-markup-calculator", "--set", "colour=red")
	assert.ErrorContains(t, err, "unknown input(s) for margin-markup-calculator: colour")

	_, err = execute(t, "run", "margin-markup-calculator", "--set", "cost")
	assert.ErrorContains(t, err, "expected key=value")

	_, err = execute(t, "run", "mortgage-payment-amortization", "--set", "downPaymentPercent=95")
	var verr *config.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Maximum value is 80.", verr.Fields["downPaymentPercent"])

	_, err = execute(t, "run", "margin-markup-calculator", "--format", "docx")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = execute(t, "run", "lottery-odds")
	assert.True(t, errors.Is(err, calculators.ErrUnknownCalculator))
}

func TestRunWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	out, err := execute(t, "run", "mortgage-payment-amortization", "--format", "pdf", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestShare(t *testing.T) {
	out, err := execute(t, "share", "margin-markup-calculator", "--set", "price=99.5")
	require.NoError(t, err)
	assert.Equal(t, "cost=45&price=99.5\n", out)
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "compare", "tfsa-tracker", "margin-markup-calculator", "--format", "json")
	require.NoError(t, err)
	var rows []calculators.ComparisonRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "tfsa-tracker", rows[0].Slug)

	_, err = execute(t, "compare", "nope")
	assert.True(t, errors.Is(err, calculators.ErrUnknownCalculator))
}

func TestTax(t *testing.T) {
	out, err := execute(t, "tax", "--income", "90000", "--rrsp", "4000", "--format", "json")
	require.NoError(t, err)
	var result domain.TaxComputationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2026, result.Year)
	assert.Equal(t, 86000.0, result.TaxableIncome)
	assert.InDelta(t, result.FederalTax+result.BCTax, result.TotalTax, 1e-9)

	out, err = execute(t, "tax", "--income", "90000", "--rrsp", "4000")
	require.NoError(t, err)
	assert.Contains(t, out, "Income tax estimate for 2026")
	assert.Contains(t, out, "$86,000")
	assert.Contains(t, out, "placeholder only")

	out, err = execute(t, "tax", "--year", "1999", "--income", "50000")
	require.NoError(t, err)
	assert.Contains(t, out, "Tax data missing for 1999")

	_, err = execute(t, "tax", "--format", "xml")
	assert.Error(t, err)
}

const verified2027 = `year: 2027
status: verified
federal:
  basic_personal_amount: 16000
  brackets:
    - up_to: 60000
      rate: 0.14
    - up_to: null
      rate: 0.3
bc:
  basic_personal_amount: 13000
  brackets:
    - up_to: 50000
      rate: 0.05
    - up_to: null
      rate: 0.2
metadata:
  notes: Confirmed.
`

func TestYearsAndRulesDir(t *testing.T) {
	out, err := execute(t, "years")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "2026  placeholder"))
	assert.True(t, strings.HasPrefix(lines[1], "2025  placeholder"))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2027.yaml"), []byte(verified2027), 0o644))

	out, err = execute(t, "--rules-dir", dir, "years")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "2027  verified     Confirmed."))

	out, err = execute(t, "--rules-dir", dir, "tax", "--income", "50000", "-f", "json")
	require.NoError(t, err)
	var result domain.TaxComputationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2027, result.Year)
	assert.Len(t, result.Warnings, 1)

	_, err = execute(t, "--rules-dir", filepath.Join(dir, "missing"), "years")
	assert.ErrorContains(t, err, "failed to load tax rules")
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "calckit.yaml")
	require.NoError(t, os.WriteFile(good, []byte("output:\n  format: json\n"), 0o644))

	out, err := execute(t, "--config", good, "run", "margin-markup-calculator")
	require.NoError(t, err)
	assert.Equal(t, "margin-markup-calculator", decodeReport(t, out).Slug)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("logging:\n  format: xml\n"), 0o644))
	_, err = execute(t, "--config", bad, "years")
	assert.ErrorContains(t, err, "invalid log format")
}

func TestTUIUnknownSlug(t *testing.T) {
	_, err := execute(t, "tui", "lottery-odds")
	assert.True(t, errors.Is(err, calculators.ErrUnknownCalculator))
}

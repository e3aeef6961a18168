// Package taxrules holds the year-keyed federal and British Columbia tax
// rule tables. Tables are assembled once at startup and are read-only
// afterwards, so a *Table can be shared freely between goroutines.
package taxrules

import (
	"embed"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olsonco/calckit/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed rules/*.yaml
var embeddedRules embed.FS

var embeddedTable = mustLoadEmbedded()

// Table maps tax years to their rules.
type Table struct {
	years map[int]domain.TaxYearRules
}

// Embedded returns the table compiled into the binary.
func Embedded() *Table {
	return embeddedTable
}

// NewTable builds a table from validated rules. A later entry for the same
// year replaces an earlier one.
func NewTable(rules ...domain.TaxYearRules) (*Table, error) {
	t := &Table{years: make(map[int]domain.TaxYearRules, len(rules))}
	for _, r := range rules {
		if err := Validate(r); err != nil {
			return nil, fmt.Errorf("tax year %d: %w", r.Year, err)
		}
		t.years[r.Year] = cloneRules(r)
	}
	return t, nil
}

// Lookup returns the rules for a year.
func (t *Table) Lookup(year int) (domain.TaxYearRules, bool) {
	if t == nil {
		return domain.TaxYearRules{}, false
	}
	r, ok := t.years[year]
	if !ok {
		return domain.TaxYearRules{}, false
	}
	return cloneRules(r), true
}

// Years lists the available years, most recent first.
func (t *Table) Years() []int {
	if t == nil {
		return nil
	}
	years := make([]int, 0, len(t.years))
	for y := range t.years {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Merge returns a new table holding t's years overlaid with extra.
func (t *Table) Merge(extra ...domain.TaxYearRules) (*Table, error) {
	all := make([]domain.TaxYearRules, 0, len(t.years)+len(extra))
	for _, y := range t.Years() {
		all = append(all, t.years[y])
	}
	all = append(all, extra...)
	return NewTable(all...)
}

// WithDir overlays every *.yaml / *.yml rule file found in dir.
func (t *Table) WithDir(dir string) (*Table, error) {
	extra, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return t.Merge(extra...)
}

// Parse decodes and validates a single rule file.
func Parse(data []byte) (domain.TaxYearRules, error) {
	var r domain.TaxYearRules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return domain.TaxYearRules{}, fmt.Errorf("failed to parse rule file: %w", err)
	}
	if err := Validate(r); err != nil {
		return domain.TaxYearRules{}, err
	}
	return r, nil
}

// LoadFile reads one rule file from disk.
func LoadFile(path string) (domain.TaxYearRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.TaxYearRules{}, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return domain.TaxYearRules{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// LoadDir reads every rule file in dir, sorted by name.
func LoadDir(dir string) ([]domain.TaxYearRules, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules directory %s: %w", dir, err)
	}
	var out []domain.TaxYearRules
	for _, e := range entries {
		if e.IsDir() || !isRuleFile(e.Name()) {
			continue
		}
		r, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func isRuleFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Validate checks the bracket invariants of both jurisdictions.
func Validate(r domain.TaxYearRules) error {
	if r.Year <= 0 {
		return fmt.Errorf("year must be positive, got %d", r.Year)
	}
	switch r.Status {
	case domain.RuleStatusPlaceholder, domain.RuleStatusVerified:
	default:
		return fmt.Errorf("unknown status %q", r.Status)
	}
	if err := validateJurisdiction(r.Federal); err != nil {
		return fmt.Errorf("federal: %w", err)
	}
	if err := validateJurisdiction(r.BC); err != nil {
		return fmt.Errorf("bc: %w", err)
	}
	return nil
}

func validateJurisdiction(j domain.JurisdictionRules) error {
	if len(j.Brackets) == 0 {
		return fmt.Errorf("at least one bracket is required")
	}
	if j.BasicPersonalAmount < 0 || !isFinite(j.BasicPersonalAmount) {
		return fmt.Errorf("basic personal amount must be a non-negative number")
	}
	previous := 0.0
	last := len(j.Brackets) - 1
	for i, b := range j.Brackets {
		if b.Rate < 0 || b.Rate > 1 || !isFinite(b.Rate) {
			return fmt.Errorf("bracket %d: rate %v outside [0, 1]", i, b.Rate)
		}
		upper, bounded := b.Cap()
		if !bounded {
			if i != last {
				return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
			}
			continue
		}
		if i == last {
			return fmt.Errorf("bracket %d: last bracket must be unbounded", i)
		}
		if !isFinite(upper) || upper <= previous {
			return fmt.Errorf("bracket %d: cap %v must exceed previous cap %v", i, upper, previous)
		}
		previous = upper
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func cloneRules(r domain.TaxYearRules) domain.TaxYearRules {
	r.Federal.Brackets = cloneBrackets(r.Federal.Brackets)
	r.BC.Brackets = cloneBrackets(r.BC.Brackets)
	return r
}

func cloneBrackets(in []domain.TaxBracket) []domain.TaxBracket {
	out := make([]domain.TaxBracket, len(in))
	for i, b := range in {
		out[i].Rate = b.Rate
		if b.UpTo != nil {
			v := *b.UpTo
			out[i].UpTo = &v
		}
	}
	return out
}

func mustLoadEmbedded() *Table {
	files, err := fs.Glob(embeddedRules, "rules/*.yaml")
	if err != nil {
		panic(fmt.Sprintf("taxrules: %v", err))
	}
	var rules []domain.TaxYearRules
	for _, name := range files {
		data, err := embeddedRules.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("taxrules: %v", err))
		}
		r, err := Parse(data)
		if err != nil {
			panic(fmt.Sprintf("taxrules: %s: %v", name, err))
		}
		rules = append(rules, r)
	}
	t, err := NewTable(rules...)
	if err != nil {
		panic(fmt.Sprintf("taxrules: %v", err))
	}
	return t
}

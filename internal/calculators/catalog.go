package calculators

import (
	_ "embed"
	"fmt"
	"strconv"

	"github.com/olsonco/calckit/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// taxYearKey is the select field that picks a tax rule year.
const taxYearKey = "year"

var baseCatalog = mustParseCatalog(catalogYAML)

func mustParseCatalog(data []byte) []domain.CatalogItem {
	items, err := parseCatalog(data)
	if err != nil {
		panic(fmt.Sprintf("calculators: %v", err))
	}
	return items
}

func parseCatalog(data []byte) ([]domain.CatalogItem, error) {
	var items []domain.CatalogItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.Slug == "" {
			return nil, fmt.Errorf("catalog entry %q has no slug", item.Title)
		}
		if seen[item.Slug] {
			return nil, fmt.Errorf("duplicate catalog slug %s", item.Slug)
		}
		seen[item.Slug] = true
		for _, f := range item.Fields {
			if f.Default.IsZero() {
				return nil, fmt.Errorf("%s: field %s has no default value", item.Slug, f.Key)
			}
		}
	}
	return items, nil
}

// Catalog returns the calculator descriptions in display order. When years
// is non-empty, tax-year selects offer exactly those years and default to
// the first one.
func Catalog(years []int) []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(baseCatalog))
	for i, item := range baseCatalog {
		out[i] = cloneItem(item, years)
	}
	return out
}

func cloneItem(item domain.CatalogItem, years []int) domain.CatalogItem {
	fields := make([]domain.Field, len(item.Fields))
	for i, f := range item.Fields {
		f.Default = f.Default.Clone()
		f.Options = append([]domain.FieldOption(nil), f.Options...)
		if f.Key == taxYearKey && f.Type == domain.FieldSelect && len(years) > 0 {
			f.Options = yearOptions(years)
			f.Default = domain.StringValue(strconv.Itoa(years[0]))
		}
		fields[i] = f
	}
	item.Fields = fields
	item.HowItWorks = append([]string(nil), item.HowItWorks...)
	item.Disclaimers = append([]string(nil), item.Disclaimers...)
	return item
}

func yearOptions(years []int) []domain.FieldOption {
	opts := make([]domain.FieldOption, len(years))
	for i, y := range years {
		s := strconv.Itoa(y)
		opts[i] = domain.FieldOption{Label: s, Value: s}
	}
	return opts
}

// CategoryLabel returns the display name of a category.
func CategoryLabel(c domain.Category) string {
	switch c {
	case domain.CategoryPersonal:
		return "Personal"
	case domain.CategoryBusiness:
		return "Business"
	case domain.CategoryPayroll:
		return "Payroll"
	case domain.CategoryTax:
		return "Tax"
	default:
		return string(c)
	}
}

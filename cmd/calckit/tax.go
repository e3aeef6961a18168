package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olsonco/calckit/internal/calculators"
	"github.com/olsonco/calckit/internal/domain"
	"github.com/olsonco/calckit/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func taxCmd(a *app) *cobra.Command {
	var input domain.TaxComputationInput
	var format string
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Estimate federal + BC personal income tax directly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := a.registry.Engine()
			if input.Year == 0 {
				if years := engine.Years(); len(years) > 0 {
					input.Year = years[0]
				}
			}
			result := engine.Compute(input)

			w := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			case "yaml", "yml":
				return yaml.NewEncoder(w).Encode(result)
			case "console", "text", "":
				writeTaxResult(w, result)
				return nil
			default:
				return fmt.Errorf("unsupported format %q (console, json, yaml)", format)
			}
		},
	}
	cmd.Flags().IntVarP(&input.Year, "year", "y", 0, "tax year (default: latest year with rules)")
	cmd.Flags().Float64Var(&input.GrossIncome, "income", 0, "gross annual income")
	cmd.Flags().Float64Var(&input.RRSPContribution, "rrsp", 0, "RRSP contribution")
	cmd.Flags().Float64Var(&input.OtherDeductions, "deductions", 0, "other deductions")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, json, yaml")
	return cmd
}

func writeTaxResult(w io.Writer, r domain.TaxComputationResult) {
	rows := []struct{ label, value string }{
		{"Taxable Income", calculators.Currency(r.TaxableIncome)},
		{"Federal Tax", calculators.Currency(r.FederalTax)},
		{"BC Tax", calculators.Currency(r.BCTax)},
		{"Total Tax", calculators.Currency(r.TotalTax)},
		{"Net Income", calculators.Currency(r.NetIncome)},
		{"Average Rate", calculators.Percent(r.AverageRate)},
		{"Marginal Rate", calculators.Percent(r.MarginalRate)},
	}
	fmt.Fprintln(w, output.TitleStyle.Render(fmt.Sprintf("Income tax estimate for %d", r.Year)))
	for _, row := range rows {
		fmt.Fprintf(w, "  %-15s %s\n", row.label+":", row.value)
	}
	for _, warning := range r.Warnings {
		fmt.Fprintln(w, output.WarningStyle.Render("! "+warning))
	}
}

func yearsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List the tax years with rule tables and their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := a.registry.Engine()
			w := cmd.OutOrStdout()
			for _, year := range engine.Years() {
				rules, ok := engine.RulesFor(year)
				if !ok {
					continue
				}
				line := fmt.Sprintf("%d  %-11s", year, rules.Status)
				if rules.Metadata.Notes != "" {
					line += "  " + rules.Metadata.Notes
				}
				fmt.Fprintln(w, strings.TrimRight(line, " "))
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/olsonco/calckit/internal/calculators"
	"github.com/olsonco/calckit/internal/config"
	"github.com/olsonco/calckit/internal/domain"
	"github.com/olsonco/calckit/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func listCmd(a *app) *cobra.Command {
	var category, format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available calculators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := a.registry.Items()
			if category != "" {
				want := domain.Category(strings.ToLower(category))
				filtered := items[:0]
				for _, item := range items {
					if item.Category == want {
						filtered = append(filtered, item)
					}
				}
				if len(filtered) == 0 {
					return fmt.Errorf("no calculators in category %q (personal, business, payroll, tax)", category)
				}
				items = filtered
			}
			data, err := output.FormatCatalog(items, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list one category: personal, business, payroll, tax")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, json, csv, yaml")
	return cmd
}

func fieldsCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "fields <slug>",
		Short: "Show the inputs a calculator accepts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.item(args[0])
			if err != nil {
				return err
			}
			data, err := output.FormatFields(item, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, json, csv, yaml")
	return cmd
}

// inputFlags are the ways a command can receive calculator inputs.
type inputFlags struct {
	sets  []string
	query string
	input string
}

func (f *inputFlags) register(cmd *cobra.Command, withFile bool) {
	cmd.Flags().StringArrayVarP(&f.sets, "set", "s", nil, "set an input: key=value (repeatable; month grids as 12 comma-separated numbers)")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "inputs as a share-link query string, e.g. 'cost=40&price=90'")
	if withFile {
		cmd.Flags().StringVarP(&f.input, "input", "i", "", "YAML or JSON scenario file {calculator, inputs}")
	}
}

// resolve determines the calculator and its effective inputs. Precedence,
// lowest first: field defaults, the scenario file, --query, then --set.
func (f *inputFlags) resolve(a *app, args []string) (domain.CatalogItem, domain.Inputs, error) {
	slug := ""
	if len(args) > 0 {
		slug = args[0]
	}

	var fileInputs domain.Inputs
	if f.input != "" {
		scenario, err := config.NewInputParser(a.registry).LoadFromFile(f.input)
		if err != nil {
			return domain.CatalogItem{}, nil, err
		}
		if slug != "" && slug != scenario.Calculator {
			return domain.CatalogItem{}, nil, fmt.Errorf("scenario file is for %s, not %s", scenario.Calculator, slug)
		}
		slug = scenario.Calculator
		fileInputs = scenario.Inputs
	}
	if slug == "" {
		return domain.CatalogItem{}, nil, fmt.Errorf("a calculator slug or --input file is required")
	}

	item, err := a.item(slug)
	if err != nil {
		return domain.CatalogItem{}, nil, err
	}

	q := url.Values{}
	if f.query != "" {
		q, err = url.ParseQuery(strings.TrimPrefix(f.query, "?"))
		if err != nil {
			return domain.CatalogItem{}, nil, fmt.Errorf("invalid --query: %w", err)
		}
	}
	sets, err := config.ParseAssignments(f.sets)
	if err != nil {
		return domain.CatalogItem{}, nil, err
	}
	for k, v := range sets {
		q[k] = v
	}

	if unknown := config.UnknownKeys(item, q); len(unknown) > 0 {
		return domain.CatalogItem{}, nil, fmt.Errorf("unknown input(s) for %s: %s (see `calckit fields %s`)",
			slug, strings.Join(unknown, ", "), slug)
	}
	if problems := calculators.ValidateQuery(item.Fields, q); len(problems) > 0 {
		return domain.CatalogItem{}, nil, &config.ValidationError{Calculator: slug, Fields: problems}
	}

	base := calculators.MergeInputs(item.Fields, fileInputs)
	return item, calculators.ApplyQuery(item.Fields, base, q), nil
}

func (a *app) item(slug string) (domain.CatalogItem, error) {
	item, ok := a.registry.Item(slug)
	if !ok {
		return domain.CatalogItem{}, fmt.Errorf("%w: %s (run `calckit list`)", calculators.ErrUnknownCalculator, slug)
	}
	return item, nil
}

func runCmd(a *app) *cobra.Command {
	var inputs inputFlags
	var format, out string
	cmd := &cobra.Command{
		Use:   "run [slug]",
		Short: "Run a calculator and print or save its report",
		Example: "  calckit run margin-markup-calculator --set cost=40 --set price=90\n" +
			"  calckit run --input scenario.yaml --format pdf --out report.pdf",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, in, err := inputs.resolve(a, args)
			if err != nil {
				return err
			}

			if format == "" {
				format = a.settings.Output.Format
			}
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unsupported format %q (available: %s; aliases: %s)", format,
					strings.Join(output.AvailableFormatterNames(), ", "),
					strings.Join(output.AvailableFormatAliases(), ", "))
			}

			result, err := a.registry.Run(item.Slug, in)
			if err != nil {
				return err
			}
			a.logger.Debug("calculator finished",
				zap.String("slug", item.Slug),
				zap.Int("warnings", len(result.Warnings)))
			report := output.NewReport(item, in, result)

			// binary formats always go to a file
			if out != "" || formatter.Name() == "pdf" {
				path, err := output.WriteFormatted(formatter, report, out)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}

			data, err := formatter.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	inputs.register(cmd, true)
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: console, json, csv, yaml, pdf (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the report to this file")
	return cmd
}

func shareCmd(a *app) *cobra.Command {
	var inputs inputFlags
	cmd := &cobra.Command{
		Use:   "share [slug]",
		Short: "Print the share-link query string for a set of inputs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, in, err := inputs.resolve(a, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), calculators.EncodeQuery(item.Fields, in).Encode())
			return nil
		},
	}
	inputs.register(cmd, true)
	return cmd
}

func compareCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "compare [slug...]",
		Short: "Compare calculators side by side",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, slug := range args {
				if _, err := a.item(slug); err != nil {
					return err
				}
			}
			data, err := output.FormatComparison(calculators.ComparisonRows(a.registry, args...), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, json, csv, yaml")
	return cmd
}

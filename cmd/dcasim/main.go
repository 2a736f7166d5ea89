package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/dcasim/internal/calculation"
	"github.com/rgehrsitz/dcasim/internal/compare"
	"github.com/rgehrsitz/dcasim/internal/config"
	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/rgehrsitz/dcasim/internal/output"
	"github.com/rgehrsitz/dcasim/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dcasim %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// newEngine builds a projection engine, logging through the standard
// logger when --debug is set.
func newEngine(cmd *cobra.Command) *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

// addInputFlags registers the flags that describe a single projection.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("monthly", 0, "Monthly contribution")
	cmd.Flags().Float64("initial", 0, "Initial capital")
	cmd.Flags().Float64("rate", 0, "Annual return rate as a fraction (0.07 for 7%)")
	cmd.Flags().Int("years", 0, "Duration in whole years")
	cmd.Flags().Float64("inflation", 0, "Annual inflation rate as a fraction")
	cmd.Flags().Float64("step", domain.DefaultMilestoneStep, "Milestone step")
	cmd.Flags().String("currency", "", "Currency symbol for reports (default \"$\")")
	cmd.Flags().String("locale", "", "Locale for number formatting, e.g. en-US or fr")
	cmd.Flags().String("name", "Projection", "Scenario name used for flag-driven projections")
}

// loadConfiguration reads a scenario file when one is given, otherwise it
// builds a single-scenario configuration from the input flags.
func loadConfiguration(cmd *cobra.Command, args []string) (*domain.Configuration, error) {
	if len(args) > 0 {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	flags := cmd.Flags()
	for _, required := range []string{"monthly", "rate", "years"} {
		if !flags.Changed(required) {
			return nil, fmt.Errorf("either a config file or --monthly, --rate and --years are required (missing --%s)", required)
		}
	}

	monthly, _ := flags.GetFloat64("monthly")
	initial, _ := flags.GetFloat64("initial")
	rate, _ := flags.GetFloat64("rate")
	years, _ := flags.GetInt("years")
	inflation, _ := flags.GetFloat64("inflation")
	step, _ := flags.GetFloat64("step")
	currency, _ := flags.GetString("currency")
	locale, _ := flags.GetString("locale")
	name, _ := flags.GetString("name")

	in, err := domain.NewSimulationInput(monthly, initial, rate, years, inflation)
	if err != nil {
		return nil, err
	}
	if years > domain.MaxDurationYears {
		return nil, domain.NewInputError("durationYears", fmt.Sprintf("cannot exceed %d years", domain.MaxDurationYears))
	}
	if err := domain.ValidateMilestoneStep(step); err != nil {
		return nil, err
	}

	stepDecimal := decimal.NewFromFloat(step)
	return &domain.Configuration{
		Defaults: domain.Defaults{
			MilestoneStep: &stepDecimal,
			Currency:      currency,
			Locale:        locale,
		},
		Scenarios: []domain.Scenario{domain.ScenarioFromInput(name, in)},
	}, nil
}

// fileExtension picks the extension used when a report is saved to disk.
func fileExtension(format string) string {
	switch output.NormalizeFormatName(format) {
	case "html":
		return "html"
	case "json":
		return "json"
	case "csv", "milestones-csv":
		return "csv"
	default:
		return "txt"
	}
}

func writeReport(w io.Writer, report *domain.ProjectionReport, format string, save bool) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format: %s (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	if save {
		filename, err := output.WriteFormatted(f, report, fileExtension(format))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Report written to %s\n", filename)
		return nil
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// runProjection projects every scenario, or just the one named by --scenario.
func runProjection(cmd *cobra.Command, cfg *domain.Configuration) (*domain.ProjectionReport, error) {
	engine := newEngine(cmd)
	name, _ := cmd.Flags().GetString("scenario")
	if name == "" {
		return engine.RunScenarios(cmd.Context(), cfg)
	}

	for i := range cfg.Scenarios {
		if cfg.Scenarios[i].Name != name {
			continue
		}
		result, err := engine.RunScenarioAuto(cmd.Context(), cfg, i)
		if err != nil {
			return nil, err
		}
		return &domain.ProjectionReport{
			Currency:  cfg.Defaults.Currency,
			Locale:    cfg.Defaults.Locale,
			Scenarios: []domain.ScenarioProjection{*result},
		}, nil
	}
	return nil, fmt.Errorf("scenario %s not found in configuration", name)
}

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [input-file]",
		Short: "Project monthly contributions forward",
		Long: `Project one or more dollar-cost-averaging scenarios.

Examples:
  dcasim project scenarios.yaml
  dcasim project --monthly 500 --rate 0.07 --years 10
  dcasim project --monthly 500 --initial 10000 --rate 0.08 --years 20 --inflation 0.02 --step 50000
  dcasim project scenarios.yaml --scenario Seeded --format json
  dcasim project --monthly 500 --rate 0.07 --years 10 --save-config scenarios.yaml
  dcasim project scenarios.yaml --format html --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd, args)
			if err != nil {
				return err
			}

			if path, _ := cmd.Flags().GetString("save-config"); path != "" {
				if err := config.NewInputParser().SaveToFile(cfg, path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Configuration written to %s\n", path)
			}

			report, err := runProjection(cmd, cfg)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			save, _ := cmd.Flags().GetBool("save")
			return writeReport(cmd.OutOrStdout(), report, format, save)
		},
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, milestones-csv, json, html)")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	cmd.Flags().String("scenario", "", "Project only the named scenario")
	cmd.Flags().String("save-config", "", "Also write the configuration as YAML to this path")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d scenarios)\n", args[0], len(cfg.Scenarios))
			return nil
		},
	}
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a scenario against variations built from templates",
		Long: `Compare a base scenario against alternative strategies.

Entries in --with are template names or inline transforms (name:key=value).

Examples:
  dcasim compare scenarios.yaml --base Base --with contrib_plus_10pct,rate_minus_1pt
  dcasim compare scenarios.yaml --base Base --with set_contribution:amount=750 --format csv
  dcasim compare scenarios.yaml --base Base --scenarios Seeded
  dcasim compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
			}

			parser := config.NewInputParser()
			cfg, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			baseName, _ := cmd.Flags().GetString("base")
			templatesStr, _ := cmd.Flags().GetString("with")
			scenariosStr, _ := cmd.Flags().GetString("scenarios")
			outputFormat, _ := cmd.Flags().GetString("format")

			if baseName == "" {
				baseName = cfg.Scenarios[0].Name
			}
			if templatesStr == "" && scenariosStr == "" {
				return fmt.Errorf("--with or --scenarios is required (use --list-templates to see templates)")
			}

			compareEngine := compare.NewCompareEngine(newEngine(cmd))
			ctx := cmd.Context()

			var comparisonSet *compare.ComparisonSet
			if scenariosStr != "" {
				comparisonSet, err = compareEngine.CompareScenarios(ctx, cfg, baseName, transform.ParseTemplateList(scenariosStr))
			} else {
				templateNames := transform.ParseTemplateList(templatesStr)
				if len(templateNames) == 0 {
					return fmt.Errorf("no valid templates specified in --with flag")
				}
				comparisonSet, err = compareEngine.Compare(ctx, cfg, compare.CompareOptions{
					BaseScenarioName: baseName,
					Templates:        templateNames,
					ConfigPath:       args[0],
				})
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			comparisonSet.ConfigPath = args[0]

			out := cmd.OutOrStdout()
			switch strings.ToLower(outputFormat) {
			case "csv":
				formatter := &compare.CSVFormatter{}
				text, err := formatter.Format(comparisonSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, text)

			case "json":
				formatter := &compare.JSONFormatter{Pretty: true}
				text, err := formatter.Format(comparisonSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprint(out, text)

			case "compact":
				fmt.Fprint(out, (&compare.TableFormatter{}).FormatCompact(comparisonSet))

			case "html":
				save, _ := cmd.Flags().GetBool("save")
				return writeReport(out, comparisonSet.ToProjectionReport(), "html", save)

			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(comparisonSet))

			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json, html)", outputFormat)
			}
			return nil
		},
	}
	cmd.Flags().String("base", "", "Base scenario name to compare against (default: first scenario)")
	cmd.Flags().String("with", "", "Comma-separated templates or transforms to compare")
	cmd.Flags().String("scenarios", "", "Comma-separated scenario names from the file to compare instead of templates")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json, html)")
	cmd.Flags().Bool("save", false, "Write html output to a timestamped file")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dcasim",
		Short:         "Dollar-cost-averaging projection CLI",
		Long:          "Projects fixed monthly contributions with monthly compounding, wealth milestones and inflation-adjusted results.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(sensitivityCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

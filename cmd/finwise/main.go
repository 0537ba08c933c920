// finwise is the CLI front end for the calculator engine. It reads a named
// calculator's parameters as JSON (from a file or stdin) and prints the
// result envelope.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/finwise/finance-calculators/internal/calculation"
	"github.com/finwise/finance-calculators/internal/domain"
	"github.com/finwise/finance-calculators/internal/output"
	"github.com/finwise/finance-calculators/internal/policy"
	"github.com/finwise/finance-calculators/internal/request"
)

var (
	cfgFile    string
	policyFile string
	inputFile  string
	logLevel   string
	logFormat  string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes bad input (2) from everything else (1).
func exitCode(err error) int {
	var verr *domain.ValidationError
	var oerr *domain.UnsupportedOptionError
	if errors.As(err, &verr) || errors.As(err, &oerr) {
		return 2
	}
	return 1
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "finwise",
		Short: "Personal finance calculators",
		Long: `finwise runs the personal-finance calculator suite: mortgages,
investments, debt payoff, taxes for US/UK/India, inflation, and the
budget planner. Parameters are supplied as a flat JSON object.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default $HOME/.finwise.yaml)")
	root.PersistentFlags().StringVar(&policyFile, "policy-file", "", "YAML file overriding tax tables")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json")

	root.AddCommand(calcCmd(), listCmd(), policiesCmd())
	return root
}

// loadSettings merges the optional settings file with flag overrides.
func loadSettings() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".finwise")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("FINWISE")
	viper.AutomaticEnv()
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "console")

	// A missing settings file is fine unless one was named explicitly.
	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		return fmt.Errorf("failed to read settings %s: %w", cfgFile, err)
	}
	if logLevel != "" {
		viper.Set("log.level", logLevel)
	}
	if logFormat != "" {
		viper.Set("log.format", logFormat)
	}
	if policyFile != "" {
		viper.Set("policy.file", policyFile)
	}
	return nil
}

func buildLogger() (*zap.Logger, error) {
	var level zapcore.Level
	switch viper.GetString("log.level") {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn", "warning":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", viper.GetString("log.level"))
	}

	var cfg zap.Config
	switch viper.GetString("log.format") {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", viper.GetString("log.format"))
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// buildEngine assembles the engine from settings: policy overrides if
// configured, compiled-in defaults otherwise.
func buildEngine(logger *zap.Logger) (*calculation.Engine, error) {
	engine := calculation.NewEngine()
	if file := viper.GetString("policy.file"); file != "" {
		set, err := policy.Load(file)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded policy overrides", zap.String("file", file))
		engine = calculation.NewEngineWithPolicies(set)
	}
	engine.SetLogger(logger.Sugar())

	// Simulation caps may be raised or lowered from settings.
	if v := viper.GetInt("caps.payoff_max_months"); v > 0 {
		engine.Caps.PayoffMaxMonths = v
	}
	if v := viper.GetInt("caps.goal_seek_max_years"); v > 0 {
		engine.Caps.GoalSeekMaxYears = v
	}
	if v := viper.GetInt("caps.schedule_max_rows"); v > 0 {
		engine.Caps.ScheduleMaxRows = v
	}
	if v := viper.GetInt("caps.comparison_max_years"); v > 0 {
		engine.Caps.ComparisonMaxYears = v
	}
	return engine, nil
}

// readParams reads the request parameters: JSON from stdin or a file, or
// YAML when the input file carries a .yaml/.yml extension.
func readParams() (request.Params, error) {
	var reader io.Reader = os.Stdin
	if inputFile != "" && inputFile != "-" {
		f, err := os.Open(inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open input %s: %w", inputFile, err)
		}
		defer f.Close()
		reader = f
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters: %w", err)
	}
	params := request.Params{}
	if len(data) == 0 {
		return params, nil
	}
	ext := strings.ToLower(filepath.Ext(inputFile))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("parameters must be a YAML mapping: %w", err)
		}
		return params, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&params); err != nil {
		return nil, fmt.Errorf("parameters must be a JSON object: %w", err)
	}
	return params, nil
}

func calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc <calculator>",
		Short: "Run one calculator with JSON parameters",
		Example: `  echo '{"principal": 300000, "annual_rate": 6.7, "term_years": 30}' | \
    finwise calc mortgage/repayment`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadSettings(); err != nil {
				return err
			}
			logger, err := buildLogger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			engine, err := buildEngine(logger)
			if err != nil {
				return err
			}
			params, err := readParams()
			if err != nil {
				return err
			}

			result, err := engine.Calculate(args[0], params)
			env := output.Success(result)
			if err != nil {
				env = output.Failure(err)
			}
			rendered, merr := output.Marshal(env)
			if merr != nil {
				return merr
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(rendered))
			if err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "JSON parameter file (default stdin)")
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available calculators",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := calculation.Calculators()
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func policiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "Show the active tax-policy summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadSettings(); err != nil {
				return err
			}
			set := policy.Default()
			if file := viper.GetString("policy.file"); file != "" {
				loaded, err := policy.Load(file)
				if err != nil {
					return err
				}
				set = loaded
			}

			summary := map[string]any{
				"us": map[string]any{
					"standard_deduction": set.US.StandardDeduction,
					"filing_statuses":    keysOf(set.US.Brackets),
					"states":             keysOf(set.US.StateTax),
				},
				"uk": map[string]any{
					"personal_allowance": set.UK.PersonalAllowance,
					"bands":              len(set.UK.Brackets),
				},
				"india": map[string]any{
					"regimes":            []string{"new", "old"},
					"standard_deduction": set.India.NewRegime.StandardDeduction,
				},
				"mortgage_rates":     set.MortgageRates,
				"student_loan_rates": set.StudentLoanRates,
				"cpi_regions":        keysOf(set.CPI),
			}
			rendered, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(rendered))
			return nil
		},
	}
}

func keysOf[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

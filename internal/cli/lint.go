package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdcheck/internal/configloader"
	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/lint/rules"
	goldmarkparser "github.com/yaklabco/mdcheck/pkg/parser/goldmark"
	"github.com/yaklabco/mdcheck/pkg/reporter"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

type lintFlags struct {
	format      string
	flavor      string
	ruleFormat  string
	concurrency int
	jobs        int
	ignore      []string
	enable      []string
	disable     []string
	strict      bool
	noContext   bool
	compact     bool
	ruleSummary bool
	sortBy      string
}

func newLintCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Markdown files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Lint Markdown files against the configured rules.

By default, lints all .md and .markdown files in the current directory
and subdirectories. Paths may be files, directories or glob patterns.
Use "-" (or pipe input with no paths) to lint standard input.

Exit status is 0 when clean, 1 when error-severity violations, rule
failures or unreadable files are found, and 2 on usage or config errors.

Examples:
  mdcheck lint                          # Lint current directory
  mdcheck lint docs/ 'notes/**/*.md'    # Lint a directory and a glob
  cat README.md | mdcheck lint -        # Lint standard input
  mdcheck lint --format json            # Output as JSON for CI
  mdcheck lint --disable MD004,MD046    # Turn rules off for this run
  mdcheck lint --strict                 # Treat warnings as errors
  mdcheck lint --rule-summary           # Add issue counts per rule`

func runLint(cmd *cobra.Command, args []string, flags *lintFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	format := config.OutputFormat(flags.format)
	if !format.IsValid() {
		return usageErrorf("invalid format %q: must be one of text, json", flags.format)
	}
	ruleFormat := config.RuleFormat(flags.ruleFormat)
	if !slices.Contains([]config.RuleFormat{config.RuleFormatName, config.RuleFormatID, config.RuleFormatCombined}, ruleFormat) {
		return usageErrorf("invalid rule format %q: must be one of name, id, combined", flags.ruleFormat)
	}
	sortBy, err := analysis.ParseSortField(flags.sortBy)
	if err != nil {
		return &UsageError{Err: err}
	}
	if flags.jobs < 0 {
		return usageErrorf("invalid jobs %d: must be >= 0", flags.jobs)
	}

	// Only values explicitly provided via CLI flags override configuration.
	cliCfg := &config.Config{
		Concurrency:  flags.concurrency,
		Ignore:       flags.ignore,
		EnableRules:  flags.enable,
		DisableRules: flags.disable,
	}
	if cmd.Flags().Changed("flavor") {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	registry := rules.NewRegistry()
	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     registry,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return &UsageError{Err: fmt.Errorf("load configuration: %w", err)}
	}
	cfg := loadResult.Config

	engine, err := lint.NewEngineFromRegistry(registry, cfg, lint.WithLogger(logger))
	if err != nil {
		return &UsageError{Err: fmt.Errorf("configure rules: %w", err)}
	}

	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldConcurrency, cfg.Concurrency,
		logging.FieldRules, engine.Rules(),
	)

	paths, stdin := resolveInputs(args, cmd.InOrStdin())
	lintRunner := runner.New(goldmarkparser.New(string(cfg.Flavor)), engine, runner.WithLogger(logger))

	logger.Debug("starting lint run",
		logging.FieldPaths, paths,
		logging.FieldWorkingDir, workDir,
	)

	result, err := lintRunner.Run(ctx, runner.Options{
		Paths:        paths,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         flags.jobs,
		Stdin:        stdin,
	})
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("lint run: %w", err)
		}
		return &UsageError{Err: fmt.Errorf("lint run: %w", err)}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		RuleFormat:  ruleFormat,
		RuleSummary: flags.ruleSummary,
		SortBy:      sortBy,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result, flags.strict) != ExitSuccess {
		return ErrLintIssuesFound
	}

	return nil
}

// resolveInputs selects standard input when no paths are given and input
// is piped rather than attached to a terminal.
func resolveInputs(args []string, in io.Reader) ([]string, io.Reader) {
	if len(args) > 0 {
		return args, in
	}
	if isPiped(in) {
		return []string{runner.StdinPath}, in
	}
	return nil, in
}

// isPiped reports whether in is a pipe or redirected file.
func isPiped(in io.Reader) bool {
	file, ok := in.(*os.File)
	if !ok || term.IsTerminal(int(file.Fd())) {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeNamedPipe != 0 || info.Mode().IsRegular()
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "rules run in parallel per file (0 = auto)")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "files linted in parallel (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().BoolVar(&flags.ruleSummary, "rule-summary", false, "print issue counts per rule after the results")
	cmd.Flags().StringVar(&flags.sortBy, "sort", string(analysis.SortByCount),
		"order of the per-rule breakdown: count, alpha, severity")
}

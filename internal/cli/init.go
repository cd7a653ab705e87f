package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/fsutil"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter mdcheck configuration file",
		Long: `Create a .mdcheck.yml configuration file in the current directory that
lists every rule with its default severity and parameters.

Examples:
  mdcheck init                      Create .mdcheck.yml
  mdcheck init --format toml        Create .mdcheck.toml instead
  mdcheck init --output ci.yml      Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .mdcheck.yml or .mdcheck.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	if flags.format != config.TemplateYAML && flags.format != config.TemplateTOML {
		return usageErrorf("invalid format %q: must be yaml or toml", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".mdcheck.yml"
		if flags.format == config.TemplateTOML {
			outputPath = ".mdcheck.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return usageErrorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Format: flags.format,
		Rules:  templateRules(rules.NewRegistry()),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'mdcheck rules' to see all available rules")

	return nil
}

// templateRules describes every registered rule for the config template.
func templateRules(registry *lint.Registry) []config.RuleInfo {
	all := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(all))
	for _, rule := range all {
		desc := rule.Descriptor()
		info := config.RuleInfo{
			ID:          desc.ID,
			Name:        desc.Name,
			Description: desc.Description,
			Enabled:     true,
			Severity:    desc.DefaultSeverity,
			Tags:        desc.Tags,
		}
		for _, param := range rule.Params() {
			if info.Options == nil {
				info.Options = make(map[string]any)
			}
			info.Options[param.Name] = param.Default
		}
		infos = append(infos, info)
	}
	return infos
}

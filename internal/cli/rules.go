package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/lint/rules"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Aliases     []string       `json:"aliases,omitempty"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	Severity    string         `json:"severity"`
	Params      map[string]any `json:"params,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, names, tags,
default severity and description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := rules.NewRegistry()

			switch config.OutputFormat(flags.format) {
			case config.FormatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), registry)
			case config.FormatText:
				outputRulesText(cmd.OutOrStdout(), registry, config.RuleFormat(flags.ruleFormat))
				return nil
			default:
				return usageErrorf("invalid format %q: must be one of text, json", flags.format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func outputRulesText(w io.Writer, registry *lint.Registry, ruleFormat config.RuleFormat) {
	logger := log.NewWithOptions(w, log.Options{})
	logger.SetLevel(log.InfoLevel)

	for _, rule := range registry.Rules() {
		desc := rule.Descriptor()
		logger.Info(config.FormatRuleID(ruleFormat, desc.ID, desc.Name),
			logging.FieldSeverity, desc.DefaultSeverity,
			"tags", strings.Join(desc.Tags, ","),
			logging.FieldDescription, desc.Description,
		)
	}
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, registry *lint.Registry) error {
	all := registry.Rules()
	infos := make([]ruleInfo, 0, len(all))
	for _, rule := range all {
		desc := rule.Descriptor()
		info := ruleInfo{
			ID:          desc.ID,
			Name:        desc.Name,
			Aliases:     registry.Aliases(desc.ID),
			Description: desc.Description,
			Tags:        desc.Tags,
			Severity:    string(desc.DefaultSeverity),
		}
		for _, param := range rule.Params() {
			if info.Params == nil {
				info.Params = make(map[string]any)
			}
			info.Params[param.Name] = param.Default
		}
		infos = append(infos, info)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

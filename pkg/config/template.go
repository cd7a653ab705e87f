package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// RuleInfo contains rule metadata for template generation.
// It is filled in by the caller so this package stays free of lint imports.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string

	// Options maps parameter names to their default values.
	Options map[string]any
}

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" (default) or "toml".
	Format string

	// Rules are written in ID order.
	Rules []RuleInfo
}

// GenerateTemplate creates a configuration file documenting every rule
// with its default settings.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	rules := slices.Clone(opts.Rules)
	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return strings.Compare(a.ID, b.ID)
	})

	if opts.Format == TemplateTOML {
		return generateTOML(rules)
	}
	return generateYAML(rules)
}

func generateYAML(rules []RuleInfo) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Maximum number of rules run in parallel (0 = number of CPUs)
concurrency: 0

# File patterns to ignore (doublestar globs)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

rules:
`)

	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		if rule.Description != "" {
			fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		}
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)

		if len(rule.Options) == 0 {
			continue
		}
		opts, err := yaml.Marshal(map[string]any{"options": rule.Options})
		if err != nil {
			return nil, fmt.Errorf("encode options for %s: %w", rule.ID, err)
		}
		for _, line := range strings.Split(strings.TrimRight(string(opts), "\n"), "\n") {
			buf.WriteString("    " + line + "\n")
		}
	}

	return buf.Bytes(), nil
}

func generateTOML(rules []RuleInfo) ([]byte, error) {
	cfg := &Config{
		Flavor: FlavorCommonMark,
		Rules:  make(map[string]RuleConfig, len(rules)),
	}
	for _, rule := range rules {
		enabled := rule.Enabled
		severity := string(rule.Severity)
		cfg.Rules[rule.ID] = RuleConfig{Enabled: &enabled, Severity: &severity, Options: rule.Options}
	}

	body, err := cfg.ToTOML()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdcheck configuration
# See: https://github.com/yaklabco/mdcheck`
}

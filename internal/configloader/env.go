package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/mdcheck/pkg/config"
)

// envVarPrefix is the prefix for all mdcheck environment variables.
const envVarPrefix = "MDCHECK_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":           {field: "flavor", typ: envTypeString, description: "Markdown flavor: commonmark or gfm"},
	"SEVERITY_DEFAULT": {field: "severity_default", typ: envTypeString, description: "Default severity: error, warning, or info"},
	"CONCURRENCY":      {field: "concurrency", typ: envTypeInt, description: "Rules run in parallel per document (0 = auto)"},
	"ENABLE":           {field: "enable", typ: envTypeSlice, description: "Comma-separated rule IDs or names to enable"},
	"DISABLE":          {field: "disable", typ: envTypeSlice, description: "Comma-separated rule IDs or names to disable"},
	"IGNORE":           {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDCHECK_ (e.g., MDCHECK_DISABLE).
// Enable and disable lists are appended to, not replaced.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value, ok := os.LookupEnv(envVar)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		switch mapping.field {
		case "flavor":
			cfg.Flavor = config.Flavor(strings.TrimSpace(value))
		case "severity_default":
			cfg.SeverityDefault = strings.TrimSpace(value)
		}
	case envTypeInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		cfg.Concurrency = n
	case envTypeSlice:
		parts := parseSliceValue(value)
		switch mapping.field {
		case "enable":
			cfg.EnableRules = append(cfg.EnableRules, parts...)
		case "disable":
			cfg.DisableRules = append(cfg.DisableRules, parts...)
		case "ignore":
			cfg.Ignore = parts
		}
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace and empty elements are dropped.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}

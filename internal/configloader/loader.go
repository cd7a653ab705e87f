// Package configloader provides configuration loading and resolution.
// It implements configuration discovery, hierarchical merging, environment
// variable overrides and validation with file positions.
package configloader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Registry resolves rule keys for validation and normalization.
	// Rule keys are not checked when nil.
	Registry *lint.Registry

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (MDCHECK_*)
//  3. Explicit config file (opts.ExplicitPath), or else
//     project config (.mdcheck.yml upward search)
//  4. User config ($XDG_CONFIG_HOME/mdcheck/config.yaml)
//  5. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	var files []string
	if !opts.IgnoreUserConfig && paths.User != "" {
		files = append(files, paths.User)
	}
	switch {
	case opts.ExplicitPath != "":
		files = append(files, opts.ExplicitPath)
	case !opts.IgnoreProjectConfig && paths.Project != "":
		files = append(files, paths.Project)
	}

	for _, path := range files {
		fileCfg, err := loadValidated(ctx, path, opts.Registry, result)
		if err != nil {
			return nil, err
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, path)
		logger.Debug("loaded config", logging.FieldConfigFile, path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg, opts.Registry)
	if err := validation.Err(); err != nil {
		return nil, err
	}

	result.Config = cfg
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	logger.Debug("config resolved",
		logging.FieldFiles, len(result.LoadedFrom),
		"rules", len(cfg.Rules),
		logging.FieldFlavor, cfg.Flavor,
	)

	return result, nil
}

// loadValidated decodes and validates one config file, normalizing its rule keys.
func loadValidated(ctx context.Context, path string, reg *lint.Registry, result *LoadResult) (*config.Config, error) {
	fc, err := loadConfigFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	validation := validateFile(fc, reg)
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}
	if err := validation.Err(); err != nil {
		return nil, err
	}

	if reg != nil {
		normalizeRuleKeys(fc.cfg, reg, result)
	}
	return fc.cfg, nil
}

// normalizeRuleKeys rewrites rule names and aliases to canonical rule IDs so
// that layers keyed differently still merge. When one file names a rule
// twice, the later key in sorted order wins and a warning is recorded.
func normalizeRuleKeys(cfg *config.Config, reg *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seen := make(map[string]string) // canonical ID -> original key

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		rule, ok := reg.Resolve(key)
		if !ok {
			normalized[key] = cfg.Rules[key]
			continue
		}

		id := rule.Descriptor().ID
		if original, exists := seen[id]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %q",
					original, key, id, key))
		}
		seen[id] = key
		normalized[id] = cfg.Rules[key]
	}

	cfg.Rules = normalized
}

package lint

import (
	"errors"
	"maps"
	"slices"

	"github.com/yaklabco/mdcheck/pkg/config"
)

// NewEngineFromRegistry builds an Engine over every registered rule,
// configured from a project configuration.
//
// Configuration is layered in this order, later layers winning:
// cfg.SeverityDefault, cfg.Rules entries (keys may be IDs, names or aliases,
// applied in sorted key order), then cfg.EnableRules and cfg.DisableRules.
// Unknown rule keys are configuration errors. A positive cfg.Concurrency
// applies unless opts override it.
func NewEngineFromRegistry(reg *Registry, cfg *config.Config, opts ...EngineOption) (*Engine, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	layers := make(map[string][]Configure)
	var errs []error

	if cfg.SeverityDefault != "" {
		sev := config.Severity(cfg.SeverityDefault)
		for _, rule := range reg.Rules() {
			name := rule.Descriptor().Name
			layers[name] = append(layers[name], func(s *RuleSetup) { s.Severity(sev) })
		}
	}

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		rule, ok := reg.Resolve(key)
		if !ok {
			errs = append(errs, &ConfigError{Rule: key, Reason: "unknown rule"})
			continue
		}
		name := rule.Descriptor().Name
		layers[name] = append(layers[name], ConfigureFrom(cfg.Rules[key]))
	}

	toggle := func(keys []string, enabled bool) {
		for _, key := range keys {
			rule, ok := reg.Resolve(key)
			if !ok {
				errs = append(errs, &ConfigError{Rule: key, Reason: "unknown rule"})
				continue
			}
			name := rule.Descriptor().Name
			layers[name] = append(layers[name], func(s *RuleSetup) { s.Enabled(enabled) })
		}
	}
	toggle(cfg.EnableRules, true)
	toggle(cfg.DisableRules, false)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	entries := make(map[string]Entry)
	for _, rule := range reg.Rules() {
		name := rule.Descriptor().Name
		entries[name] = Entry{Rule: rule, Configure: chain(layers[name])}
	}

	if cfg.Concurrency > 0 {
		opts = append([]EngineOption{WithConcurrency(cfg.Concurrency)}, opts...)
	}
	return NewEngine(entries, opts...)
}

// chain applies closures in order.
func chain(fns []Configure) Configure {
	return func(s *RuleSetup) {
		for _, fn := range fns {
			fn(s)
		}
	}
}

package lint

import (
	"errors"
	"maps"
	"slices"
	"strconv"

	"github.com/yaklabco/mdcheck/pkg/config"
)

// Configure is a configuration closure applied to a rule's RuleSetup.
type Configure func(*RuleSetup)

// RuleSetup is the mutable builder behind Configure closures.
// Every setter overwrites the previous value; the last write wins.
type RuleSetup struct {
	enabled  *bool
	severity *config.Severity
	values   map[string]any
}

// Enable turns the rule on.
func (s *RuleSetup) Enable() *RuleSetup {
	return s.Enabled(true)
}

// Disable turns the rule off; it will not run at all.
func (s *RuleSetup) Disable() *RuleSetup {
	return s.Enabled(false)
}

// Enabled sets whether the rule runs.
func (s *RuleSetup) Enabled(enabled bool) *RuleSetup {
	s.enabled = &enabled
	return s
}

// Severity sets the severity of the rule's violations.
func (s *RuleSetup) Severity(sev config.Severity) *RuleSetup {
	s.severity = &sev
	return s
}

// Set assigns a value to a declared parameter.
// Unknown names and type mismatches surface from BuildConfig.
func (s *RuleSetup) Set(name string, value any) *RuleSetup {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[name] = value
	return s
}

// RuleConfig is the immutable, validated configuration of one rule.
type RuleConfig struct {
	enabled  bool
	severity config.Severity
	params   map[string]any
}

// Enabled reports whether the rule runs.
func (c RuleConfig) Enabled() bool { return c.enabled }

// Severity returns the severity attached to the rule's violations.
func (c RuleConfig) Severity() config.Severity { return c.severity }

// Value returns a parameter value and whether it is declared.
func (c RuleConfig) Value(name string) (any, bool) {
	v, ok := c.params[name]
	return v, ok
}

// Int returns an int parameter, or zero if it is not an int.
func (c RuleConfig) Int(name string) int {
	v, _ := c.params[name].(int)
	return v
}

// String returns a string or enum parameter, or "" if it is not a string.
func (c RuleConfig) String(name string) string {
	v, _ := c.params[name].(string)
	return v
}

// Bool returns a bool parameter, or false if it is not a bool.
func (c RuleConfig) Bool(name string) bool {
	v, _ := c.params[name].(bool)
	return v
}

// Params returns a copy of all parameter values, defaults included.
func (c RuleConfig) Params() map[string]any {
	return maps.Clone(c.params)
}

// BuildConfig applies the closures in order over the rule's defaults and
// validates the result. Every problem is returned as a *ConfigError,
// joined when there are several.
func BuildConfig(rule Rule, configure ...Configure) (RuleConfig, error) {
	desc := rule.Descriptor()
	params := rule.Params()

	setup := &RuleSetup{}
	for _, fn := range configure {
		if fn != nil {
			fn(setup)
		}
	}

	cfg := RuleConfig{
		enabled:  true,
		severity: desc.DefaultSeverity,
		params:   make(map[string]any, len(params)),
	}
	for _, p := range params {
		cfg.params[p.Name] = p.Default
	}

	var errs []error
	if setup.enabled != nil {
		cfg.enabled = *setup.enabled
	}
	if setup.severity != nil {
		if !setup.severity.IsValid() {
			errs = append(errs, &ConfigError{Rule: desc.Name, Reason: "invalid severity " + strconv.Quote(string(*setup.severity))})
		}
		cfg.severity = *setup.severity
	}

	for _, name := range slices.Sorted(maps.Keys(setup.values)) {
		p, ok := findParam(params, name)
		if !ok {
			errs = append(errs, &ConfigError{Rule: desc.Name, Param: name, Reason: "unknown parameter"})
			continue
		}
		v, err := p.coerce(setup.values[name])
		if err != nil {
			errs = append(errs, &ConfigError{Rule: desc.Name, Param: name, Reason: err.Error()})
			continue
		}
		cfg.params[name] = v
	}

	if len(errs) > 0 {
		return RuleConfig{}, errors.Join(errs...)
	}
	return cfg, nil
}

// ConfigureFrom turns a project configuration entry into a Configure closure.
func ConfigureFrom(rc config.RuleConfig) Configure {
	return func(s *RuleSetup) {
		if rc.Enabled != nil {
			s.Enabled(*rc.Enabled)
		}
		if rc.Severity != nil {
			// Unknown names keep their raw value so BuildConfig rejects them.
			sev, err := config.ParseSeverity(*rc.Severity)
			if err != nil {
				sev = config.Severity(*rc.Severity)
			}
			s.Severity(sev)
		}
		for _, name := range slices.Sorted(maps.Keys(rc.Options)) {
			s.Set(name, rc.Options[name])
		}
	}
}

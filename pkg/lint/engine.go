package lint

import (
	"errors"
	"maps"
	"runtime"
	"runtime/debug"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/config"
)

// Entry pairs a rule with the closure that configures it.
type Entry struct {
	Rule      Rule
	Configure Configure
}

// Result is the outcome of one engine run.
type Result struct {
	// Violations are ordered by start offset, then rule name.
	Violations []Violation

	// Failures lists the rules that failed, ordered by rule name.
	Failures []RuleFailure
}

// HasFailures reports whether any rule failed.
func (r Result) HasFailures() bool {
	return len(r.Failures) > 0
}

// Count returns the number of violations at or above the given severity.
func (r Result) Count(minimum config.Severity) int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity.Rank() >= minimum.Rank() {
			n++
		}
	}
	return n
}

// Err joins all rule failures, or returns nil.
func (r Result) Err() error {
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithConcurrency bounds how many rules run in parallel.
// 1 runs rules sequentially; values below 1 are ignored.
func WithConcurrency(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithLogger sets the logger used for rule failures and run summaries.
func WithLogger(logger *log.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// configuredRule is an enabled rule with its validated configuration.
type configuredRule struct {
	rule   Rule
	desc   Descriptor
	config RuleConfig
}

// Engine runs a fixed set of configured rules over documents.
// It is immutable after construction and safe for concurrent use.
type Engine struct {
	rules       []configuredRule
	concurrency int
	logger      *log.Logger
}

// NewEngine builds every rule's configuration up front. Each map key must
// equal its rule's descriptor name. Disabled rules are dropped here and
// cost nothing at run time. All configuration problems are returned
// together, before any document is scanned.
func NewEngine(rules map[string]Entry, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		concurrency: runtime.GOMAXPROCS(0),
		logger:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}

	var errs []error
	for _, name := range slices.Sorted(maps.Keys(rules)) {
		entry := rules[name]
		if entry.Rule == nil {
			errs = append(errs, &ConfigError{Rule: name, Reason: "nil rule"})
			continue
		}

		desc := entry.Rule.Descriptor()
		if desc.Name != name {
			errs = append(errs, &ConfigError{Rule: name, Reason: "key does not match rule name " + desc.Name})
			continue
		}

		cfg, err := BuildConfig(entry.Rule, entry.Configure)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !cfg.Enabled() {
			continue
		}

		e.rules = append(e.rules, configuredRule{rule: entry.Rule, desc: desc, config: cfg})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return e, nil
}

// Rules returns the names of the enabled rules in sorted order.
func (e *Engine) Rules() []string {
	names := make([]string, 0, len(e.rules))
	for _, cr := range e.rules {
		names = append(names, cr.desc.Name)
	}
	return names
}

// Config returns the configuration of an enabled rule.
func (e *Engine) Config(name string) (RuleConfig, bool) {
	for _, cr := range e.rules {
		if cr.desc.Name == name {
			return cr.config, true
		}
	}
	return RuleConfig{}, false
}

// outcome is the result of running one rule.
type outcome struct {
	violations []Violation
	failure    *RuleFailure
}

// Run executes every enabled rule against doc and merges the results.
//
// Each rule reports into its own Reporter. A rule that returns an error or
// panics yields a RuleFailure and its violations are discarded; the other
// rules are unaffected. Output is sorted and exact duplicates are removed,
// so repeated runs over the same document are identical.
func (e *Engine) Run(doc *Document) Result {
	start := time.Now()
	outcomes := make([]outcome, len(e.rules))

	var group errgroup.Group
	group.SetLimit(e.concurrency)
	for i := range e.rules {
		group.Go(func() error {
			outcomes[i] = e.runRule(doc, e.rules[i])
			return nil
		})
	}
	_ = group.Wait() //nolint:errcheck // rule goroutines never return errors

	var result Result
	for _, out := range outcomes {
		if out.failure != nil {
			e.logger.Warn("rule failed",
				logging.FieldRule, out.failure.Rule,
				logging.FieldPath, doc.Path(),
				logging.FieldError, out.failure.Err,
			)
			result.Failures = append(result.Failures, *out.failure)
			continue
		}
		result.Violations = append(result.Violations, out.violations...)
	}

	slices.SortFunc(result.Violations, compareViolations)
	result.Violations = slices.CompactFunc(result.Violations, sameViolation)

	e.logger.Debug("lint run complete",
		logging.FieldPath, doc.Path(),
		logging.FieldRules, len(e.rules),
		logging.FieldViolations, len(result.Violations),
		logging.FieldFailures, len(result.Failures),
		logging.FieldDuration, time.Since(start),
	)

	return result
}

// runRule executes one rule with its own Reporter and converts errors and
// panics into a RuleFailure.
func (e *Engine) runRule(doc *Document, cr configuredRule) (out outcome) {
	reporter := NewReporter(cr.desc, cr.config.Severity(), doc.Len())

	defer func() {
		if r := recover(); r != nil {
			out = outcome{failure: &RuleFailure{
				Rule:   cr.desc.Name,
				RuleID: cr.desc.ID,
				Err:    &PanicError{Value: r, Stack: debug.Stack()},
			}}
		}
	}()

	if err := cr.rule.Visit(NewRuleContext(doc, cr.config, reporter)); err != nil {
		return outcome{failure: &RuleFailure{Rule: cr.desc.Name, RuleID: cr.desc.ID, Err: err}}
	}
	return outcome{violations: reporter.violations}
}

package lint

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// ErrRuleFailed is matched by every RuleFailure.
var ErrRuleFailed = errors.New("rule execution failed")

// ConfigError reports a configuration problem found before any document is scanned.
type ConfigError struct {
	// Rule is the rule name or configuration key involved.
	Rule string

	// Param is the parameter name, empty for rule-level problems.
	Param string

	// Reason describes the problem.
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("rule %s: %s", e.Rule, e.Reason)
	}
	return fmt.Sprintf("rule %s: parameter %q: %s", e.Rule, e.Param, e.Reason)
}

// OffsetError reports a node whose range is inconsistent with its source text.
type OffsetError struct {
	Kind   mdast.NodeKind
	Range  mdast.SourceRange
	Length int
	Reason string
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("invalid %s node at %s (source length %d): %s", e.Kind, e.Range, e.Length, e.Reason)
}

// ReporterMisuseError is the panic value raised by Reporter.ReportError when
// called with an invalid range.
type ReporterMisuseError struct {
	Rule       string
	Start, End int
	Length     int
}

func (e *ReporterMisuseError) Error() string {
	if e.Start > e.End {
		return fmt.Sprintf("rule %s reported start %d after end %d", e.Rule, e.Start, e.End)
	}
	return fmt.Sprintf("rule %s reported range [%d,%d) outside source of length %d", e.Rule, e.Start, e.End, e.Length)
}

// PanicError wraps a value recovered from a panicking rule.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// RuleFailure is the diagnostic produced when a rule fails during a run.
// It is distinct from a Violation: it signals a defect in the rule, not in
// the document.
type RuleFailure struct {
	// Rule is the failing rule's name.
	Rule string

	// RuleID is the failing rule's short identifier.
	RuleID string

	// Err is the returned error or a *PanicError.
	Err error
}

// Message returns the fixed diagnostic text for rule failures.
func (f RuleFailure) Message() string {
	return ErrRuleFailed.Error()
}

func (f RuleFailure) Error() string {
	return fmt.Sprintf("%s: %s: %v", f.Rule, ErrRuleFailed, f.Err)
}

// Is reports ErrRuleFailed as a match.
func (f RuleFailure) Is(target error) bool {
	return target == ErrRuleFailed
}

func (f RuleFailure) Unwrap() error {
	return f.Err
}

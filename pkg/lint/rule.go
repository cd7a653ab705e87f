// Package lint provides the rule engine, configuration DSL, and registry for mdcheck.
//
// A run wraps one parsed file in a Document, gives every enabled Rule its own
// Reporter, and merges the reported violations into a single ordered list.
package lint

import "github.com/yaklabco/mdcheck/pkg/config"

// Descriptor is the static identity of a rule.
type Descriptor struct {
	// ID is the short identifier (e.g., "MD042").
	ID string

	// Name is the stable rule name used as the configuration key
	// (e.g., "no-empty-links").
	Name string

	// Description is a one-line summary of what the rule checks.
	Description string

	// Tags categorize the rule for filtering and reporting.
	Tags []string

	// DefaultSeverity is used when configuration does not set one.
	DefaultSeverity config.Severity
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// Descriptor returns the rule's static identity.
	Descriptor() Descriptor

	// Params declares the rule's tunable parameters and their defaults.
	Params() []Param

	// Visit inspects the document and reports violations through ctx.
	//
	// Rules must not mutate the document. A returned error marks the rule
	// as failed for this run; violations are never errors.
	Visit(ctx *RuleContext) error
}

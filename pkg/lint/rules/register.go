package rules

import "github.com/yaklabco/mdcheck/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Headings
	registry.Register(NewHeadingIncrementRule())

	// Lists
	registry.Register(NewUlStyleRule())
	registry.Register(NewUlIndentRule())

	// Links
	registry.Register(NewNoReversedLinksRule())
	registry.Register(NewNoEmptyLinksRule())

	// Code
	registry.Register(NewNoSpaceInCodeRule())
	registry.Register(NewCodeBlockStyleRule())

	registerAliases(registry)
}

// registerAliases maps legacy markdownlint names to rule IDs.
func registerAliases(registry *lint.Registry) {
	registry.RegisterAlias("header-increment", "MD001")
	registry.RegisterAlias("consistent-ul-style", "MD004")
}

// NewRegistry returns a registry holding every built-in rule.
func NewRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	RegisterAll(registry)
	return registry
}

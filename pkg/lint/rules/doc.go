// Package rules provides the built-in lint rules for mdcheck.
//
// # Rules
//
//   - MD001: heading-increment - Header levels should only increment by one level at a time
//   - MD004: ul-style - Unordered list style
//   - MD007: ul-indent - Unordered list indentation
//   - MD011: no-reversed-links - Reversed link syntax
//   - MD038: no-space-in-code - Spaces inside code span elements
//   - MD042: no-empty-links - No empty links
//   - MD046: code-block-style - Code block style
//
// Rule IDs follow the markdownlint MDxxx convention. Configuration keys may
// use either the ID or the name; legacy markdownlint names are registered
// as aliases.
//
// # Registration
//
// Rules are added to a registry via RegisterAll. Each rule embeds
// lint.BaseRule for its descriptor and parameters and implements Visit.
package rules

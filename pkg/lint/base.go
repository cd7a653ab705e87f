package lint

import (
	"slices"

	"github.com/yaklabco/mdcheck/pkg/config"
)

// BaseRule provides the descriptor and parameter plumbing of the Rule
// interface. Embed it in rule implementations and add a Visit method.
//
// Fields are unexported to avoid name collisions with interface methods.
type BaseRule struct {
	id       string
	name     string
	desc     string
	tags     []string
	severity config.Severity
	params   []Param
}

// NewBaseRule creates a BaseRule. Rules default to warning severity.
func NewBaseRule(id, name, desc string, tags []string, params ...Param) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		tags:     tags,
		severity: config.SeverityWarning,
		params:   params,
	}
}

// Descriptor returns the rule's static identity.
func (r *BaseRule) Descriptor() Descriptor {
	return Descriptor{
		ID:              r.id,
		Name:            r.name,
		Description:     r.desc,
		Tags:            slices.Clone(r.tags),
		DefaultSeverity: r.severity,
	}
}

// Params returns the declared parameters.
func (r *BaseRule) Params() []Param {
	return slices.Clone(r.params)
}

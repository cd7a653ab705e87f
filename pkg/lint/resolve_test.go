package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
)

func testRegistry() *lint.Registry {
	reg := lint.NewRegistry()
	reg.Register(newFuncRule("MD001", "heading-increment", nil))
	reg.Register(newFuncRule("MD007", "ul-indent", nil, lint.IntParam("indent", 2, "indent")))
	reg.Register(newFuncRule("MD046", "code-block-style", nil,
		lint.EnumParam("style", "fenced", []string{"fenced", "indented", "consistent"}, "style")))
	reg.RegisterAlias("header-increment", "MD001")
	return reg
}

func TestNewEngineFromRegistry_Defaults(t *testing.T) {
	t.Parallel()

	engine, err := lint.NewEngineFromRegistry(testRegistry(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"code-block-style", "heading-increment", "ul-indent"}, engine.Rules())

	cfg, ok := engine.Config("ul-indent")
	require.True(t, ok)
	assert.Equal(t, 2, cfg.Int("indent"))
	assert.Equal(t, config.SeverityWarning, cfg.Severity())
}

func TestNewEngineFromRegistry_Layers(t *testing.T) {
	t.Parallel()

	off := false
	errSev := "error"

	cfg := config.NewConfig()
	cfg.SeverityDefault = "info"
	cfg.Rules = map[string]config.RuleConfig{
		"MD007":            {Options: map[string]any{"indent": 4}},
		"header-increment": {Enabled: &off},
		"code-block-style": {Severity: &errSev, Options: map[string]any{"style": "consistent"}},
	}
	cfg.EnableRules = []string{"heading-increment"}
	cfg.DisableRules = []string{"ul-indent"}

	engine, err := lint.NewEngineFromRegistry(testRegistry(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"code-block-style", "heading-increment"}, engine.Rules())

	heading, ok := engine.Config("heading-increment")
	require.True(t, ok)
	assert.Equal(t, config.SeverityInfo, heading.Severity())

	code, ok := engine.Config("code-block-style")
	require.True(t, ok)
	assert.Equal(t, config.SeverityError, code.Severity())
	assert.Equal(t, "consistent", code.String("style"))
}

func TestNewEngineFromRegistry_UnknownRules(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules = map[string]config.RuleConfig{"MD999": {}}
	cfg.DisableRules = []string{"no-such-rule"}

	_, err := lint.NewEngineFromRegistry(testRegistry(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule MD999: unknown rule")
	assert.Contains(t, err.Error(), "rule no-such-rule: unknown rule")
}

func TestNewEngineFromRegistry_InvalidOptions(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules = map[string]config.RuleConfig{
		"ul-indent": {Options: map[string]any{"indent": "wide"}},
	}

	_, err := lint.NewEngineFromRegistry(testRegistry(), cfg)
	var cfgErr *lint.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "ul-indent", cfgErr.Rule)
	assert.Equal(t, "indent", cfgErr.Param)
}

func TestNewEngineFromRegistry_Concurrency(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "# A\n\ntext\n")

	cfg := config.NewConfig()
	cfg.Concurrency = 1
	engine, err := lint.NewEngineFromRegistry(testRegistry(), cfg, lint.WithConcurrency(4))
	require.NoError(t, err)

	result := engine.Run(doc)
	assert.Empty(t, result.Violations)
	assert.False(t, result.HasFailures())
}

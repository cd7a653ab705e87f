package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
)

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	var ids, names []string
	for _, rule := range registry.Rules() {
		desc := rule.Descriptor()
		ids = append(ids, desc.ID)
		names = append(names, desc.Name)

		assert.NotEmpty(t, desc.Description, desc.ID)
		assert.NotEmpty(t, desc.Tags, desc.ID)
		assert.Equal(t, config.SeverityWarning, desc.DefaultSeverity, desc.ID)

		_, err := lint.BuildConfig(rule)
		require.NoError(t, err, "defaults for %s", desc.ID)
	}

	assert.Equal(t, []string{"MD001", "MD004", "MD007", "MD011", "MD038", "MD042", "MD046"}, ids)
	assert.Equal(t, []string{
		"heading-increment", "ul-style", "ul-indent", "no-reversed-links",
		"no-space-in-code", "no-empty-links", "code-block-style",
	}, names)
}

func TestRegisterAll_Aliases(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	rule, ok := registry.Resolve("header-increment")
	require.True(t, ok)
	assert.Equal(t, "MD001", rule.Descriptor().ID)

	rule, ok = registry.Resolve("consistent-ul-style")
	require.True(t, ok)
	assert.Equal(t, "MD004", rule.Descriptor().ID)

	assert.Equal(t, []string{"header-increment"}, registry.Aliases("MD001"))
}

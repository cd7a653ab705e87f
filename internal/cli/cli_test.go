package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/internal/cli"
	"github.com/yaklabco/mdcheck/internal/configloader"
	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/lint/rules"
	"github.com/yaklabco/mdcheck/pkg/reporter"
)

const skippedHeading = "# Title\n\n### Skipped\n"

var testInfo = cli.BuildInfo{Version: "test-version", Commit: "test-commit", Date: "test-date"}

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

// workspace writes files into a temp dir along with an empty config file,
// returning the dir and the config path.
func workspace(t *testing.T, files map[string]string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfgPath := filepath.Join(dir, ".mdcheck.yml")
	if _, ok := files[".mdcheck.yml"]; !ok {
		require.NoError(t, os.WriteFile(cfgPath, []byte("flavor: commonmark\n"), 0o644))
	}
	return dir, cfgPath
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	assert.Equal(t, "mdcheck", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"lint", "rules", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)
	for _, flag := range []string{"format", "flavor", "concurrency", "jobs", "enable", "disable", "rule-format", "strict"} {
		assert.NotNil(t, lintCmd.Flags().Lookup(flag), flag)
	}
}

func TestLint_CleanRun(t *testing.T) {
	t.Parallel()

	dir, cfg := workspace(t, map[string]string{"clean.md": "# Title\n\n## Section\n"})

	out, err := execute(t, "", "lint", "--color", "never", "--config", cfg, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found (1 file checked)")
}

func TestLint_WarningsExitZero(t *testing.T) {
	t.Parallel()

	dir, cfg := workspace(t, map[string]string{"doc.md": skippedHeading})

	out, err := execute(t, "", "lint", "--color", "never", "--config", cfg, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "doc.md:3:1")
	assert.Contains(t, out, "(heading-increment)")
	assert.Contains(t, out, "1 issue (1 warning) in 1 file")
}

func TestLint_Strict(t *testing.T) {
	t.Parallel()

	dir, cfg := workspace(t, map[string]string{"doc.md": skippedHeading})

	_, err := execute(t, "", "lint", "--color", "never", "--strict", "--config", cfg, dir)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCode(err))
}

func TestLint_ErrorSeverityFromConfig(t *testing.T) {
	t.Parallel()

	dir, cfg := workspace(t, map[string]string{
		"doc.md":       skippedHeading,
		".mdcheck.yml": "rules:\n  heading-increment:\n    severity: error\n",
	})

	out, err := execute(t, "", "lint", "--color", "never", "--config", cfg, dir)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Contains(t, out, "1 issue (1 error) in 1 file")
}

func TestLint_DisableFlag(t *testing.T) {
	t.Parallel()

	dir, cfg := workspace(t, map[string]string{"doc.md": skippedHeading})

	out, err := execute(t, "", "lint", "--color", "never", "--disable", "MD001", "--strict", "--config", cfg, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")
}

func TestLint_RuleFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ruleFormat string
		want       string
		notWant    string
	}{
		{ruleFormat: "name", want: "(heading-increment)", notWant: "MD001"},
		{ruleFormat: "id", want: "(MD001)", notWant: "heading-increment"},
		{ruleFormat: "combined", want: "(MD001/heading-increment)"},
	}

	for _, tt := range tests {
		t.Run(tt.ruleFormat, func(t *testing.T) {
			t.Parallel()

			dir, cfg := workspace(t, map[string]string{"doc.md": skippedHeading})

			out, err := execute(t, "", "lint", "--color", "never", "--rule-format", tt.ruleFormat, "--config", cfg, dir)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
			if tt.notWant != "" {
				assert.NotContains(t, out, tt.notWant)
			}
		})
	}
}

func TestLint_JSON(t *testing.T) {
	t.Parallel()

	dir, cfg := workspace(t, map[string]string{
		"a.md": skippedHeading,
		"b.md": "[empty]()\n",
	})

	out, err := execute(t, "", "lint", "--format", "json", "--config", cfg, dir)
	require.NoError(t, err)

	var parsed reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed.Files, 2)
	assert.Equal(t, 2, parsed.Summary.TotalIssues)

	first := parsed.Files[0]
	assert.True(t, strings.HasSuffix(first.Path, "a.md"))
	require.Len(t, first.Violations, 1)
	assert.Equal(t, "MD001", first.Violations[0].RuleID)
	assert.Equal(t, 9, first.Violations[0].StartOffset)
	assert.Equal(t, 3, first.Violations[0].StartLine)

	second := parsed.Files[1]
	require.Len(t, second.Violations, 1)
	assert.Equal(t, "no-empty-links", second.Violations[0].RuleName)

	require.Len(t, parsed.Summary.ByRule, 2)
	assert.Equal(t, "MD001", parsed.Summary.ByRule[0].RuleID)
	assert.Equal(t, "MD042", parsed.Summary.ByRule[1].RuleID)
}

func TestLint_RuleSummary(t *testing.T) {
	t.Parallel()

	dir, cfg := workspace(t, map[string]string{
		"a.md": skippedHeading,
		"b.md": skippedHeading + "\n[empty]()\n",
	})

	out, err := execute(t, "", "lint", "--color", "never", "--rule-format", "id",
		"--rule-summary", "--sort", "count", "--config", cfg, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Issues by rule")
	assert.Contains(t, out, "MD001  2 issues in 2 files")
	assert.Contains(t, out, "MD042  1 issue in 1 file")
	assert.Less(t, strings.Index(out, "MD001  2 issues"), strings.Index(out, "MD042  1 issue"))
}

func TestLint_Stdin(t *testing.T) {
	t.Parallel()

	_, cfg := workspace(t, nil)

	out, err := execute(t, "Use `code ` here.\n", "lint", "--color", "never", "--rule-format", "id", "--config", cfg, "-")
	require.NoError(t, err)
	assert.Contains(t, out, "<stdin>:1:5")
	assert.Contains(t, out, "(MD038)")
}

func TestLint_UsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		config  string
		wantMsg string
	}{
		{name: "unknown format", args: []string{"--format", "xml"}, wantMsg: `invalid format "xml"`},
		{name: "unknown rule format", args: []string{"--rule-format", "short"}, wantMsg: `invalid rule format "short"`},
		{name: "unknown sort", args: []string{"--sort", "size"}, wantMsg: `invalid sort field "size"`},
		{name: "unknown flag", args: []string{"--frobnicate"}, wantMsg: "unknown flag"},
		{name: "unknown disabled rule", args: []string{"--disable", "MD999"}, wantMsg: `unknown rule "MD999"`},
		{name: "invalid flavor", args: []string{"--flavor", "pandoc"}, wantMsg: `invalid flavor "pandoc"`},
		{name: "negative concurrency", args: []string{"--concurrency", "-2"}, wantMsg: "concurrency must be >= 0"},
		{name: "bad config severity", config: "severity_default: loud\n", wantMsg: `invalid severity "loud"`},
		{name: "bad rule option", config: "rules:\n  ul-indent:\n    options:\n      indent: wide\n", wantMsg: "ul-indent"},
		{name: "missing path", args: []string{"does-not-exist.md"}, wantMsg: "does-not-exist.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files := map[string]string{"doc.md": "# Title\n"}
			if tt.config != "" {
				files[".mdcheck.yml"] = tt.config
			}
			dir, cfg := workspace(t, files)

			args := append([]string{"lint", "--config", cfg}, tt.args...)
			if tt.name != "missing path" {
				args = append(args, dir)
			} else {
				args[len(args)-1] = filepath.Join(dir, tt.args[0])
			}

			_, err := execute(t, "", args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

			var usageErr *cli.UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestRules_Text(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "rules")
	require.NoError(t, err)

	for _, id := range []string{"MD001/heading-increment", "MD004/ul-style", "MD007/ul-indent",
		"MD011/no-reversed-links", "MD038/no-space-in-code", "MD042/no-empty-links", "MD046/code-block-style"} {
		assert.Contains(t, out, id)
	}
	assert.Less(t, strings.Index(out, "MD001"), strings.Index(out, "MD046"))
}

func TestRules_JSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "rules", "--format", "json")
	require.NoError(t, err)

	var infos []struct {
		ID       string         `json:"id"`
		Name     string         `json:"name"`
		Aliases  []string       `json:"aliases"`
		Severity string         `json:"severity"`
		Params   map[string]any `json:"params"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 7)

	assert.Equal(t, "MD001", infos[0].ID)
	assert.Equal(t, []string{"header-increment"}, infos[0].Aliases)
	assert.Equal(t, "warning", infos[0].Severity)

	for _, info := range infos {
		if info.ID == "MD007" {
			assert.InDelta(t, 2, info.Params["indent"], 0)
		}
	}
}

func TestInit(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "generated."+format)
			if format == "yaml" {
				path = filepath.Join(dir, "generated.yml")
			}

			_, err := execute(t, "", "init", "--format", format, "--output", path)
			require.NoError(t, err)

			// The generated file loads cleanly and names every rule.
			result, err := configloader.Load(logging.WithLogger(context.Background(), logging.Discard()),
				configloader.LoadOptions{
					WorkingDir:       dir,
					ExplicitPath:     path,
					IgnoreUserConfig: true,
					IgnoreEnv:        true,
					Registry:         rules.NewRegistry(),
				})
			require.NoError(t, err)
			assert.Len(t, result.Config.Rules, 7)
			assert.Empty(t, result.Warnings)

			_, err = execute(t, "", "init", "--format", format, "--output", path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "already exists")
			assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

			_, err = execute(t, "", "init", "--format", format, "--output", path, "--force")
			require.NoError(t, err)
		})
	}
}

func TestInit_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "init", "--format", "json", "--output", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "test-version")
	assert.Contains(t, out, "test-commit")
}

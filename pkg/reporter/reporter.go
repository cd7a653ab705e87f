// Package reporter renders lint results for people and for tools.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdcheck/internal/ui/pretty"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// Reporter formats and writes lint results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = config.FormatText
	}
	if opts.RuleFormat == "" {
		opts.RuleFormat = config.RuleFormatName
	}

	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// diagnostics resolves a file's violations to line and column positions.
func diagnostics(file runner.FileOutcome, path string) []pretty.Diagnostic {
	out := make([]pretty.Diagnostic, 0, len(file.Violations))
	for _, v := range file.Violations {
		start := file.Snapshot.Position(v.Start)
		end := file.Snapshot.Position(v.End)
		out = append(out, pretty.Diagnostic{
			Path:      path,
			RuleID:    v.RuleID,
			RuleName:  v.Rule,
			Severity:  v.Severity,
			Message:   v.Message,
			Line:      start.Line,
			Column:    start.Column,
			EndLine:   end.Line,
			EndColumn: end.Column,
		})
	}
	return out
}

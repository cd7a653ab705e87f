package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdcheck/internal/ui/pretty"
	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// TextReporter formats results as styled terminal output, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.RuleSummary {
		report := analysis.Analyze(result, r.opts.analysisOptions())
		fmt.Fprint(r.bw, r.styles.FormatRuleBreakdown(report.ByRule, r.opts.RuleFormat))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := analysis.RelativePath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if len(file.Violations) == 0 && len(file.Failures) == 0 {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Violations)))

	for _, failure := range file.Failures {
		fmt.Fprint(r.bw, r.styles.FormatFailure(path, failure.RuleID, failure.Rule, failure.Err, r.opts.RuleFormat))
	}

	for _, diag := range diagnostics(file, path) {
		var sourceLine string
		if r.opts.ShowContext {
			sourceLine = string(file.Snapshot.LineContent(diag.Line))
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag, sourceLine, r.opts.RuleFormat, r.width))
	}

	// Blank line between files
	fmt.Fprintln(r.bw)

	return len(file.Violations)
}

package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string          `json:"path"`
	Violations []JSONViolation `json:"violations"`
	Failures   []JSONFailure   `json:"failures,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// JSONViolation represents a single violation. Offsets are byte offsets
// into the file; lines and columns are 1-based.
type JSONViolation struct {
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
}

// JSONFailure represents a rule that failed on a file.
type JSONFailure struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Message  string `json:"message"`
	Error    string `json:"error"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int                     `json:"filesChecked"`
	FilesWithIssues int                     `json:"filesWithIssues"`
	FilesErrored    int                     `json:"filesErrored"`
	TotalIssues     int                     `json:"totalIssues"`
	RuleFailures    int                     `json:"ruleFailures"`
	BySeverity      map[string]int          `json:"bySeverity"`
	ByRule          []analysis.RuleAnalysis `json:"byRule"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	output.Summary.ByRule = analysis.Analyze(result, r.opts.analysisOptions()).ByRule

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		path := analysis.RelativePath(file.Path, r.opts.WorkingDir)
		fileResult := JSONFileResult{
			Path:       path,
			Violations: make([]JSONViolation, 0, len(file.Violations)),
		}
		output.Summary.FilesChecked++

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
			output.Files = append(output.Files, fileResult)
			continue
		}

		for i, diag := range diagnostics(file, path) {
			v := file.Violations[i]
			fileResult.Violations = append(fileResult.Violations, JSONViolation{
				RuleID:      diag.RuleID,
				RuleName:    diag.RuleName,
				Severity:    string(diag.Severity),
				Message:     diag.Message,
				StartOffset: v.Start,
				EndOffset:   v.End,
				StartLine:   diag.Line,
				StartColumn: diag.Column,
				EndLine:     diag.EndLine,
				EndColumn:   diag.EndColumn,
			})

			severity := string(diag.Severity)
			if severity == "" {
				severity = string(config.SeverityWarning)
			}
			output.Summary.BySeverity[severity]++
		}

		for _, failure := range file.Failures {
			fileResult.Failures = append(fileResult.Failures, JSONFailure{
				RuleID:   failure.RuleID,
				RuleName: failure.Rule,
				Message:  failure.Message(),
				Error:    failure.Err.Error(),
			})
		}

		output.Summary.TotalIssues += len(fileResult.Violations)
		output.Summary.RuleFailures += len(fileResult.Failures)
		if len(fileResult.Violations) > 0 {
			output.Summary.FilesWithIssues++
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}

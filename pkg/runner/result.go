package runner

import (
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/mdast"
)

// FileOutcome is the lint result for one file.
type FileOutcome struct {
	// Path is the file path that was processed, or StdinName.
	Path string

	// Snapshot is the parsed file, used by reporters for source excerpts.
	// Nil when Error is set.
	Snapshot *mdast.FileSnapshot

	// Violations are ordered by start offset, then rule name.
	Violations []lint.Violation

	// Failures lists rules that failed on this file.
	Failures []lint.RuleFailure

	// Error is set if the file could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of inputs found, stdin included.
	FilesDiscovered int

	// FilesProcessed is the number of files linted successfully.
	FilesProcessed int

	// FilesErrored is the number of files that could not be read or parsed.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one violation.
	FilesWithIssues int

	// ViolationsTotal is the total number of violations across all files.
	ViolationsTotal int

	// ViolationsBySeverity maps severity levels to counts.
	ViolationsBySeverity map[config.Severity]int

	// RuleFailures is the number of rule failures across all files.
	RuleFailures int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each input, ordered by path with
	// standard input first.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether the run found error-severity violations,
// rule failures or unreadable files.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.ViolationsBySeverity[config.SeverityError] > 0 ||
		r.Stats.RuleFailures > 0 ||
		r.Stats.FilesErrored > 0
}

// HasIssues reports whether any violations were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.ViolationsTotal > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		ViolationsBySeverity: make(map[config.Severity]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.RuleFailures += len(outcome.Failures)
	r.Stats.ViolationsTotal += len(outcome.Violations)
	if len(outcome.Violations) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, v := range outcome.Violations {
		r.Stats.ViolationsBySeverity[v.Severity]++
	}
}

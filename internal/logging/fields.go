package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfigFile = "config_file"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldFlavor      = "flavor"
	FieldConcurrency = "concurrency"
	FieldFormat      = "format"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldViolations      = "violations"
	FieldFailures        = "failures"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldRule        = "rule"
	FieldRuleID      = "rule_id"
	FieldRules       = "rules"
	FieldSeverity    = "severity"
	FieldDescription = "description"
)

package analysis

// Report contains aggregated views of a run, computed once by Analyze and
// shared by every output format.
type Report struct {
	// ByFile lists files with at least one violation or rule failure.
	ByFile []FileAnalysis `json:"byFile"`

	// ByRule lists every rule that reported or failed.
	ByRule []RuleAnalysis `json:"byRule"`

	// Totals contains aggregate counts.
	Totals Totals `json:"totals"`
}

// Totals contains aggregate counts for the run.
type Totals struct {
	Files           int `json:"files"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	Issues          int `json:"issues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	RuleFailures    int `json:"ruleFailures"`
}

// HasIssues returns true if there are any violations.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are error-severity violations.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// Counts holds per-severity violation counts.
type Counts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// FileAnalysis aggregates one file.
type FileAnalysis struct {
	Path string `json:"path"`
	Counts
	Failures int `json:"failures,omitempty"`

	// Rules lists the IDs of rules that reported in this file, sorted.
	Rules []string `json:"rules,omitempty"`
}

// RuleAnalysis aggregates one rule across all files.
type RuleAnalysis struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Counts
	Failures int `json:"failures,omitempty"`

	// Files lists the paths the rule reported in, sorted.
	Files []string `json:"files,omitempty"`
}

// Package analysis aggregates a lint run by rule and by file.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/runner"
)

// RelativePath returns path relative to workDir when path lies beneath it,
// and path unchanged otherwise.
func RelativePath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// add records one violation of the given severity. An empty severity
// counts as a warning.
func (c *Counts) add(sev config.Severity) {
	c.Issues++
	switch sev {
	case config.SeverityError:
		c.Errors++
	case config.SeverityInfo:
		c.Infos++
	default:
		c.Warnings++
	}
}

// aggregator holds intermediate state for a single Analyze pass.
type aggregator struct {
	files map[string]*FileAnalysis
	rules map[string]*RuleAnalysis
	seen  map[[2]string]bool
}

func (a *aggregator) file(path string) *FileAnalysis {
	fa, ok := a.files[path]
	if !ok {
		fa = &FileAnalysis{Path: path}
		a.files[path] = fa
	}
	return fa
}

func (a *aggregator) rule(id, name string) *RuleAnalysis {
	ra, ok := a.rules[id]
	if !ok {
		ra = &RuleAnalysis{RuleID: id, RuleName: name}
		a.rules[id] = ra
	}
	return ra
}

// link associates a rule with a file once.
func (a *aggregator) link(fa *FileAnalysis, ra *RuleAnalysis) {
	key := [2]string{fa.Path, ra.RuleID}
	if a.seen[key] {
		return
	}
	a.seen[key] = true
	fa.Rules = append(fa.Rules, ra.RuleID)
	ra.Files = append(ra.Files, fa.Path)
}

// Analyze computes per-file and per-rule aggregates in a single pass over
// result. A nil result yields an empty report.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		ByFile: []FileAnalysis{},
		ByRule: []RuleAnalysis{},
	}
	if result == nil {
		return report
	}

	agg := &aggregator{
		files: make(map[string]*FileAnalysis),
		rules: make(map[string]*RuleAnalysis),
		seen:  make(map[[2]string]bool),
	}

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Error != nil {
			report.Totals.FilesErrored++
			continue
		}
		if len(file.Violations) == 0 && len(file.Failures) == 0 {
			continue
		}
		if len(file.Violations) > 0 {
			report.Totals.FilesWithIssues++
		}

		fa := agg.file(RelativePath(file.Path, opts.WorkingDir))

		for _, v := range file.Violations {
			ra := agg.rule(v.RuleID, v.Rule)
			fa.add(v.Severity)
			ra.add(v.Severity)
			agg.link(fa, ra)

			report.Totals.Issues++
			switch v.Severity {
			case config.SeverityError:
				report.Totals.Errors++
			case config.SeverityInfo:
				report.Totals.Infos++
			default:
				report.Totals.Warnings++
			}
		}

		for _, f := range file.Failures {
			ra := agg.rule(f.RuleID, f.Rule)
			fa.Failures++
			ra.Failures++
			agg.link(fa, ra)
			report.Totals.RuleFailures++
		}
	}

	for _, fa := range agg.files {
		slices.Sort(fa.Rules)
		report.ByFile = append(report.ByFile, *fa)
	}
	for _, ra := range agg.rules {
		slices.Sort(ra.Files)
		report.ByRule = append(report.ByRule, *ra)
	}

	sortBy(report.ByFile, opts, func(f FileAnalysis) (Counts, int, string) { return f.Counts, f.Failures, f.Path })
	sortBy(report.ByRule, opts, func(r RuleAnalysis) (Counts, int, string) { return r.Counts, r.Failures, r.RuleID })

	return report
}

// sortBy orders entries by opts.SortBy. Ties always fall back to ascending
// key order so output is deterministic.
func sortBy[T any](entries []T, opts Options, fields func(T) (Counts, int, string)) {
	field := opts.SortBy
	if !field.IsValid() {
		field = SortByCount
	}

	slices.SortFunc(entries, func(a, b T) int {
		ca, fa, ka := fields(a)
		cb, fb, kb := fields(b)

		var c int
		switch field {
		case SortByAlpha:
			c = strings.Compare(ka, kb)
			if opts.SortDesc {
				c = -c
			}
			return c
		case SortBySeverity:
			c = cmp.Or(
				cmp.Compare(ca.Errors, cb.Errors),
				cmp.Compare(ca.Warnings, cb.Warnings),
				cmp.Compare(ca.Infos, cb.Infos),
			)
		default:
			c = cmp.Or(cmp.Compare(ca.Issues, cb.Issues), cmp.Compare(fa, fb))
		}
		if opts.SortDesc {
			c = -c
		}
		return cmp.Or(c, strings.Compare(ka, kb))
	})
}

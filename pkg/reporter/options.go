package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mdcheck/pkg/analysis"
	"github.com/yaklabco/mdcheck/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext includes a source excerpt under each violation.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses minified JSON.
	Compact bool

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat config.RuleFormat

	// RuleSummary appends a per-rule breakdown to text output.
	RuleSummary bool

	// SortBy orders the per-rule breakdown in both formats.
	SortBy analysis.SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      config.FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		RuleFormat:  config.RuleFormatName,
		SortBy:      analysis.SortByCount,
	}
}

func (o Options) analysisOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	if o.SortBy != "" {
		opts.SortBy = o.SortBy
	}
	opts.SortDesc = opts.SortBy != analysis.SortByAlpha
	opts.WorkingDir = o.WorkingDir
	return opts
}

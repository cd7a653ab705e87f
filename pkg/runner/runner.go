package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/fsutil"
	"github.com/yaklabco/mdcheck/pkg/lint"
)

// Runner lints many files with one parser and one configured engine.
type Runner struct {
	parser lint.Parser
	engine *lint.Engine
	logger *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for per-file progress.
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Runner.
func New(parser lint.Parser, engine *lint.Engine, opts ...Option) *Runner {
	r := &Runner{
		parser: parser,
		engine: engine,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run discovers files under opts.Paths and lints them concurrently.
//
// Outcomes are ordered deterministically regardless of Jobs: standard input
// first, then files sorted by path. A file that cannot be read or parsed
// yields an outcome with Error set; it does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	readStdin := slices.Contains(opts.Paths, StdinPath)

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)+1),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if readStdin {
		result.Stats.FilesDiscovered++
		result.accumulate(r.lintStdin(ctx, opts.Stdin))
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	outcomes := make([]FileOutcome, len(files))
	var group errgroup.Group
	group.SetLimit(jobs)
	for i, path := range files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.LintFile(ctx, path)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	r.logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldViolations, result.Stats.ViolationsTotal,
		logging.FieldDuration, time.Since(start),
	)

	return result, nil
}

// LintFile reads and lints one file.
func (r *Runner) LintFile(ctx context.Context, path string) FileOutcome {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}
	return r.LintSource(ctx, path, content)
}

// LintSource parses and lints content attributed to path.
func (r *Runner) LintSource(ctx context.Context, path string, content []byte) FileOutcome {
	r.logger.Debug("linting file", logging.FieldPath, path)

	snapshot, err := r.parser.Parse(ctx, path, content)
	if err != nil {
		return FileOutcome{Path: path, Error: fmt.Errorf("parse: %w", err)}
	}

	doc, err := lint.NewDocument(snapshot)
	if err != nil {
		return FileOutcome{Path: path, Error: fmt.Errorf("build document: %w", err)}
	}

	res := r.engine.Run(doc)
	return FileOutcome{
		Path:       path,
		Snapshot:   snapshot,
		Violations: res.Violations,
		Failures:   res.Failures,
	}
}

func (r *Runner) lintStdin(ctx context.Context, stdin io.Reader) FileOutcome {
	if stdin == nil {
		return FileOutcome{Path: StdinName, Error: errors.New("read stdin: no input stream")}
	}
	content, err := io.ReadAll(stdin)
	if err != nil {
		return FileOutcome{Path: StdinName, Error: fmt.Errorf("read stdin: %w", err)}
	}
	return r.LintSource(ctx, StdinName, content)
}

// Package runner provides multi-file linting orchestration.
package runner

import "io"

// StdinPath is the path argument that selects standard input.
const StdinPath = "-"

// StdinName is the display path used for content read from standard input.
const StdinName = "<stdin>"

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified files, directories or glob patterns to
	// process. StdinPath reads Markdown from Stdin. If empty, defaults to
	// the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to [".md", ".markdown"] via DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are doublestar patterns, relative to WorkingDir, used to
	// skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of files linted concurrently.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Stdin is read when Paths contains StdinPath.
	Stdin io.Reader
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

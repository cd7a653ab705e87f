package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover finds Markdown files matching opts under the given working directory.
// Each path may be a file, a directory (walked recursively) or a doublestar
// glob pattern. StdinPath entries are ignored. It returns a deterministically
// sorted, deduplicated list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if inputPath == StdinPath {
			continue
		}
		if err := d.add(inputPath); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type discoverer struct {
	ctx        context.Context
	workDir    string
	extensions []string
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (d *discoverer) absolute(p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(d.workDir, p)
	}
	return filepath.Clean(p)
}

// add resolves one path argument.
func (d *discoverer) add(inputPath string) error {
	if isGlob(inputPath) {
		return d.addGlob(inputPath)
	}

	absPath := d.absolute(inputPath)
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", inputPath, err)
	}

	if info.IsDir() {
		return d.walk(absPath)
	}

	// Explicitly named files are linted regardless of extension.
	if !d.excluded(absPath) {
		d.keep(absPath)
	}
	return nil
}

// addGlob expands a doublestar pattern relative to the working directory.
func (d *discoverer) addGlob(pattern string) error {
	if !doublestar.ValidatePathPattern(pattern) {
		return fmt.Errorf("invalid glob pattern %q", pattern)
	}

	matches, err := doublestar.FilepathGlob(d.absolute(pattern), doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("expand %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("pattern %s matched no files", pattern)
	}

	for _, match := range matches {
		if d.matchesFile(match) {
			d.keep(match)
		}
	}
	return nil
}

// walk recursively walks a directory and keeps matching Markdown files.
func (d *discoverer) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && d.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // inaccessible symlink targets are skipped
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not descend into symlinks itself.
				return d.walk(realPath)
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if d.matchesFile(path) {
			d.keep(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (d *discoverer) keep(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

// matchesFile checks the extension and exclude patterns.
func (d *discoverer) matchesFile(path string) bool {
	return hasMatchingExtension(path, d.extensions) && !d.excluded(path)
}

// excluded reports whether path matches any exclude pattern. Patterns are
// matched against the slash-separated path relative to the working
// directory; patterns without a slash also match the base name.
func (d *discoverer) excluded(path string) bool {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range d.opts.ExcludeGlobs {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		if strings.HasSuffix(pattern, "/**") && rel == strings.TrimSuffix(pattern, "/**") {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if matched, err := doublestar.Match(pattern, filepath.Base(path)); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// isGlob reports whether a path argument contains glob metacharacters.
func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}

	w := &walker{
		ctx:            ctx,
		workDir:        workDir,
		extensions:     opts.effectiveExtensions(),
		include:        include,
		exclude:        exclude,
		followSymlinks: opts.FollowSymlinks,
		seen:           make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := w.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}
		// Explicit files bypass the hidden-file rule but not the filters.
		w.consider(absPath)
	}

	slices.Sort(w.files)
	return w.files, nil
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

type walker struct {
	ctx            context.Context
	workDir        string
	extensions     []string
	include        globSet
	exclude        globSet
	followSymlinks bool

	seen  map[string]struct{}
	files []string
}

// walk recursively walks a directory and records matching Markdown files.
func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
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
			if path != root && w.exclude.matchDir(w.rel(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.symlink(path)
		}

		w.consider(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a symlink met during the walk. File links are treated as
// files; directory links are walked through their target when enabled.
func (w *walker) symlink(path string) error {
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // Broken symlinks are skipped.
	}
	info, err := os.Stat(realPath)
	if err != nil {
		return nil //nolint:nilerr // Inaccessible targets are skipped.
	}

	if !info.IsDir() {
		w.consider(path)
		return nil
	}
	if !w.followSymlinks {
		return nil
	}
	// Walk the target; WalkDir does not descend into a symlinked root.
	return w.walk(realPath)
}

// consider records path if it passes the extension and glob filters.
func (w *walker) consider(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	if !hasMatchingExtension(path, w.extensions) {
		return
	}

	rel := w.rel(path)
	if w.exclude.match(rel) {
		return
	}
	if len(w.include) > 0 && !w.include.match(rel) {
		return
	}

	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
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

// compiledGlob is one ignore or include pattern.
type compiledGlob struct {
	full glob.Glob

	// dir matches the directory a trailing "/**" pattern covers, so the
	// walk can skip it entirely.
	dir glob.Glob

	// baseOnly patterns without a separator also match the file name.
	baseOnly bool
}

type globSet []compiledGlob

// compileGlobs compiles slash-separated glob patterns. "*" stays within a
// path segment and "**" crosses segments; a leading "**/" also matches at
// the top level.
func compileGlobs(patterns []string) (globSet, error) {
	set := make(globSet, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		g, err := compileOne(pattern)
		if err != nil {
			return nil, err
		}
		cg := compiledGlob{full: g, baseOnly: !strings.Contains(pattern, "/")}

		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok && prefix != "" {
			if cg.dir, err = compileOne(prefix); err != nil {
				return nil, err
			}
		}
		set = append(set, cg)
	}
	return set, nil
}

func compileOne(pattern string) (glob.Glob, error) {
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		pattern = "{" + rest + ",**/" + rest + "}"
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	return g, nil
}

// match reports whether the slash-separated relative path matches any pattern.
func (s globSet) match(rel string) bool {
	base := rel[strings.LastIndex(rel, "/")+1:]
	for _, g := range s {
		if g.full.Match(rel) || (g.baseOnly && g.full.Match(base)) {
			return true
		}
		if g.dir != nil && g.dir.Match(rel) {
			return true
		}
	}
	return false
}

// matchDir reports whether a directory is excluded as a whole.
func (s globSet) matchDir(rel string) bool {
	for _, g := range s {
		if g.dir != nil && g.dir.Match(rel) {
			return true
		}
	}
	return s.match(rel)
}

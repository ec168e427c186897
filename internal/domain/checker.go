package domain

import (
	"context"
	"fmt"
	"go/token"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/sync/errgroup"

	"docreq.dev/pkg/docreq/internal/adapter"
	m "docreq.dev/pkg/docreq/internal/model"
)

// CheckArgs parameterizes one run of the checker.
type CheckArgs struct {
	Paths    []m.Path
	Config   m.Config
	Parallel int
}

// Workflow sequences file discovery, parsing, traversal, aggregation, and
// reporting.
type Workflow interface {
	// Check runs the documentation pass and returns the aggregated result.
	// The error return covers fatal conditions only (missing or unreadable
	// input); per-file parse errors are recorded in the result instead.
	Check(ctx context.Context, args CheckArgs) (m.CheckResult, error)

	// Estimate returns per-file construct and missing-documentation counts
	// under the same policy Check would apply.
	Estimate(ctx context.Context, args CheckArgs) ([]m.FileStat, error)
}

type workflow struct {
	files adapter.GoFileAdapter
	fs    adapter.SourceFSAdapter
}

// NewWorkflow wires a Workflow from its adapters.
func NewWorkflow(files adapter.GoFileAdapter, fs adapter.SourceFSAdapter) Workflow {
	return &workflow{files: files, fs: fs}
}

// fileOutcome is the per-file product of the parallel phase.
type fileOutcome struct {
	path     m.Path
	findings []m.Finding
	summary  m.FileSummary
	parseErr *m.ParseError
}

// Check implements Workflow.
func (w *workflow) Check(ctx context.Context, args CheckArgs) (m.CheckResult, error) {
	outcomes, err := w.run(ctx, args)
	if err != nil {
		return m.CheckResult{}, err
	}

	result := m.CheckResult{Files: len(outcomes)}

	for _, outcome := range outcomes {
		result.Findings = append(result.Findings, outcome.findings...)
		if outcome.parseErr != nil {
			result.ParseErrors = append(result.ParseErrors, *outcome.parseErr)
		}
	}

	result.Findings = append(result.Findings, w.packageInfoFindings(args, outcomes)...)

	if args.Config.Relative {
		w.relativize(result.Findings)
	}

	// Output order must not depend on completion order of parallel tasks.
	m.SortFindings(result.Findings)
	sort.Slice(result.ParseErrors, func(i, j int) bool {
		return result.ParseErrors[i].Path < result.ParseErrors[j].Path
	})

	return result, nil
}

// Estimate implements Workflow.
func (w *workflow) Estimate(ctx context.Context, args CheckArgs) ([]m.FileStat, error) {
	outcomes, err := w.run(ctx, args)
	if err != nil {
		return nil, err
	}

	stats := make([]m.FileStat, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.parseErr != nil {
			continue
		}

		stats = append(stats, m.FileStat{
			Path:       outcome.path,
			Constructs: outcome.summary.Constructs,
			Missing:    len(outcome.findings),
		})
	}

	return stats, nil
}

// run discovers the input files and traverses each one. Files are
// independent: the traversal holds no cross-file state, so they are checked
// concurrently up to args.Parallel and results keep discovery order.
func (w *workflow) run(ctx context.Context, args CheckArgs) ([]fileOutcome, error) {
	paths, err := w.fs.Discover(args.Paths, args.Config.Exclude)
	if err != nil {
		return nil, err
	}

	slog.Debug("discovered source files", "count", len(paths))

	packagePaths := w.resolvePackagePaths(paths)

	outcomes := make([]fileOutcome, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(normalizeParallel(args.Parallel))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			outcome, err := w.checkFile(path, packagePaths[dirOf(path)], args.Config)
			if err != nil {
				return err
			}

			outcomes[i] = outcome

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

func (w *workflow) checkFile(path m.Path, packagePath string, cfg m.Config) (fileOutcome, error) {
	src, err := w.fs.ReadFile(path)
	if err != nil {
		return fileOutcome{}, fmt.Errorf("problem while reading %s: %w", path, err)
	}

	fset := token.NewFileSet()

	file, err := w.files.Parse(fset, string(path), src)
	if err != nil {
		slog.Debug("parse failure", "path", path, "error", err)

		return fileOutcome{
			path:     path,
			parseErr: &m.ParseError{Path: path, Message: err.Error()},
		}, nil
	}

	findings, summary := Traverse(TraverseArgs{
		FileSet:     fset,
		File:        file,
		Path:        path,
		PackagePath: packagePath,
		Config:      cfg,
	})

	return fileOutcome{path: path, findings: findings, summary: summary}, nil
}

// packageInfoFindings implements the directory-level package-information
// policy: every scanned directory must contain a file documenting its
// package. The finding lands on the package clause of the directory's first
// file in path order.
func (w *workflow) packageInfoFindings(args CheckArgs, outcomes []fileOutcome) []m.Finding {
	if !args.Config.RequirePackageInfo {
		return nil
	}

	type dirState struct {
		first      *m.FileSummary
		documented bool
	}

	dirs := make(map[string]*dirState)

	for i := range outcomes {
		outcome := &outcomes[i]
		if outcome.parseErr != nil {
			continue
		}

		dir := dirOf(outcome.path)

		state, ok := dirs[dir]
		if !ok {
			state = &dirState{}
			dirs[dir] = state
		}

		// Outcomes keep discovery order, which is lexicographic.
		if state.first == nil {
			state.first = &outcome.summary
		}

		state.documented = state.documented || outcome.summary.PackageDocumented
	}

	names := make([]string, 0, len(dirs))
	for dir := range dirs {
		names = append(names, dir)
	}

	sort.Strings(names)

	var findings []m.Finding

	for _, dir := range names {
		state := dirs[dir]
		if state.documented || state.first == nil {
			continue
		}

		c := m.Construct{
			Kind:        m.KindPackage,
			Name:        state.first.Package,
			Visibility:  m.VisibilityPublic,
			Position:    state.first.PackagePos,
			PackagePath: w.packagePathFor(state.first.Path),
		}

		if suppressed, rule := Suppress(c, args.Config); suppressed {
			slog.Debug("skipping construct", "name", c.Name, "kind", c.Kind, "rule", rule)
			continue
		}

		findings = append(findings, m.Finding{
			Path:   c.Position.Path,
			Line:   c.Position.Line,
			Column: c.Position.Column,
			Offset: c.Position.Offset,
			Name:   c.DisplayName(),
		})
	}

	return findings
}

// resolvePackagePaths computes the fully-qualified package name for every
// directory among paths: the module path from the nearest go.mod joined with
// the directory's relative location, or the slash-form directory when no
// module is found.
func (w *workflow) resolvePackagePaths(paths []m.Path) map[string]string {
	resolved := make(map[string]string)

	for _, path := range paths {
		dir := dirOf(path)
		if _, ok := resolved[dir]; ok {
			continue
		}

		resolved[dir] = w.packagePathFor(path)
	}

	return resolved
}

func (w *workflow) packagePathFor(path m.Path) string {
	dir := dirOf(path)

	root, err := w.fs.FindProjectRoot(path)
	if err != nil {
		return filepath.ToSlash(dir)
	}

	data, err := w.fs.ReadFile(m.Path(filepath.Join(string(root), "go.mod")))
	if err != nil {
		return filepath.ToSlash(dir)
	}

	module := modfile.ModulePath(data)
	if module == "" {
		return filepath.ToSlash(dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.ToSlash(dir)
	}

	rel, err := filepath.Rel(string(root), abs)
	if err != nil || rel == "." {
		return module
	}

	return module + "/" + filepath.ToSlash(rel)
}

// relativize rewrites finding paths relative to the working directory ahead
// of the final sort, so printed order follows printed paths.
func (w *workflow) relativize(findings []m.Finding) {
	wd, err := w.fs.WorkingDir()
	if err != nil {
		return
	}

	for i := range findings {
		abs, err := filepath.Abs(string(findings[i].Path))
		if err != nil {
			continue
		}

		rel, err := filepath.Rel(string(wd), abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}

		findings[i].Path = m.Path(rel)
	}
}

func dirOf(path m.Path) string {
	return filepath.Dir(string(path))
}

func normalizeParallel(n int) int {
	if n <= 0 {
		return 1
	}

	return n
}

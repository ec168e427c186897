// Package adapter contains filesystem and parsing adapters for the docreq CLI.
package adapter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "docreq.dev/pkg/docreq/internal/model"
)

// SourceFSAdapter abstracts filesystem operations the domain layer relies on
// when scanning user projects. It hides direct os access so the checking
// logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Discover expands the provided paths into the sorted list of Go source
	// files to check. Directories are walked recursively; explicit file
	// arguments are taken as-is. Paths matching exclude are skipped.
	Discover(paths []m.Path, exclude *regexp.Regexp) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// FindProjectRoot searches for a go.mod file walking up the directory
	// tree from the given path.
	FindProjectRoot(startPath m.Path) (m.Path, error)

	// WorkingDir returns the current working directory.
	WorkingDir() (m.Path, error)
}

// Directories never descended into during discovery.
var skippedDirs = map[string]bool{
	".git":     true,
	"vendor":   true,
	"testdata": true,
}

// LocalSourceFSAdapter is the concrete SourceFSAdapter backed by the os and
// path/filepath packages.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Discover expands paths to the sorted, deduplicated list of Go files.
func (a *LocalSourceFSAdapter) Discover(paths []m.Path, exclude *regexp.Regexp) ([]m.Path, error) {
	if len(paths) == 0 {
		paths = []m.Path{"."}
	}

	seen := make(map[m.Path]struct{})

	var files []m.Path

	add := func(path m.Path) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, path := range paths {
		info, err := os.Stat(string(path))
		if err != nil {
			return nil, fmt.Errorf("file not found: %s", path)
		}

		if !info.IsDir() {
			if !excluded(exclude, string(path)) {
				add(path)
			}

			continue
		}

		err = filepath.WalkDir(string(path), func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if skippedDirs[d.Name()] && p != string(path) {
					return filepath.SkipDir
				}

				if excluded(exclude, p) {
					return filepath.SkipDir
				}

				return nil
			}

			if !strings.HasSuffix(p, ".go") || excluded(exclude, p) {
				return nil
			}

			add(m.Path(p))

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("problem while processing %s: %w", path, err)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

func excluded(exclude *regexp.Regexp, path string) bool {
	return exclude != nil && exclude.MatchString(filepath.ToSlash(path))
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// FindProjectRoot searches for a go.mod file walking up the directory tree.
func (a *LocalSourceFSAdapter) FindProjectRoot(startPath m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(startPath))
	if err != nil {
		return "", err
	}

	dir := abs
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return m.Path(dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found in any parent directory of %s", startPath)
		}

		dir = parent
	}
}

// WorkingDir returns the current working directory.
func (a *LocalSourceFSAdapter) WorkingDir() (m.Path, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return m.Path(wd), nil
}

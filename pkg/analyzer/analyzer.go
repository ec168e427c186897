// Package analyzer exposes the docreq documentation check as a go/analysis
// Analyzer, so it can run under go vet, multichecker, and other analysis
// drivers alongside the standalone CLI.
package analyzer

import (
	"fmt"
	"regexp"

	"golang.org/x/tools/go/analysis"

	"docreq.dev/pkg/docreq/internal/domain"
	m "docreq.dev/pkg/docreq/internal/model"
)

// Analyzer is the default instance with driver-friendly defaults: unexported
// declarations and trivial accessors are not required to carry documentation.
var Analyzer = New()

// New builds a fresh Analyzer with its own flag set.
func New() *analysis.Analyzer {
	opts := &options{
		dontRequirePrivate:           true,
		dontRequireTrivialProperties: true,
	}

	a := &analysis.Analyzer{
		Name: "docreq",
		Doc:  "reports declarations that lack documentation comments",
		Run:  opts.run,
	}

	a.Flags.BoolVar(&opts.dontRequirePrivate, "dont-require-private",
		opts.dontRequirePrivate, "skip unexported declarations")
	a.Flags.BoolVar(&opts.dontRequireTrivialProperties, "dont-require-trivial-properties",
		opts.dontRequireTrivialProperties, "skip trivial getter and setter methods")
	a.Flags.BoolVar(&opts.dontRequireNoargConstructor, "dont-require-noarg-constructor",
		opts.dontRequireNoargConstructor, "skip zero-argument constructor functions")
	a.Flags.StringVar(&opts.dontRequire, "dont-require",
		"", "suppress reporting for simple names matching the regex")

	return a
}

type options struct {
	dontRequire                  string
	dontRequirePrivate           bool
	dontRequireNoargConstructor  bool
	dontRequireTrivialProperties bool
}

func (o *options) config() (m.Config, error) {
	cfg := m.Config{
		DontRequirePrivate:           o.dontRequirePrivate,
		DontRequireNoargConstructor:  o.dontRequireNoargConstructor,
		DontRequireTrivialProperties: o.dontRequireTrivialProperties,
	}

	if o.dontRequire != "" {
		re, err := regexp.Compile(o.dontRequire)
		if err != nil {
			return m.Config{}, fmt.Errorf("invalid dont-require pattern: %w", err)
		}

		cfg.DontRequire = re
	}

	return cfg, nil
}

func (o *options) run(pass *analysis.Pass) (any, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}

	packagePath := ""
	if pass.Pkg != nil {
		packagePath = pass.Pkg.Path()
	}

	for _, file := range pass.Files {
		tokenFile := pass.Fset.File(file.Pos())
		if tokenFile == nil {
			continue
		}

		findings, _ := domain.Traverse(domain.TraverseArgs{
			FileSet:     pass.Fset,
			File:        file,
			Path:        m.Path(tokenFile.Name()),
			PackagePath: packagePath,
			Config:      cfg,
		})

		for _, finding := range findings {
			pass.Report(analysis.Diagnostic{
				Pos:     tokenFile.Pos(finding.Offset),
				Message: fmt.Sprintf("missing documentation for %s", finding.Name),
			})
		}
	}

	return nil, nil
}

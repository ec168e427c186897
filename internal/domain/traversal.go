// Package domain implements the documentation-requirement engine: the
// traversal of parsed source files, the documentation presence oracle, the
// trivial-accessor classifier, and the suppression policy.
package domain

import (
	"go/ast"
	"go/token"
	"log/slog"
	"path/filepath"
	"strings"

	m "docreq.dev/pkg/docreq/internal/model"
)

// TraverseArgs bundles one parsed compilation unit with the run policy.
type TraverseArgs struct {
	FileSet *token.FileSet
	File    *ast.File
	Path    m.Path

	// PackagePath is the fully-qualified package name, matched by the
	// dont-require regex for the package pseudo-construct.
	PackagePath string

	Config m.Config
}

// Traverse walks one file depth-first in declaration order and returns the
// missing-documentation findings together with per-file summary facts.
// Findings appear in source position order; the walk is deterministic, so
// repeated runs over an unchanged tree yield identical sequences. Function
// bodies are never descended into.
func Traverse(args TraverseArgs) ([]m.Finding, m.FileSummary) {
	t := &traversal{args: args}
	t.summary.Path = args.Path

	t.packageClause()

	siblings := topLevelSiblings(args.File)

	for _, decl := range args.File.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			t.genDecl(frame{}, d, siblings)
		case *ast.FuncDecl:
			t.funcDecl(d, siblings)
		}
	}

	return t.findings, t.summary
}

// traversal is the explicit per-run state: accumulated findings and summary
// facts. It is created per file and discarded afterwards; nothing is
// process-wide.
type traversal struct {
	args     TraverseArgs
	findings []m.Finding
	summary  m.FileSummary
}

// frame carries the enclosing-type name chain. Frames are immutable: pushing
// returns a fresh value, so recursion needs no cleanup and no mutable
// visitor state.
type frame struct {
	owners []string
}

func (f frame) push(owner string) frame {
	owners := make([]string, len(f.owners), len(f.owners)+1)
	copy(owners, f.owners)

	return frame{owners: append(owners, owner)}
}

func (f frame) owner() string {
	return strings.Join(f.owners, ".")
}

// packageInfoFile reports whether the file exists to document its package.
func packageInfoFile(path m.Path) bool {
	return filepath.Base(string(path)) == "doc.go"
}

// packageClause records the package clause state and, for package-information
// files only, checks it like any other construct. Ordinary files are never
// checked for package-level documentation by this pass.
func (t *traversal) packageClause() {
	file := t.args.File
	documented := HasDocText(file.Doc)

	t.summary.Package = file.Name.Name
	t.summary.PackageDocumented = documented
	t.summary.PackagePos = t.position(file.Package)

	if !packageInfoFile(t.args.Path) {
		return
	}

	c := m.Construct{
		Kind:        m.KindPackage,
		Name:        file.Name.Name,
		Visibility:  m.VisibilityPublic,
		Directives:  Directives(file.Doc),
		Position:    t.summary.PackagePos,
		PackagePath: t.args.PackagePath,
	}

	t.summary.Constructs++
	// The file root has no parent, so no orphan search applies here.
	t.check(c, func() bool { return documented })
}

func topLevelSiblings(file *ast.File) []ast.Node {
	// The package clause identifier bounds orphan searches for the first
	// declaration, keeping the file header out of candidate comments.
	siblings := make([]ast.Node, 0, len(file.Decls)+1)
	siblings = append(siblings, file.Name)

	for _, d := range file.Decls {
		siblings = append(siblings, d)
	}

	return siblings
}

// boundaryMarker is a zero-width pseudo-sibling placed at the opening of an
// enclosing declaration. It bounds orphan searches for first members the way
// the package clause identifier bounds them for the first top-level
// declaration: comments before the opening belong to the owner, never to the
// first member.
type boundaryMarker struct {
	pos token.Pos
}

func (b boundaryMarker) Pos() token.Pos { return b.pos }
func (b boundaryMarker) End() token.Pos { return b.pos }

func (t *traversal) genDecl(fr frame, decl *ast.GenDecl, siblings []ast.Node) {
	switch decl.Tok {
	case token.TYPE:
		for _, spec := range decl.Specs {
			if ts, ok := spec.(*ast.TypeSpec); ok {
				t.typeSpec(fr, decl, ts, siblings)
			}
		}
	case token.CONST:
		t.valueSpecs(fr, decl, m.KindConstant, siblings)
	case token.VAR:
		t.valueSpecs(fr, decl, m.KindField, siblings)
	}
}

// valueSpecs checks every name declared by a const or var declaration. A
// doc comment on the enclosing group documents all of its specs.
func (t *traversal) valueSpecs(fr frame, decl *ast.GenDecl, kind m.Kind, siblings []ast.Node) {
	node, siblings := specNeighborhood(decl, siblings)

	for _, spec := range decl.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		target := node
		if target == nil {
			target = vs
		}

		for _, name := range vs.Names {
			if name.Name == "_" {
				continue
			}

			c := m.Construct{
				Kind:       kind,
				Name:       name.Name,
				Owner:      fr.owner(),
				Visibility: m.VisibilityOf(name.Name),
				Directives: Directives(vs.Doc, decl.Doc),
				Position:   t.position(name.Pos()),
			}

			t.summary.Constructs++
			t.check(c, func() bool {
				if HasDocText(vs.Doc) || HasDocText(decl.Doc) {
					return true
				}

				return IsDocumented(nil, target, siblings, t.args.File.Comments)
			})
		}
	}
}

// specNeighborhood picks the node and sibling list used for orphan recovery
// of a GenDecl spec: specs of a parenthesized group are siblings of each
// other, while an ungrouped declaration competes with the other top-level
// declarations.
func specNeighborhood(decl *ast.GenDecl, topLevel []ast.Node) (ast.Node, []ast.Node) {
	if !decl.Lparen.IsValid() {
		return decl, topLevel
	}

	siblings := make([]ast.Node, 0, len(decl.Specs)+1)
	siblings = append(siblings, boundaryMarker{pos: decl.Lparen})

	for _, spec := range decl.Specs {
		siblings = append(siblings, spec)
	}

	return nil, siblings
}

func (t *traversal) typeSpec(fr frame, decl *ast.GenDecl, ts *ast.TypeSpec, siblings []ast.Node) {
	name := ts.Name.Name

	node, specSiblings := specNeighborhood(decl, siblings)
	if node == nil {
		node = ts
	}

	if name != "_" {
		c := m.Construct{
			Kind:       m.KindType,
			Name:       name,
			Owner:      fr.owner(),
			Visibility: m.VisibilityOf(name),
			Directives: Directives(ts.Doc, decl.Doc),
			Position:   t.position(ts.Pos()),
		}

		t.summary.Constructs++
		t.check(c, func() bool {
			if HasDocText(ts.Doc) || HasDocText(decl.Doc) {
				return true
			}

			return IsDocumented(nil, node, specSiblings, t.args.File.Comments)
		})
	}

	t.typeExpr(fr.push(name), ts.Type)
}

// typeExpr descends into the children a type declares: struct fields and
// interface methods, including those of nested anonymous types.
func (t *traversal) typeExpr(fr frame, expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.StructType:
		t.structFields(fr, e)
	case *ast.InterfaceType:
		t.interfaceMethods(fr, e)
	}
}

func (t *traversal) structFields(fr frame, st *ast.StructType) {
	if st.Fields == nil {
		return
	}

	siblings := make([]ast.Node, 0, len(st.Fields.List)+1)
	siblings = append(siblings, boundaryMarker{pos: st.Fields.Opening})

	for _, field := range st.Fields.List {
		siblings = append(siblings, field)
	}

	for _, field := range st.Fields.List {
		names := fieldNames(field)

		for _, name := range names {
			if name == "_" {
				continue
			}

			if name == "serialVersionUID" && numericType(field.Type) {
				slog.Debug("skipping construct", "name", name, "rule", RuleSerialVersionUID)
				continue
			}

			c := m.Construct{
				Kind:       m.KindField,
				Name:       name,
				Owner:      fr.owner(),
				Visibility: m.VisibilityOf(name),
				Directives: Directives(field.Doc),
				Position:   t.position(field.Pos()),
			}

			t.summary.Constructs++
			t.check(c, func() bool {
				return IsDocumented(field.Doc, field, siblings, t.args.File.Comments)
			})
		}

		if len(field.Names) > 0 {
			t.typeExpr(fr.push(field.Names[0].Name), field.Type)
		}
	}
}

// fieldNames returns the declared names of a struct field; an embedded field
// is known by the simple name of its type.
func fieldNames(field *ast.Field) []string {
	if len(field.Names) > 0 {
		names := make([]string, 0, len(field.Names))
		for _, n := range field.Names {
			names = append(names, n.Name)
		}

		return names
	}

	if name := baseTypeName(field.Type); name != "" {
		return []string{name}
	}

	return nil
}

func (t *traversal) interfaceMethods(fr frame, it *ast.InterfaceType) {
	if it.Methods == nil {
		return
	}

	siblings := make([]ast.Node, 0, len(it.Methods.List)+1)
	siblings = append(siblings, boundaryMarker{pos: it.Methods.Opening})

	for _, field := range it.Methods.List {
		siblings = append(siblings, field)
	}

	for _, field := range it.Methods.List {
		// Embedded interfaces have no independent documentation site.
		if len(field.Names) == 0 {
			continue
		}

		for _, name := range field.Names {
			c := m.Construct{
				Kind:       m.KindMethod,
				Name:       name.Name,
				Owner:      fr.owner(),
				Visibility: m.VisibilityOf(name.Name),
				Directives: Directives(field.Doc),
				Position:   t.position(field.Pos()),
			}

			t.summary.Constructs++
			t.check(c, func() bool {
				return IsDocumented(field.Doc, field, siblings, t.args.File.Comments)
			})
		}
	}
}

func (t *traversal) funcDecl(fn *ast.FuncDecl, siblings []ast.Node) {
	name := fn.Name.Name
	if name == "_" {
		return
	}

	kind := m.KindMethod
	owner := ""

	switch {
	case fn.Recv != nil:
		owner = receiverTypeName(fn.Recv)
	default:
		if typeName, ok := constructedType(fn); ok {
			kind = m.KindConstructor
			owner = typeName
		}
	}

	c := m.Construct{
		Kind:       kind,
		Name:       name,
		Owner:      owner,
		Visibility: m.VisibilityOf(name),
		Directives: Directives(fn.Doc),
		Position:   t.position(fn.Pos()),
	}

	t.summary.Constructs++

	cfg := t.args.Config

	if kind == m.KindConstructor && cfg.DontRequireNoargConstructor && fn.Type.Params.NumFields() == 0 {
		slog.Debug("skipping construct", "name", c.DisplayName(), "rule", RuleNoargConstructor)
		return
	}

	if cfg.DontRequireTrivialProperties {
		if shape, ok := ClassifyAccessor(fn); ok {
			slog.Debug("skipping construct",
				"name", c.DisplayName(), "rule", RuleTrivialProperty,
				"property", shape.Name, "shape", shape.Kind)

			return
		}
	}

	t.check(c, func() bool {
		return IsDocumented(fn.Doc, fn, siblings, t.args.File.Comments)
	})

	// Function bodies are not descended into: local and anonymous types
	// inside them are never visited.
}

// constructedType detects a factory function: New or NewT with a first
// result of named type T. A bare New has no independent name and is later
// reported under T itself.
func constructedType(fn *ast.FuncDecl) (string, bool) {
	name := fn.Name.Name
	if !strings.HasPrefix(name, "New") {
		return "", false
	}

	results := fn.Type.Results
	if results.NumFields() == 0 {
		return "", false
	}

	typeName := baseTypeName(results.List[0].Type)
	if typeName == "" {
		return "", false
	}

	if name == "New" || name == "New"+typeName {
		return typeName, true
	}

	return "", false
}

func receiverTypeName(recv *ast.FieldList) string {
	if len(recv.List) == 0 {
		return ""
	}

	return baseTypeName(recv.List[0].Type)
}

// baseTypeName unwraps pointers and type parameters down to the simple name
// of a named type; anything else yields "".
func baseTypeName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return baseTypeName(e.X)
	case *ast.IndexExpr:
		return baseTypeName(e.X)
	case *ast.IndexListExpr:
		return baseTypeName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	}

	return ""
}

// numericType reports whether the expression names one of the predeclared
// integer types.
func numericType(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return false
	}

	switch ident.Name {
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"uintptr", "byte", "rune":
		return true
	}

	return false
}

// check finalizes the decision for one construct: the override directive and
// the suppression policy run first, and only an unexempted construct
// consults the documentation oracle. Each construct is decided exactly once.
func (t *traversal) check(c m.Construct, documented func() bool) {
	if c.Kind == m.KindMethod && c.Overrides() {
		slog.Debug("skipping construct", "name", c.DisplayName(), "rule", RuleOverride)
		return
	}

	if suppressed, rule := Suppress(c, t.args.Config); suppressed {
		slog.Debug("skipping construct", "name", c.DisplayName(), "kind", c.Kind, "rule", rule)
		return
	}

	if documented() {
		return
	}

	t.findings = append(t.findings, m.Finding{
		Path:   c.Position.Path,
		Line:   c.Position.Line,
		Column: c.Position.Column,
		Offset: c.Position.Offset,
		Name:   c.DisplayName(),
	})
}

func (t *traversal) position(pos token.Pos) m.Position {
	p := t.args.FileSet.Position(pos)

	return m.Position{Path: t.args.Path, Line: p.Line, Column: p.Column, Offset: p.Offset}
}

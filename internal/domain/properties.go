package domain

import (
	"go/ast"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PropertyKind names the accessor shape a trivial method was classified as.
type PropertyKind string

const (
	// PropertyGetter is a Get-prefixed single-return getter.
	PropertyGetter PropertyKind = "getter"
	// PropertyGetterNoPrefix is a bare getter named after its property.
	PropertyGetterNoPrefix PropertyKind = "getter-no-prefix"
	// PropertyGetterHas is a Has-prefixed boolean getter.
	PropertyGetterHas PropertyKind = "getter-has"
	// PropertyGetterIs is an Is-prefixed boolean getter.
	PropertyGetterIs PropertyKind = "getter-is"
	// PropertyGetterNot is a Not-prefixed negating boolean getter.
	PropertyGetterNot PropertyKind = "getter-not"
	// PropertySetter is a Set-prefixed single-assignment setter.
	PropertySetter PropertyKind = "setter"
)

// PropertyShape is the classifier result for a trivial accessor: which shape
// matched and the property name the method exposes.
type PropertyShape struct {
	Kind PropertyKind
	Name string
}

// accessorRule is one row of the recognized-prefix table.
type accessorRule struct {
	prefix string
	kind   PropertyKind
}

// Prefixed interpretations are tried in this order; the bare no-prefix
// getter is a fallback tried only after every prefixed interpretation has
// failed, so that a method like HasFoo is not mistaken for a prefix-less
// getter named hasFoo before its Has shape has been considered.
var accessorRules = []accessorRule{
	{prefix: "Get", kind: PropertyGetter},
	{prefix: "Has", kind: PropertyGetterHas},
	{prefix: "Is", kind: PropertyGetterIs},
	{prefix: "Not", kind: PropertyGetterNot},
	{prefix: "Set", kind: PropertySetter},
}

// ClassifyAccessor decides whether the method is a trivial accessor or
// mutator and, if so, which property it exposes. It is pure: the same
// declaration always yields the same shape. Any mismatch at any step returns
// false, deliberately erring toward requiring documentation.
func ClassifyAccessor(fn *ast.FuncDecl) (PropertyShape, bool) {
	if fn.Recv == nil || fn.Body == nil {
		return PropertyShape{}, false
	}

	recv := receiverName(fn)
	name := fn.Name.Name

	for _, rule := range accessorRules {
		rest, ok := stripPrefix(name, rule.prefix)
		if !ok {
			continue
		}

		property := lowerFirst(rest)
		if matchesShape(fn, recv, rule.kind, property) {
			return PropertyShape{Kind: rule.kind, Name: property}, true
		}
	}

	// Fallback: a zero-parameter method with no (matching) prefixed shape
	// may still be a bare getter named exactly after its property.
	property := lowerFirst(name)
	if matchesShape(fn, recv, PropertyGetterNoPrefix, property) {
		return PropertyShape{Kind: PropertyGetterNoPrefix, Name: property}, true
	}

	return PropertyShape{}, false
}

// stripPrefix matches the prefix in exported or unexported casing and
// requires a non-empty remainder: a method named just Get or set is not an
// accessor.
func stripPrefix(name, prefix string) (string, bool) {
	for _, p := range []string{prefix, strings.ToLower(prefix)} {
		if strings.HasPrefix(name, p) && len(name) > len(p) {
			return name[len(p):], true
		}
	}

	return "", false
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}

// matchesShape checks the parameter, result, and single-statement body
// requirements for one accessor kind against the derived property name.
func matchesShape(fn *ast.FuncDecl, recv string, kind PropertyKind, property string) bool {
	params := fn.Type.Params

	switch kind {
	case PropertySetter:
		if params.NumFields() != 1 || fn.Type.Results.NumFields() != 0 {
			return false
		}

		names := params.List[0].Names
		if len(names) != 1 || names[0].Name != property {
			return false
		}

		return assignsProperty(singleStatement(fn.Body), recv, property)

	case PropertyGetterHas, PropertyGetterIs:
		if params.NumFields() != 0 || !returnsBool(fn.Type) {
			return false
		}

		return returnsProperty(singleStatement(fn.Body), recv, property)

	case PropertyGetterNot:
		if params.NumFields() != 0 || !returnsBool(fn.Type) {
			return false
		}

		return returnsNegatedProperty(singleStatement(fn.Body), recv, property)

	case PropertyGetter, PropertyGetterNoPrefix:
		if params.NumFields() != 0 || fn.Type.Results.NumFields() != 1 {
			return false
		}

		return returnsProperty(singleStatement(fn.Body), recv, property)
	}

	return false
}

func receiverName(fn *ast.FuncDecl) string {
	if len(fn.Recv.List) == 0 || len(fn.Recv.List[0].Names) == 0 {
		return ""
	}

	return fn.Recv.List[0].Names[0].Name
}

func returnsBool(ft *ast.FuncType) bool {
	if ft.Results.NumFields() != 1 {
		return false
	}

	ident, ok := ft.Results.List[0].Type.(*ast.Ident)

	return ok && ident.Name == "bool"
}

func singleStatement(body *ast.BlockStmt) ast.Stmt {
	if len(body.List) != 1 {
		return nil
	}

	return body.List[0]
}

// returnsProperty accepts `return <property>` and `return <recv>.<property>`.
func returnsProperty(stmt ast.Stmt, recv, property string) bool {
	ret, ok := stmt.(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return false
	}

	return isPropertyExpr(ret.Results[0], recv, property)
}

// returnsNegatedProperty accepts `return !<property>` and
// `return !<recv>.<property>`.
func returnsNegatedProperty(stmt ast.Stmt, recv, property string) bool {
	ret, ok := stmt.(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return false
	}

	unary, ok := ret.Results[0].(*ast.UnaryExpr)
	if !ok || unary.Op != token.NOT {
		return false
	}

	return isPropertyExpr(unary.X, recv, property)
}

// assignsProperty accepts exactly `<recv>.<property> = <property>`. Compound
// assignment operators disqualify.
func assignsProperty(stmt ast.Stmt, recv, property string) bool {
	assign, ok := stmt.(*ast.AssignStmt)
	if !ok || assign.Tok != token.ASSIGN {
		return false
	}

	if len(assign.Lhs) != 1 || len(assign.Rhs) != 1 {
		return false
	}

	sel, ok := assign.Lhs[0].(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != property {
		return false
	}

	base, ok := sel.X.(*ast.Ident)
	if !ok || recv == "" || base.Name != recv {
		return false
	}

	rhs, ok := assign.Rhs[0].(*ast.Ident)

	return ok && rhs.Name == property
}

// isPropertyExpr accepts a bare identifier or a receiver selector naming the
// property.
func isPropertyExpr(expr ast.Expr, recv, property string) bool {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name == property
	case *ast.SelectorExpr:
		if e.Sel.Name != property {
			return false
		}

		base, ok := e.X.(*ast.Ident)

		return ok && recv != "" && base.Name == recv
	}

	return false
}

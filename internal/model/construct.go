// Package model defines the data structures for documentation checking.
package model

import "strings"

// Path represents a file system path.
type Path string

// Kind classifies a documentable construct.
type Kind string

const (
	// KindPackage represents the package clause of a package-information file.
	KindPackage Kind = "package"

	// KindType represents a type declaration (struct, interface, alias, defined type).
	KindType Kind = "type"

	// KindConstructor represents a factory function that constructs a named type
	// (a function called New or NewT whose first result is T).
	KindConstructor Kind = "constructor"

	// KindMethod represents a function, a method, or an interface method spec.
	KindMethod Kind = "method"

	// KindField represents a struct field or a package-level variable.
	KindField Kind = "field"

	// KindConstant represents a package-level constant name.
	KindConstant Kind = "constant"
)

// Visibility is the declared visibility of a construct. Go identifiers are
// either exported or unexported, which map to public and private.
type Visibility string

const (
	// VisibilityPublic marks exported identifiers.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate marks unexported identifiers.
	VisibilityPrivate Visibility = "private"
)

// VisibilityOf derives the visibility of a simple name from its first rune.
func VisibilityOf(name string) Visibility {
	if name == "" {
		return VisibilityPrivate
	}

	first := name[:1]
	if first == strings.ToUpper(first) && first != strings.ToLower(first) {
		return VisibilityPublic
	}

	return VisibilityPrivate
}

// Position is a source location. Offset is carried so callers holding the
// originating token.FileSet can map a position back onto the syntax tree.
type Position struct {
	Path   Path `yaml:"path"`
	Line   int  `yaml:"line"`
	Column int  `yaml:"column"`
	Offset int  `yaml:"-"`
}

// Valid reports whether the position carries a real source location.
func (p Position) Valid() bool {
	return p.Line > 0
}

// OverrideDirective marks a method whose documentation is inherited from an
// interface it implements. Methods carrying it are never reported.
const OverrideDirective = "docreq:override"

// Construct is an immutable snapshot of one documentable thing encountered
// during traversal. It is created per tree node and discarded once the
// finding decision for the node is finalized.
type Construct struct {
	Kind       Kind
	Name       string
	Owner      string // dot-joined enclosing type names; constructed type for constructors
	Visibility Visibility
	Directives []string
	Position   Position

	// PackagePath is the fully-qualified package name. Set only on package
	// constructs, where name suppression matches the qualified name instead
	// of the simple one.
	PackagePath string
}

// DisplayName is the identifier reported in findings. Constructors declared
// as a bare New have no independent name and take the constructed type's
// simple name; package constructs are qualified with the package keyword.
func (c Construct) DisplayName() string {
	if c.Kind == KindConstructor && c.Name == "New" && c.Owner != "" {
		return c.Owner
	}

	if c.Kind == KindPackage {
		return "package " + c.Name
	}

	return c.Name
}

// Overrides reports whether the construct carries the override directive.
func (c Construct) Overrides() bool {
	for _, d := range c.Directives {
		if d == OverrideDirective {
			return true
		}
	}

	return false
}

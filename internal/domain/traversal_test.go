package domain

import (
	"go/parser"
	"go/token"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "docreq.dev/pkg/docreq/internal/model"
)

func traverse(t *testing.T, path, src string, cfg m.Config) ([]m.Finding, m.FileSummary) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	require.NoError(t, err)

	return Traverse(TraverseArgs{
		FileSet:     fset,
		File:        file,
		Path:        m.Path(path),
		PackagePath: "example.com/proj/p",
		Config:      cfg,
	})
}

func findingNames(findings []m.Finding) []string {
	names := make([]string, 0, len(findings))
	for _, f := range findings {
		names = append(names, f.Name)
	}

	return names
}

func TestTraverse_DeclarationOrder(t *testing.T) {
	src := `package p

type First struct {
	A int
	b string
}

const Second = 1

var third = 2

func Fourth() {}
`

	findings, summary := traverse(t, "order.go", src, m.Config{})

	assert.Equal(t, []string{"First", "A", "b", "Second", "third", "Fourth"}, findingNames(findings))
	assert.Equal(t, 6, summary.Constructs)

	for i := 1; i < len(findings); i++ {
		assert.LessOrEqual(t, findings[i-1].Line, findings[i].Line)
	}
}

func TestTraverse_Idempotent(t *testing.T) {
	src := `package p

type Widget struct {
	Size int
}

func Resize() {}
`

	first, _ := traverse(t, "widget.go", src, m.Config{})
	second, _ := traverse(t, "widget.go", src, m.Config{})

	assert.Equal(t, first, second)
}

func TestTraverse_DocumentedConstructsProduceNoFindings(t *testing.T) {
	src := `package p

// Widget is a documented type.
type Widget struct {
	// Size is the widget size.
	Size int
}

// Resize changes the size.
func Resize() {}
`

	findings, summary := traverse(t, "widget.go", src, m.Config{})

	assert.Empty(t, findings)
	assert.Equal(t, 3, summary.Constructs)
}

func TestTraverse_Constructors(t *testing.T) {
	t.Run("bare New is reported under the constructed type", func(t *testing.T) {
		src := `package p

// Pool is documented.
type Pool struct{}

func New() *Pool { return &Pool{} }
`

		findings, _ := traverse(t, "pool.go", src, m.Config{})
		assert.Equal(t, []string{"Pool"}, findingNames(findings))
	})

	t.Run("named factory keeps its own name", func(t *testing.T) {
		src := `package p

// Pool is documented.
type Pool struct{}

func NewPool() *Pool { return &Pool{} }
`

		findings, _ := traverse(t, "pool.go", src, m.Config{})
		assert.Equal(t, []string{"NewPool"}, findingNames(findings))
	})

	t.Run("mismatched factory name is an ordinary function", func(t *testing.T) {
		src := `package p

// Pool is documented.
type Pool struct{}

func NewBuffer() *Pool { return &Pool{} }
`

		findings, _ := traverse(t, "pool.go", src, m.Config{DontRequireMethod: true})
		assert.Empty(t, findings, "method suppression covers plain functions too")
	})

	t.Run("noarg constructor exemption", func(t *testing.T) {
		src := `package p

// Pool is documented.
type Pool struct{}

// Queue is documented.
type Queue struct{}

func NewPool() *Pool { return &Pool{} }

func NewQueue(size int) *Queue { return &Queue{} }
`

		findings, _ := traverse(t, "pool.go", src, m.Config{DontRequireNoargConstructor: true})
		assert.Equal(t, []string{"NewQueue"}, findingNames(findings))
	})
}

func TestTraverse_TrivialProperties(t *testing.T) {
	src := `package p

// Item is documented.
type Item struct {
	// barOK is documented.
	barOK int
}

func (i *Item) GetBarOK() int { return i.barOK }

func (i *Item) SetBarOK(barOK int) { i.barOK = barOK }

func (i *Item) Touch() {}
`

	t.Run("exemption off reports the accessors", func(t *testing.T) {
		findings, _ := traverse(t, "item.go", src, m.Config{})
		assert.Equal(t, []string{"GetBarOK", "SetBarOK", "Touch"}, findingNames(findings))
	})

	t.Run("exemption on reports only the real method", func(t *testing.T) {
		findings, _ := traverse(t, "item.go", src, m.Config{DontRequireTrivialProperties: true})
		assert.Equal(t, []string{"Touch"}, findingNames(findings))
	})

	t.Run("exemption never covers the field itself", func(t *testing.T) {
		bare := `package p

// Item is documented.
type Item struct {
	barOK int
}

func (i *Item) GetBarOK() int { return i.barOK }

func (i *Item) SetBarOK(barOK int) { i.barOK = barOK }
`

		findings, _ := traverse(t, "item.go", bare, m.Config{DontRequireTrivialProperties: true})
		assert.Equal(t, []string{"barOK"}, findingNames(findings))
	})
}

func TestTraverse_OverrideDirective(t *testing.T) {
	src := `package p

// Buffer is documented.
type Buffer struct{}

//docreq:override
func (b *Buffer) String() string { return "" }

func (b *Buffer) Reset() {}
`

	findings, _ := traverse(t, "buffer.go", src, m.Config{})
	assert.Equal(t, []string{"Reset"}, findingNames(findings))
}

func TestTraverse_SerialVersionUID(t *testing.T) {
	src := `package p

// Record is documented.
type Record struct {
	serialVersionUID int64
	Payload          []byte
}

// Legacy is documented.
type Legacy struct {
	serialVersionUID string
}
`

	findings, summary := traverse(t, "record.go", src, m.Config{})

	assert.Equal(t, []string{"Payload", "serialVersionUID"}, findingNames(findings),
		"only the non-numeric serialVersionUID is documentable")
	assert.Equal(t, 4, summary.Constructs)
}

func TestTraverse_InterfaceMethods(t *testing.T) {
	src := `package p

// Store is documented.
type Store interface {
	Reader

	// Put is documented.
	Put(key string) error

	Delete(key string) error
}
`

	findings, _ := traverse(t, "store.go", src, m.Config{})
	assert.Equal(t, []string{"Delete"}, findingNames(findings),
		"embedded interfaces are skipped and documented methods pass")
}

func TestTraverse_NestedTypes(t *testing.T) {
	src := `package p

// Outer is documented.
type Outer struct {
	// Inner is documented.
	Inner struct {
		Depth int
	}
}
`

	findings, _ := traverse(t, "outer.go", src, m.Config{})
	require.Equal(t, []string{"Depth"}, findingNames(findings))
	assert.Equal(t, m.Path("outer.go"), findings[0].Path)
}

func TestTraverse_SuppressedTypeStillYieldsChildren(t *testing.T) {
	src := `package p

type Config struct {
	Timeout int
}
`

	findings, _ := traverse(t, "config.go", src, m.Config{DontRequireType: true})
	assert.Equal(t, []string{"Timeout"}, findingNames(findings))
}

func TestTraverse_GroupedSpecs(t *testing.T) {
	src := `package p

// Weekdays of the scheduler.
const (
	Monday = iota
	Tuesday
)

const (
	Wednesday = 3

	// Thursday is documented on its own.
	Thursday = 4
)

var (
	count int
	_     = count
)
`

	findings, _ := traverse(t, "consts.go", src, m.Config{})
	assert.Equal(t, []string{"Wednesday", "count"}, findingNames(findings))
}

func TestTraverse_OrphanDocComment(t *testing.T) {
	src := `package p

/** Engine drives the run. */

type Engine struct{}

// stray remark

func run() {}
`

	findings, _ := traverse(t, "engine.go", src, m.Config{})
	assert.Equal(t, []string{"run"}, findingNames(findings),
		"documentation-style orphans count, ordinary orphans do not")
}

func TestTraverse_OwnerDocDoesNotCoverFirstMember(t *testing.T) {
	t.Run("first struct field", func(t *testing.T) {
		src := `package p

/** T is documented. */
type T struct {
	X int
}
`

		findings, _ := traverse(t, "t.go", src, m.Config{})
		assert.Equal(t, []string{"X"}, findingNames(findings))
	})

	t.Run("first interface method", func(t *testing.T) {
		src := `package p

/** Store is documented. */
type Store interface {
	Get(key string) error
}
`

		findings, _ := traverse(t, "store.go", src, m.Config{})
		assert.Equal(t, []string{"Get"}, findingNames(findings))
	})

	t.Run("first spec of a grouped var", func(t *testing.T) {
		src := `package p

/** unrelated documentation earlier in the file */

var (
	a int
)
`

		findings, _ := traverse(t, "vars.go", src, m.Config{})
		assert.Equal(t, []string{"a"}, findingNames(findings))
	})

	t.Run("first spec of a grouped type", func(t *testing.T) {
		src := `package p

/** stray */

type (
	Alias = int
)
`

		findings, _ := traverse(t, "types.go", src, m.Config{})
		assert.Equal(t, []string{"Alias"}, findingNames(findings))
	})

	t.Run("doc between group members still counts", func(t *testing.T) {
		src := `package p

var (
	/** a is documented. */

	a int
)
`

		findings, _ := traverse(t, "vars.go", src, m.Config{})
		assert.Empty(t, findings)
	})
}

func TestTraverse_PackageClause(t *testing.T) {
	t.Run("undocumented doc.go is reported", func(t *testing.T) {
		findings, summary := traverse(t, "sub/doc.go", "package sub\n", m.Config{})

		require.Len(t, findings, 1)
		assert.Equal(t, "package sub", findings[0].Name)
		assert.False(t, summary.PackageDocumented)
	})

	t.Run("documented doc.go passes", func(t *testing.T) {
		src := `// Package sub does things.
package sub
`

		findings, summary := traverse(t, "sub/doc.go", src, m.Config{})
		assert.Empty(t, findings)
		assert.True(t, summary.PackageDocumented)
	})

	t.Run("ordinary files are never checked for package docs", func(t *testing.T) {
		findings, summary := traverse(t, "sub/other.go", "package sub\n", m.Config{})
		assert.Empty(t, findings)
		assert.Equal(t, "sub", summary.Package)
	})

	t.Run("qualified name suppression", func(t *testing.T) {
		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, "sub/doc.go", "package sub\n", parser.ParseComments)
		require.NoError(t, err)

		findings, _ := Traverse(TraverseArgs{
			FileSet:     fset,
			File:        file,
			Path:        "sub/doc.go",
			PackagePath: "example.com/proj/sub",
			Config:      m.Config{DontRequire: regexp.MustCompile(`example\.com/proj/sub`)},
		})
		assert.Empty(t, findings)
	})
}

func TestTraverse_BlankIdentifiers(t *testing.T) {
	src := `package p

type _ struct{}

var _ = 1

func _() {}
`

	findings, summary := traverse(t, "blank.go", src, m.Config{})
	assert.Empty(t, findings)
	assert.Zero(t, summary.Constructs)
}

func TestTraverse_FindingPositions(t *testing.T) {
	src := `package p

func run() {}
`

	findings, _ := traverse(t, "pos.go", src, m.Config{})

	require.Len(t, findings, 1)
	assert.Equal(t, 3, findings[0].Line)
	assert.Equal(t, 1, findings[0].Column)
	assert.Positive(t, findings[0].Offset)
}

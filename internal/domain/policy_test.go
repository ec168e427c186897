package domain

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	m "docreq.dev/pkg/docreq/internal/model"
)

func TestSuppress_Visibility(t *testing.T) {
	private := m.Construct{Kind: m.KindMethod, Name: "helper", Visibility: m.VisibilityPrivate}
	public := m.Construct{Kind: m.KindMethod, Name: "Helper", Visibility: m.VisibilityPublic}

	suppressed, rule := Suppress(private, m.Config{DontRequirePrivate: true})
	assert.True(t, suppressed)
	assert.Equal(t, RulePrivate, rule)

	suppressed, _ = Suppress(public, m.Config{DontRequirePrivate: true})
	assert.False(t, suppressed)

	suppressed, _ = Suppress(private, m.Config{})
	assert.False(t, suppressed)
}

func TestSuppress_PackageIgnoresVisibility(t *testing.T) {
	pkg := m.Construct{
		Kind:        m.KindPackage,
		Name:        "internalutil",
		Visibility:  m.VisibilityPrivate,
		PackagePath: "example.com/proj/internalutil",
	}

	suppressed, _ := Suppress(pkg, m.Config{DontRequirePrivate: true})
	assert.False(t, suppressed, "package clauses are exempt from the visibility rule")
}

func TestSuppress_KindToggles(t *testing.T) {
	tests := []struct {
		name string
		kind m.Kind
		cfg  m.Config
		rule string
	}{
		{name: "type toggle", kind: m.KindType, cfg: m.Config{DontRequireType: true}, rule: RuleType},
		{name: "field toggle", kind: m.KindField, cfg: m.Config{DontRequireField: true}, rule: RuleField},
		{name: "field toggle covers constants", kind: m.KindConstant, cfg: m.Config{DontRequireField: true}, rule: RuleField},
		{name: "method toggle", kind: m.KindMethod, cfg: m.Config{DontRequireMethod: true}, rule: RuleMethod},
		{name: "method toggle covers constructors", kind: m.KindConstructor, cfg: m.Config{DontRequireMethod: true}, rule: RuleMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := m.Construct{Kind: tt.kind, Name: "Thing", Visibility: m.VisibilityPublic}

			suppressed, rule := Suppress(c, tt.cfg)
			assert.True(t, suppressed)
			assert.Equal(t, tt.rule, rule)

			suppressed, _ = Suppress(c, m.Config{})
			assert.False(t, suppressed)
		})
	}
}

func TestSuppress_TogglesDoNotCrossKinds(t *testing.T) {
	c := m.Construct{Kind: m.KindType, Name: "Thing", Visibility: m.VisibilityPublic}

	suppressed, _ := Suppress(c, m.Config{DontRequireField: true, DontRequireMethod: true})
	assert.False(t, suppressed)
}

func TestSuppress_NameRegex(t *testing.T) {
	cfg := m.Config{DontRequire: regexp.MustCompile(`Generated`)}

	suppressed, rule := Suppress(m.Construct{
		Kind: m.KindType, Name: "GeneratedClient", Visibility: m.VisibilityPublic,
	}, cfg)
	assert.True(t, suppressed)
	assert.Equal(t, RuleName, rule)

	suppressed, _ = Suppress(m.Construct{
		Kind: m.KindType, Name: "Client", Visibility: m.VisibilityPublic,
	}, cfg)
	assert.False(t, suppressed)
}

func TestSuppress_NameRegexMatchesDisplayName(t *testing.T) {
	// A bare New factory is known by its constructed type's name.
	cfg := m.Config{DontRequire: regexp.MustCompile(`^Pool$`)}

	suppressed, rule := Suppress(m.Construct{
		Kind: m.KindConstructor, Name: "New", Owner: "Pool", Visibility: m.VisibilityPublic,
	}, cfg)
	assert.True(t, suppressed)
	assert.Equal(t, RuleName, rule)
}

func TestSuppress_PackageMatchesQualifiedName(t *testing.T) {
	cfg := m.Config{DontRequire: regexp.MustCompile(`example\.com/proj/gen`)}

	pkg := m.Construct{
		Kind:        m.KindPackage,
		Name:        "gen",
		Visibility:  m.VisibilityPublic,
		PackagePath: "example.com/proj/gen",
	}

	suppressed, rule := Suppress(pkg, cfg)
	assert.True(t, suppressed)
	assert.Equal(t, RuleName, rule)

	// The simple name alone does not reach the qualified pattern.
	simple := m.Config{DontRequire: regexp.MustCompile(`^gen$`)}

	suppressed, _ = Suppress(pkg, simple)
	assert.False(t, suppressed, "packages match their qualified name, not the simple one")

	// Every other kind still matches the simple name.
	typ := m.Construct{Kind: m.KindType, Name: "gen", Visibility: m.VisibilityPrivate}

	suppressed, _ = Suppress(typ, simple)
	assert.True(t, suppressed)
}

func TestSuppress_LayerOrder(t *testing.T) {
	// When several layers apply, the earliest one names the rule.
	c := m.Construct{Kind: m.KindField, Name: "count", Visibility: m.VisibilityPrivate}
	cfg := m.Config{
		DontRequirePrivate: true,
		DontRequireField:   true,
		DontRequire:        regexp.MustCompile(`count`),
	}

	suppressed, rule := Suppress(c, cfg)
	assert.True(t, suppressed)
	assert.Equal(t, RulePrivate, rule)
}

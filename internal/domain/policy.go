package domain

import (
	m "docreq.dev/pkg/docreq/internal/model"
)

// Named suppression rules. Every exempted construct is exempted by one of
// these, never by a catch-all.
const (
	RulePrivate          = "dont-require-private"
	RuleType             = "dont-require-type"
	RuleField            = "dont-require-field"
	RuleMethod           = "dont-require-method"
	RuleName             = "dont-require"
	RuleNoargConstructor = "dont-require-noarg-constructor"
	RuleTrivialProperty  = "dont-require-trivial-properties"
	RuleOverride         = "override-directive"
	RuleSerialVersionUID = "serial-version-uid"
)

// Suppress evaluates the layered suppression policy against one construct:
// visibility first, then construct kind, then the name regex. It never
// errors; an absent regex matches nothing. The returned rule names the
// policy that fired.
//
// The name regex matches the simple name for every construct kind except
// packages, which match their fully-qualified name. The asymmetry is
// deliberate and load-bearing for existing configurations.
func Suppress(c m.Construct, cfg m.Config) (bool, string) {
	if cfg.DontRequirePrivate && c.Kind != m.KindPackage && c.Visibility == m.VisibilityPrivate {
		return true, RulePrivate
	}

	switch c.Kind {
	case m.KindType:
		if cfg.DontRequireType {
			return true, RuleType
		}
	case m.KindField, m.KindConstant:
		if cfg.DontRequireField {
			return true, RuleField
		}
	case m.KindMethod, m.KindConstructor:
		if cfg.DontRequireMethod {
			return true, RuleMethod
		}
	}

	if cfg.DontRequire != nil && cfg.DontRequire.MatchString(nameTarget(c)) {
		return true, RuleName
	}

	return false, ""
}

func nameTarget(c m.Construct) string {
	if c.Kind == m.KindPackage {
		if c.PackagePath != "" {
			return c.PackagePath
		}

		return c.Name
	}

	return c.DisplayName()
}

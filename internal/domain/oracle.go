package domain

import (
	"go/ast"
	"go/token"
	"sort"
	"strings"
)

// docMarker delimits a documentation-style block comment. Only comments
// carrying it count during orphan recovery; direct parser attachment accepts
// any non-directive comment group.
const docMarker = "/**"

// IsDocumented reports whether a declaration is documented. The primary
// check is the parser's own doc association. When that fails, orphan
// recovery scans the comment table for documentation-style comments that
// lexically precede the node but were not attached to any node: the node's
// siblings and the file's comment groups are sorted by source position, and
// every comment strictly between the node and its nearest preceding
// non-comment sibling is a candidate. With no siblings (the file root),
// documented status rests solely on direct association.
func IsDocumented(doc *ast.CommentGroup, node ast.Node, siblings []ast.Node, comments []*ast.CommentGroup) bool {
	if HasDocText(doc) {
		return true
	}

	if node == nil {
		return false
	}

	for _, orphan := range orphanComments(node, siblings, comments) {
		if isDocStyle(orphan) {
			return true
		}
	}

	return false
}

// HasDocText reports whether the comment group contains documentation text.
// Groups made up solely of directive lines do not count, mirroring the
// go/doc convention that directives are not documentation.
func HasDocText(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}

	for _, c := range doc.List {
		text := strings.TrimPrefix(c.Text, "//")
		if text == c.Text || !isDirective(text) {
			return true
		}
	}

	return false
}

// Directives returns the directive lines of a comment group, without the
// leading slashes.
func Directives(docs ...*ast.CommentGroup) []string {
	var directives []string

	for _, doc := range docs {
		if doc == nil {
			continue
		}

		for _, c := range doc.List {
			text := strings.TrimPrefix(c.Text, "//")
			if text != c.Text && isDirective(text) {
				directives = append(directives, text)
			}
		}
	}

	return directives
}

// isDirective reports whether the comment text (after the slashes) is a
// tool directive such as go:generate or docreq:override.
func isDirective(text string) bool {
	if strings.HasPrefix(text, "line ") {
		return true
	}

	colon := strings.Index(text, ":")
	if colon <= 0 || colon+1 >= len(text) {
		return false
	}

	for _, r := range text[:colon] {
		if !('a' <= r && r <= 'z' || '0' <= r && r <= '9') {
			return false
		}
	}

	return true
}

// isDocStyle reports whether any comment of the group carries the
// two-asterisk documentation marker.
func isDocStyle(group *ast.CommentGroup) bool {
	for _, c := range group.List {
		if strings.HasPrefix(c.Text, docMarker) {
			return true
		}
	}

	return false
}

// orphanComments returns the comment groups lying strictly between node and
// its nearest preceding non-comment sibling. Comments positioned inside the
// preceding sibling are not orphans.
func orphanComments(node ast.Node, siblings []ast.Node, comments []*ast.CommentGroup) []*ast.CommentGroup {
	type event struct {
		pos     token.Pos
		node    ast.Node
		comment *ast.CommentGroup
	}

	events := make([]event, 0, len(siblings)+len(comments))
	for _, s := range siblings {
		events = append(events, event{pos: s.Pos(), node: s})
	}

	for _, c := range comments {
		events = append(events, event{pos: c.Pos(), comment: c})
	}

	sort.Slice(events, func(i, j int) bool { return events[i].pos < events[j].pos })

	nodeIdx := -1

	for i, e := range events {
		if e.node == node {
			nodeIdx = i
			break
		}
	}

	if nodeIdx < 0 {
		return nil
	}

	var orphans []*ast.CommentGroup

	var boundary ast.Node

	for i := nodeIdx - 1; i >= 0; i-- {
		if events[i].node != nil {
			boundary = events[i].node
			break
		}

		orphans = append(orphans, events[i].comment)
	}

	if boundary == nil {
		return orphans
	}

	// Drop candidates that actually sit inside the preceding sibling.
	kept := orphans[:0]

	for _, orphan := range orphans {
		if orphan.Pos() >= boundary.End() {
			kept = append(kept, orphan)
		}
	}

	return kept
}

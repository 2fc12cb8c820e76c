package lint

import (
	"strings"

	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/token"
)

// Inline directives are structural comments of the form
//
//	<!-- template-lint no-bare-strings=false -->
//	{{! template-lint enabled=false }}
//
// The key "enabled" addresses all rules at once; any other key addresses a
// single rule. A directive that is a direct child of the template root
// toggles reporting from its position to the end of the file (a later
// directive with the opposite value restores it). A directive nested deeper
// in the tree scopes to the single sibling node that immediately follows it.

const directivePrefix = "template-lint"

// allRulesKey marks blanket (enabled=...) directive settings.
const allRulesKey = "\x00all"

// toggleEvent is a root-level state change at a byte offset.
type toggleEvent struct {
	offset  int
	enabled bool
}

// scopedSetting applies to one sibling node's span, overriding toggles.
type scopedSetting struct {
	span    token.Span
	enabled bool
}

// directiveFilter resolves whether a rule is enabled at a given offset.
type directiveFilter struct {
	toggles map[string][]toggleEvent
	scoped  map[string][]scopedSetting
}

// newDirectiveFilter extracts all directives from the tree.
func newDirectiveFilter(tpl *ast.Template) *directiveFilter {
	f := &directiveFilter{
		toggles: make(map[string][]toggleEvent),
		scoped:  make(map[string][]scopedSetting),
	}
	f.collect(tpl.Body, true)
	return f
}

func (f *directiveFilter) collect(siblings []ast.Node, root bool) {
	for i, n := range siblings {
		if c, ok := n.(*ast.Comment); ok {
			if settings, isDirective := parseDirective(c.Value); isDirective {
				if root {
					for key, enabled := range settings {
						f.toggles[key] = append(f.toggles[key], toggleEvent{
							offset:  c.End().Offset,
							enabled: enabled,
						})
					}
				} else if target := nextSibling(siblings[i+1:]); target != nil {
					for key, enabled := range settings {
						f.scoped[key] = append(f.scoped[key], scopedSetting{
							span:    target.Span(),
							enabled: enabled,
						})
					}
				}
				continue
			}
		}

		switch node := n.(type) {
		case *ast.Element:
			f.collect(node.Children, false)
		case *ast.Block:
			f.collect(node.Program, false)
			f.collect(node.Inverse, false)
		}
	}
}

// nextSibling returns the first following sibling that carries content,
// skipping whitespace-only text and further comments.
func nextSibling(rest []ast.Node) ast.Node {
	for _, n := range rest {
		switch node := n.(type) {
		case *ast.Text:
			if strings.TrimSpace(node.Value) != "" {
				return n
			}
		case *ast.Comment:
			// skip
		default:
			return n
		}
	}
	return nil
}

// Allows reports whether messages for rule at the given node span should
// be kept. Rule-specific settings win over blanket ones; sibling scopes
// win over file-level toggles.
func (f *directiveFilter) Allows(rule string, span token.Span) bool {
	offset := span.Start.Offset

	for _, key := range []string{rule, allRulesKey} {
		for _, s := range f.scoped[key] {
			if s.span.Contains(offset) {
				return s.enabled
			}
		}
	}

	enabled := true
	latest := -1
	for _, key := range []string{rule, allRulesKey} {
		for _, ev := range f.toggles[key] {
			if ev.offset <= offset && ev.offset > latest {
				latest = ev.offset
				enabled = ev.enabled
			}
		}
	}
	return enabled
}

// Filter removes messages whose triggering node falls in a disabled scope.
func (f *directiveFilter) Filter(messages []RawMessage) []RawMessage {
	if len(f.toggles) == 0 && len(f.scoped) == 0 {
		return messages
	}
	kept := messages[:0]
	for _, m := range messages {
		if f.Allows(m.Rule, m.NodeSpan) {
			kept = append(kept, m)
		}
	}
	return kept
}

// parseDirective parses a comment body. It returns the per-key settings
// and whether the comment is a lint directive at all.
func parseDirective(comment string) (map[string]bool, bool) {
	fields := strings.Fields(comment)
	if len(fields) == 0 || fields[0] != directivePrefix {
		return nil, false
	}

	settings := make(map[string]bool)
	for _, pair := range fields[1:] {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		var enabled bool
		switch value {
		case "true":
			enabled = true
		case "false":
			enabled = false
		default:
			continue
		}
		if key == "enabled" {
			settings[allRulesKey] = enabled
		} else {
			settings[key] = enabled
		}
	}
	if len(settings) == 0 {
		return nil, false
	}
	return settings, true
}

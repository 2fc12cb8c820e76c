package rules

import (
	"strings"

	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/lint"
)

func init() {
	lint.Register(lint.RuleDef{
		Name:        "no-bare-strings",
		Description: "Disallow untranslated text in templates; user-facing strings belong in a translation layer.",
		New:         newBareStrings,
	})
}

const bareStringsMessage = "Non-translated string used"

// defaultBareAllowlist holds characters that do not count as translatable
// content on their own: punctuation, numerals and layout glyphs.
const defaultBareAllowlist = "0123456789(),.&+-=*/#%!?:[]{}|'\"`<>"

// translatable attributes checked in addition to text nodes.
var bareStringAttributes = map[string]bool{
	"title":       true,
	"alt":         true,
	"placeholder": true,
	"aria-label":  true,
}

// bareStringsOptions is the object form of the rule's configuration.
type bareStringsOptions struct {
	Allowlist []string `mapstructure:"allowlist"`
}

type bareStrings struct {
	ctx       *lint.Context
	allowlist string
}

func newBareStrings(ctx *lint.Context) lint.Rule {
	r := &bareStrings{ctx: ctx, allowlist: defaultBareAllowlist}

	switch opts := ctx.Options().(type) {
	case []any:
		// Legacy array form: the array replaces the allowlist.
		var chars []string
		for _, v := range opts {
			if s, ok := v.(string); ok {
				chars = append(chars, s)
			}
		}
		r.allowlist = strings.Join(chars, "")
	case map[string]any:
		var decoded bareStringsOptions
		if err := ctx.DecodeOptions(&decoded); err == nil && len(decoded.Allowlist) > 0 {
			r.allowlist = strings.Join(decoded.Allowlist, "")
		}
	}
	return r
}

func (r *bareStrings) Detect(n ast.Node) bool {
	switch node := n.(type) {
	case *ast.Text:
		return true
	case *ast.Attr:
		return bareStringAttributes[node.Name]
	}
	return false
}

func (r *bareStrings) Process(n ast.Node) {
	switch node := n.(type) {
	case *ast.Text:
		if r.bare(node.Value) {
			r.ctx.Log(bareStringsMessage)
		}
	case *ast.Attr:
		// Attribute values bound to a statement are not bare strings.
		if !strings.Contains(node.Value, "{{") && r.bare(node.Value) {
			r.ctx.Log(bareStringsMessage)
		}
	}
}

// bare reports whether s still carries content once whitespace and
// allowlisted characters are stripped.
func (r *bareStrings) bare(s string) bool {
	trimmed := strings.TrimFunc(s, func(c rune) bool {
		return c == ' ' || c == '\t' || c == '\n' || c == '\r' || strings.ContainsRune(r.allowlist, c)
	})
	return trimmed != ""
}

package rules

import (
	"strings"

	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/lint"
)

func init() {
	lint.Register(lint.RuleDef{
		Name:        "no-html-comments",
		Description: "Disallow HTML comments; they are shipped to the client, unlike statement comments.",
		New: func(ctx *lint.Context) lint.Rule {
			return &htmlComments{ctx: ctx}
		},
	})
}

type htmlComments struct {
	ctx *lint.Context
}

func (r *htmlComments) Detect(n ast.Node) bool {
	c, ok := n.(*ast.Comment)
	if !ok || !c.HTMLStyle {
		return false
	}
	// Lint directives are exempt even though they use HTML comment syntax.
	return !strings.HasPrefix(strings.TrimSpace(c.Value), "template-lint")
}

func (r *htmlComments) Process(ast.Node) {
	r.ctx.Log("HTML comment detected")
}

package rules

import (
	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/lint"
)

func init() {
	lint.Register(lint.RuleDef{
		Name:        "no-triple-curlies",
		Description: "Disallow {{{unescaped}}} statements, which bypass HTML escaping.",
		New: func(ctx *lint.Context) lint.Rule {
			return &tripleCurlies{ctx: ctx}
		},
	})
}

type tripleCurlies struct {
	ctx *lint.Context
}

func (r *tripleCurlies) Detect(n ast.Node) bool {
	m, ok := n.(*ast.Mustache)
	return ok && m.Unescaped
}

func (r *tripleCurlies) Process(ast.Node) {
	r.ctx.Log("Usage of triple curly brackets is unsafe")
}

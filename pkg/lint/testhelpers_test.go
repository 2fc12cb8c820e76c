package lint_test

import (
	"strings"

	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/lint"
)

// marqueeRule is a minimal plugin-style rule used across tests.
type marqueeRule struct {
	ctx *lint.Context
}

func (r *marqueeRule) Detect(n ast.Node) bool {
	el, ok := n.(*ast.Element)
	return ok && strings.EqualFold(el.Tag, "marquee")
}

func (r *marqueeRule) Process(ast.Node) {
	r.ctx.Log("marquee elements are not allowed")
}

func marqueeRuleDef() lint.RuleDef {
	return lint.RuleDef{
		Name:        "no-marquee",
		Description: "Disallow marquee elements.",
		New: func(ctx *lint.Context) lint.Rule {
			return &marqueeRule{ctx: ctx}
		},
	}
}

// panicRuleDef builds a rule that panics while processing any element.
func panicRuleDef(name string) lint.RuleDef {
	return lint.RuleDef{
		Name:        name,
		Description: "Test rule that fails on every element.",
		New: func(ctx *lint.Context) lint.Rule {
			return &panicRule{}
		},
	}
}

type panicRule struct{}

func (r *panicRule) Detect(n ast.Node) bool {
	_, ok := n.(*ast.Element)
	return ok
}

func (r *panicRule) Process(ast.Node) {
	panic("boom")
}

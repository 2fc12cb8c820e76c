package rules

import (
	"strings"

	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/lint"
)

func init() {
	lint.Register(lint.RuleDef{
		Name:        "link-rel-noopener",
		Description: "Require rel=\"noopener\" on links that open a new browsing context.",
		New: func(ctx *lint.Context) lint.Rule {
			return &relNoopener{ctx: ctx}
		},
	})
}

type relNoopener struct {
	ctx *lint.Context
}

func (r *relNoopener) Detect(n ast.Node) bool {
	el, ok := n.(*ast.Element)
	if !ok || !strings.EqualFold(el.Tag, "a") {
		return false
	}
	target := el.Attribute("target")
	return target != nil && target.Value == "_blank"
}

func (r *relNoopener) Process(n ast.Node) {
	el := n.(*ast.Element)
	rel := el.Attribute("rel")
	if rel == nil || !strings.Contains(rel.Value, "noopener") {
		r.ctx.Log(`links with target="_blank" must have rel="noopener"`)
	}
}

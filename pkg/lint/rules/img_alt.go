package rules

import (
	"strings"

	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/lint"
)

func init() {
	lint.Register(lint.RuleDef{
		Name:        "img-alt-attributes",
		Description: "Require img elements to carry an alt attribute for assistive technology.",
		New: func(ctx *lint.Context) lint.Rule {
			return &imgAlt{ctx: ctx}
		},
	})
}

type imgAlt struct {
	ctx *lint.Context
}

func (r *imgAlt) Detect(n ast.Node) bool {
	el, ok := n.(*ast.Element)
	return ok && strings.EqualFold(el.Tag, "img")
}

func (r *imgAlt) Process(n ast.Node) {
	el := n.(*ast.Element)
	alt := el.Attribute("alt")
	if alt == nil {
		r.ctx.Log("img tags must have an alt attribute")
	}
}

package rules

import (
	"fmt"

	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/lint"
)

func init() {
	lint.Register(lint.RuleDef{
		Name:        "no-duplicate-attributes",
		Description: "Disallow repeating an attribute name on the same element.",
		New: func(ctx *lint.Context) lint.Rule {
			return &duplicateAttributes{ctx: ctx}
		},
	})
}

type duplicateAttributes struct {
	ctx *lint.Context
}

func (r *duplicateAttributes) Detect(n ast.Node) bool {
	el, ok := n.(*ast.Element)
	return ok && len(el.Attributes) > 1
}

func (r *duplicateAttributes) Process(n ast.Node) {
	el := n.(*ast.Element)
	seen := make(map[string]bool, len(el.Attributes))
	for _, a := range el.Attributes {
		if seen[a.Name] {
			// Point at the repeated attribute, not the element.
			r.ctx.LogAt(fmt.Sprintf("Duplicate attribute '%s' found", a.Name), a)
		}
		seen[a.Name] = true
	}
}

package rules

import (
	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/lint"
)

func init() {
	lint.Register(lint.RuleDef{
		Name:        "self-closing-void-elements",
		Description: "Disallow the redundant self-closing slash on void elements such as br and img.",
		New: func(ctx *lint.Context) lint.Rule {
			return &selfClosingVoid{ctx: ctx}
		},
	})
}

type selfClosingVoid struct {
	ctx *lint.Context
}

func (r *selfClosingVoid) Detect(n ast.Node) bool {
	el, ok := n.(*ast.Element)
	return ok && el.Void && el.SelfClosing
}

func (r *selfClosingVoid) Process(n ast.Node) {
	el := n.(*ast.Element)
	r.ctx.Log("Self-closing a void element is redundant (<" + el.Tag + ">)")
}

package rules

import (
	"fmt"

	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/lint"
)

func init() {
	lint.Register(lint.RuleDef{
		Name:        "no-log",
		Description: "Disallow {{log}} statements left over from debugging.",
		New: func(ctx *lint.Context) lint.Rule {
			return &bannedStatement{ctx: ctx, path: "log"}
		},
	})
	lint.Register(lint.RuleDef{
		Name:        "no-debugger",
		Description: "Disallow {{debugger}} statements left over from debugging.",
		New: func(ctx *lint.Context) lint.Rule {
			return &bannedStatement{ctx: ctx, path: "debugger"}
		},
	})
}

// bannedStatement flags mustache and block statements with a given path.
type bannedStatement struct {
	ctx  *lint.Context
	path string
}

func (r *bannedStatement) Detect(n ast.Node) bool {
	switch node := n.(type) {
	case *ast.Mustache:
		return node.Path == r.path
	case *ast.Block:
		return node.Path == r.path
	}
	return false
}

func (r *bannedStatement) Process(ast.Node) {
	r.ctx.Log(fmt.Sprintf("Unexpected {{%s}} usage.", r.path))
}

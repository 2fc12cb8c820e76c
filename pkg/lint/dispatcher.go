package lint

import (
	"fmt"

	"github.com/leapstack-labs/templint/pkg/ast"
)

// ActiveRule pairs a rule definition with the options resolved for it.
type ActiveRule struct {
	Def     RuleDef
	Options any
}

// Dispatcher walks a parsed template once and runs every active rule
// against every node, accumulating raw messages.
type Dispatcher struct {
	ModuleID string
	Source   string
}

// ruleInstance is one ephemeral rule for the current run.
type ruleInstance struct {
	name string
	ctx  *Context
	rule Rule
}

// Run performs a single depth-first traversal in document order. For each
// node, each rule whose Detect predicate matches has Process invoked, in
// registration order. A panic inside one rule is recovered and converted
// into an internal-error message so the rest of the walk is unaffected.
func (d *Dispatcher) Run(tpl *ast.Template, active []ActiveRule) []RawMessage {
	var messages []RawMessage

	instances := make([]*ruleInstance, 0, len(active))
	for _, ar := range active {
		ctx := &Context{
			rule:     ar.Def.Name,
			moduleID: d.ModuleID,
			source:   d.Source,
			options:  ar.Options,
			messages: &messages,
		}
		instances = append(instances, &ruleInstance{
			name: ar.Def.Name,
			ctx:  ctx,
			rule: ar.Def.New(ctx),
		})
	}

	ast.Walk(tpl, func(n ast.Node) bool {
		if _, isRoot := n.(*ast.Template); isRoot {
			return true
		}
		for _, inst := range instances {
			inst.ctx.current = n
			d.apply(inst, n, &messages)
		}
		return true
	})

	return messages
}

// apply runs one rule against one node, isolating panics to that pair.
func (d *Dispatcher) apply(inst *ruleInstance, n ast.Node, messages *[]RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			*messages = append(*messages, RawMessage{
				Rule:     inst.name,
				Message:  fmt.Sprintf("Rule %q raised an internal error: %v", inst.name, r),
				Pos:      n.Pos(),
				NodeSpan: n.Span(),
			})
		}
	}()
	if inst.rule.Detect(n) {
		inst.rule.Process(n)
	}
}

package lint

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/token"
)

// Rule is the per-walk detection interface. One instance is created per
// (rule, walk) pair and discarded when the walk finishes.
type Rule interface {
	// Detect is a pure predicate over the node; it must not log or mutate.
	Detect(n ast.Node) bool

	// Process inspects a detected node and may log one or more messages
	// through the rule's Context.
	Process(n ast.Node)
}

// RuleDef describes a registered rule: its name and a constructor invoked
// at walk start with the run-scoped context.
type RuleDef struct {
	Name        string
	Description string
	New         func(ctx *Context) Rule
}

// Context is the per-run state handed to a rule instance. It carries the
// resolved options for the rule and the append-only message accumulator
// shared by all rules in the same run.
type Context struct {
	rule     string
	moduleID string
	source   string
	options  any
	current  ast.Node
	messages *[]RawMessage
}

// ModuleID returns the identifier of the module being verified.
func (c *Context) ModuleID() string { return c.moduleID }

// Options returns the raw configured options value for the rule. The value
// is whatever the configuration carried: bool, string, number, list or map.
func (c *Context) Options() any { return c.options }

// DecodeOptions decodes a map-shaped options value into out.
func (c *Context) DecodeOptions(out any) error {
	if c.options == nil {
		return nil
	}
	return mapstructure.Decode(c.options, out)
}

// Log records one message. The location defaults to the start of the node
// currently being processed; a rule may pass an explicit override position.
// Each call appends; messages are never overwritten within a run.
func (c *Context) Log(message string, pos ...token.Position) {
	msg := RawMessage{Rule: c.rule, Message: message}
	if c.current != nil {
		msg.Pos = c.current.Pos()
		msg.NodeSpan = c.current.Span()
		msg.Source = c.sourceFor(c.current.Span())
	}
	if len(pos) > 0 {
		msg.Pos = pos[0]
	}
	*c.messages = append(*c.messages, msg)
}

// LogAt records one message located at n, which is typically a child of the
// node currently being processed. Position, span and source slice all come
// from n, so the reported source matches the reported location.
func (c *Context) LogAt(message string, n ast.Node) {
	msg := RawMessage{Rule: c.rule, Message: message}
	if n != nil {
		msg.Pos = n.Pos()
		msg.NodeSpan = n.Span()
		msg.Source = c.sourceFor(n.Span())
	}
	*c.messages = append(*c.messages, msg)
}

func (c *Context) sourceFor(span token.Span) string {
	start, end := span.Start.Offset, span.End.Offset
	if start < 0 || end > len(c.source) || start > end {
		return ""
	}
	return c.source[start:end]
}

// Package ast defines the node tree produced by the template parser.
package ast

import "github.com/leapstack-labs/templint/pkg/token"

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position
	// End returns the position of the character immediately after the node.
	End() token.Position
	// Span returns the full source range covered by the node.
	Span() token.Span
}

// Template is the root node of a parsed source unit.
type Template struct {
	Body []Node
	Loc  token.Span
}

// Pos implements Node.
func (t *Template) Pos() token.Position { return t.Loc.Start }

// End implements Node.
func (t *Template) End() token.Position { return t.Loc.End }

// Span implements Node.
func (t *Template) Span() token.Span { return t.Loc }

// Element represents an HTML element with attributes and children.
type Element struct {
	Tag         string
	Attributes  []*Attr
	Children    []Node
	SelfClosing bool // written with "/>"
	Void        bool // void element per HTML spec (br, img, input, ...)
	Loc         token.Span
}

// Pos implements Node.
func (e *Element) Pos() token.Position { return e.Loc.Start }

// End implements Node.
func (e *Element) End() token.Position { return e.Loc.End }

// Span implements Node.
func (e *Element) Span() token.Span { return e.Loc }

// Attribute returns the attribute with the given name, or nil.
func (e *Element) Attribute(name string) *Attr {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Attr represents a single element attribute.
type Attr struct {
	Name   string
	Value  string // raw value, may embed mustache statements
	Quoted bool
	Loc    token.Span
}

// Pos implements Node.
func (a *Attr) Pos() token.Position { return a.Loc.Start }

// End implements Node.
func (a *Attr) End() token.Position { return a.Loc.End }

// Span implements Node.
func (a *Attr) Span() token.Span { return a.Loc }

// Text represents literal text content between elements and statements.
type Text struct {
	Value string
	Loc   token.Span
}

// Pos implements Node.
func (t *Text) Pos() token.Position { return t.Loc.Start }

// End implements Node.
func (t *Text) End() token.Position { return t.Loc.End }

// Span implements Node.
func (t *Text) Span() token.Span { return t.Loc }

// Mustache represents an inline statement such as {{name arg}} or {{{raw}}}.
type Mustache struct {
	Path      string   // first path segment, e.g. "log" in {{log "x"}}
	Params    []string // raw parameter text, split on whitespace
	Unescaped bool     // written with triple curlies
	Loc       token.Span
}

// Pos implements Node.
func (m *Mustache) Pos() token.Position { return m.Loc.Start }

// End implements Node.
func (m *Mustache) End() token.Position { return m.Loc.End }

// Span implements Node.
func (m *Mustache) Span() token.Span { return m.Loc }

// Block represents a block statement such as {{#if x}}...{{else}}...{{/if}}.
type Block struct {
	Path    string
	Params  []string
	Program []Node // main branch
	Inverse []Node // else branch, nil when absent
	Loc     token.Span
}

// Pos implements Node.
func (b *Block) Pos() token.Position { return b.Loc.Start }

// End implements Node.
func (b *Block) End() token.Position { return b.Loc.End }

// Span implements Node.
func (b *Block) Span() token.Span { return b.Loc }

// Comment represents a comment, either HTML-style (<!-- -->) or
// mustache-style ({{! }} and {{!-- --}}).
type Comment struct {
	Value     string // comment text without delimiters
	HTMLStyle bool
	Loc       token.Span
}

// Pos implements Node.
func (c *Comment) Pos() token.Position { return c.Loc.Start }

// End implements Node.
func (c *Comment) End() token.Position { return c.Loc.End }

// Span implements Node.
func (c *Comment) Span() token.Span { return c.Loc }

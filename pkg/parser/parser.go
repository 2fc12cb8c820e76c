// Package parser turns template source into an AST with per-node source
// locations. The grammar is HTML augmented with mustache statements:
// {{path args}}, {{{unescaped}}}, {{#block}}...{{else}}...{{/block}},
// {{! comments }} and <!-- html comments -->.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/token"
)

// Error is a parse failure with the position where it was detected.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Message)
}

// voidElements are HTML elements that never have closing tags.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// IsVoidElement reports whether tag is a void element per the HTML spec.
func IsVoidElement(tag string) bool {
	return voidElements[strings.ToLower(tag)]
}

// Parse parses template source into an AST.
func Parse(source string) (*ast.Template, error) {
	p := &parser{src: source, line: 1}
	start := p.pos()
	body, err := p.parseNodes(stopNone, "")
	if err != nil {
		return nil, err
	}
	return &ast.Template{
		Body: body,
		Loc:  token.Span{Start: start, End: p.pos()},
	}, nil
}

type parser struct {
	src  string
	off  int
	line int
	col  int
}

func (p *parser) pos() token.Position {
	return token.Position{Line: p.line, Column: p.col, Offset: p.off}
}

func (p *parser) eof() bool {
	return p.off >= len(p.src)
}

// advance consumes n bytes, updating line and column tracking.
func (p *parser) advance(n int) {
	for i := 0; i < n && p.off < len(p.src); i++ {
		if p.src[p.off] == '\n' {
			p.line++
			p.col = 0
		} else {
			p.col++
		}
		p.off++
	}
}

func (p *parser) rest() string {
	return p.src[p.off:]
}

func (p *parser) has(prefix string) bool {
	return strings.HasPrefix(p.rest(), prefix)
}

// consumeUntil advances past the next occurrence of delim and returns the
// text before it. Returns false if delim is not found.
func (p *parser) consumeUntil(delim string) (string, bool) {
	idx := strings.Index(p.rest(), delim)
	if idx < 0 {
		return "", false
	}
	text := p.rest()[:idx]
	p.advance(idx + len(delim))
	return text, true
}

// stopKind controls where a sibling run terminates.
type stopKind int

const (
	stopNone    stopKind = iota // top level, runs to EOF
	stopElement                 // until </name>
	stopBlock                   // until {{/name}} or {{else}}
)

// parseNodes parses sibling nodes until the terminator for the given stop
// kind. The terminator itself is not consumed.
func (p *parser) parseNodes(stop stopKind, name string) ([]ast.Node, error) {
	var nodes []ast.Node
	for !p.eof() {
		switch {
		case p.has("<!--"):
			n, err := p.parseHTMLComment()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		case p.has("</"):
			if stop == stopElement && p.closingTagMatches(name) {
				return nodes, nil
			}
			return nil, &Error{Message: fmt.Sprintf("unexpected closing tag %q", p.peekClosingTag()), Pos: p.pos()}
		case p.has("<") && p.startsTag():
			n, err := p.parseElement()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		case p.has("{{!"):
			n, err := p.parseMustacheComment()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		case p.has("{{/"), p.has("{{else"):
			if stop == stopBlock {
				return nodes, nil
			}
			if stop == stopElement {
				return nil, &Error{Message: fmt.Sprintf("unclosed element <%s>", name), Pos: p.pos()}
			}
			return nil, &Error{Message: "unexpected block terminator", Pos: p.pos()}
		case p.has("{{#"):
			n, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		case p.has("{{"):
			n, err := p.parseMustache()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		default:
			nodes = append(nodes, p.parseText())
		}
	}
	switch stop {
	case stopElement:
		return nil, &Error{Message: fmt.Sprintf("unclosed element <%s>", name), Pos: p.pos()}
	case stopBlock:
		return nil, &Error{Message: fmt.Sprintf("unclosed block {{#%s}}", name), Pos: p.pos()}
	}
	return nodes, nil
}

func (p *parser) startsTag() bool {
	r := p.rest()
	return len(r) > 1 && isTagNameByte(r[1])
}

func isTagNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func (p *parser) closingTagMatches(tag string) bool {
	return strings.EqualFold(p.peekClosingTag(), tag)
}

func (p *parser) peekClosingTag() string {
	r := p.rest()[2:] // past "</"
	end := 0
	for end < len(r) && isTagNameByte(r[end]) {
		end++
	}
	return r[:end]
}

func (p *parser) parseText() ast.Node {
	start := p.pos()
	var b strings.Builder
	for !p.eof() {
		if p.has("<!--") || p.has("{{") || (p.has("<") && (p.startsTag() || p.has("</"))) {
			break
		}
		b.WriteByte(p.src[p.off])
		p.advance(1)
	}
	return &ast.Text{Value: b.String(), Loc: token.Span{Start: start, End: p.pos()}}
}

func (p *parser) parseHTMLComment() (ast.Node, error) {
	start := p.pos()
	p.advance(len("<!--"))
	text, ok := p.consumeUntil("-->")
	if !ok {
		return nil, &Error{Message: "unterminated HTML comment", Pos: start}
	}
	return &ast.Comment{Value: text, HTMLStyle: true, Loc: token.Span{Start: start, End: p.pos()}}, nil
}

func (p *parser) parseMustacheComment() (ast.Node, error) {
	start := p.pos()
	var text string
	var ok bool
	if p.has("{{!--") {
		p.advance(len("{{!--"))
		text, ok = p.consumeUntil("--}}")
	} else {
		p.advance(len("{{!"))
		text, ok = p.consumeUntil("}}")
	}
	if !ok {
		return nil, &Error{Message: "unterminated comment statement", Pos: start}
	}
	return &ast.Comment{Value: text, Loc: token.Span{Start: start, End: p.pos()}}, nil
}

func (p *parser) parseMustache() (ast.Node, error) {
	start := p.pos()
	unescaped := p.has("{{{")
	openDelim, closeDelim := "{{", "}}"
	if unescaped {
		openDelim, closeDelim = "{{{", "}}}"
	}
	p.advance(len(openDelim))
	inner, ok := p.consumeUntil(closeDelim)
	if !ok {
		return nil, &Error{Message: "unterminated mustache statement", Pos: start}
	}
	path, params := splitPath(inner)
	return &ast.Mustache{
		Path:      path,
		Params:    params,
		Unescaped: unescaped,
		Loc:       token.Span{Start: start, End: p.pos()},
	}, nil
}

func (p *parser) parseBlock() (ast.Node, error) {
	start := p.pos()
	p.advance(len("{{#"))
	inner, ok := p.consumeUntil("}}")
	if !ok {
		return nil, &Error{Message: "unterminated block statement", Pos: start}
	}
	path, params := splitPath(inner)
	if path == "" {
		return nil, &Error{Message: "block statement missing path", Pos: start}
	}

	program, err := p.parseNodes(stopBlock, path)
	if err != nil {
		return nil, err
	}

	var inverse []ast.Node
	if p.has("{{else") {
		if _, ok := p.consumeUntil("}}"); !ok {
			return nil, &Error{Message: "unterminated else statement", Pos: p.pos()}
		}
		inverse, err = p.parseNodes(stopBlock, path)
		if err != nil {
			return nil, err
		}
	}

	if !p.has("{{/") {
		return nil, &Error{Message: fmt.Sprintf("unclosed block {{#%s}}", path), Pos: p.pos()}
	}
	p.advance(len("{{/"))
	closePath, ok := p.consumeUntil("}}")
	if !ok {
		return nil, &Error{Message: fmt.Sprintf("unterminated closing statement for {{#%s}}", path), Pos: p.pos()}
	}
	if strings.TrimSpace(closePath) != path {
		return nil, &Error{
			Message: fmt.Sprintf("closing {{/%s}} does not match {{#%s}}", strings.TrimSpace(closePath), path),
			Pos:     start,
		}
	}

	return &ast.Block{
		Path:    path,
		Params:  params,
		Program: program,
		Inverse: inverse,
		Loc:     token.Span{Start: start, End: p.pos()},
	}, nil
}

func (p *parser) parseElement() (ast.Node, error) {
	start := p.pos()
	p.advance(1) // consume '<'

	tagStart := p.off
	for !p.eof() && isTagNameByte(p.src[p.off]) {
		p.advance(1)
	}
	tag := p.src[tagStart:p.off]

	attrs, selfClosing, err := p.parseAttributes(tag, start)
	if err != nil {
		return nil, err
	}

	el := &ast.Element{
		Tag:         tag,
		Attributes:  attrs,
		SelfClosing: selfClosing,
		Void:        IsVoidElement(tag),
	}

	if !selfClosing && !el.Void {
		children, err := p.parseNodes(stopElement, tag)
		if err != nil {
			return nil, err
		}
		el.Children = children

		// consume the matching closing tag
		p.advance(len("</") + len(p.peekClosingTag()))
		p.skipSpace()
		if p.eof() || p.src[p.off] != '>' {
			return nil, &Error{Message: fmt.Sprintf("malformed closing tag for <%s>", tag), Pos: p.pos()}
		}
		p.advance(1)
	}

	el.Loc = token.Span{Start: start, End: p.pos()}
	return el, nil
}

func (p *parser) parseAttributes(tag string, elStart token.Position) ([]*ast.Attr, bool, error) {
	var attrs []*ast.Attr
	for {
		p.skipSpace()
		if p.eof() {
			return nil, false, &Error{Message: fmt.Sprintf("unterminated open tag <%s>", tag), Pos: elStart}
		}
		switch {
		case p.has("/>"):
			p.advance(2)
			return attrs, true, nil
		case p.src[p.off] == '>':
			p.advance(1)
			return attrs, false, nil
		}

		a, err := p.parseAttr(tag, elStart)
		if err != nil {
			return nil, false, err
		}
		attrs = append(attrs, a)
	}
}

func (p *parser) parseAttr(tag string, elStart token.Position) (*ast.Attr, error) {
	start := p.pos()
	nameStart := p.off
	for !p.eof() && !isAttrBoundary(p.src[p.off]) {
		p.advance(1)
	}
	name := p.src[nameStart:p.off]
	if name == "" {
		return nil, &Error{Message: fmt.Sprintf("malformed attribute in <%s>", tag), Pos: start}
	}

	attr := &ast.Attr{Name: name}
	if !p.eof() && p.src[p.off] == '=' {
		p.advance(1)
		if p.eof() {
			return nil, &Error{Message: fmt.Sprintf("unterminated open tag <%s>", tag), Pos: elStart}
		}
		if q := p.src[p.off]; q == '"' || q == '\'' {
			p.advance(1)
			value, ok := p.consumeUntil(string(q))
			if !ok {
				return nil, &Error{Message: fmt.Sprintf("unterminated attribute value for %q", name), Pos: start}
			}
			attr.Value = value
			attr.Quoted = true
		} else {
			valStart := p.off
			for !p.eof() && !isAttrBoundary(p.src[p.off]) {
				p.advance(1)
			}
			attr.Value = p.src[valStart:p.off]
		}
	}
	attr.Loc = token.Span{Start: start, End: p.pos()}
	return attr, nil
}

func isAttrBoundary(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '=', '>', '/':
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.off] {
		case ' ', '\t', '\n', '\r':
			p.advance(1)
		default:
			return
		}
	}
}

// splitPath splits mustache inner text into a path and raw params.
func splitPath(inner string) (string, []string) {
	fields := strings.Fields(inner)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

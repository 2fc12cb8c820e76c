package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/parser"
)

func TestParse_Elements(t *testing.T) {
	tpl, err := parser.Parse(`<h2 class="title">Here too!!</h2>` + "\n" + `<div>Bare strings are bad...</div>` + "\n")
	require.NoError(t, err)
	require.Len(t, tpl.Body, 4) // h2, newline text, div, newline text

	h2, ok := tpl.Body[0].(*ast.Element)
	require.True(t, ok)
	assert.Equal(t, "h2", h2.Tag)
	require.Len(t, h2.Attributes, 1)
	assert.Equal(t, "class", h2.Attributes[0].Name)
	assert.Equal(t, "title", h2.Attributes[0].Value)

	require.Len(t, h2.Children, 1)
	text, ok := h2.Children[0].(*ast.Text)
	require.True(t, ok)
	assert.Equal(t, "Here too!!", text.Value)
	assert.Equal(t, 1, text.Pos().Line)
	assert.Equal(t, 18, text.Pos().Column)

	div, ok := tpl.Body[2].(*ast.Element)
	require.True(t, ok)
	assert.Equal(t, "div", div.Tag)
	assert.Equal(t, 2, div.Pos().Line)
	assert.Equal(t, 0, div.Pos().Column)
}

func TestParse_TextPositions(t *testing.T) {
	tpl, err := parser.Parse("<h2>Here too!!</h2>\n<div>Bare strings are bad...</div>\n")
	require.NoError(t, err)

	h2 := tpl.Body[0].(*ast.Element)
	text := h2.Children[0].(*ast.Text)
	assert.Equal(t, 1, text.Pos().Line)
	assert.Equal(t, 4, text.Pos().Column)

	div := tpl.Body[2].(*ast.Element)
	text = div.Children[0].(*ast.Text)
	assert.Equal(t, 2, text.Pos().Line)
	assert.Equal(t, 5, text.Pos().Column)
}

func TestParse_Mustache(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		path      string
		params    []string
		unescaped bool
	}{
		{
			name:   "simple",
			source: "{{greeting}}",
			path:   "greeting",
		},
		{
			name:   "with params",
			source: `{{log "message" level}}`,
			path:   "log",
			params: []string{`"message"`, "level"},
		},
		{
			name:      "triple curlies",
			source:    "{{{rawHTML}}}",
			path:      "rawHTML",
			unescaped: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := parser.Parse(tt.source)
			require.NoError(t, err)
			require.Len(t, tpl.Body, 1)

			m, ok := tpl.Body[0].(*ast.Mustache)
			require.True(t, ok)
			assert.Equal(t, tt.path, m.Path)
			assert.Equal(t, tt.params, m.Params)
			assert.Equal(t, tt.unescaped, m.Unescaped)
		})
	}
}

func TestParse_Block(t *testing.T) {
	tpl, err := parser.Parse("{{#if loggedIn}}<p>hi</p>{{else}}{{login-form}}{{/if}}")
	require.NoError(t, err)
	require.Len(t, tpl.Body, 1)

	block, ok := tpl.Body[0].(*ast.Block)
	require.True(t, ok)
	assert.Equal(t, "if", block.Path)
	assert.Equal(t, []string{"loggedIn"}, block.Params)
	require.Len(t, block.Program, 1)
	require.Len(t, block.Inverse, 1)
}

func TestParse_Comments(t *testing.T) {
	tpl, err := parser.Parse("<!-- html -->{{! stache }}{{!-- fancy --}}")
	require.NoError(t, err)
	require.Len(t, tpl.Body, 3)

	html := tpl.Body[0].(*ast.Comment)
	assert.True(t, html.HTMLStyle)
	assert.Equal(t, " html ", html.Value)

	stache := tpl.Body[1].(*ast.Comment)
	assert.False(t, stache.HTMLStyle)
	assert.Equal(t, " stache ", stache.Value)

	fancy := tpl.Body[2].(*ast.Comment)
	assert.Equal(t, " fancy ", fancy.Value)
}

func TestParse_VoidAndSelfClosing(t *testing.T) {
	tpl, err := parser.Parse(`<img src="a.png"><br/><input value=x>`)
	require.NoError(t, err)
	require.Len(t, tpl.Body, 3)

	img := tpl.Body[0].(*ast.Element)
	assert.True(t, img.Void)
	assert.False(t, img.SelfClosing)

	br := tpl.Body[1].(*ast.Element)
	assert.True(t, br.Void)
	assert.True(t, br.SelfClosing)

	input := tpl.Body[2].(*ast.Element)
	require.Len(t, input.Attributes, 1)
	assert.Equal(t, "x", input.Attributes[0].Value)
	assert.False(t, input.Attributes[0].Quoted)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "unclosed element",
			source: "<div>",
			want:   "unclosed element <div>",
		},
		{
			name:   "unexpected closing tag",
			source: "</div>",
			want:   "unexpected closing tag",
		},
		{
			name:   "unterminated mustache",
			source: "{{foo",
			want:   "unterminated mustache",
		},
		{
			name:   "unterminated comment",
			source: "<!-- oops",
			want:   "unterminated HTML comment",
		},
		{
			name:   "mismatched block close",
			source: "{{#if x}}{{/each}}",
			want:   "does not match",
		},
		{
			name:   "unclosed block",
			source: "{{#if x}}<p>hi</p>",
			want:   "unclosed block {{#if}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.source)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			var perr *parser.Error
			require.ErrorAs(t, err, &perr)
			assert.True(t, perr.Pos.IsValid())
		})
	}
}

func TestParse_NestedElements(t *testing.T) {
	tpl, err := parser.Parse("<ul><li>{{name}}</li><li><a href={{url}}>x</a></li></ul>")
	require.NoError(t, err)

	ul := tpl.Body[0].(*ast.Element)
	require.Len(t, ul.Children, 2)
	li := ul.Children[1].(*ast.Element)
	a := li.Children[0].(*ast.Element)
	assert.Equal(t, "a", a.Tag)
	assert.Equal(t, "{{url}}", a.Attribute("href").Value)
}

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/templint/pkg/lint"
	_ "github.com/leapstack-labs/templint/pkg/lint/rules"
)

// run lints source with a single rule enabled, with optional options.
func run(t *testing.T, rule string, options any, source string) []lint.Finding {
	t.Helper()
	config := lint.NewConfig()
	if options == nil {
		config.Rules[rule] = true
	} else {
		config.Rules[rule] = options
	}
	l, err := lint.New(lint.Options{Config: config})
	require.NoError(t, err)
	return l.Verify(source, "app/templates/test")
}

func messages(findings []lint.Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Message
	}
	return out
}

func TestNoBareStrings(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"text content", "<div>Hello</div>", 1},
		{"mustache only", "<div>{{greeting}}</div>", 0},
		{"punctuation only", "<div>...!?</div>", 0},
		{"whitespace only", "<div>   \n\t</div>", 0},
		{"numbers only", "<div>1234</div>", 0},
		{"translatable attribute", `<img src="a.png" alt="A picture">`, 1},
		{"bound attribute", `<img src="a.png" alt="{{description}}">`, 0},
		{"non-translatable attribute", `<div class="hero">{{x}}</div>`, 0},
		{"multiple texts", "<p>one</p><p>two</p>", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := run(t, "no-bare-strings", nil, tt.source)
			assert.Len(t, findings, tt.want, messages(findings))
		})
	}
}

func TestNoBareStrings_AllowlistArrayForm(t *testing.T) {
	findings := run(t, "no-bare-strings", []any{"&", "~"}, "<div>&~&</div>")
	assert.Empty(t, findings)

	// the array form replaces the default allowlist entirely
	findings = run(t, "no-bare-strings", []any{"&"}, "<div>...</div>")
	assert.Len(t, findings, 1)
}

func TestNoBareStrings_AllowlistObjectForm(t *testing.T) {
	options := map[string]any{"allowlist": []any{"&", "~"}}
	assert.Empty(t, run(t, "no-bare-strings", options, "<div>&~</div>"))
	assert.Len(t, run(t, "no-bare-strings", options, "<div>words</div>"), 1)
}

func TestNoHTMLComments(t *testing.T) {
	findings := run(t, "no-html-comments", nil, "<!-- remove me -->")
	require.Len(t, findings, 1)
	assert.Equal(t, "HTML comment detected", findings[0].Message)

	// mustache comments are allowed
	assert.Empty(t, run(t, "no-html-comments", nil, "{{! fine }}{{!-- also fine --}}"))
}

func TestNoTripleCurlies(t *testing.T) {
	findings := run(t, "no-triple-curlies", nil, "<div>{{{html}}}</div>")
	require.Len(t, findings, 1)
	assert.Equal(t, "Usage of triple curly brackets is unsafe", findings[0].Message)

	assert.Empty(t, run(t, "no-triple-curlies", nil, "<div>{{safe}}</div>"))
}

func TestBannedStatements(t *testing.T) {
	findings := run(t, "no-log", nil, `{{log "state"}}`)
	require.Len(t, findings, 1)
	assert.Equal(t, "Unexpected {{log}} usage.", findings[0].Message)

	findings = run(t, "no-debugger", nil, "{{debugger}}")
	require.Len(t, findings, 1)
	assert.Equal(t, "Unexpected {{debugger}} usage.", findings[0].Message)

	// paths that merely contain the name do not match
	assert.Empty(t, run(t, "no-log", nil, "{{logger}}"))
}

func TestImgAltAttributes(t *testing.T) {
	findings := run(t, "img-alt-attributes", nil, `<img src="a.png">`)
	require.Len(t, findings, 1)
	assert.Equal(t, "img tags must have an alt attribute", findings[0].Message)

	assert.Empty(t, run(t, "img-alt-attributes", nil, `<img src="a.png" alt="a">`))
	assert.Empty(t, run(t, "img-alt-attributes", nil, `<img src="a.png" alt="">`))
}

func TestSelfClosingVoidElements(t *testing.T) {
	findings := run(t, "self-closing-void-elements", nil, "<br/>")
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "<br>")

	assert.Empty(t, run(t, "self-closing-void-elements", nil, "<br>"))
	// self-closing is meaningful on non-void elements
	assert.Empty(t, run(t, "self-closing-void-elements", nil, "<circle/>"))
}

func TestLinkRelNoopener(t *testing.T) {
	findings := run(t, "link-rel-noopener", nil, `<a href="x" target="_blank">out</a>`)
	require.Len(t, findings, 1)
	assert.Equal(t, `links with target="_blank" must have rel="noopener"`, findings[0].Message)

	assert.Empty(t, run(t, "link-rel-noopener", nil,
		`<a href="x" target="_blank" rel="noopener">out</a>`))
	assert.Empty(t, run(t, "link-rel-noopener", nil,
		`<a href="x" target="_blank" rel="noopener noreferrer">out</a>`))
	assert.Empty(t, run(t, "link-rel-noopener", nil, `<a href="x">in</a>`))
}

func TestNoDuplicateAttributes(t *testing.T) {
	findings := run(t, "no-duplicate-attributes", nil, `<div class="a" id="b" class="c"></div>`)
	require.Len(t, findings, 1)
	assert.Equal(t, "Duplicate attribute 'class' found", findings[0].Message)
	// the finding points at the repeated attribute, and the source
	// slice matches the reported location
	assert.Equal(t, 1, findings[0].Line)
	assert.Greater(t, findings[0].Column, 10)
	assert.Equal(t, `class="c"`, findings[0].Source)

	assert.Empty(t, run(t, "no-duplicate-attributes", nil, `<div class="a" id="b"></div>`))
}

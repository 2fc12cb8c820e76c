package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/templint/pkg/lint"
	_ "github.com/leapstack-labs/templint/pkg/lint/rules"
)

func bareStringsLinter(t *testing.T) *lint.Linter {
	t.Helper()
	config := lint.NewConfig()
	config.Rules["no-bare-strings"] = true
	return newLinter(t, config)
}

func TestDirectives_DisableRuleForFile(t *testing.T) {
	l := bareStringsLinter(t)
	source := "<!-- template-lint no-bare-strings=false -->\n<div>ignored</div>\n<p>also ignored</p>\n"
	assert.Empty(t, l.Verify(source, "m"))
}

func TestDirectives_DisableAllRules(t *testing.T) {
	config := lint.NewConfig()
	config.Rules["no-bare-strings"] = true
	config.Rules["no-triple-curlies"] = true
	l := newLinter(t, config)

	source := "{{! template-lint enabled=false }}<div>text</div>{{{raw}}}"
	assert.Empty(t, l.Verify(source, "m"))
}

func TestDirectives_ReEnableMidFile(t *testing.T) {
	l := bareStringsLinter(t)
	source := "<!-- template-lint no-bare-strings=false -->\n" +
		"<div>off</div>\n" +
		"<!-- template-lint no-bare-strings=true -->\n" +
		"<div>on again</div>\n"

	findings := l.Verify(source, "m")
	require.Len(t, findings, 1)
	assert.Equal(t, "on again", findings[0].Source)
}

func TestDirectives_SiblingScope(t *testing.T) {
	l := bareStringsLinter(t)
	source := "<section>" +
		"{{! template-lint no-bare-strings=false }}" +
		"<p>skipped</p>" +
		"<p>reported</p>" +
		"</section>"

	findings := l.Verify(source, "m")
	require.Len(t, findings, 1)
	assert.Equal(t, "reported", findings[0].Source)
}

func TestDirectives_RuleSettingOverridesBlanket(t *testing.T) {
	config := lint.NewConfig()
	config.Rules["no-bare-strings"] = true
	config.Rules["no-triple-curlies"] = true
	l := newLinter(t, config)

	source := "<!-- template-lint enabled=false -->\n" +
		"<!-- template-lint no-triple-curlies=true -->\n" +
		"<div>quiet</div>{{{raw}}}"

	findings := l.Verify(source, "m")
	require.Len(t, findings, 1)
	assert.Equal(t, "no-triple-curlies", findings[0].Rule)
}

func TestDirectives_NonDirectiveCommentsUntouched(t *testing.T) {
	config := lint.NewConfig()
	config.Rules["no-html-comments"] = true
	l := newLinter(t, config)

	findings := l.Verify("<!-- plain comment -->", "m")
	require.Len(t, findings, 1)
	assert.Equal(t, "no-html-comments", findings[0].Rule)

	// directive comments are exempt from no-html-comments
	assert.Empty(t, l.Verify("<!-- template-lint no-bare-strings=false -->", "m"))
}

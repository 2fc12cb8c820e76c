package lint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "unknown", Severity(7).String())
}

func TestParseSeverity(t *testing.T) {
	s, ok := ParseSeverity("error")
	assert.True(t, ok)
	assert.Equal(t, SeverityError, s)

	s, ok = ParseSeverity("warning")
	assert.True(t, ok)
	assert.Equal(t, SeverityWarning, s)

	_, ok = ParseSeverity("hint")
	assert.False(t, ok)
}

func TestSeverityJSONValues(t *testing.T) {
	// the wire contract fixes error=2 and warning=1
	out, err := json.Marshal(Finding{Severity: SeverityError})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"severity":2`)

	out, err = json.Marshal(Finding{Severity: SeverityWarning})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"severity":1`)
}

package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveMode(t *testing.T) {
	buf := &bytes.Buffer{}

	// auto falls back to markdown when the writer is not a terminal
	r := NewRenderer(buf, buf, ModeAuto)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())

	r = NewRenderer(buf, buf, ModeJSON)
	assert.Equal(t, ModeJSON, r.EffectiveMode())

	// unknown modes fall back to auto
	r = NewRenderer(buf, buf, Mode("bogus"))
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestRendererJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewRenderer(buf, buf, ModeJSON)

	require.NoError(t, r.JSON(map[string]int{"count": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["count"])
}

func TestRendererPlainOutputWhenPiped(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewRenderer(buf, buf, ModeText)

	r.Println(r.Styles().Error.Render("plain"))
	// piped output must not contain ANSI escape sequences
	assert.Equal(t, "plain\n", buf.String())
}

func TestRendererHeader(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewRenderer(buf, buf, ModeMarkdown)

	r.Header(1, "Title")
	r.Header(2, "Section")
	assert.Equal(t, "# Title\n## Section\n", buf.String())
}

package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_RuleSetting(t *testing.T) {
	cfg := NewConfig()
	cfg.Rules["enabled"] = true
	cfg.Rules["disabled"] = false
	cfg.Rules["with-options"] = map[string]any{"allowlist": []any{"&"}}
	cfg.Rules["nil-value"] = nil

	options, enabled := cfg.RuleSetting("enabled")
	assert.True(t, enabled)
	assert.Nil(t, options)

	_, enabled = cfg.RuleSetting("disabled")
	assert.False(t, enabled)

	options, enabled = cfg.RuleSetting("with-options")
	assert.True(t, enabled)
	assert.NotNil(t, options)

	_, enabled = cfg.RuleSetting("nil-value")
	assert.False(t, enabled)

	_, enabled = cfg.RuleSetting("unknown")
	assert.False(t, enabled)
}

func TestConfig_MergeRulesPerKey(t *testing.T) {
	base := NewConfig()
	base.Rules["a"] = true
	base.Rules["b"] = true
	base.Ignore = []string{"one"}

	overlay := NewConfig()
	overlay.Rules["b"] = false
	overlay.Rules["c"] = true

	base.merge(overlay)

	assert.Equal(t, true, base.Rules["a"])
	assert.Equal(t, false, base.Rules["b"])
	assert.Equal(t, true, base.Rules["c"])
	// overlay did not set ignore, so the base list survives
	assert.Equal(t, []string{"one"}, base.Ignore)
}

func TestConfig_MergeReplacesLists(t *testing.T) {
	base := NewConfig()
	base.Pending = []PendingEntry{{ModuleID: "old"}}
	base.Ignore = []string{"old/**"}

	overlay := NewConfig()
	overlay.Pending = []PendingEntry{{ModuleID: "new"}}
	overlay.Ignore = []string{"new/**"}

	base.merge(overlay)

	assert.Equal(t, []PendingEntry{{ModuleID: "new"}}, base.Pending)
	assert.Equal(t, []string{"new/**"}, base.Ignore)
}

func TestConfig_CloneIndependence(t *testing.T) {
	cfg := NewConfig()
	cfg.Rules["a"] = true
	cfg.Ignore = []string{"x"}

	clone := cfg.Clone()
	clone.Rules["a"] = false
	clone.Ignore[0] = "y"

	assert.Equal(t, true, cfg.Rules["a"])
	assert.Equal(t, []string{"x"}, cfg.Ignore)
}

func TestPendingEntry_YAMLRoundTrip(t *testing.T) {
	entries := []PendingEntry{
		{ModuleID: "app/templates/application"},
		{ModuleID: "app/templates/index", Only: []string{"no-bare-strings"}},
	}

	out, err := yaml.Marshal(entries)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "- app/templates/application\n")
	assert.Contains(t, text, "moduleId: app/templates/index")
	assert.Contains(t, text, "only:")
}

package rules

import "github.com/leapstack-labs/templint/pkg/lint"

func init() {
	recommended := lint.NewConfig()
	recommended.Rules = map[string]any{
		"no-bare-strings":            true,
		"no-html-comments":           true,
		"no-triple-curlies":          true,
		"no-log":                     true,
		"no-debugger":                true,
		"img-alt-attributes":         true,
		"self-closing-void-elements": true,
		"link-rel-noopener":          true,
		"no-duplicate-attributes":    true,
	}
	lint.RegisterConfig("recommended", recommended)
}

//go:build property
// +build property

package lint_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/leapstack-labs/templint/pkg/lint"
	_ "github.com/leapstack-labs/templint/pkg/lint/rules"
)

// templateGen assembles well-formed template sources from safe fragments.
func templateGen() gopter.Gen {
	fragment := gen.OneConstOf(
		"<div>hello</div>",
		"<p>{{name}}</p>",
		"{{{rawValue}}}",
		"<img src=\"a.png\">",
		"<img src=\"a.png\" alt=\"a\">",
		"<!-- a note -->",
		"{{#if ok}}yes{{else}}no{{/if}}",
		"<a href=\"x\" target=\"_blank\">link</a>",
		"{{log \"dbg\"}}",
		"\n",
	)
	return gen.SliceOf(fragment).Map(func(parts []string) string {
		return strings.Join(parts, "")
	})
}

func recommendedLinter(t *testing.T) *lint.Linter {
	t.Helper()
	config := lint.NewConfig()
	config.Extends = []string{"recommended"}
	l, err := lint.New(lint.Options{Config: config})
	if err != nil {
		t.Fatalf("building linter: %v", err)
	}
	return l
}

func TestVerifyProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	l := recommendedLinter(t)

	// Property: verifying the same source twice yields identical findings.
	properties.Property("verify is idempotent", prop.ForAll(
		func(source string) bool {
			first := l.Verify(source, "app/templates/generated")
			second := l.Verify(source, "app/templates/generated")
			if len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
			}
			return true
		},
		templateGen(),
	))

	// Property: every finding carries a defined severity and the module id
	// it was produced for.
	properties.Property("findings are well formed", prop.ForAll(
		func(source string) bool {
			for _, f := range l.Verify(source, "app/templates/generated") {
				if f.Severity != lint.SeverityError && f.Severity != lint.SeverityWarning {
					return false
				}
				if f.ModuleID != "app/templates/generated" {
					return false
				}
				if f.Line < 0 || f.Column < 0 {
					return false
				}
			}
			return true
		},
		templateGen(),
	))

	properties.TestingRun(t)
}

func TestPendingProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	config := lint.NewConfig()
	config.Extends = []string{"recommended"}
	config.Pending = []lint.PendingEntry{{ModuleID: "app/templates/generated"}}
	l, err := lint.New(lint.Options{Config: config})
	if err != nil {
		t.Fatalf("building linter: %v", err)
	}

	// Property: with a blanket pending entry, no rule violation surfaces as
	// an error. Only the stale-pending notice may be error severity.
	properties.Property("pending demotes every violation", prop.ForAll(
		func(source string) bool {
			for _, f := range l.Verify(source, "app/templates/generated") {
				if f.Severity == lint.SeverityError && f.Rule != "" {
					return false
				}
			}
			return true
		},
		templateGen(),
	))

	properties.TestingRun(t)
}

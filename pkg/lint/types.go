package lint

import (
	"github.com/leapstack-labs/templint/pkg/token"
)

// Finding is one reported issue for a module.
type Finding struct {
	Message  string   `json:"message"`
	ModuleID string   `json:"moduleId"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Source   string   `json:"source,omitempty"`
	Rule     string   `json:"rule,omitempty"`
	Severity Severity `json:"severity"`

	// Fatal marks a finding produced from a parse failure. A fatal finding
	// replaces all rule-based findings for its module.
	Fatal bool `json:"fatal,omitempty"`
}

// RawMessage is one message logged by a rule during a dispatcher run,
// before directive filtering and classification.
type RawMessage struct {
	Rule    string
	Message string
	Pos     token.Position
	Source  string

	// NodeSpan is the span of the node that triggered the message. Inline
	// directive scoping is resolved against it, not against Pos, so a rule
	// supplying an override location stays attached to its node.
	NodeSpan token.Span
}

// PendingEntry declares a module with known, accepted violations. With an
// empty Only list every violation in the module is demoted to a warning;
// otherwise only violations from the listed rules are demoted.
type PendingEntry struct {
	ModuleID string   `json:"moduleId" yaml:"moduleId"`
	Only     []string `json:"only,omitempty" yaml:"only,omitempty"`
}

// MarshalYAML renders the bare-module form as a plain string so that
// generated pending lists stay as compact as hand-written ones.
func (p PendingEntry) MarshalYAML() (any, error) {
	if len(p.Only) == 0 {
		return p.ModuleID, nil
	}
	return map[string]any{"moduleId": p.ModuleID, "only": p.Only}, nil
}

// Matches reports whether the entry refers to moduleID. Matching is exact,
// or a path-suffix match so relative and absolute identifiers for the same
// logical module are treated as equal.
func (p PendingEntry) Matches(moduleID string) bool {
	return moduleIDsMatch(p.ModuleID, moduleID)
}

// Demotes reports whether a violation from rule is demoted by this entry.
func (p PendingEntry) Demotes(rule string) bool {
	if len(p.Only) == 0 {
		return true
	}
	for _, r := range p.Only {
		if r == rule {
			return true
		}
	}
	return false
}

func moduleIDsMatch(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) > len(b) {
		return pathSuffixMatch(a, b)
	}
	return pathSuffixMatch(b, a)
}

// pathSuffixMatch reports whether short refers to the same module as long,
// i.e. long ends with "/"+short.
func pathSuffixMatch(long, short string) bool {
	if short == "" || len(long) <= len(short) {
		return false
	}
	return long[len(long)-len(short):] == short && long[len(long)-len(short)-1] == '/'
}

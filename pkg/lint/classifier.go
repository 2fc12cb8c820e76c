package lint

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Classifier turns raw dispatcher output into final findings: it applies
// the ignore list, demotes pending violations to warnings, flags stale
// pending entries, and reports configured rules missing from the registry.
type Classifier struct {
	Config   *Config
	Registry *Registry
}

// Classify resolves severities for one module's raw messages.
//
// Findings keep dispatcher (traversal) order; synthetic findings for stale
// pending entries and missing rule definitions follow, without locations.
func (c *Classifier) Classify(messages []RawMessage, moduleID string) []Finding {
	if c.Ignored(moduleID) {
		return nil
	}

	pending := c.Config.PendingFor(moduleID)

	findings := make([]Finding, 0, len(messages))
	pendingMatched := false
	for _, m := range messages {
		severity := SeverityError
		if pending != nil && pending.Demotes(m.Rule) {
			severity = SeverityWarning
			pendingMatched = true
		}
		findings = append(findings, Finding{
			Message:  m.Message,
			ModuleID: moduleID,
			Line:     m.Pos.Line,
			Column:   m.Pos.Column,
			Source:   m.Source,
			Rule:     m.Rule,
			Severity: severity,
		})
	}

	// A pending entry that no longer demotes anything is itself a lint
	// failure; pending lists must shrink as modules are fixed.
	if pending != nil && !pendingMatched {
		findings = append(findings, Finding{
			Message: fmt.Sprintf("Pending module (`%s`) passes all rules. Please remove `%s` from pending list.",
				pending.ModuleID, pending.ModuleID),
			ModuleID: moduleID,
			Severity: SeverityError,
		})
	}

	findings = append(findings, c.missingRuleFindings(moduleID)...)
	return findings
}

// Ignored reports whether moduleID matches the ignore list, by exact
// string or glob pattern.
func (c *Classifier) Ignored(moduleID string) bool {
	for _, pattern := range c.Config.Ignore {
		if pattern == moduleID {
			return true
		}
		if ok, err := doublestar.Match(pattern, moduleID); err == nil && ok {
			return true
		}
	}
	return false
}

// missingRuleFindings reports configured rule names the registry does not
// know, independent of any AST walk.
func (c *Classifier) missingRuleFindings(moduleID string) []Finding {
	var missing []string
	for name := range c.Config.Rules {
		if _, enabled := c.Config.RuleSetting(name); !enabled {
			continue
		}
		if !c.Registry.Has(name) {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)

	findings := make([]Finding, 0, len(missing))
	for _, name := range missing {
		findings = append(findings, Finding{
			Message:  fmt.Sprintf("Definition for rule '%s' was not found", name),
			ModuleID: moduleID,
			Severity: SeverityError,
		})
	}
	return findings
}

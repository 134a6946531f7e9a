// Package context defines LinterContext, the one mutable object a lint
// call threads through rule factories: which rule ids are enabled, and
// lazy access to the HPO ontology.
package context

import "phenolint/internal/ontology"

// LinterContext is consumed by rule factories via HPO/Enabled. The
// core only reads it through this interface; loading a real ontology
// from disk is an external collaborator's concern.
type LinterContext struct {
	hpo     ontology.Ontology
	enabled map[string]bool
}

// New builds a LinterContext. hpo may be nil when no ontology was loaded
// (e.g. --hpo-path was not given); rules declaring NeedsHPO are then
// skipped by the router with a warning.
func New(hpo ontology.Ontology, enabledRuleIDs []string) *LinterContext {
	enabled := make(map[string]bool, len(enabledRuleIDs))
	for _, id := range enabledRuleIDs {
		enabled[id] = true
	}
	return &LinterContext{hpo: hpo, enabled: enabled}
}

// HPO returns the loaded ontology, if any.
func (c *LinterContext) HPO() (ontology.Ontology, bool) {
	return c.hpo, c.hpo != nil
}

// Enabled reports whether ruleID is in the enabled set.
func (c *LinterContext) Enabled(ruleID string) bool {
	return c.enabled[ruleID]
}

// Package hpo holds rules that require the HPO ontology to decide
// ancestor/descendant relationships: modifier placement (HPO001),
// observed/excluded ancestor contradictions (HPO002), and onset term
// placement (HPO003). All three factories fail with linterr.NeedsHPO
// when the context has no ontology loaded.
package hpo

import (
	"fmt"

	"phenolint/internal/context"
	"phenolint/internal/linterr"
	"phenolint/internal/model"
	"phenolint/internal/ontology"
	"phenolint/internal/report"
	"phenolint/internal/repository"
	"phenolint/internal/rules"
	"phenolint/pkg/pointer"
)

// clinicalModifierRoot and onsetRoot are the HPO terms rules HPO001/HPO003
// check descent from: HP:0012823 "Clinical modifier" and HP:0003674
// "Onset", ported from original_source's onset_ontology_child_rule.rs and
// the observed-ancestor rules (see SPEC_FULL.md SUPPLEMENTED FEATURES).
const (
	clinicalModifierRoot = "HP:0012823"
	onsetRoot            = "HP:0003674"
)

func init() {
	rules.Register(rules.Registration{
		RuleID:    "HPO001",
		CheckType: rules.TPhenotypicFeature,
		Factory:   newModifierOntologyRule,
	})
	rules.Register(rules.Registration{
		RuleID:    "HPO002",
		CheckType: rules.TPhenotypicFeature,
		Factory:   newObservedAncestorRule,
	})
	rules.Register(rules.Registration{
		RuleID:    "HPO003",
		CheckType: rules.TPhenotypicFeature,
		Factory:   newOnsetOntologyChildRule,
	})
}

func requireHPO(ctx *context.LinterContext) (ontology.Ontology, error) {
	hpo, ok := ctx.HPO()
	if !ok {
		return nil, linterr.Sentinel(linterr.NeedsHPO)
	}
	return hpo, nil
}

// modifierOntologyRule implements HPO001: a PhenotypicFeature modifier
// must descend from the Clinical modifier root. A modifier that is
// instead an Onset-ontology term is almost certainly misplaced data, so
// the patch moves it to /onset rather than merely deleting it, unless
// onset is already populated.
type modifierOntologyRule struct{ hpo ontology.Ontology }

func newModifierOntologyRule(ctx *context.LinterContext) (rules.Rule, error) {
	hpo, err := requireHPO(ctx)
	if err != nil {
		return nil, err
	}
	return modifierOntologyRule{hpo: hpo}, nil
}

func (r modifierOntologyRule) Check(repo *repository.Repository, root rules.RootNode) []report.LintViolation {
	var violations []report.LintViolation
	for _, pf := range repository.FetchAll[model.PhenotypicFeature](repo) {
		for i, mod := range pf.Modifiers {
			if r.hpo.HasAncestor(mod.ID, clinicalModifierRoot) {
				continue
			}
			violations = append(violations, report.NewViolation("HPO001", pf.At.Down("modifiers").DownIndex(i)))
		}
	}
	return violations
}

func (r modifierOntologyRule) CompileReport(v report.LintViolation, root rules.RootNode) *report.ReportSpec {
	ptr := v.Primary()
	idVal, _ := root.ValueAt(ptr.Down("id"))
	var labels []report.LabelSpec
	if span, ok := root.SpanAt(ptr); ok {
		labels = append(labels, report.LabelSpec{
			Style:   report.Primary,
			Range:   span,
			Message: fmt.Sprintf("%q is not a clinical modifier", idVal.Str),
		})
	}
	return &report.ReportSpec{
		Severity: report.SeverityError,
		Code:     "HPO001",
		Message:  fmt.Sprintf("modifier %q does not descend from %s (Clinical modifier)", idVal.Str, clinicalModifierRoot),
		Labels:   labels,
	}
}

func (r modifierOntologyRule) CompilePatches(v report.LintViolation, root rules.RootNode) []report.Patch {
	ptr := v.Primary()
	featureAt := featureOf(ptr)
	idVal, _ := root.ValueAt(ptr.Down("id"))

	if r.hpo.HasAncestor(idVal.Str, onsetRoot) {
		onsetAt := featureAt.Down("onset")
		if _, has := root.ValueAt(onsetAt); has {
			return []report.Patch{{report.Remove{At: ptr}}}
		}
		return []report.Patch{{report.Move{From: ptr, To: onsetAt}}}
	}
	return []report.Patch{{report.Remove{At: ptr}}}
}

// featureOf truncates a .../modifiers/N pointer back to the containing
// PhenotypicFeature's pointer (two segments up: the index, then
// "modifiers").
func featureOf(at pointer.Pointer) pointer.Pointer {
	return at.Up().Up()
}

// observedAncestorRule implements HPO002: a feature observed
// (excluded = false) whose ontology class is an ancestor of another
// feature's excluded class is contradictory, since an excluded
// descendant implies the ancestor cannot itself stand as an
// affirmatively observed leaf term.
type observedAncestorRule struct{ hpo ontology.Ontology }

func newObservedAncestorRule(ctx *context.LinterContext) (rules.Rule, error) {
	hpo, err := requireHPO(ctx)
	if err != nil {
		return nil, err
	}
	return observedAncestorRule{hpo: hpo}, nil
}

func (r observedAncestorRule) Check(repo *repository.Repository, root rules.RootNode) []report.LintViolation {
	var violations []report.LintViolation
	groups := repository.FetchByTopLevelElement[model.PhenotypicFeature](repo, model.Case)
	for _, features := range groups {
		for _, observed := range features {
			if observed.Excluded {
				continue
			}
			for _, excluded := range features {
				if !excluded.Excluded || excluded.At.Equal(observed.At) {
					continue
				}
				if r.hpo.IsAncestorOf(observed.Type.ID, excluded.Type.ID) {
					violations = append(violations, report.NewViolation("HPO002", observed.At.Down("type").Down("id"), excluded.At))
					break
				}
			}
		}
	}
	return violations
}

func (r observedAncestorRule) CompileReport(v report.LintViolation, root rules.RootNode) *report.ReportSpec {
	ptr := v.Primary()
	val, _ := root.ValueAt(ptr)
	var labels []report.LabelSpec
	if span, ok := root.SpanAt(ptr); ok {
		labels = append(labels, report.LabelSpec{
			Style:   report.Primary,
			Range:   span,
			Message: fmt.Sprintf("%q is an ancestor of an excluded descendant feature", val.Str),
		})
	}
	if len(v.Locations) > 1 {
		if span, ok := root.SpanAt(v.Locations[1]); ok {
			labels = append(labels, report.LabelSpec{
				Style:   report.Secondary,
				Range:   span,
				Message: "excluded descendant feature",
			})
		}
	}
	return &report.ReportSpec{
		Severity: report.SeverityError,
		Code:     "HPO002",
		Message:  fmt.Sprintf("observed feature %q contradicts an excluded descendant elsewhere in this patient", val.Str),
		Labels:   labels,
	}
}

func (r observedAncestorRule) CompilePatches(report.LintViolation, rules.RootNode) []report.Patch {
	// Deciding which of the two contradictory features is wrong is a
	// clinical judgment call, not a mechanical edit.
	return nil
}

// onsetOntologyChildRule implements HPO003: a feature's onset ontology
// term must descend from the Onset root.
type onsetOntologyChildRule struct{ hpo ontology.Ontology }

func newOnsetOntologyChildRule(ctx *context.LinterContext) (rules.Rule, error) {
	hpo, err := requireHPO(ctx)
	if err != nil {
		return nil, err
	}
	return onsetOntologyChildRule{hpo: hpo}, nil
}

func (r onsetOntologyChildRule) Check(repo *repository.Repository, root rules.RootNode) []report.LintViolation {
	var violations []report.LintViolation
	for _, pf := range repository.FetchAll[model.PhenotypicFeature](repo) {
		if pf.Onset == nil || pf.Onset.OntologyClass == nil {
			continue
		}
		oc := pf.Onset.OntologyClass
		if !r.hpo.HasAncestor(oc.ID, onsetRoot) {
			violations = append(violations, report.NewViolation("HPO003", pf.At.Down("onset").Down("ontologyClass").Down("id")))
		}
	}
	return violations
}

func (r onsetOntologyChildRule) CompileReport(v report.LintViolation, root rules.RootNode) *report.ReportSpec {
	ptr := v.Primary()
	val, _ := root.ValueAt(ptr)
	var labels []report.LabelSpec
	if span, ok := root.SpanAt(ptr); ok {
		labels = append(labels, report.LabelSpec{
			Style:   report.Primary,
			Range:   span,
			Message: fmt.Sprintf("%q does not descend from %s (Onset)", val.Str, onsetRoot),
		})
	}
	return &report.ReportSpec{
		Severity: report.SeverityError,
		Code:     "HPO003",
		Message:  fmt.Sprintf("onset term %q is not a descendant of %s (Onset)", val.Str, onsetRoot),
		Labels:   labels,
	}
}

func (r onsetOntologyChildRule) CompilePatches(v report.LintViolation, root rules.RootNode) []report.Patch {
	onsetAt := v.Primary().Up().Up()
	return []report.Patch{{report.Remove{At: onsetAt}}}
}

package hpo

import (
	"testing"

	"phenolint/internal/context"
	"phenolint/internal/materializer"
	"phenolint/internal/ontology"
	"phenolint/internal/report"
	"phenolint/internal/repository"
	"phenolint/internal/rules"
	"phenolint/internal/tree"
)

func testOntology() ontology.Ontology {
	return ontology.NewMap(map[string][]string{
		"HP:0001250": {"HP:0012823"}, // Seizure -> Clinical modifier
		"HP:0003621": {"HP:0003674"}, // Juvenile onset -> Onset
		"HP:0001251": {},             // Ataxia, unrelated to either root
	})
}

func repoFor(t *testing.T, src string) (*repository.Repository, rules.RootNode) {
	t.Helper()
	v, spans, err := tree.ParseJSON([]byte(src))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	repo := repository.New()
	materializer.Materialize(v, spans, repo)
	return repo, rules.RootNode{Value: v, Spans: spans}
}

func TestFactoriesRequireHPO(t *testing.T) {
	ctx := context.New(nil, nil)
	factories := []rules.Factory{newModifierOntologyRule, newObservedAncestorRule, newOnsetOntologyChildRule}
	for _, f := range factories {
		if _, err := f(ctx); err == nil {
			t.Error("expected a NeedsHPO error when no ontology is loaded")
		}
	}
}

func TestModifierOntologyRuleFlagsNonClinicalModifier(t *testing.T) {
	src := `{
		"type": {"id": "HP:0001250", "label": "Seizure"},
		"modifiers": [{"id": "HP:0001251", "label": "Ataxia"}]
	}`
	repo, root := repoFor(t, src)
	ctx := context.New(testOntology(), nil)
	ruleIface, err := newModifierOntologyRule(ctx)
	if err != nil {
		t.Fatalf("factory error: %v", err)
	}
	r := ruleIface.(modifierOntologyRule)

	violations := r.Check(repo, root)
	if len(violations) != 1 {
		t.Fatalf("len(violations) = %d, want 1", len(violations))
	}

	patches := r.CompilePatches(violations[0], root)
	if len(patches) != 1 || len(patches[0]) != 1 {
		t.Fatalf("unexpected patch shape: %+v", patches)
	}
	if _, ok := patches[0][0].(report.Remove); !ok {
		t.Errorf("expected a Remove for a non-onset, non-clinical-modifier term, got %T", patches[0][0])
	}
}

func TestModifierOntologyRuleMovesOnsetTermModifierToOnset(t *testing.T) {
	src := `{
		"type": {"id": "HP:0001250", "label": "Seizure"},
		"modifiers": [{"id": "HP:0003621", "label": "Juvenile onset"}]
	}`
	repo, root := repoFor(t, src)
	ctx := context.New(testOntology(), nil)
	ruleIface, _ := newModifierOntologyRule(ctx)
	r := ruleIface.(modifierOntologyRule)

	violations := r.Check(repo, root)
	if len(violations) != 1 {
		t.Fatalf("len(violations) = %d, want 1", len(violations))
	}

	patches := r.CompilePatches(violations[0], root)
	if len(patches) != 1 || len(patches[0]) != 1 {
		t.Fatalf("unexpected patch shape: %+v", patches)
	}
	if _, ok := patches[0][0].(report.Move); !ok {
		t.Errorf("expected a Move to /onset, got %T", patches[0][0])
	}
}

func TestModifierOntologyRuleDegradesToRemoveWhenOnsetAlreadyExists(t *testing.T) {
	src := `{
		"type": {"id": "HP:0001250", "label": "Seizure"},
		"modifiers": [{"id": "HP:0003621", "label": "Juvenile onset"}],
		"onset": {"ontologyClass": {"id": "HP:0003621", "label": "Juvenile onset"}}
	}`
	repo, root := repoFor(t, src)
	ctx := context.New(testOntology(), nil)
	ruleIface, _ := newModifierOntologyRule(ctx)
	r := ruleIface.(modifierOntologyRule)

	violations := r.Check(repo, root)
	if len(violations) != 1 {
		t.Fatalf("len(violations) = %d, want 1", len(violations))
	}

	patches := r.CompilePatches(violations[0], root)
	if len(patches) != 1 || len(patches[0]) != 1 {
		t.Fatalf("unexpected patch shape: %+v", patches)
	}
	if _, ok := patches[0][0].(report.Remove); !ok {
		t.Errorf("expected the patch to degrade to Remove when onset is already populated, got %T", patches[0][0])
	}
}

func TestModifierOntologyRuleAcceptsClinicalModifier(t *testing.T) {
	src := `{"type": {"id": "HP:0001251", "label": "x"}, "modifiers": [{"id": "HP:0012823", "label": "Clinical modifier"}]}`
	repo, root := repoFor(t, src)
	ctx := context.New(testOntology(), nil)
	ruleIface, _ := newModifierOntologyRule(ctx)
	r := ruleIface.(modifierOntologyRule)
	if violations := r.Check(repo, root); len(violations) != 0 {
		t.Fatalf("len(violations) = %d, want 0 (HP:0012823 is the clinical modifier root itself)", len(violations))
	}
}

func TestObservedAncestorRuleFlagsContradiction(t *testing.T) {
	src := `{
		"id": "patient-1",
		"metaData": {},
		"phenotypicFeatures": [
			{"type": {"id": "HP:0012823", "label": "Clinical modifier"}, "excluded": false},
			{"type": {"id": "HP:0001250", "label": "Seizure"}, "excluded": true}
		]
	}`
	repo, root := repoFor(t, src)
	ctx := context.New(testOntology(), nil)
	ruleIface, _ := newObservedAncestorRule(ctx)
	r := ruleIface.(observedAncestorRule)

	violations := r.Check(repo, root)
	if len(violations) != 1 {
		t.Fatalf("len(violations) = %d, want 1", len(violations))
	}
	if patches := r.CompilePatches(violations[0], root); patches != nil {
		t.Errorf("CompilePatches = %v, want nil (clinical judgment call)", patches)
	}
}

func TestObservedAncestorRuleIgnoresUnrelatedFeatures(t *testing.T) {
	src := `{
		"id": "patient-1",
		"metaData": {},
		"phenotypicFeatures": [
			{"type": {"id": "HP:0001251", "label": "Ataxia"}, "excluded": false},
			{"type": {"id": "HP:0001250", "label": "Seizure"}, "excluded": true}
		]
	}`
	repo, root := repoFor(t, src)
	ctx := context.New(testOntology(), nil)
	ruleIface, _ := newObservedAncestorRule(ctx)
	r := ruleIface.(observedAncestorRule)
	if violations := r.Check(repo, root); len(violations) != 0 {
		t.Fatalf("len(violations) = %d, want 0", len(violations))
	}
}

func TestOnsetOntologyChildRuleFlagsNonDescendant(t *testing.T) {
	src := `{
		"type": {"id": "HP:0001250", "label": "Seizure"},
		"onset": {"ontologyClass": {"id": "HP:0001251", "label": "Ataxia"}}
	}`
	repo, root := repoFor(t, src)
	ctx := context.New(testOntology(), nil)
	ruleIface, _ := newOnsetOntologyChildRule(ctx)
	r := ruleIface.(onsetOntologyChildRule)

	violations := r.Check(repo, root)
	if len(violations) != 1 {
		t.Fatalf("len(violations) = %d, want 1", len(violations))
	}

	patches := r.CompilePatches(violations[0], root)
	if len(patches) != 1 || len(patches[0]) != 1 {
		t.Fatalf("unexpected patch shape: %+v", patches)
	}
	if _, ok := patches[0][0].(report.Remove); !ok {
		t.Errorf("expected a Remove, got %T", patches[0][0])
	}
}

func TestOnsetOntologyChildRuleAcceptsDescendant(t *testing.T) {
	src := `{
		"type": {"id": "HP:0001250", "label": "Seizure"},
		"onset": {"ontologyClass": {"id": "HP:0003621", "label": "Juvenile onset"}}
	}`
	repo, root := repoFor(t, src)
	ctx := context.New(testOntology(), nil)
	ruleIface, _ := newOnsetOntologyChildRule(ctx)
	r := ruleIface.(onsetOntologyChildRule)
	if violations := r.Check(repo, root); len(violations) != 0 {
		t.Fatalf("len(violations) = %d, want 0", len(violations))
	}
}

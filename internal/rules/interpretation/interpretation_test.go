package interpretation

import (
	"testing"

	"phenolint/internal/materializer"
	"phenolint/internal/report"
	"phenolint/internal/repository"
	"phenolint/internal/rules"
	"phenolint/internal/tree"
)

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

func TestDiseaseConsistencyFlagsMissingDisease(t *testing.T) {
	src := `{
		"id": "patient-1",
		"metaData": {},
		"diseases": [],
		"interpretations": [
			{"diagnosis": {"disease": {"id": "MONDO:0001", "label": "x"}}}
		]
	}`
	repo, root := repoFor(t, src)
	r := diseaseConsistencyRule{}
	violations := r.Check(repo, root)
	if len(violations) != 1 {
		t.Fatalf("len(violations) = %d, want 1", len(violations))
	}

	patches := r.CompilePatches(violations[0], root)
	if len(patches) != 1 {
		t.Fatalf("len(patches) = %d, want 1", len(patches))
	}
}

func TestDiseaseConsistencyPreservesExistingDiseases(t *testing.T) {
	src := `{
		"id": "patient-1",
		"metaData": {},
		"diseases": [{"term": {"id": "MONDO:0002", "label": "existing"}}],
		"interpretations": [
			{"diagnosis": {"disease": {"id": "MONDO:0001", "label": "x"}}}
		]
	}`
	repo, root := repoFor(t, src)
	r := diseaseConsistencyRule{}
	violations := r.Check(repo, root)
	if len(violations) != 1 {
		t.Fatalf("len(violations) = %d, want 1", len(violations))
	}

	patches := r.CompilePatches(violations[0], root)
	if len(patches) != 1 || len(patches[0]) != 1 {
		t.Fatalf("unexpected patch shape: %+v", patches)
	}
	add, ok := patches[0][0].(report.Add)
	if !ok {
		t.Fatalf("patches[0][0] = %T, want report.Add", patches[0][0])
	}
	if len(add.Value.Seq) != 2 {
		t.Errorf("patched /diseases length = %d, want 2 (existing entry preserved + new one appended)", len(add.Value.Seq))
	}
}

func TestDiseaseConsistencyAcceptsKnownDisease(t *testing.T) {
	src := `{
		"id": "patient-1",
		"metaData": {},
		"diseases": [{"term": {"id": "MONDO:0001", "label": "x"}}],
		"interpretations": [
			{"diagnosis": {"disease": {"id": "MONDO:0001", "label": "x"}}}
		]
	}`
	repo, root := repoFor(t, src)
	violations := diseaseConsistencyRule{}.Check(repo, root)
	if len(violations) != 0 {
		t.Fatalf("len(violations) = %d, want 0", len(violations))
	}
}

func TestCurieResourceBindingFlagsEachPrefixOnce(t *testing.T) {
	src := `{
		"id": "patient-1",
		"metaData": {
			"resources": [{"id": "hp", "namespacePrefix": "HP"}]
		},
		"phenotypicFeatures": [
			{"type": {"id": "MONDO:0001", "label": "a"}},
			{"type": {"id": "MONDO:0002", "label": "b"}},
			{"type": {"id": "HP:0001", "label": "c"}}
		]
	}`
	repo, root := repoFor(t, src)
	r := curieResourceBindingRule{}
	violations := r.Check(repo, root)
	if len(violations) != 1 {
		t.Fatalf("len(violations) = %d, want 1 (MONDO reported once despite two occurrences)", len(violations))
	}
	if patches := r.CompilePatches(violations[0], root); patches != nil {
		t.Errorf("CompilePatches = %v, want nil (unrepairable)", patches)
	}
}

func TestCurieResourceBindingAcceptsKnownPrefix(t *testing.T) {
	src := `{
		"id": "patient-1",
		"metaData": {"resources": [{"id": "hp", "namespacePrefix": "HP"}]},
		"phenotypicFeatures": [{"type": {"id": "HP:0001", "label": "x"}}]
	}`
	repo, root := repoFor(t, src)
	violations := curieResourceBindingRule{}.Check(repo, root)
	if len(violations) != 0 {
		t.Fatalf("len(violations) = %d, want 0", len(violations))
	}
}

func TestCuriePrefix(t *testing.T) {
	if got := curiePrefix("HP:0001250"); got != "HP" {
		t.Errorf("curiePrefix(HP:0001250) = %q, want HP", got)
	}
	if got := curiePrefix("no-colon"); got != "" {
		t.Errorf("curiePrefix(no-colon) = %q, want empty", got)
	}
}

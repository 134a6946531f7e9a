package materializer

import (
	"testing"

	"phenolint/internal/model"
	"phenolint/internal/repository"
	"phenolint/internal/tree"
)

func materialize(t *testing.T, src string) *repository.Repository {
	t.Helper()
	v, spans, err := tree.ParseJSON([]byte(src))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	repo := repository.New()
	Materialize(v, spans, repo)
	return repo
}

func TestMaterializeSinglePhenopacket(t *testing.T) {
	src := `{
		"id": "patient-1",
		"metaData": {},
		"phenotypicFeatures": [
			{"type": {"id": "HP:0001", "label": "Seizure"}}
		],
		"diseases": [
			{"term": {"id": "MONDO:0001", "label": "Disease"}}
		]
	}`
	repo := materialize(t, src)

	packets := repository.FetchAll[model.Phenopacket](repo)
	if len(packets) != 1 {
		t.Fatalf("len(Phenopackets) = %d, want 1", len(packets))
	}
	if packets[0].ID != "patient-1" {
		t.Errorf("ID = %q, want patient-1", packets[0].ID)
	}
	if len(packets[0].PhenotypicFeatures) != 1 {
		t.Errorf("len(PhenotypicFeatures) = %d, want 1", len(packets[0].PhenotypicFeatures))
	}

	features := repository.FetchAll[model.PhenotypicFeature](repo)
	if len(features) != 1 {
		t.Fatalf("len(PhenotypicFeature) in repo = %d, want 1", len(features))
	}
	if features[0].Type.ID != "HP:0001" {
		t.Errorf("feature type id = %q, want HP:0001", features[0].Type.ID)
	}

	classes := repository.FetchAll[model.OntologyClass](repo)
	if len(classes) != 2 {
		t.Errorf("len(OntologyClass) = %d, want 2 (feature type + disease term)", len(classes))
	}
}

func TestMaterializeCohortRecursesIntoMembers(t *testing.T) {
	src := `{
		"id": "cohort-1",
		"members": [
			{"id": "patient-1", "metaData": {}, "phenotypicFeatures": [{"type": {"id": "HP:0001", "label": "A"}}]},
			{"id": "patient-2", "metaData": {}, "phenotypicFeatures": [{"type": {"id": "HP:0002", "label": "B"}}]}
		]
	}`
	repo := materialize(t, src)

	cohorts := repository.FetchAll[model.Cohort](repo)
	if len(cohorts) != 1 {
		t.Fatalf("len(Cohort) = %d, want 1", len(cohorts))
	}
	if len(cohorts[0].Members) != 2 {
		t.Fatalf("len(Members) = %d, want 2", len(cohorts[0].Members))
	}
	if cohorts[0].Members[0].ID != "patient-1" || cohorts[0].Members[1].ID != "patient-2" {
		t.Errorf("unexpected member ids: %+v", cohorts[0].Members)
	}

	// No Phenopacket is filed by the main traversal: tryPhenopacket only
	// matches at the root and needs "id" and "metaData", which the Cohort
	// root lacks, and the members do not sit at the root.
	packets := repository.FetchAll[model.Phenopacket](repo)
	if len(packets) != 0 {
		t.Errorf("len(Phenopacket) (top-level traversal) = %d, want 0", len(packets))
	}

	features := repository.FetchAll[model.PhenotypicFeature](repo)
	if len(features) != 2 {
		t.Errorf("len(PhenotypicFeature) = %d, want 2", len(features))
	}
}

func TestMaterializeResourceRequiresPrefix(t *testing.T) {
	src := `{"resources": [{"id": "hp", "namespacePrefix": "HP"}, {"id": "no-prefix"}]}`
	repo := materialize(t, src)
	resources := repository.FetchAll[model.Resource](repo)
	if len(resources) != 1 {
		t.Fatalf("len(Resource) = %d, want 1", len(resources))
	}
	if resources[0].NamespacePrefix != "HP" {
		t.Errorf("NamespacePrefix = %q, want HP", resources[0].NamespacePrefix)
	}
}

func TestMaterializeVitalStatus(t *testing.T) {
	src := `{"vitalStatus": {"status": "DECEASED", "causeOfDeath": {"id": "MONDO:1", "label": "x"}}}`
	repo := materialize(t, src)
	statuses := repository.FetchAll[model.VitalStatus](repo)
	if len(statuses) != 1 {
		t.Fatalf("len(VitalStatus) = %d, want 1", len(statuses))
	}
	if statuses[0].Status != "DECEASED" {
		t.Errorf("Status = %q, want DECEASED", statuses[0].Status)
	}
	if statuses[0].CauseOfDeath == nil || statuses[0].CauseOfDeath.ID != "MONDO:1" {
		t.Errorf("CauseOfDeath = %+v, want MONDO:1", statuses[0].CauseOfDeath)
	}
}

func TestMaterializeOntologyClassRequiresExactlyIDAndLabel(t *testing.T) {
	src := `{"a": {"id": "x", "label": "y"}, "b": {"id": "x", "label": "y", "extra": 1}}`
	repo := materialize(t, src)
	classes := repository.FetchAll[model.OntologyClass](repo)
	if len(classes) != 1 {
		t.Fatalf("len(OntologyClass) = %d, want 1 (only the exact-shape object)", len(classes))
	}
}

func TestMaterializeDiagnosisRequiresDiseaseKey(t *testing.T) {
	src := `{"interpretations": [{"diagnosis": {"disease": {"id": "MONDO:1", "label": "x"}}}]}`
	repo := materialize(t, src)
	diagnoses := repository.FetchAll[model.Diagnosis](repo)
	if len(diagnoses) != 1 {
		t.Fatalf("len(Diagnosis) = %d, want 1", len(diagnoses))
	}
	if diagnoses[0].Disease.ID != "MONDO:1" {
		t.Errorf("Disease.ID = %q, want MONDO:1", diagnoses[0].Disease.ID)
	}
}

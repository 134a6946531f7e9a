// Package materializer walks the canonical tree and extracts strongly
// typed domain entities into the repository, using ordered try_parse
// dispatch: the first type (in the fixed canonical order) whose
// acceptance rule a node satisfies claims it. A node matches at most one
// type.
package materializer

import (
	"phenolint/internal/model"
	"phenolint/internal/repository"
	"phenolint/internal/tree"
	"phenolint/pkg/pointer"
)

// Materialize walks every node reachable from root (breadth-first, via
// internal/tree's traversal) and inserts the first matching typed entity
// for each into repo.
func Materialize(root tree.Value, spans tree.SpanMap, repo *repository.Repository) {
	t := tree.NewTraversal(root, pointer.Root(), spans)
	for {
		visited, ok := t.Next()
		if !ok {
			break
		}
		materializeOne(visited.Value, visited.Pointer, repo)
	}
}

// materializeOne tries each entity type in canonical order against one
// node, stopping at the first success.
func materializeOne(v tree.Value, at pointer.Pointer, repo *repository.Repository) {
	if oc, ok := tryOntologyClass(v, at); ok {
		repository.Insert(repo, oc, at)
		return
	}
	if pf, ok := tryPhenotypicFeature(v, at); ok {
		repository.Insert(repo, pf, at)
		return
	}
	if pp, ok := tryPhenopacket(v, at); ok {
		repository.Insert(repo, pp, at)
		return
	}
	if d, ok := tryDisease(v, at); ok {
		repository.Insert(repo, d, at)
		return
	}
	if dx, ok := tryDiagnosis(v, at); ok {
		repository.Insert(repo, dx, at)
		return
	}
	if r, ok := tryResource(v, at); ok {
		repository.Insert(repo, r, at)
		return
	}
	if c, ok := tryCohort(v, at); ok {
		repository.Insert(repo, c, at)
		return
	}
	if vs, ok := tryVitalStatus(v, at); ok {
		repository.Insert(repo, vs, at)
		return
	}
}

func asMap(v tree.Value) (*tree.Map, bool) {
	if v.Kind != tree.KindMap || v.Map == nil {
		return nil, false
	}
	return v.Map, true
}

func stringField(m *tree.Map, key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok || v.Kind != tree.KindString {
		return "", false
	}
	return v.Str, true
}

func boolField(m *tree.Map, key string) bool {
	v, ok := m.Get(key)
	if !ok || v.Kind != tree.KindBool {
		return false
	}
	return v.Bool
}

// tryOntologyClass accepts an object with exactly keys {id, label}.
func tryOntologyClass(v tree.Value, at pointer.Pointer) (model.OntologyClass, bool) {
	m, ok := asMap(v)
	if !ok || m.Len() != 2 || !m.Has("id") || !m.Has("label") {
		return model.OntologyClass{}, false
	}
	id, idOK := stringField(m, "id")
	label, labelOK := stringField(m, "label")
	if !idOK || !labelOK {
		return model.OntologyClass{}, false
	}
	return model.OntologyClass{
		Located: model.Located{At: at},
		ID:      id,
		Label:   label,
	}, true
}

func ontologyClassAt(v tree.Value, at pointer.Pointer) *model.OntologyClass {
	oc, ok := tryOntologyClass(v, at)
	if !ok {
		return nil
	}
	return &oc
}

func timeElementAt(v tree.Value, at pointer.Pointer) *model.TimeElement {
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	te := &model.TimeElement{}
	if ocVal, ok := m.Get("ontologyClass"); ok {
		te.OntologyClass = ontologyClassAt(ocVal, at.Down("ontologyClass"))
	}
	if age, ok := stringField(m, "age"); ok {
		te.Age = age
	}
	return te
}

// tryPhenotypicFeature accepts any object whose "type" key holds an
// OntologyClass.
func tryPhenotypicFeature(v tree.Value, at pointer.Pointer) (model.PhenotypicFeature, bool) {
	m, ok := asMap(v)
	if !ok || !m.Has("type") {
		return model.PhenotypicFeature{}, false
	}
	typeVal, _ := m.Get("type")
	typePtr := at.Down("type")
	typeClass, ok := tryOntologyClass(typeVal, typePtr)
	if !ok {
		return model.PhenotypicFeature{}, false
	}

	pf := model.PhenotypicFeature{
		Located:  model.Located{At: at},
		Type:     typeClass,
		Excluded: boolField(m, "excluded"),
	}
	if desc, ok := stringField(m, "description"); ok {
		pf.Description = desc
	}
	if modsVal, ok := m.Get("modifiers"); ok && modsVal.Kind == tree.KindSeq {
		for i, item := range modsVal.Seq {
			if oc, ok := tryOntologyClass(item, at.Down("modifiers").DownIndex(i)); ok {
				pf.Modifiers = append(pf.Modifiers, oc)
			}
		}
	}
	if onsetVal, ok := m.Get("onset"); ok {
		pf.Onset = timeElementAt(onsetVal, at.Down("onset"))
	}
	if resVal, ok := m.Get("resolution"); ok {
		pf.Resolution = timeElementAt(resVal, at.Down("resolution"))
	}
	return pf, true
}

// tryPhenopacket accepts an object at the root containing keys id and
// metaData. Members of a Cohort/Family are Phenopackets too even though
// their pointer isn't root; tryCohort recurses into phenopacketFields
// directly for those instead of going through this root check.
func tryPhenopacket(v tree.Value, at pointer.Pointer) (model.Phenopacket, bool) {
	if !at.IsRoot() {
		return model.Phenopacket{}, false
	}
	return phenopacketFields(v, at)
}

func phenopacketFields(v tree.Value, at pointer.Pointer) (model.Phenopacket, bool) {
	m, ok := asMap(v)
	if !ok || !m.Has("id") || !m.Has("metaData") {
		return model.Phenopacket{}, false
	}
	id, _ := stringField(m, "id")

	pp := model.Phenopacket{
		Located: model.Located{At: at},
		ID:      id,
	}
	if pfVal, ok := m.Get("phenotypicFeatures"); ok && pfVal.Kind == tree.KindSeq {
		for i, item := range pfVal.Seq {
			if pf, ok := tryPhenotypicFeature(item, at.Down("phenotypicFeatures").DownIndex(i)); ok {
				pp.PhenotypicFeatures = append(pp.PhenotypicFeatures, pf)
			}
		}
	}
	if dVal, ok := m.Get("diseases"); ok && dVal.Kind == tree.KindSeq {
		for i, item := range dVal.Seq {
			if d, ok := tryDisease(item, at.Down("diseases").DownIndex(i)); ok {
				pp.Diseases = append(pp.Diseases, d)
			}
		}
	}
	if iVal, ok := m.Get("interpretations"); ok && iVal.Kind == tree.KindSeq {
		for i, item := range iVal.Seq {
			itemPtr := at.Down("interpretations").DownIndex(i)
			im, ok := asMap(item)
			if !ok {
				continue
			}
			dxVal, ok := im.Get("diagnosis")
			if !ok {
				continue
			}
			if dx, ok := tryDiagnosis(dxVal, itemPtr.Down("diagnosis")); ok {
				pp.Diagnoses = append(pp.Diagnoses, dx)
			}
		}
	}
	return pp, true
}

// tryDisease accepts an object whose "term" key holds an OntologyClass.
// Other keys, "members" included, are not checked.
func tryDisease(v tree.Value, at pointer.Pointer) (model.Disease, bool) {
	m, ok := asMap(v)
	if !ok || !m.Has("term") {
		return model.Disease{}, false
	}
	termVal, _ := m.Get("term")
	term, ok := tryOntologyClass(termVal, at.Down("term"))
	if !ok {
		return model.Disease{}, false
	}
	d := model.Disease{
		Located:  model.Located{At: at},
		Term:     term,
		Excluded: boolField(m, "excluded"),
	}
	if onsetVal, ok := m.Get("onset"); ok && onsetVal.Kind == tree.KindSeq {
		for i, item := range onsetVal.Seq {
			if te := timeElementAt(item, at.Down("onset").DownIndex(i)); te != nil {
				d.Onset = append(d.Onset, *te)
			}
		}
	}
	return d, true
}

// tryDiagnosis accepts an object with a "disease" key holding an
// OntologyClass.
func tryDiagnosis(v tree.Value, at pointer.Pointer) (model.Diagnosis, bool) {
	m, ok := asMap(v)
	if !ok || !m.Has("disease") {
		return model.Diagnosis{}, false
	}
	diseaseVal, _ := m.Get("disease")
	disease, ok := tryOntologyClass(diseaseVal, at.Down("disease"))
	if !ok {
		return model.Diagnosis{}, false
	}
	return model.Diagnosis{
		Located: model.Located{At: at},
		Disease: disease,
	}, true
}

// tryResource accepts an object declaring a CURIE namespace: it must
// carry a namespacePrefix or an iriPrefix.
func tryResource(v tree.Value, at pointer.Pointer) (model.Resource, bool) {
	m, ok := asMap(v)
	if !ok {
		return model.Resource{}, false
	}
	prefix, hasPrefix := stringField(m, "namespacePrefix")
	iri, hasIRI := stringField(m, "iriPrefix")
	if !hasPrefix && !hasIRI {
		return model.Resource{}, false
	}
	id, _ := stringField(m, "id")
	name, _ := stringField(m, "name")
	return model.Resource{
		Located:         model.Located{At: at},
		ID:              id,
		Name:            name,
		NamespacePrefix: prefix,
		IRIPrefix:       iri,
	}, true
}

// tryCohort accepts an object with a "members" key holding a sequence.
func tryCohort(v tree.Value, at pointer.Pointer) (model.Cohort, bool) {
	m, ok := asMap(v)
	if !ok {
		return model.Cohort{}, false
	}
	membersVal, ok := m.Get("members")
	if !ok || membersVal.Kind != tree.KindSeq {
		return model.Cohort{}, false
	}
	id, _ := stringField(m, "id")
	c := model.Cohort{
		Located: model.Located{At: at},
		ID:      id,
	}
	for i, item := range membersVal.Seq {
		if pp, ok := phenopacketFields(item, at.Down("members").DownIndex(i)); ok {
			c.Members = append(c.Members, pp)
		}
	}
	return c, true
}

// tryVitalStatus accepts an object whose "status" key holds a string.
// It does not check for "term"/"type"/"members"; an object carrying those
// is only kept from matching here when a type earlier in the canonical
// order has already claimed it.
func tryVitalStatus(v tree.Value, at pointer.Pointer) (model.VitalStatus, bool) {
	m, ok := asMap(v)
	if !ok || !m.Has("status") {
		return model.VitalStatus{}, false
	}
	status, ok := stringField(m, "status")
	if !ok {
		return model.VitalStatus{}, false
	}
	vs := model.VitalStatus{
		Located: model.Located{At: at},
		Status:  status,
	}
	if codVal, ok := m.Get("causeOfDeath"); ok {
		vs.CauseOfDeath = ontologyClassAt(codVal, at.Down("causeOfDeath"))
	}
	return vs, true
}

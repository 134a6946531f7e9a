// Package model defines the strongly-typed domain entities the
// materializer extracts from the canonical tree, and the scope those
// entities are filed under in the repository.
package model

import "phenolint/pkg/pointer"

// Scope distinguishes a single Phenopacket (CASE) from a Cohort or
// Family containing many (COHORT).
type Scope int

const (
	Case Scope = iota
	Cohort
)

func (s Scope) String() string {
	if s == Cohort {
		return "COHORT"
	}
	return "CASE"
}

// Located is embedded by every materialized entity: the pointer it was
// extracted from, and a Scope field. The materializer sets only At; the
// repository records each node's scope in its own entries and does not
// fill in Located.Scope, which stays at its zero value. The materializer
// keeps a shallow copy of this information rather than a parent
// reference, per the "no parent pointers" design note — rules that need
// sibling context navigate from the root node using Pointer arithmetic.
type Located struct {
	At    pointer.Pointer
	Scope Scope
}

// OntologyClass is a reference to a single ontology term, e.g. an HPO or
// MONDO CURIE plus its human-readable label.
type OntologyClass struct {
	Located
	ID    string
	Label string
}

// TimeElement carries either an OntologyClass onset/resolution marker or
// a free-text age; the linter only ever inspects the ontology-class form.
type TimeElement struct {
	OntologyClass *OntologyClass
	Age           string
}

// PhenotypicFeature is an observed or excluded phenotype, optionally
// qualified by modifiers, onset, and resolution.
type PhenotypicFeature struct {
	Located
	Description string
	Type        OntologyClass
	Excluded    bool
	Modifiers   []OntologyClass
	Onset       *TimeElement
	Resolution  *TimeElement
}

// Disease is a diagnosed or excluded disease term, with optional onset.
type Disease struct {
	Located
	Term     OntologyClass
	Excluded bool
	Onset    []TimeElement
}

// Diagnosis is the disease term of an Interpretation's diagnosis; its
// genomic interpretations are not materialized.
type Diagnosis struct {
	Located
	Disease OntologyClass
}

// Resource declares a CURIE namespace this document's ontology-class ids
// may draw from.
type Resource struct {
	Located
	ID              string
	Name            string
	NamespacePrefix string
	IRIPrefix       string
}

// VitalStatus records whether the subject is alive or deceased.
type VitalStatus struct {
	Located
	Status       string
	CauseOfDeath *OntologyClass
}

// Phenopacket is a single patient record: the CASE scope's root entity.
type Phenopacket struct {
	Located
	ID                 string
	PhenotypicFeatures []PhenotypicFeature
	Diseases           []Disease
	Diagnoses          []Diagnosis
}

// Cohort is a collection of Phenopackets sharing no implied relationship;
// inserting one establishes the repository's COHORT watermark (see
// internal/repository).
type Cohort struct {
	Located
	ID      string
	Members []Phenopacket
}

// ScopeOf derives the Scope a node of type T at pointer p should be filed
// under, given whether a COHORT boundary (a Cohort or Family node) has
// already been observed in this repository.
//
//	scope_of(T, pointer):
//	  if T == Phenopacket: return CASE
//	  if T in {Cohort, Family}: return COHORT
//	  if any segment of pointer in {members, relatives, proband}: return CASE
//	  if no COHORT boundary has yet been observed: return CASE
//	  else: return COHORT
func ScopeOf(isPhenopacket, isCohortOrFamily bool, at pointer.Pointer, cohortBoundaryObserved bool) Scope {
	if isPhenopacket {
		return Case
	}
	if isCohortOrFamily {
		return Cohort
	}
	for _, seg := range []string{"members", "relatives", "proband"} {
		if at.Contains(seg) {
			return Case
		}
	}
	if !cohortBoundaryObserved {
		return Case
	}
	return Cohort
}

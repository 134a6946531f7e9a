package model

import (
	"testing"

	"phenolint/pkg/pointer"
)

func TestScopeOfPhenopacketIsAlwaysCase(t *testing.T) {
	if got := ScopeOf(true, false, pointer.Root(), true); got != Case {
		t.Errorf("ScopeOf(isPhenopacket=true) = %v, want Case", got)
	}
}

func TestScopeOfCohortOrFamilyIsAlwaysCohort(t *testing.T) {
	if got := ScopeOf(false, true, pointer.Root(), false); got != Cohort {
		t.Errorf("ScopeOf(isCohortOrFamily=true) = %v, want Cohort", got)
	}
}

func TestScopeOfNestedUnderMembersIsCase(t *testing.T) {
	at := pointer.New("members", "0", "phenotypicFeatures", "0")
	if got := ScopeOf(false, false, at, true); got != Case {
		t.Errorf("ScopeOf(nested under members) = %v, want Case", got)
	}
}

func TestScopeOfNestedUnderRelativesIsCase(t *testing.T) {
	at := pointer.New("relatives", "0", "diseases", "0")
	if got := ScopeOf(false, false, at, true); got != Case {
		t.Errorf("ScopeOf(nested under relatives) = %v, want Case", got)
	}
}

func TestScopeOfNestedUnderProbandIsCase(t *testing.T) {
	at := pointer.New("proband", "diseases", "0")
	if got := ScopeOf(false, false, at, true); got != Case {
		t.Errorf("ScopeOf(nested under proband) = %v, want Case", got)
	}
}

func TestScopeOfBareDocumentBeforeCohortBoundaryIsCase(t *testing.T) {
	at := pointer.New("phenotypicFeatures", "0")
	if got := ScopeOf(false, false, at, false); got != Case {
		t.Errorf("ScopeOf(no boundary observed) = %v, want Case", got)
	}
}

func TestScopeOfAfterCohortBoundaryWithoutBoundarySegmentIsCohort(t *testing.T) {
	at := pointer.New("description")
	if got := ScopeOf(false, false, at, true); got != Cohort {
		t.Errorf("ScopeOf(boundary observed, no members/relatives/proband segment) = %v, want Cohort", got)
	}
}

func TestScopeString(t *testing.T) {
	if Case.String() != "CASE" {
		t.Errorf("Case.String() = %q, want CASE", Case.String())
	}
	if Cohort.String() != "COHORT" {
		t.Errorf("Cohort.String() = %q, want COHORT", Cohort.String())
	}
}

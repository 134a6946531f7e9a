// Package rules defines the self-registering rule registry and the Rule
// contract itself. Concrete rules live in subpackages (curies,
// interpretation, hpo) and self-register from an init() function; this
// package never imports them, keeping the registration distributed.
package rules

import (
	"fmt"
	"regexp"
	"sort"

	"phenolint/internal/context"
	"phenolint/internal/repository"
	"phenolint/internal/report"
	"phenolint/internal/tree"
	"phenolint/pkg/pointer"
)

// CheckType is the fixed, closed set of entity types a rule may declare
// as its primary dispatch type.
type CheckType int

const (
	TOntologyClass CheckType = iota
	TPhenotypicFeature
	TPhenopacket
	TDisease
	TDiagnosis
	TResource
	TCohort
	TVitalStatus
)

func (t CheckType) String() string {
	switch t {
	case TOntologyClass:
		return "OntologyClass"
	case TPhenotypicFeature:
		return "PhenotypicFeature"
	case TPhenopacket:
		return "Phenopacket"
	case TDisease:
		return "Disease"
	case TDiagnosis:
		return "Diagnosis"
	case TResource:
		return "Resource"
	case TCohort:
		return "Cohort"
	case TVitalStatus:
		return "VitalStatus"
	default:
		return "Unknown"
	}
}

// CheckTypeOrder is the canonical type-list order in which the router
// visits each type's registrations; it mirrors the materializer's
// try_parse order.
var CheckTypeOrder = []CheckType{
	TOntologyClass, TPhenotypicFeature, TPhenopacket,
	TDisease, TDiagnosis, TResource, TCohort, TVitalStatus,
}

// RootNode is the dynamic root node rules receive alongside their typed
// data slice: the whole canonical tree plus its span map, so a rule
// needing sibling context (e.g. INTER001 reading a phenopacket's
// top-level diseases from a nested diagnosis pointer) can navigate with
// pointer arithmetic instead of a parent reference.
type RootNode struct {
	Value tree.Value
	Spans tree.SpanMap
}

// ValueAt resolves p against the root tree.
func (r RootNode) ValueAt(p pointer.Pointer) (tree.Value, bool) {
	return tree.ValueAt(r.Value, p)
}

// SpanAt looks up p's byte span.
func (r RootNode) SpanAt(p pointer.Pointer) (tree.Span, bool) {
	return r.Spans.Lookup(p)
}

// Rule is the contract every concrete check implements. CompileReport and
// CompilePatches stand in for separate report/patch compiler registries:
// returning nil/empty from either means "no compiler registered for this
// rule", i.e. a silent violation or an unrepaired one. Folding the three
// registries (rule/report/patch) that share a rule_id into one interface
// is a deliberate Go simplification.
type Rule interface {
	// Check inspects repo (fetching whatever typed slices it needs) and
	// returns every violation found. Pure: no I/O, no mutation.
	Check(repo *repository.Repository, root RootNode) []report.LintViolation

	// CompileReport turns one violation into a renderable diagnostic, or
	// nil if this rule has no report compiler.
	CompileReport(v report.LintViolation, root RootNode) *report.ReportSpec

	// CompilePatches turns one violation into zero or more proposed
	// patches.
	CompilePatches(v report.LintViolation, root RootNode) []report.Patch
}

// Factory builds a Rule instance from a LinterContext. It returns
// linterr.NeedsHPO (via linterr.Sentinel) when the rule requires an
// ontology the context doesn't have; the router recovers from that one
// error locally.
type Factory func(ctx *context.LinterContext) (Rule, error)

// Registration is one entry in the distributed registry.
type Registration struct {
	RuleID    string
	CheckType CheckType
	Factory   Factory
}

var (
	byType    = map[CheckType][]Registration{}
	idPattern = regexp.MustCompile(`^[A-Z]{1,5}[0-9]{3}$`)
)

// Register adds reg to the registry. Called from each rule package's
// init(), so registration happens at process static-initialization time
// for every rule package the binary imports (internal/linter
// blank-imports all of them).
func Register(reg Registration) {
	byType[reg.CheckType] = append(byType[reg.CheckType], reg)
}

// ForType returns every registration for t, in registration order.
func ForType(t CheckType) []Registration {
	return byType[t]
}

// Validate enforces the bootstrap invariants: every rule_id is unique
// across the process and matches ^[A-Z]{1,5}[0-9]{3}$. Call once before
// any lint runs; a violation here means a rule package registered itself
// wrong, not a bad input.
func Validate() error {
	seen := make(map[string]bool)
	var ids []string
	for _, regs := range byType {
		for _, r := range regs {
			ids = append(ids, r.RuleID)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		if !idPattern.MatchString(id) {
			return fmt.Errorf("rules: id %q does not match %s", id, idPattern.String())
		}
		if seen[id] {
			return fmt.Errorf("rules: duplicate rule id %q", id)
		}
		seen[id] = true
	}
	return nil
}

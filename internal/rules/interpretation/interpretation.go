// Package interpretation holds rules that cross-check an Interpretation's
// diagnosis against the rest of its containing Phenopacket: that the
// diagnosed disease is also listed at the top level (INTER001), and that
// every CURIE prefix in play resolves to a declared Resource (INTER002).
package interpretation

import (
	"fmt"
	"strings"

	"phenolint/internal/context"
	"phenolint/internal/model"
	"phenolint/internal/report"
	"phenolint/internal/repository"
	"phenolint/internal/rules"
	"phenolint/internal/tree"
	"phenolint/pkg/pointer"
)

func init() {
	rules.Register(rules.Registration{
		RuleID:    "INTER001",
		CheckType: rules.TDiagnosis,
		Factory:   func(*context.LinterContext) (rules.Rule, error) { return diseaseConsistencyRule{}, nil },
	})
	rules.Register(rules.Registration{
		RuleID:    "INTER002",
		CheckType: rules.TResource,
		Factory:   func(*context.LinterContext) (rules.Rule, error) { return curieResourceBindingRule{}, nil },
	})
}

// phenopacketRootOf truncates a pointer nested under .../interpretations/N/...
// back to the pointer of its containing Phenopacket. Per the "no parent
// pointers" design note, this is how a rule recovers sibling context
// (here, the phenopacket's top-level /diseases) from a pointer alone.
func phenopacketRootOf(at pointer.Pointer) pointer.Pointer {
	segs := at.Segments()
	for i, s := range segs {
		if s == "interpretations" {
			return pointer.New(segs[:i]...)
		}
	}
	return pointer.Root()
}

// diseaseConsistencyRule implements INTER001: a diagnosed disease absent
// from the containing Phenopacket's top-level diseases list is flagged,
// with a patch appending it there.
type diseaseConsistencyRule struct{}

func (diseaseConsistencyRule) Check(repo *repository.Repository, root rules.RootNode) []report.LintViolation {
	phenopackets := repository.FetchAll[model.Phenopacket](repo)
	var violations []report.LintViolation
	for _, pp := range phenopackets {
		known := make(map[string]bool, len(pp.Diseases))
		for _, d := range pp.Diseases {
			known[d.Term.ID] = true
		}
		for _, dx := range pp.Diagnoses {
			if !known[dx.Disease.ID] {
				violations = append(violations, report.NewViolation("INTER001", dx.At))
			}
		}
	}
	return violations
}

func (diseaseConsistencyRule) CompileReport(v report.LintViolation, root rules.RootNode) *report.ReportSpec {
	ptr := v.Primary()
	diseaseVal, _ := root.ValueAt(ptr.Down("disease"))
	id := ""
	if m, ok := diseaseVal.Get("id"); ok {
		id = m.Str
	}
	var labels []report.LabelSpec
	if span, ok := root.SpanAt(ptr); ok {
		labels = append(labels, report.LabelSpec{
			Style:   report.Primary,
			Range:   span,
			Message: fmt.Sprintf("diagnosed disease %q is not listed under /diseases", id),
		})
	}
	return &report.ReportSpec{
		Severity: report.SeverityError,
		Code:     "INTER001",
		Message:  fmt.Sprintf("diagnosis references disease %q which is absent from the phenopacket's top-level diseases", id),
		Labels:   labels,
	}
}

func (diseaseConsistencyRule) CompilePatches(v report.LintViolation, root rules.RootNode) []report.Patch {
	ptr := v.Primary()
	diseaseVal, ok := root.ValueAt(ptr.Down("disease"))
	if !ok {
		return nil
	}

	ppAt := phenopacketRootOf(ptr)
	diseasesAt := ppAt.Down("diseases")

	existing, ok := root.ValueAt(diseasesAt)
	var items []tree.Value
	if ok && existing.Kind == tree.KindSeq {
		items = append(items, existing.Seq...)
	}

	entry := tree.NewMap()
	entry.Set("term", diseaseVal)
	items = append(items, tree.MapValue(entry))

	return []report.Patch{
		{report.Add{At: diseasesAt, Value: tree.Seq(items...)}},
	}
}

// curieResourceBindingRule implements INTER002: every distinct CURIE
// prefix seen across OntologyClass ids in the document must resolve to a
// declared Resource's namespacePrefix. Each unresolved prefix is reported
// once, not once per occurrence (original_source's per-prefix-once
// behavior, kept verbatim — see SPEC_FULL.md scenario 4).
type curieResourceBindingRule struct{}

func (curieResourceBindingRule) Check(repo *repository.Repository, root rules.RootNode) []report.LintViolation {
	resources := repository.FetchAll[model.Resource](repo)
	known := make(map[string]bool, len(resources))
	for _, r := range resources {
		if r.NamespacePrefix != "" {
			known[r.NamespacePrefix] = true
		}
	}

	classes := repository.FetchAll[model.OntologyClass](repo)
	reported := make(map[string]bool)
	var violations []report.LintViolation
	for _, oc := range classes {
		prefix := curiePrefix(oc.ID)
		if prefix == "" || known[prefix] || reported[prefix] {
			continue
		}
		reported[prefix] = true
		violations = append(violations, report.NewViolation("INTER002", oc.At.Down("id")))
	}
	return violations
}

func (curieResourceBindingRule) CompileReport(v report.LintViolation, root rules.RootNode) *report.ReportSpec {
	ptr := v.Primary()
	val, _ := root.ValueAt(ptr)
	prefix := curiePrefix(val.Str)
	var labels []report.LabelSpec
	if span, ok := root.SpanAt(ptr); ok {
		labels = append(labels, report.LabelSpec{
			Style:   report.Primary,
			Range:   span,
			Message: fmt.Sprintf("CURIE prefix %q has no declared resource", prefix),
		})
	}
	return &report.ReportSpec{
		Severity: report.SeverityWarning,
		Code:     "INTER002",
		Message:  fmt.Sprintf("no Resource declares namespacePrefix %q", prefix),
		Labels:   labels,
	}
}

func (curieResourceBindingRule) CompilePatches(v report.LintViolation, root rules.RootNode) []report.Patch {
	// Declaring a plausible Resource on the caller's behalf would be
	// guessing at a name/url/version the linter cannot know; unrepairable.
	return nil
}

func curiePrefix(id string) string {
	prefix, _, ok := strings.Cut(id, ":")
	if !ok {
		return ""
	}
	return prefix
}

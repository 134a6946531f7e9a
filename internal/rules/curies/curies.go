// Package curies holds rules that check CURIE-shaped identifiers:
// OntologyClass.id format, and a disabled-by-default no-op used as a
// registration smoke test.
package curies

import (
	"fmt"
	"regexp"

	"phenolint/internal/context"
	"phenolint/internal/model"
	"phenolint/internal/report"
	"phenolint/internal/repository"
	"phenolint/internal/rules"
)

// curiePattern accepts PREFIX:LocalID where PREFIX is a bare alphanumeric
// token (no underscores, no punctuation) and LocalID is alphanumeric.
// "invalid_id:31nm" fails on the prefix half (the underscore).
var curiePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*:[A-Za-z0-9]+$`)

func init() {
	rules.Register(rules.Registration{
		RuleID:    "CURIE001",
		CheckType: rules.TOntologyClass,
		Factory:   func(*context.LinterContext) (rules.Rule, error) { return formatRule{}, nil },
	})
	rules.Register(rules.Registration{
		RuleID:    "CURIE999",
		CheckType: rules.TPhenopacket,
		Factory:   func(*context.LinterContext) (rules.Rule, error) { return noopRule{}, nil },
	})
}

// formatRule implements CURIE001: every OntologyClass.id must be a
// syntactically valid CURIE.
type formatRule struct{}

func (formatRule) Check(repo *repository.Repository, root rules.RootNode) []report.LintViolation {
	var violations []report.LintViolation
	for _, oc := range repository.FetchAll[model.OntologyClass](repo) {
		if !curiePattern.MatchString(oc.ID) {
			violations = append(violations, report.NewViolation("CURIE001", oc.At.Down("id")))
		}
	}
	return violations
}

func (formatRule) CompileReport(v report.LintViolation, root rules.RootNode) *report.ReportSpec {
	ptr := v.Primary()
	val, ok := root.ValueAt(ptr)
	id := ""
	if ok {
		id = val.Str
	}
	labels := []report.LabelSpec{}
	if span, ok := root.SpanAt(ptr); ok {
		labels = append(labels, report.LabelSpec{
			Style:   report.Primary,
			Range:   span,
			Message: fmt.Sprintf("not a valid CURIE: %q", id),
		})
	}
	return &report.ReportSpec{
		Severity: report.SeverityError,
		Code:     "CURIE001",
		Message:  fmt.Sprintf("invalid CURIE %q: expected PREFIX:LocalID", id),
		Labels:   labels,
	}
}

func (formatRule) CompilePatches(v report.LintViolation, root rules.RootNode) []report.Patch {
	return nil
}

// noopRule implements CURIE999: a rule that never reports a violation.
// It is registered, and so covered by the registry bootstrap checks, but
// is disabled by default — callers must explicitly enable "CURIE999".
type noopRule struct{}

func (noopRule) Check(*repository.Repository, rules.RootNode) []report.LintViolation { return nil }
func (noopRule) CompileReport(report.LintViolation, rules.RootNode) *report.ReportSpec { return nil }
func (noopRule) CompilePatches(report.LintViolation, rules.RootNode) []report.Patch    { return nil }

// Package linter wires the whole pipeline together: parse, materialize,
// dispatch rules, compile diagnostics and patches, optionally apply them,
// and optionally render diagnostics to stderr. This is the single entry
// point the rest of phenolint calls to lint an input.
package linter

import (
	"fmt"
	"os"

	"phenolint/internal/context"
	"phenolint/internal/linterr"
	"phenolint/internal/materializer"
	"phenolint/internal/patch"
	"phenolint/internal/renderer"
	"phenolint/internal/repository"
	"phenolint/internal/report"
	"phenolint/internal/rules"
	"phenolint/internal/tree"

	// Blank-imported so each rule package's init() self-registers
	// regardless of which other internal/linter callers import directly.
	_ "phenolint/internal/rules/curies"
	_ "phenolint/internal/rules/hpo"
	_ "phenolint/internal/rules/interpretation"

	"go.uber.org/zap"
)

// LintResult is the outcome of one lint call.
type LintResult struct {
	Report report.LintReport
	Err    error
}

func ok(r report.LintReport) LintResult               { return LintResult{Report: r} }
func partial(r report.LintReport, err error) LintResult { return LintResult{Report: r, Err: err} }
func errResult(err error) LintResult                   { return LintResult{Err: err} }

// Lint runs the full pipeline over input (either bytes or text, tried via
// tree.Parse), applying patches when patch is true and rendering
// diagnostics to stderr when quiet is false.
func Lint(log *zap.Logger, ctx *context.LinterContext, input []byte, applyPatches, quiet bool) LintResult {
	if err := rules.Validate(); err != nil {
		return errResult(linterr.Wrap(linterr.FactoryOther, "rule registry bootstrap", err))
	}

	root, spans, enc, err := tree.Parse(input)
	if err != nil {
		return errResult(linterr.Wrap(linterr.Unparseable, "parsing input", err))
	}

	repo := repository.New()
	materializer.Materialize(root, spans, repo)

	rootNode := rules.RootNode{Value: root, Spans: spans}

	var findings []report.LintFinding
	for _, ct := range rules.CheckTypeOrder {
		for _, reg := range rules.ForType(ct) {
			if !ctx.Enabled(reg.RuleID) {
				continue
			}
			instance, ferr := reg.Factory(ctx)
			if ferr != nil {
				if le, isLE := ferr.(*linterr.Error); isLE && le.Kind == linterr.NeedsHPO {
					log.Warn("skipping rule: HPO not loaded", zap.String("rule_id", reg.RuleID))
					continue
				}
				return errResult(linterr.Wrap(linterr.FactoryOther, fmt.Sprintf("building rule %s", reg.RuleID), ferr))
			}

			violations := instance.Check(repo, rootNode)
			for _, v := range violations {
				finding := report.LintFinding{
					Violation:  v,
					ReportSpec: instance.CompileReport(v, rootNode),
					Patches:    instance.CompilePatches(v, rootNode),
				}
				findings = append(findings, finding)
			}
		}
	}

	lintReport := report.LintReport{Findings: findings}

	if !quiet {
		for _, f := range findings {
			if f.ReportSpec != nil {
				if rerr := renderer.Render(os.Stderr, *f.ReportSpec); rerr != nil {
					log.Warn("rendering diagnostic failed", zap.Error(rerr))
				}
			}
		}
	}

	if applyPatches {
		patched, perr := patch.ApplyAll(root, findings)
		if perr != nil {
			return partial(lintReport, linterr.Wrap(linterr.PatchingError, "applying patches", perr))
		}
		data, serr := patch.Serialize(patched, enc)
		if serr != nil {
			return partial(lintReport, linterr.Wrap(linterr.EncodeError, "re-serializing patched document", serr))
		}
		lintReport.PatchedPhenopacket = data
	}

	return ok(lintReport)
}

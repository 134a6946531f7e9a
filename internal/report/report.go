// Package report defines the diagnostic and patch data model produced by
// rule checks: violations, compiled diagnostics, proposed edits, and the
// findings/report wrapper that a lint call ultimately returns.
package report

import (
	"phenolint/internal/tree"
	"phenolint/pkg/pointer"
)

// Severity mirrors the three levels a compiled diagnostic may carry.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityHelp
)

// LabelStyle distinguishes a diagnostic's primary location from
// supporting secondary context.
type LabelStyle int

const (
	Primary LabelStyle = iota
	Secondary
)

// LabelSpec pins a styled message to an exact byte range in the original
// input.
type LabelSpec struct {
	Style   LabelStyle
	Range   tree.Span
	Message string
}

// ReportSpec is a compiled, renderable diagnostic.
type ReportSpec struct {
	Severity Severity
	Code     string
	Message  string
	Labels   []LabelSpec
	Notes    []string
}

// LintViolation is a rule's raw finding: the rule that raised it and a
// non-empty ordered sequence of locations, the first of which is the
// primary site.
type LintViolation struct {
	RuleID    string
	Locations []pointer.Pointer
}

// NewViolation builds a LintViolation with primary followed by any
// supporting context locations.
func NewViolation(ruleID string, primary pointer.Pointer, context ...pointer.Pointer) LintViolation {
	locs := append([]pointer.Pointer{primary}, context...)
	return LintViolation{RuleID: ruleID, Locations: locs}
}

// Primary returns the violation's primary location.
func (v LintViolation) Primary() pointer.Pointer {
	return v.Locations[0]
}

// PatchInstruction is the sum type of proposed tree edits: Add, Remove,
// Move (compound), Duplicate (compound).
type PatchInstruction interface {
	isPatchInstruction()
}

// Add inserts value at the given pointer.
type Add struct {
	At    pointer.Pointer
	Value tree.Value
}

// Remove deletes the node at the given pointer.
type Remove struct {
	At pointer.Pointer
}

// Move relocates the value at From to To; a compound resolved into an
// Add followed by a Remove.
type Move struct {
	From pointer.Pointer
	To   pointer.Pointer
}

// Duplicate copies the value at From to To; a compound resolved into a
// single Add.
type Duplicate struct {
	From pointer.Pointer
	To   pointer.Pointer
}

func (Add) isPatchInstruction()       {}
func (Remove) isPatchInstruction()    {}
func (Move) isPatchInstruction()      {}
func (Duplicate) isPatchInstruction() {}

// Patch is a non-empty ordered sequence of instructions issued atomically
// by one rule.
type Patch []PatchInstruction

// LintFinding bundles one violation with its compiled diagnostic (absent
// for rules with no report compiler) and any proposed patches.
type LintFinding struct {
	Violation  LintViolation
	ReportSpec *ReportSpec
	Patches    []Patch
}

// PhenopacketData is the patched-document payload: either re-serialized
// text or, for Protobuf inputs, re-encoded binary.
type PhenopacketData interface {
	isPhenopacketData()
}

// TextData is a re-serialized JSON or YAML document.
type TextData string

// BinaryData is a re-encoded Protobuf document.
type BinaryData []byte

func (TextData) isPhenopacketData()   {}
func (BinaryData) isPhenopacketData() {}

// LintReport is the full result of one lint call: every finding plus an
// optional patched document.
type LintReport struct {
	Findings           []LintFinding
	PatchedPhenopacket PhenopacketData
}

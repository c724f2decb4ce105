// Package bodylint is a single-pass diagnostic sweep over one typed body.
//
// It runs after inference and reports style and completeness findings:
// record literals/patterns with missing fields, non-exhaustive matches, the
// filter_map-then-next iterator idiom, trailing returns and unnecessary
// else branches. The pass never fails: any ambiguity (unresolved types,
// unresolved variants, oracle failure) makes the affected check abstain, so
// uncertainty only ever means fewer diagnostics.
package bodylint

import (
	"vetch/internal/hir"
	"vetch/internal/types"
)

// DiagnosticKind enumerates body-validation findings.
type DiagnosticKind uint8

const (
	// DiagRecordMissingFields flags a record literal or pattern that claims
	// completeness but omits declared fields.
	DiagRecordMissingFields DiagnosticKind = iota
	// DiagReplaceFilterMapNextWithFindMap flags `.filter_map(..).next()`.
	DiagReplaceFilterMapNextWithFindMap
	// DiagMissingMatchArms flags a non-exhaustive match expression.
	DiagMissingMatchArms
	// DiagRemoveTrailingReturn flags a redundant return in tail position.
	DiagRemoveTrailingReturn
	// DiagRemoveUnnecessaryElse flags an else after a diverging then branch.
	DiagRemoveUnnecessaryElse
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagRecordMissingFields:
		return "RecordMissingFields"
	case DiagReplaceFilterMapNextWithFindMap:
		return "ReplaceFilterMapNextWithFindMap"
	case DiagMissingMatchArms:
		return "MissingMatchArms"
	case DiagRemoveTrailingReturn:
		return "RemoveTrailingReturn"
	case DiagRemoveUnnecessaryElse:
		return "RemoveUnnecessaryElse"
	default:
		return "Unknown"
	}
}

// Diagnostic is one immutable finding about a body. It references the body
// only through node ids.
type Diagnostic struct {
	Kind DiagnosticKind
	Data DiagnosticData
}

// DiagnosticData is the interface for kind-specific payloads.
type DiagnosticData interface {
	diagnosticData()
}

// RecordMissingFieldsData reports omitted fields on a record literal (Expr
// set) or record pattern (Pat set); exactly one of the two ids is valid.
type RecordMissingFieldsData struct {
	Expr          hir.ExprID
	Pat           hir.PatID
	Variant       types.VariantID
	MissingFields []string // declaration order
}

func (RecordMissingFieldsData) diagnosticData() {}

// ReplaceFilterMapNextWithFindMapData anchors at the `next` call site.
type ReplaceFilterMapNextWithFindMapData struct {
	MethodCall hir.ExprID
}

func (ReplaceFilterMapNextWithFindMapData) diagnosticData() {}

// MissingMatchArmsData carries the rendered uncovered-cases summary.
type MissingMatchArmsData struct {
	Match             hir.ExprID
	UncoveredPatterns string
}

func (MissingMatchArmsData) diagnosticData() {}

// RemoveTrailingReturnData anchors at the return expression.
type RemoveTrailingReturnData struct {
	Return hir.ExprID
}

func (RemoveTrailingReturnData) diagnosticData() {}

// RemoveUnnecessaryElseData anchors at the if expression.
type RemoveUnnecessaryElseData struct {
	If hir.ExprID
}

func (RemoveUnnecessaryElseData) diagnosticData() {}

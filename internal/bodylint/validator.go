package bodylint

import (
	"vetch/internal/hir"
	"vetch/internal/infer"
)

// Collect runs every body-validation check on one owner and returns the
// findings in traversal order. Running it twice over unchanged inputs
// yields an identical list.
func Collect(provider Provider, owner hir.OwnerID) []Diagnostic {
	body := provider.Body(owner)
	inference := provider.Infer(owner)
	if body == nil || inference == nil {
		return nil
	}
	v := &validator{
		provider: provider,
		body:     body,
		infer:    inference,
	}
	v.validateBody()
	return v.diagnostics
}

type validator struct {
	provider    Provider
	body        *hir.Body
	infer       *infer.Result
	chain       *filterMapNextChecker
	diagnostics []Diagnostic
}

func (v *validator) push(kind DiagnosticKind, data DiagnosticData) {
	v.diagnostics = append(v.diagnostics, Diagnostic{Kind: kind, Data: data})
}

func (v *validator) validateBody() {
	// Static and const initializers have no tail-return notion.
	if v.body.OwnerKind == hir.OwnerFunc {
		v.checkTrailingReturn(v.body.Root)
	}

	v.body.EachExpr(func(id hir.ExprID, expr *hir.Expr) {
		if variant, missing, exhaustive, ok := RecordLiteralMissingFields(v.provider.Decls(), v.infer, id, expr); ok && exhaustive {
			v.push(DiagRecordMissingFields, RecordMissingFieldsData{
				Expr:          id,
				Variant:       variant,
				MissingFields: missing,
			})
		}

		switch expr.Kind {
		case hir.ExprMatch:
			data := expr.Data.(hir.MatchData)
			v.validateMatch(id, data.Scrutinee, data.Arms)
		case hir.ExprCall, hir.ExprMethodCall:
			v.validateCall(id, expr)
		case hir.ExprClosure:
			data := expr.Data.(hir.ClosureData)
			v.checkTrailingReturn(data.Body)
		case hir.ExprIf:
			v.checkUnnecessaryElse(id, expr)
		case hir.ExprLiteral, hir.ExprVarRef, hir.ExprBinaryOp,
			hir.ExprFieldAccess, hir.ExprBlock, hir.ExprRecordLit,
			hir.ExprReturn, hir.ExprLoop:
			// No expression-level check applies.
		}
	})

	v.body.EachPat(func(id hir.PatID, pat *hir.Pat) {
		if variant, missing, exhaustive, ok := RecordPatternMissingFields(v.provider.Decls(), v.infer, id, pat); ok && exhaustive {
			v.push(DiagRecordMissingFields, RecordMissingFieldsData{
				Pat:           id,
				Variant:       variant,
				MissingFields: missing,
			})
		}
	})
}

func (v *validator) validateCall(callID hir.ExprID, expr *hir.Expr) {
	if v.infer.HasTypeMismatches() {
		// Mismatches elsewhere in the body make method resolution
		// unreliable; skip rather than risk a false positive.
		return
	}
	data, ok := expr.Data.(hir.MethodCallData)
	if !ok {
		return
	}
	callee, ok := v.infer.MethodResolution(callID)
	if !ok {
		return
	}
	if v.chain == nil {
		v.chain = newFilterMapNextChecker(v.provider.LangItems())
	}
	if v.chain.check(callID, data.Receiver, callee) {
		v.push(DiagReplaceFilterMapNextWithFindMap, ReplaceFilterMapNextWithFindMapData{
			MethodCall: callID,
		})
	}
}

package bodylint

import (
	"vetch/internal/hir"
)

// checkTrailingReturn descends through tail positions (block tails, both if
// branches, every match arm) and flags any return expression it reaches.
// Returns in non-tail positions are never visited by this descent.
func (v *validator) checkTrailingReturn(exprID hir.ExprID) {
	expr := v.body.Expr(exprID)
	if expr == nil {
		return
	}
	switch data := expr.Data.(type) {
	case hir.BlockData:
		if last := blockTail(data); last.IsValid() {
			v.checkTrailingReturn(last)
		}
	case hir.IfData:
		v.checkTrailingReturn(data.Then)
		if data.Else.IsValid() {
			v.checkTrailingReturn(data.Else)
		}
	case hir.MatchData:
		for _, arm := range data.Arms {
			v.checkTrailingReturn(arm.Expr)
		}
	case hir.ReturnData:
		v.push(DiagRemoveTrailingReturn, RemoveTrailingReturnData{Return: exprID})
	}
}

// checkUnnecessaryElse flags an if-with-else whose then branch ends in a
// bottom-typed expression: the else is redundant because the then branch
// never completes normally. Only the then block's own tail is inspected.
func (v *validator) checkUnnecessaryElse(id hir.ExprID, expr *hir.Expr) {
	data, ok := expr.Data.(hir.IfData)
	if !ok || !data.Else.IsValid() {
		return
	}
	thenExpr := v.body.Expr(data.Then)
	if thenExpr == nil {
		return
	}
	block, ok := thenExpr.Data.(hir.BlockData)
	if !ok {
		return
	}
	last := blockTail(block)
	if !last.IsValid() {
		return
	}
	if v.provider.Types().IsNever(v.infer.TypeOfExpr(last)) {
		v.push(DiagRemoveUnnecessaryElse, RemoveUnnecessaryElseData{If: id})
	}
}

// blockTail resolves a block's tail position: its trailing expression, or
// the expression of its last statement when that statement is an
// expression statement.
func blockTail(data hir.BlockData) hir.ExprID {
	if data.Tail.IsValid() {
		return data.Tail
	}
	if len(data.Stmts) == 0 {
		return hir.NoExprID
	}
	last := data.Stmts[len(data.Stmts)-1]
	if last.Kind == hir.StmtExpr {
		return last.Expr
	}
	return hir.NoExprID
}

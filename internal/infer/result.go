// Package infer holds the read-only result of type inference for one body.
//
// The analysis layer produces a Result once per body; every later pass treats
// it as an oracle keyed by node id. Nothing here recomputes types.
package infer

import (
	"vetch/internal/hir"
	"vetch/internal/types"
)

// TypeMismatch records a disagreement between the expected and the actual
// type of a node.
type TypeMismatch struct {
	Expected types.TypeID
	Actual   types.TypeID
}

// Result stores inference artefacts for one body. Immutable once built.
type Result struct {
	exprTypes      map[hir.ExprID]types.TypeID
	patTypes       map[hir.PatID]types.TypeID
	exprMismatches map[hir.ExprID]TypeMismatch
	patMismatches  map[hir.PatID]TypeMismatch
	methods        map[hir.ExprID]hir.FuncID
	exprVariants   map[hir.ExprID]types.VariantID
	patVariants    map[hir.PatID]types.VariantID
}

// TypeOfExpr returns the resolved type of an expression, or NoTypeID.
func (r *Result) TypeOfExpr(id hir.ExprID) types.TypeID {
	return r.exprTypes[id]
}

// TypeOfPat returns the resolved type of a pattern, or NoTypeID.
func (r *Result) TypeOfPat(id hir.PatID) types.TypeID {
	return r.patTypes[id]
}

// MismatchForExpr returns the recorded type mismatch for an expression.
func (r *Result) MismatchForExpr(id hir.ExprID) (TypeMismatch, bool) {
	m, ok := r.exprMismatches[id]
	return m, ok
}

// MismatchForPat returns the recorded type mismatch for a pattern.
func (r *Result) MismatchForPat(id hir.PatID) (TypeMismatch, bool) {
	m, ok := r.patMismatches[id]
	return m, ok
}

// HasTypeMismatches reports whether any node of the body has a mismatch.
func (r *Result) HasTypeMismatches() bool {
	return len(r.exprMismatches) > 0 || len(r.patMismatches) > 0
}

// MethodResolution returns the resolved callee of a method call.
func (r *Result) MethodResolution(call hir.ExprID) (hir.FuncID, bool) {
	fn, ok := r.methods[call]
	return fn, ok
}

// VariantForExpr returns the variant a record literal resolved to.
func (r *Result) VariantForExpr(id hir.ExprID) (types.VariantID, bool) {
	v, ok := r.exprVariants[id]
	return v, ok
}

// VariantForPat returns the variant a record pattern resolved to.
func (r *Result) VariantForPat(id hir.PatID) (types.VariantID, bool) {
	v, ok := r.patVariants[id]
	return v, ok
}

// Builder accumulates inference facts before sealing them into a Result.
type Builder struct {
	res Result
}

// NewBuilder creates an empty inference builder.
func NewBuilder() *Builder {
	return &Builder{res: Result{
		exprTypes:      make(map[hir.ExprID]types.TypeID),
		patTypes:       make(map[hir.PatID]types.TypeID),
		exprMismatches: make(map[hir.ExprID]TypeMismatch),
		patMismatches:  make(map[hir.PatID]TypeMismatch),
		methods:        make(map[hir.ExprID]hir.FuncID),
		exprVariants:   make(map[hir.ExprID]types.VariantID),
		patVariants:    make(map[hir.PatID]types.VariantID),
	}}
}

// SetExprType records the resolved type of an expression.
func (b *Builder) SetExprType(id hir.ExprID, ty types.TypeID) *Builder {
	b.res.exprTypes[id] = ty
	return b
}

// SetPatType records the resolved type of a pattern.
func (b *Builder) SetPatType(id hir.PatID, ty types.TypeID) *Builder {
	b.res.patTypes[id] = ty
	return b
}

// AddExprMismatch records a type mismatch on an expression.
func (b *Builder) AddExprMismatch(id hir.ExprID, expected, actual types.TypeID) *Builder {
	b.res.exprMismatches[id] = TypeMismatch{Expected: expected, Actual: actual}
	return b
}

// AddPatMismatch records a type mismatch on a pattern.
func (b *Builder) AddPatMismatch(id hir.PatID, expected, actual types.TypeID) *Builder {
	b.res.patMismatches[id] = TypeMismatch{Expected: expected, Actual: actual}
	return b
}

// SetMethodResolution records the callee of a method call expression.
func (b *Builder) SetMethodResolution(call hir.ExprID, fn hir.FuncID) *Builder {
	b.res.methods[call] = fn
	return b
}

// SetExprVariant records the variant resolution of a record literal.
func (b *Builder) SetExprVariant(id hir.ExprID, v types.VariantID) *Builder {
	b.res.exprVariants[id] = v
	return b
}

// SetPatVariant records the variant resolution of a record pattern.
func (b *Builder) SetPatVariant(id hir.PatID, v types.VariantID) *Builder {
	b.res.patVariants[id] = v
	return b
}

// Finish seals the builder into an immutable Result.
func (b *Builder) Finish() *Result {
	return &b.res
}

package hir

import (
	"fmt"

	"fortio.org/safecast"

	"vetch/internal/source"
)

// Body owns the expression and pattern trees of one definition. Ids are
// 1-based; 0 is the invalid sentinel. A finished body is immutable.
type Body struct {
	Owner     OwnerID
	OwnerKind OwnerKind
	Root      ExprID // top-level body expression (usually a block)
	Params    []PatID

	exprs []Expr
	pats  []Pat
}

// Expr returns the expression node for an id, or nil for invalid ids.
func (b *Body) Expr(id ExprID) *Expr {
	if !id.IsValid() || int(id) > len(b.exprs) {
		return nil
	}
	return &b.exprs[id-1]
}

// Pat returns the pattern node for an id, or nil for invalid ids.
func (b *Body) Pat(id PatID) *Pat {
	if !id.IsValid() || int(id) > len(b.pats) {
		return nil
	}
	return &b.pats[id-1]
}

// NumExprs returns the number of expression nodes.
func (b *Body) NumExprs() int { return len(b.exprs) }

// NumPats returns the number of pattern nodes.
func (b *Body) NumPats() int { return len(b.pats) }

// EachExpr visits every expression node in storage order.
func (b *Body) EachExpr(fn func(ExprID, *Expr)) {
	for i := range b.exprs {
		fn(ExprID(i+1), &b.exprs[i])
	}
}

// EachPat visits every pattern node in storage order.
func (b *Body) EachPat(fn func(PatID, *Pat)) {
	for i := range b.pats {
		fn(PatID(i+1), &b.pats[i])
	}
}

// WalkChildPats invokes fn for each direct sub-pattern of the given pattern.
func (b *Body) WalkChildPats(id PatID, fn func(PatID)) {
	pat := b.Pat(id)
	if pat == nil {
		return
	}
	switch data := pat.Data.(type) {
	case BindData:
		if data.Sub.IsValid() {
			fn(data.Sub)
		}
	case RecordPatData:
		for _, field := range data.Fields {
			fn(field.Pat)
		}
	case VariantPatData:
		for _, arg := range data.Args {
			fn(arg)
		}
	case TuplePatData:
		for _, elem := range data.Elems {
			fn(elem)
		}
	case RefPatData:
		fn(data.Inner)
	case OrPatData:
		for _, alt := range data.Alts {
			fn(alt)
		}
	}
}

// Builder accumulates nodes for one body. Children must be allocated before
// their parents, so finished trees are acyclic by construction.
type Builder struct {
	body Body
	done bool
}

// NewBuilder starts building a body for the given owner.
func NewBuilder(owner OwnerID, kind OwnerKind) *Builder {
	return &Builder{body: Body{Owner: owner, OwnerKind: kind}}
}

// AddExpr allocates an expression node and returns its id.
func (bb *Builder) AddExpr(kind ExprKind, span source.Span, data ExprData) ExprID {
	if bb.done {
		panic("hir: AddExpr after Finish")
	}
	lenExprs, err := safecast.Conv[uint32](len(bb.body.exprs))
	if err != nil {
		panic(fmt.Errorf("len(exprs) overflow: %w", err))
	}
	bb.body.exprs = append(bb.body.exprs, Expr{Kind: kind, Span: span, Data: data})
	return ExprID(lenExprs + 1)
}

// AddPat allocates a pattern node and returns its id.
func (bb *Builder) AddPat(kind PatKind, span source.Span, data PatData) PatID {
	if bb.done {
		panic("hir: AddPat after Finish")
	}
	lenPats, err := safecast.Conv[uint32](len(bb.body.pats))
	if err != nil {
		panic(fmt.Errorf("len(pats) overflow: %w", err))
	}
	bb.body.pats = append(bb.body.pats, Pat{Kind: kind, Span: span, Data: data})
	return PatID(lenPats + 1)
}

// Finish seals the body with its root expression and parameter patterns.
func (bb *Builder) Finish(root ExprID, params ...PatID) *Body {
	if bb.done {
		panic("hir: Finish called twice")
	}
	bb.done = true
	bb.body.Root = root
	bb.body.Params = params
	return &bb.body
}

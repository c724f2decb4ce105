package fixture

import (
	"fmt"
	"strings"

	"vetch/internal/hir"
	"vetch/internal/infer"
	"vetch/internal/source"
	"vetch/internal/types"
)

// BodyFixture couples an HIR builder with its inference builder so tests
// can allocate a node and record its type in one step.
type BodyFixture struct {
	WS    *Workspace
	Owner hir.OwnerID
	B     *hir.Builder
	Inf   *infer.Builder
	File  source.FileID
	src   string
}

// NewBody starts a body fixture for a named owner over the given source
// text. The text is only used for spans and rendering.
func (ws *Workspace) NewBody(name string, kind hir.OwnerKind, src string) *BodyFixture {
	owner := ws.NewOwner(name)
	file := ws.Files.Add(name+".vt", []byte(src))
	return &BodyFixture{
		WS:    ws,
		Owner: owner,
		B:     hir.NewBuilder(owner, kind),
		Inf:   infer.NewBuilder(),
		File:  file,
		src:   src,
	}
}

// Span locates the first occurrence of text in the fixture source. It
// panics on a miss so fixtures stay in sync with their sources.
func (f *BodyFixture) Span(text string) source.Span {
	off := strings.Index(f.src, text)
	if off < 0 {
		panic(fmt.Sprintf("fixture: %q not found in source", text))
	}
	return source.Span{File: f.File, Start: uint32(off), End: uint32(off + len(text))}
}

// Expr allocates a typed expression node.
func (f *BodyFixture) Expr(kind hir.ExprKind, span source.Span, data hir.ExprData, ty types.TypeID) hir.ExprID {
	id := f.B.AddExpr(kind, span, data)
	if ty.IsValid() {
		f.Inf.SetExprType(id, ty)
	}
	return id
}

// Pat allocates a typed pattern node.
func (f *BodyFixture) Pat(kind hir.PatKind, span source.Span, data hir.PatData, ty types.TypeID) hir.PatID {
	id := f.B.AddPat(kind, span, data)
	if ty.IsValid() {
		f.Inf.SetPatType(id, ty)
	}
	return id
}

// Finish seals the body and registers it with the workspace.
func (f *BodyFixture) Finish(root hir.ExprID, params ...hir.PatID) *hir.Body {
	body := f.B.Finish(root, params...)
	f.WS.SetBody(f.Owner, body, f.Inf.Finish())
	return body
}

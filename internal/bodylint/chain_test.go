package bodylint

import (
	"testing"

	"vetch/internal/fixture"
	"vetch/internal/hir"
)

type chainStep struct {
	name string
	fn   hir.FuncID
}

// chainFixture builds a method chain rooted at a variable: each step becomes
// one chained call resolved to the given function.
func chainFixture(t *testing.T, ws *fixture.Workspace, methods ...chainStep) hir.OwnerID {
	t.Helper()
	b := ws.Interner.Builtins()
	f := ws.NewBody("chain", hir.OwnerFunc, "names chain body")

	recv := f.Expr(hir.ExprVarRef, f.Span("names"), hir.VarRefData{Name: "names"}, b.Int)
	for _, m := range methods {
		call := f.Expr(hir.ExprMethodCall, f.Span("chain"), hir.MethodCallData{
			Receiver: recv,
			Method:   m.name,
		}, b.Int)
		if m.fn.IsValid() {
			f.Inf.SetMethodResolution(call, m.fn)
		}
		recv = call
	}
	f.Finish(recv)
	return f.Owner
}

func TestFilterMapNextFires(t *testing.T) {
	ws := fixture.NewWorkspace()
	next, filterMap, _ := fixture.StdIterator(ws.Items)

	owner := chainFixture(t, ws,
		chainStep{"filter_map", filterMap},
		chainStep{"next", next},
	)
	diags := Collect(ws, owner)
	if len(diags) != 1 || diags[0].Kind != DiagReplaceFilterMapNextWithFindMap {
		t.Fatalf("diagnostics = %+v, want one filter_map/next finding", diags)
	}
	data := diags[0].Data.(ReplaceFilterMapNextWithFindMapData)
	body := ws.Body(owner)
	call := body.Expr(data.MethodCall)
	if call == nil || call.Data.(hir.MethodCallData).Method != "next" {
		t.Errorf("finding anchored at %+v, want the next() call", call)
	}
}

func TestInterveningCallBreaksChain(t *testing.T) {
	ws := fixture.NewWorkspace()
	next, filterMap, mapFn := fixture.StdIterator(ws.Items)

	owner := chainFixture(t, ws,
		chainStep{"filter_map", filterMap},
		chainStep{"map", mapFn},
		chainStep{"next", next},
	)
	if diags := Collect(ws, owner); len(diags) != 0 {
		t.Fatalf("diagnostics = %+v, want none", diags)
	}
}

func TestNextAloneDoesNotFire(t *testing.T) {
	ws := fixture.NewWorkspace()
	next, _, _ := fixture.StdIterator(ws.Items)

	owner := chainFixture(t, ws, chainStep{"next", next})
	if diags := Collect(ws, owner); len(diags) != 0 {
		t.Fatalf("diagnostics = %+v, want none", diags)
	}
}

func TestDoubleFilterMapThenNextFires(t *testing.T) {
	ws := fixture.NewWorkspace()
	next, filterMap, _ := fixture.StdIterator(ws.Items)

	owner := chainFixture(t, ws,
		chainStep{"filter_map", filterMap},
		chainStep{"filter_map", filterMap},
		chainStep{"next", next},
	)
	// Only the inner pair forms the anti-pattern; still exactly one finding.
	diags := Collect(ws, owner)
	if len(diags) != 1 || diags[0].Kind != DiagReplaceFilterMapNextWithFindMap {
		t.Fatalf("diagnostics = %+v, want one finding", diags)
	}
}

func TestNextOnDifferentReceiver(t *testing.T) {
	ws := fixture.NewWorkspace()
	next, filterMap, _ := fixture.StdIterator(ws.Items)
	b := ws.Interner.Builtins()

	f := ws.NewBody("split_chain", hir.OwnerFunc, "names other")
	names := f.Expr(hir.ExprVarRef, f.Span("names"), hir.VarRefData{Name: "names"}, b.Int)
	filterCall := f.Expr(hir.ExprMethodCall, f.Span("names"), hir.MethodCallData{
		Receiver: names,
		Method:   "filter_map",
	}, b.Int)
	f.Inf.SetMethodResolution(filterCall, filterMap)
	other := f.Expr(hir.ExprVarRef, f.Span("other"), hir.VarRefData{Name: "other"}, b.Int)
	nextCall := f.Expr(hir.ExprMethodCall, f.Span("other"), hir.MethodCallData{
		Receiver: other,
		Method:   "next",
	}, b.Int)
	f.Inf.SetMethodResolution(nextCall, next)
	f.Finish(nextCall)

	if diags := Collect(ws, f.Owner); len(diags) != 0 {
		t.Fatalf("diagnostics = %+v, want none", diags)
	}
}

func TestNoLangItemStaysInert(t *testing.T) {
	ws := fixture.NewWorkspace()
	// Trait methods exist but Iterator::next is never bound as a lang item.
	trait := ws.Items.AddTrait("Iterator")
	filterMap := ws.Items.AddTraitMethod(trait, "filter_map")
	next := ws.Items.AddTraitMethod(trait, "next")

	owner := chainFixture(t, ws,
		chainStep{"filter_map", filterMap},
		chainStep{"next", next},
	)
	if diags := Collect(ws, owner); len(diags) != 0 {
		t.Fatalf("diagnostics = %+v, want none", diags)
	}
}

func TestMismatchedBodySkipsChainCheck(t *testing.T) {
	ws := fixture.NewWorkspace()
	next, filterMap, _ := fixture.StdIterator(ws.Items)
	b := ws.Interner.Builtins()

	f := ws.NewBody("mismatched", hir.OwnerFunc, "names bad")
	names := f.Expr(hir.ExprVarRef, f.Span("names"), hir.VarRefData{Name: "names"}, b.Int)
	filterCall := f.Expr(hir.ExprMethodCall, f.Span("names"), hir.MethodCallData{
		Receiver: names,
		Method:   "filter_map",
	}, b.Int)
	f.Inf.SetMethodResolution(filterCall, filterMap)
	nextCall := f.Expr(hir.ExprMethodCall, f.Span("bad"), hir.MethodCallData{
		Receiver: filterCall,
		Method:   "next",
	}, b.Int)
	f.Inf.SetMethodResolution(nextCall, next)
	f.Inf.AddExprMismatch(names, b.Int, b.Bool)
	f.Finish(nextCall)

	if diags := Collect(ws, f.Owner); len(diags) != 0 {
		t.Fatalf("diagnostics = %+v, want none under type mismatches", diags)
	}
}

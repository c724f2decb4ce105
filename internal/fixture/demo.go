package fixture

import (
	"vetch/internal/hir"
	"vetch/internal/types"
)

// BuildDemo populates the workspace with the demo corpus: one body per
// lint, each constructed the way lowering would emit it. It returns the
// owners in registration order.
func BuildDemo(ws *Workspace) []hir.OwnerID {
	b := ws.Interner.Builtins()
	point := ws.Registry.AddStruct("Point",
		types.Field{Name: "x", Type: b.Int},
		types.Field{Name: "y", Type: b.Int},
	)
	color := ws.Registry.AddEnum("Color",
		types.EnumVariant{Name: "Red"},
		types.EnumVariant{Name: "Green"},
		types.EnumVariant{Name: "Blue"},
	)
	next, filterMap, _ := StdIterator(ws.Items)

	buildPointBody(ws, point)
	buildColorBody(ws, color)
	buildChainBody(ws, filterMap, next)
	buildFlowBody(ws)
	return ws.Owners()
}

// buildPointBody: a record literal omitting a declared field.
//
//	fn make_point() -> Point {
//	    Point { x: 1 }
//	}
func buildPointBody(ws *Workspace, point types.DeclID) {
	src := "fn make_point() -> Point {\n    Point { x: 1 }\n}\n"
	f := ws.NewBody("make_point", hir.OwnerFunc, src)
	b := ws.Interner.Builtins()
	pointTy := ws.Interner.Intern(types.MakeAdt(point))

	one := f.Expr(hir.ExprLiteral, f.Span("1"), hir.LiteralData{Kind: hir.LiteralInt, Text: "1"}, b.Int)
	lit := f.Expr(hir.ExprRecordLit, f.Span("Point { x: 1 }"), hir.RecordLitData{
		Path:   "Point",
		Fields: []hir.RecordFieldInit{{Name: "x", Expr: one}},
	}, pointTy)
	f.Inf.SetExprVariant(lit, types.StructVariant(point))
	root := f.Expr(hir.ExprBlock, f.Span(src), hir.BlockData{Tail: lit}, pointTy)
	f.Finish(root)
}

// buildColorBody: a match covering one of three enum constructors.
//
//	fn classify(c: Color) -> int {
//	    match c {
//	        Color::Red => 1,
//	    }
//	}
func buildColorBody(ws *Workspace, color types.DeclID) {
	src := "fn classify(c: Color) -> int {\n    match c {\n        Color::Red => 1,\n    }\n}\n"
	f := ws.NewBody("classify", hir.OwnerFunc, src)
	b := ws.Interner.Builtins()
	colorTy := ws.Interner.Intern(types.MakeAdt(color))

	scrut := f.Expr(hir.ExprVarRef, f.Span("c {"), hir.VarRefData{Name: "c"}, colorTy)
	redPat := f.Pat(hir.PatVariant, f.Span("Color::Red"), hir.VariantPatData{Path: "Color::Red"}, colorTy)
	f.Inf.SetPatVariant(redPat, types.EnumVariantID(color, 0))
	one := f.Expr(hir.ExprLiteral, f.Span("1,"), hir.LiteralData{Kind: hir.LiteralInt, Text: "1"}, b.Int)
	match := f.Expr(hir.ExprMatch, f.Span("match c"), hir.MatchData{
		Scrutinee: scrut,
		Arms:      []hir.MatchArm{{Pat: redPat, Expr: one}},
	}, b.Int)
	root := f.Expr(hir.ExprBlock, f.Span(src), hir.BlockData{Tail: match}, b.Int)
	f.Finish(root)
}

// buildChainBody: the filter_map-then-next idiom.
//
//	fn first_short(names: Names) -> Option {
//	    names.filter_map(check).next()
//	}
func buildChainBody(ws *Workspace, filterMap, next hir.FuncID) {
	src := "fn first_short(names: Names) -> Option {\n    names.filter_map(check).next()\n}\n"
	f := ws.NewBody("first_short", hir.OwnerFunc, src)
	b := ws.Interner.Builtins()

	names := f.Expr(hir.ExprVarRef, f.Span("names."), hir.VarRefData{Name: "names"}, b.Int)
	check := f.Expr(hir.ExprVarRef, f.Span("check"), hir.VarRefData{Name: "check"}, b.Int)
	filterCall := f.Expr(hir.ExprMethodCall, f.Span("names.filter_map(check)"), hir.MethodCallData{
		Receiver: names,
		Method:   "filter_map",
		Args:     []hir.ExprID{check},
	}, b.Int)
	f.Inf.SetMethodResolution(filterCall, filterMap)
	nextCall := f.Expr(hir.ExprMethodCall, f.Span("names.filter_map(check).next()"), hir.MethodCallData{
		Receiver: filterCall,
		Method:   "next",
	}, b.Int)
	f.Inf.SetMethodResolution(nextCall, next)
	root := f.Expr(hir.ExprBlock, f.Span(src), hir.BlockData{Tail: nextCall}, b.Int)
	f.Finish(root)
}

// buildFlowBody: a diverging then branch plus a trailing return.
//
//	fn ensure(v: int) -> int {
//	    if v < 0 {
//	        halt()
//	    } else {
//	        return v
//	    }
//	}
func buildFlowBody(ws *Workspace) {
	src := "fn ensure(v: int) -> int {\n    if v < 0 {\n        halt()\n    } else {\n        return v\n    }\n}\n"
	f := ws.NewBody("ensure", hir.OwnerFunc, src)
	b := ws.Interner.Builtins()

	v := f.Expr(hir.ExprVarRef, f.Span("v <"), hir.VarRefData{Name: "v"}, b.Int)
	zero := f.Expr(hir.ExprLiteral, f.Span("0"), hir.LiteralData{Kind: hir.LiteralInt, Text: "0"}, b.Int)
	cond := f.Expr(hir.ExprBinaryOp, f.Span("v < 0"), hir.BinaryOpData{Op: "<", Left: v, Right: zero}, b.Bool)

	halt := f.Expr(hir.ExprVarRef, f.Span("halt"), hir.VarRefData{Name: "halt"}, b.Never)
	haltCall := f.Expr(hir.ExprCall, f.Span("halt()"), hir.CallData{Callee: halt}, b.Never)
	thenBlock := f.Expr(hir.ExprBlock, f.Span("{\n        halt()\n    }"), hir.BlockData{Tail: haltCall}, b.Never)

	retVal := f.Expr(hir.ExprVarRef, f.Span("v\n    }"), hir.VarRefData{Name: "v"}, b.Int)
	ret := f.Expr(hir.ExprReturn, f.Span("return v"), hir.ReturnData{Value: retVal}, b.Never)
	elseBlock := f.Expr(hir.ExprBlock, f.Span("{\n        return v\n    }"), hir.BlockData{Tail: ret}, b.Never)

	ifExpr := f.Expr(hir.ExprIf, f.Span("if v < 0"), hir.IfData{Cond: cond, Then: thenBlock, Else: elseBlock}, b.Int)
	root := f.Expr(hir.ExprBlock, f.Span(src), hir.BlockData{Tail: ifExpr}, b.Int)
	f.Finish(root)
}

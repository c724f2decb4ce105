package bodylint

import (
	"testing"

	"vetch/internal/fixture"
	"vetch/internal/hir"
	"vetch/internal/types"
)

// colorFixture builds `match c { ... }` over a three-variant enum with one
// pattern arm per listed variant index.
func colorFixture(t *testing.T, covered ...int) (*fixture.Workspace, *fixture.BodyFixture, types.DeclID, hir.ExprID) {
	t.Helper()
	ws := fixture.NewWorkspace()
	b := ws.Interner.Builtins()
	color := ws.Registry.AddEnum("Color",
		types.EnumVariant{Name: "Red"},
		types.EnumVariant{Name: "Green"},
		types.EnumVariant{Name: "Blue"},
	)
	colorTy := ws.Interner.Intern(types.MakeAdt(color))

	f := ws.NewBody("match_color", hir.OwnerFunc, "match c red green blue arm")
	scrut := f.Expr(hir.ExprVarRef, f.Span("c "), hir.VarRefData{Name: "c"}, colorTy)

	names := []string{"red", "green", "blue"}
	var arms []hir.MatchArm
	for _, idx := range covered {
		pat := f.Pat(hir.PatVariant, f.Span(names[idx]), hir.VariantPatData{Path: "Color::" + names[idx]}, colorTy)
		f.Inf.SetPatVariant(pat, types.EnumVariantID(color, idx))
		armExpr := f.Expr(hir.ExprLiteral, f.Span("arm"), hir.LiteralData{Kind: hir.LiteralInt, Text: "0"}, b.Int)
		arms = append(arms, hir.MatchArm{Pat: pat, Expr: armExpr})
	}
	match := f.Expr(hir.ExprMatch, f.Span("match c"), hir.MatchData{Scrutinee: scrut, Arms: arms}, b.Int)
	return ws, f, color, match
}

func TestMatchMissingVariants(t *testing.T) {
	ws, f, _, match := colorFixture(t, 0)
	f.Finish(match)

	diags := Collect(ws, f.Owner)
	if len(diags) != 1 || diags[0].Kind != DiagMissingMatchArms {
		t.Fatalf("diagnostics = %+v, want one missing-arms finding", diags)
	}
	data := diags[0].Data.(MissingMatchArmsData)
	if data.Match != match {
		t.Errorf("finding at %d, want %d", data.Match, match)
	}
	want := "`Color::Green` and `Color::Blue` not covered"
	if data.UncoveredPatterns != want {
		t.Errorf("uncovered = %q, want %q", data.UncoveredPatterns, want)
	}
}

func TestMatchSingleWitnessMessage(t *testing.T) {
	ws, f, _, match := colorFixture(t, 0, 1)
	f.Finish(match)

	diags := Collect(ws, f.Owner)
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	data := diags[0].Data.(MissingMatchArmsData)
	if want := "`Color::Blue` not covered"; data.UncoveredPatterns != want {
		t.Errorf("uncovered = %q, want %q", data.UncoveredPatterns, want)
	}
}

func TestMatchAllVariantsCovered(t *testing.T) {
	ws, f, _, match := colorFixture(t, 0, 1, 2)
	f.Finish(match)

	if kinds := collectKinds(t, ws, f.Owner); len(kinds) != 0 {
		t.Fatalf("diagnostics = %v, want none", kinds)
	}
}

func TestMatchWildcardCovers(t *testing.T) {
	ws := fixture.NewWorkspace()
	b := ws.Interner.Builtins()
	color := ws.Registry.AddEnum("Color",
		types.EnumVariant{Name: "Red"},
		types.EnumVariant{Name: "Green"},
	)
	colorTy := ws.Interner.Intern(types.MakeAdt(color))

	f := ws.NewBody("wild_match", hir.OwnerFunc, "match c _ arm")
	scrut := f.Expr(hir.ExprVarRef, f.Span("c "), hir.VarRefData{Name: "c"}, colorTy)
	wild := f.Pat(hir.PatWild, f.Span("_"), hir.WildData{}, colorTy)
	armExpr := f.Expr(hir.ExprLiteral, f.Span("arm"), hir.LiteralData{Kind: hir.LiteralInt, Text: "0"}, b.Int)
	match := f.Expr(hir.ExprMatch, f.Span("match c"), hir.MatchData{
		Scrutinee: scrut,
		Arms:      []hir.MatchArm{{Pat: wild, Expr: armExpr}},
	}, b.Int)
	f.Finish(match)

	if kinds := collectKinds(t, ws, f.Owner); len(kinds) != 0 {
		t.Fatalf("diagnostics = %v, want none", kinds)
	}
}

func TestMatchGuardedArmDoesNotCover(t *testing.T) {
	ws := fixture.NewWorkspace()
	b := ws.Interner.Builtins()
	color := ws.Registry.AddEnum("Color",
		types.EnumVariant{Name: "Red"},
		types.EnumVariant{Name: "Green"},
		types.EnumVariant{Name: "Blue"},
	)
	colorTy := ws.Interner.Intern(types.MakeAdt(color))

	f := ws.NewBody("guarded_match", hir.OwnerFunc, "match c red green blue cond arm")
	scrut := f.Expr(hir.ExprVarRef, f.Span("c "), hir.VarRefData{Name: "c"}, colorTy)
	redPat := f.Pat(hir.PatVariant, f.Span("red"), hir.VariantPatData{Path: "Color::Red"}, colorTy)
	f.Inf.SetPatVariant(redPat, types.EnumVariantID(color, 0))
	greenPat := f.Pat(hir.PatVariant, f.Span("green"), hir.VariantPatData{Path: "Color::Green"}, colorTy)
	f.Inf.SetPatVariant(greenPat, types.EnumVariantID(color, 1))
	// A guarded Blue arm: the shape stays uncovered.
	bluePat := f.Pat(hir.PatVariant, f.Span("blue"), hir.VariantPatData{Path: "Color::Blue"}, colorTy)
	f.Inf.SetPatVariant(bluePat, types.EnumVariantID(color, 2))
	guard := f.Expr(hir.ExprVarRef, f.Span("cond"), hir.VarRefData{Name: "cond"}, b.Bool)
	armExpr := f.Expr(hir.ExprLiteral, f.Span("arm"), hir.LiteralData{Kind: hir.LiteralInt, Text: "0"}, b.Int)
	match := f.Expr(hir.ExprMatch, f.Span("match c"), hir.MatchData{
		Scrutinee: scrut,
		Arms: []hir.MatchArm{
			{Pat: redPat, Expr: armExpr},
			{Pat: greenPat, Expr: armExpr},
			{Pat: bluePat, Guard: guard, Expr: armExpr},
		},
	}, b.Int)
	f.Finish(match)

	diags := Collect(ws, f.Owner)
	if len(diags) != 1 || diags[0].Kind != DiagMissingMatchArms {
		t.Fatalf("diagnostics = %+v, want one missing-arms finding", diags)
	}
	data := diags[0].Data.(MissingMatchArmsData)
	if want := "`Color::Blue` not covered"; data.UncoveredPatterns != want {
		t.Errorf("uncovered = %q, want %q", data.UncoveredPatterns, want)
	}
}

func TestEmptyMatchOverNonEmptyType(t *testing.T) {
	ws := fixture.NewWorkspace()
	b := ws.Interner.Builtins()

	f := ws.NewBody("empty_match", hir.OwnerFunc, "match v")
	scrut := f.Expr(hir.ExprVarRef, f.Span("v"), hir.VarRefData{Name: "v"}, b.Bool)
	match := f.Expr(hir.ExprMatch, f.Span("match v"), hir.MatchData{Scrutinee: scrut}, b.Int)
	f.Finish(match)

	diags := Collect(ws, f.Owner)
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	data := diags[0].Data.(MissingMatchArmsData)
	if want := "type `bool` is non-empty"; data.UncoveredPatterns != want {
		t.Errorf("uncovered = %q, want %q", data.UncoveredPatterns, want)
	}
}

func TestEmptyMatchOverNonEmptyEnumListsVariants(t *testing.T) {
	ws, f, _, match := colorFixture(t)
	f.Finish(match)

	diags := Collect(ws, f.Owner)
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	data := diags[0].Data.(MissingMatchArmsData)
	want := "`Color::Red`, `Color::Green` and `Color::Blue` not covered"
	if data.UncoveredPatterns != want {
		t.Errorf("uncovered = %q, want %q", data.UncoveredPatterns, want)
	}
}

func TestEmptyMatchOverEmptyEnum(t *testing.T) {
	ws := fixture.NewWorkspace()
	b := ws.Interner.Builtins()
	void := ws.Registry.AddEnum("Void")
	voidTy := ws.Interner.Intern(types.MakeAdt(void))

	f := ws.NewBody("void_match", hir.OwnerFunc, "match v")
	scrut := f.Expr(hir.ExprVarRef, f.Span("v"), hir.VarRefData{Name: "v"}, voidTy)
	match := f.Expr(hir.ExprMatch, f.Span("match v"), hir.MatchData{Scrutinee: scrut}, b.Int)
	f.Finish(match)

	if kinds := collectKinds(t, ws, f.Owner); len(kinds) != 0 {
		t.Fatalf("diagnostics = %v, want none for an empty enum", kinds)
	}
}

func TestManyWitnessesTruncated(t *testing.T) {
	ws := fixture.NewWorkspace()
	b := ws.Interner.Builtins()
	dir := ws.Registry.AddEnum("Dir",
		types.EnumVariant{Name: "N"},
		types.EnumVariant{Name: "E"},
		types.EnumVariant{Name: "S"},
		types.EnumVariant{Name: "W"},
		types.EnumVariant{Name: "Up"},
	)
	dirTy := ws.Interner.Intern(types.MakeAdt(dir))

	f := ws.NewBody("dir_match", hir.OwnerFunc, "match d north arm")
	scrut := f.Expr(hir.ExprVarRef, f.Span("d "), hir.VarRefData{Name: "d"}, dirTy)
	north := f.Pat(hir.PatVariant, f.Span("north"), hir.VariantPatData{Path: "Dir::N"}, dirTy)
	f.Inf.SetPatVariant(north, types.EnumVariantID(dir, 0))
	armExpr := f.Expr(hir.ExprLiteral, f.Span("arm"), hir.LiteralData{Kind: hir.LiteralInt, Text: "0"}, b.Int)
	match := f.Expr(hir.ExprMatch, f.Span("match d"), hir.MatchData{
		Scrutinee: scrut,
		Arms:      []hir.MatchArm{{Pat: north, Expr: armExpr}},
	}, b.Int)
	f.Finish(match)

	diags := Collect(ws, f.Owner)
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	data := diags[0].Data.(MissingMatchArmsData)
	want := "`Dir::E`, `Dir::S`, `Dir::W` and 1 more not covered"
	if data.UncoveredPatterns != want {
		t.Errorf("uncovered = %q, want %q", data.UncoveredPatterns, want)
	}
}

func TestReferenceScrutineeAutoDeref(t *testing.T) {
	ws := fixture.NewWorkspace()
	b := ws.Interner.Builtins()
	color := ws.Registry.AddEnum("Color",
		types.EnumVariant{Name: "Red"},
		types.EnumVariant{Name: "Green"},
	)
	colorTy := ws.Interner.Intern(types.MakeAdt(color))
	refTy := ws.Interner.Intern(types.MakeReference(colorTy, false))

	f := ws.NewBody("ref_match", hir.OwnerFunc, "match r red arm")
	scrut := f.Expr(hir.ExprVarRef, f.Span("r "), hir.VarRefData{Name: "r"}, refTy)
	red := f.Pat(hir.PatVariant, f.Span("red"), hir.VariantPatData{Path: "Color::Red"}, colorTy)
	f.Inf.SetPatVariant(red, types.EnumVariantID(color, 0))
	armExpr := f.Expr(hir.ExprLiteral, f.Span("arm"), hir.LiteralData{Kind: hir.LiteralInt, Text: "0"}, b.Int)
	match := f.Expr(hir.ExprMatch, f.Span("match r"), hir.MatchData{
		Scrutinee: scrut,
		Arms:      []hir.MatchArm{{Pat: red, Expr: armExpr}},
	}, b.Int)
	f.Finish(match)

	// Arm patterns typed at the referent mean the match auto-dereferences;
	// witnesses are computed over the referent enum.
	diags := Collect(ws, f.Owner)
	if len(diags) != 1 || diags[0].Kind != DiagMissingMatchArms {
		t.Fatalf("diagnostics = %+v, want one missing-arms finding", diags)
	}
	data := diags[0].Data.(MissingMatchArmsData)
	if want := "`Color::Green` not covered"; data.UncoveredPatterns != want {
		t.Errorf("uncovered = %q, want %q", data.UncoveredPatterns, want)
	}
}

func TestArmTypeMismatchBailsOut(t *testing.T) {
	ws := fixture.NewWorkspace()
	b := ws.Interner.Builtins()
	color := ws.Registry.AddEnum("Color",
		types.EnumVariant{Name: "Red"},
		types.EnumVariant{Name: "Green"},
	)
	colorTy := ws.Interner.Intern(types.MakeAdt(color))

	// A second arm typed as bool instead of Color abstains the whole match.
	f := ws.NewBody("bad_arm", hir.OwnerFunc, "match c red true arm")
	scrut := f.Expr(hir.ExprVarRef, f.Span("c "), hir.VarRefData{Name: "c"}, colorTy)
	redPat := f.Pat(hir.PatVariant, f.Span("red"), hir.VariantPatData{Path: "Color::Red"}, colorTy)
	f.Inf.SetPatVariant(redPat, types.EnumVariantID(color, 0))
	badPat := f.Pat(hir.PatLit, f.Span("true"), hir.LitPatData{Kind: hir.LiteralBool, Text: "true"}, b.Bool)
	armExpr := f.Expr(hir.ExprLiteral, f.Span("arm"), hir.LiteralData{Kind: hir.LiteralInt, Text: "0"}, b.Int)
	match := f.Expr(hir.ExprMatch, f.Span("match c"), hir.MatchData{
		Scrutinee: scrut,
		Arms: []hir.MatchArm{
			{Pat: redPat, Expr: armExpr},
			{Pat: badPat, Expr: armExpr},
		},
	}, b.Int)
	f.Finish(match)

	if kinds := collectKinds(t, ws, f.Owner); len(kinds) != 0 {
		t.Fatalf("diagnostics = %v, want none after bail-out", kinds)
	}
}

func TestBodyMismatchSkipsMatchCheck(t *testing.T) {
	ws, f, _, match := colorFixture(t, 0)
	b := ws.Interner.Builtins()
	stray := f.Expr(hir.ExprLiteral, f.Span("arm"), hir.LiteralData{Kind: hir.LiteralInt, Text: "9"}, b.Int)
	f.Inf.AddExprMismatch(stray, b.Bool, b.Int)
	f.Finish(match)

	if kinds := collectKinds(t, ws, f.Owner); len(kinds) != 0 {
		t.Fatalf("diagnostics = %v, want none under type mismatches", kinds)
	}
}

func TestUnknownScrutineeSkipsMatchCheck(t *testing.T) {
	ws := fixture.NewWorkspace()
	b := ws.Interner.Builtins()

	f := ws.NewBody("untyped_match", hir.OwnerFunc, "match v")
	// The scrutinee never got a type.
	scrut := f.Expr(hir.ExprVarRef, f.Span("v"), hir.VarRefData{Name: "v"}, types.NoTypeID)
	match := f.Expr(hir.ExprMatch, f.Span("match v"), hir.MatchData{Scrutinee: scrut}, b.Int)
	f.Finish(match)

	if kinds := collectKinds(t, ws, f.Owner); len(kinds) != 0 {
		t.Fatalf("diagnostics = %v, want none for an untyped scrutinee", kinds)
	}
}

func TestOrPatternExpandsAlternatives(t *testing.T) {
	ws := fixture.NewWorkspace()
	b := ws.Interner.Builtins()
	color := ws.Registry.AddEnum("Color",
		types.EnumVariant{Name: "Red"},
		types.EnumVariant{Name: "Green"},
		types.EnumVariant{Name: "Blue"},
	)
	colorTy := ws.Interner.Intern(types.MakeAdt(color))

	f := ws.NewBody("or_match", hir.OwnerFunc, "match c red green or arm")
	scrut := f.Expr(hir.ExprVarRef, f.Span("c "), hir.VarRefData{Name: "c"}, colorTy)
	red := f.Pat(hir.PatVariant, f.Span("red"), hir.VariantPatData{Path: "Color::Red"}, colorTy)
	f.Inf.SetPatVariant(red, types.EnumVariantID(color, 0))
	green := f.Pat(hir.PatVariant, f.Span("green"), hir.VariantPatData{Path: "Color::Green"}, colorTy)
	f.Inf.SetPatVariant(green, types.EnumVariantID(color, 1))
	or := f.Pat(hir.PatOr, f.Span("or"), hir.OrPatData{Alts: []hir.PatID{red, green}}, colorTy)
	armExpr := f.Expr(hir.ExprLiteral, f.Span("arm"), hir.LiteralData{Kind: hir.LiteralInt, Text: "0"}, b.Int)
	match := f.Expr(hir.ExprMatch, f.Span("match c"), hir.MatchData{
		Scrutinee: scrut,
		Arms:      []hir.MatchArm{{Pat: or, Expr: armExpr}},
	}, b.Int)
	f.Finish(match)

	diags := Collect(ws, f.Owner)
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	data := diags[0].Data.(MissingMatchArmsData)
	if want := "`Color::Blue` not covered"; data.UncoveredPatterns != want {
		t.Errorf("uncovered = %q, want %q", data.UncoveredPatterns, want)
	}
}

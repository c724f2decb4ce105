package bodylint

import (
	"fmt"
	"strings"

	"vetch/internal/display"
	"vetch/internal/hir"
	"vetch/internal/patan"
	"vetch/internal/types"
)

// validateMatch lowers the arm patterns into the usefulness oracle's matrix
// form, consults the oracle, and reports uncovered shapes.
//
// Any ambiguity bails out the whole check for this match rather than
// excluding single arms: a partial matrix would produce unreliable
// witnesses.
func (v *validator) validateMatch(matchID, scrutinee hir.ExprID, arms []hir.MatchArm) {
	if v.infer.HasTypeMismatches() {
		// Unrelated type errors in the body cascade into bogus witnesses.
		return
	}
	in := v.provider.Types()
	scrutTy := v.infer.TypeOfExpr(scrutinee)
	if in.IsUnknown(scrutTy) {
		return
	}

	cx := &patan.Ctx{Types: in, Decls: v.provider.Decls()}
	// The arena lives exactly as long as this validation; lowered patterns
	// and witnesses are dropped together once the message is rendered.
	arena := patan.NewArena()

	// When the scrutinee is a reference and every arm is typed at the
	// referent, the match auto-dereferences: the oracle's column type is
	// the referent. Arms disagreeing on that point abstain the check.
	oracleTy := scrutTy
	if referent, isRef := in.AsReference(scrutTy); isRef && len(arms) > 0 {
		derefArms := 0
		for _, arm := range arms {
			if v.infer.TypeOfPat(arm.Pat) == referent {
				derefArms++
			}
		}
		if derefArms == len(arms) {
			oracleTy = referent
		} else if derefArms > 0 {
			return
		}
	}

	var matrix []patan.MatchArm
	for _, arm := range arms {
		patTy := v.infer.TypeOfPat(arm.Pat)
		if !v.armTypeFitsScrutinee(patTy, scrutTy) || !v.subPatternTypesMatch(arm.Pat) {
			return
		}
		lowerer := &patLowerer{v: v, cx: cx, arena: arena}
		alternatives := lowerer.lower(arm.Pat)
		if lowerer.errors {
			return
		}
		for _, alt := range alternatives {
			matrix = append(matrix, patan.MatchArm{
				Pat:      alt,
				HasGuard: arm.Guard.IsValid(),
			})
		}
	}

	report, err := patan.ComputeUsefulness(cx, arena, matrix, oracleTy, patan.ValidOnly)
	if err != nil {
		return
	}
	witnesses := report.NonExhaustivenessWitnesses
	if len(witnesses) == 0 {
		return
	}
	v.push(DiagMissingMatchArms, MissingMatchArmsData{
		Match:             matchID,
		UncoveredPatterns: missingMatchArms(cx, arena, oracleTy, witnesses, len(arms)),
	})
}

// armTypeFitsScrutinee accepts an arm whose pattern type equals the
// scrutinee type, or the referent type when the scrutinee is a reference
// (matching auto-dereferences the scrutinee).
func (v *validator) armTypeFitsScrutinee(patTy, scrutTy types.TypeID) bool {
	if !patTy.IsValid() {
		return false
	}
	if patTy == scrutTy {
		return true
	}
	referent, isRef := v.provider.Types().AsReference(scrutTy)
	return isRef && referent == patTy
}

// subPatternTypesMatch walks the pattern tree looking for recorded
// mismatches; a mismatched node's children are not visited further.
func (v *validator) subPatternTypesMatch(id hir.PatID) bool {
	ok := true
	var walk func(hir.PatID)
	walk = func(pat hir.PatID) {
		if !ok {
			return
		}
		if _, mismatch := v.infer.MismatchForPat(pat); mismatch {
			ok = false
			return
		}
		v.body.WalkChildPats(pat, walk)
	}
	walk(id)
	return ok
}

// orExpansionLimit caps how many alternatives a single arm may lower to.
const orExpansionLimit = 64

// patLowerer converts surface patterns into the oracle's deconstructed
// form. Or-patterns expand into alternative rows; nested or-patterns take
// the cartesian product of their fields' alternatives.
type patLowerer struct {
	v      *validator
	cx     *patan.Ctx
	arena  *patan.Arena
	errors bool
}

func (pl *patLowerer) fail() []patan.PatIdx {
	pl.errors = true
	return []patan.PatIdx{pl.arena.Wildcard(types.NoTypeID)}
}

func (pl *patLowerer) lower(id hir.PatID) []patan.PatIdx {
	pat := pl.v.body.Pat(id)
	if pat == nil {
		return pl.fail()
	}
	ty := pl.v.infer.TypeOfPat(id)
	if pl.cx.Types.IsUnknown(ty) {
		return pl.fail()
	}

	switch data := pat.Data.(type) {
	case hir.WildData:
		return []patan.PatIdx{pl.arena.Wildcard(ty)}
	case hir.BindData:
		if data.Sub.IsValid() {
			return pl.lower(data.Sub)
		}
		return []patan.PatIdx{pl.arena.Wildcard(ty)}
	case hir.LitPatData:
		return []patan.PatIdx{pl.lowerLit(data, ty)}
	case hir.RecordPatData:
		return pl.lowerRecord(id, data, ty)
	case hir.VariantPatData:
		return pl.lowerVariant(id, data, ty)
	case hir.TuplePatData:
		return pl.lowerTuple(data, ty)
	case hir.RefPatData:
		return pl.wrap(patan.Constructor{Kind: patan.CtorRef}, pl.lower(data.Inner), ty)
	case hir.OrPatData:
		var alts []patan.PatIdx
		for _, alt := range data.Alts {
			alts = append(alts, pl.lower(alt)...)
		}
		if len(alts) > orExpansionLimit {
			return pl.fail()
		}
		return alts
	default:
		return pl.fail()
	}
}

func (pl *patLowerer) lowerLit(data hir.LitPatData, ty types.TypeID) patan.PatIdx {
	if data.Kind == hir.LiteralBool {
		return pl.arena.Alloc(patan.DeconstructedPat{
			Ctor: patan.Constructor{Kind: patan.CtorBool, Bool: data.Text == "true"},
			Ty:   ty,
		})
	}
	return pl.arena.Alloc(patan.DeconstructedPat{
		Ctor: patan.Constructor{Kind: patan.CtorLit, Lit: data.Text},
		Ty:   ty,
	})
}

func (pl *patLowerer) lowerRecord(id hir.PatID, data hir.RecordPatData, ty types.TypeID) []patan.PatIdx {
	variant, ok := pl.v.infer.VariantForPat(id)
	if !ok {
		return pl.fail()
	}
	declared := pl.cx.Decls.FieldsOf(variant)

	// Deconstructed fields are positional in declaration order; omitted
	// fields become wildcards.
	fieldAlts := make([][]patan.PatIdx, len(declared))
	for i, field := range declared {
		sub := hir.NoPatID
		for _, named := range data.Fields {
			if named.Name == field.Name {
				sub = named.Pat
				break
			}
		}
		if sub.IsValid() {
			fieldAlts[i] = pl.lower(sub)
		} else {
			fieldAlts[i] = []patan.PatIdx{pl.arena.Wildcard(field.Type)}
		}
	}
	return pl.combine(pl.variantCtor(variant), fieldAlts, ty)
}

func (pl *patLowerer) lowerVariant(id hir.PatID, data hir.VariantPatData, ty types.TypeID) []patan.PatIdx {
	variant, ok := pl.v.infer.VariantForPat(id)
	if !ok {
		return pl.fail()
	}
	declared := pl.cx.Decls.FieldsOf(variant)
	if len(data.Args) > len(declared) {
		return pl.fail()
	}
	fieldAlts := make([][]patan.PatIdx, len(declared))
	for i, field := range declared {
		if i < len(data.Args) {
			fieldAlts[i] = pl.lower(data.Args[i])
		} else {
			fieldAlts[i] = []patan.PatIdx{pl.arena.Wildcard(field.Type)}
		}
	}
	return pl.combine(pl.variantCtor(variant), fieldAlts, ty)
}

func (pl *patLowerer) lowerTuple(data hir.TuplePatData, ty types.TypeID) []patan.PatIdx {
	elems := pl.cx.Types.TupleElems(ty)
	if len(elems) != len(data.Elems) {
		return pl.fail()
	}
	fieldAlts := make([][]patan.PatIdx, len(data.Elems))
	for i, elem := range data.Elems {
		fieldAlts[i] = pl.lower(elem)
	}
	return pl.combine(patan.Constructor{Kind: patan.CtorTuple}, fieldAlts, ty)
}

// variantCtor picks the matrix constructor for a resolved variant: enum
// variants split by constructor index, structs (and unions) have one.
func (pl *patLowerer) variantCtor(variant types.VariantID) patan.Constructor {
	if decl := pl.cx.Decls.Get(variant.Decl); decl != nil && decl.Kind == types.DeclEnum && variant.Variant > 0 {
		return patan.Constructor{Kind: patan.CtorVariant, Variant: variant.Variant - 1}
	}
	return patan.Constructor{Kind: patan.CtorStruct}
}

// wrap applies a unary constructor over each alternative.
func (pl *patLowerer) wrap(ctor patan.Constructor, inner []patan.PatIdx, ty types.TypeID) []patan.PatIdx {
	out := make([]patan.PatIdx, 0, len(inner))
	for _, alt := range inner {
		out = append(out, pl.arena.Alloc(patan.DeconstructedPat{
			Ctor:   ctor,
			Fields: []patan.PatIdx{alt},
			Ty:     ty,
		}))
	}
	return out
}

// combine builds every combination of the fields' alternatives under one
// constructor.
func (pl *patLowerer) combine(ctor patan.Constructor, fieldAlts [][]patan.PatIdx, ty types.TypeID) []patan.PatIdx {
	combos := [][]patan.PatIdx{nil}
	for _, alts := range fieldAlts {
		var next [][]patan.PatIdx
		for _, combo := range combos {
			for _, alt := range alts {
				grown := make([]patan.PatIdx, len(combo), len(combo)+1)
				copy(grown, combo)
				next = append(next, append(grown, alt))
			}
		}
		if len(next) > orExpansionLimit {
			pl.errors = true
			return []patan.PatIdx{pl.arena.Wildcard(ty)}
		}
		combos = next
	}
	out := make([]patan.PatIdx, 0, len(combos))
	for _, combo := range combos {
		out = append(out, pl.arena.Alloc(patan.DeconstructedPat{
			Ctor:   ctor,
			Fields: combo,
			Ty:     ty,
		}))
	}
	return out
}

// witnessLimit bounds how many uncovered shapes a message spells out.
const witnessLimit = 3

// missingMatchArms renders the uncovered-cases summary for the diagnostic.
func missingMatchArms(cx *patan.Ctx, arena *patan.Arena, scrutTy types.TypeID, witnesses []patan.PatIdx, armCount int) string {
	nonEmptyEnum := false
	if declID, ok := cx.Types.AsAdt(scrutTy); ok {
		if decl := cx.Decls.Get(declID); decl != nil && decl.Kind == types.DeclEnum {
			nonEmptyEnum = len(decl.Variants) > 0
		}
	}
	if armCount == 0 && !nonEmptyEnum {
		return fmt.Sprintf("type `%s` is non-empty", display.Type(cx.Types, cx.Decls, scrutTy))
	}

	render := func(w patan.PatIdx) string {
		return display.Pattern(patan.HoistWitness(cx, arena, w))
	}
	switch {
	case len(witnesses) == 1:
		return fmt.Sprintf("`%s` not covered", render(witnesses[0]))
	case len(witnesses) <= witnessLimit:
		head := make([]string, len(witnesses)-1)
		for i := range head {
			head[i] = render(witnesses[i])
		}
		tail := render(witnesses[len(witnesses)-1])
		return fmt.Sprintf("`%s` and `%s` not covered", strings.Join(head, "`, `"), tail)
	default:
		head := make([]string, witnessLimit)
		for i := range head {
			head[i] = render(witnesses[i])
		}
		return fmt.Sprintf("`%s` and %d more not covered", strings.Join(head, "`, `"), len(witnesses)-witnessLimit)
	}
}

package patan

import (
	"vetch/internal/types"
)

// Analysis budget: rows*columns processed before giving up. Pathological
// matrices (deep or-expansions over wide enums) abstain instead of stalling
// the caller.
const complexityBudget = 1 << 16

// ComputeUsefulness decides whether the arm matrix covers every value of the
// scrutinee type and reports uncovered shapes as witness patterns.
//
// Guarded arms are excluded from the coverage matrix: a guard may fail at
// runtime, so the arm cannot unconditionally cover its shape.
func ComputeUsefulness(cx *Ctx, a *Arena, arms []MatchArm, scrutTy types.TypeID, validity Validity) (Report, error) {
	u := &usefulness{cx: cx, arena: a, validity: validity}

	var matrix []row
	for _, arm := range arms {
		if arm.HasGuard {
			continue
		}
		matrix = append(matrix, row{pats: []PatIdx{arm.Pat}})
	}

	witnesses, err := u.witnesses(matrix, []types.TypeID{scrutTy})
	if err != nil {
		return Report{}, err
	}
	report := Report{}
	for _, stack := range witnesses {
		if len(stack) != 1 {
			continue
		}
		report.NonExhaustivenessWitnesses = append(report.NonExhaustivenessWitnesses, stack[0])
	}
	return report, nil
}

type row struct {
	pats []PatIdx
}

type usefulness struct {
	cx       *Ctx
	arena    *Arena
	validity Validity
	budget   int
}

// witnesses returns pattern stacks describing values matched by none of the
// matrix rows. An empty result means the matrix is exhaustive over tys.
func (u *usefulness) witnesses(matrix []row, tys []types.TypeID) ([][]PatIdx, error) {
	u.budget += len(matrix)*len(tys) + 1
	if u.budget > complexityBudget {
		return nil, ErrComplexityLimit
	}

	if len(tys) == 0 {
		if len(matrix) == 0 {
			return [][]PatIdx{{}}, nil
		}
		return nil, nil
	}

	headTy := tys[0]
	restTys := tys[1:]

	split, err := u.splitConstructors(matrix, headTy)
	if err != nil {
		return nil, err
	}

	var out [][]PatIdx

	// Constructors present in the matrix: recurse into each specialization.
	for _, ctor := range split.present {
		arity, fieldTys, err := u.ctorFields(ctor, headTy)
		if err != nil {
			return nil, err
		}
		spec := u.specialize(matrix, ctor, arity, fieldTys)
		sub, err := u.witnesses(spec, append(append([]types.TypeID{}, fieldTys...), restTys...))
		if err != nil {
			return nil, err
		}
		for _, stack := range sub {
			out = append(out, u.applyCtor(ctor, headTy, arity, stack))
		}
	}

	// Constructors no row mentions: any value built from them is uncovered
	// provided the rest of the row can also go uncovered against the
	// wildcard-only submatrix.
	if len(split.missing) > 0 {
		def := u.defaultMatrix(matrix)
		sub, err := u.witnesses(def, restTys)
		if err != nil {
			return nil, err
		}
		for _, stack := range sub {
			for _, ctor := range split.missing {
				_, fieldTys, err := u.ctorFields(ctor, headTy)
				if err != nil {
					return nil, err
				}
				witness := u.arena.Alloc(DeconstructedPat{
					Ctor:   ctor,
					Fields: u.wildcardFields(fieldTys),
					Ty:     headTy,
				})
				out = append(out, append([]PatIdx{witness}, stack...))
			}
		}
	}

	return out, nil
}

// ctorSplit partitions a type's constructors by whether the matrix heads
// mention them.
type ctorSplit struct {
	present []Constructor
	missing []Constructor
}

func (u *usefulness) splitConstructors(matrix []row, ty types.TypeID) (ctorSplit, error) {
	heads := u.headConstructors(matrix)

	all, infinite, err := u.constructorsOf(ty)
	if err != nil {
		return ctorSplit{}, err
	}

	if infinite {
		// Literal heads can never cover an infinite type; the missing
		// remainder is summarized as a wildcard constructor.
		return ctorSplit{
			present: heads,
			missing: []Constructor{{Kind: CtorWild}},
		}, nil
	}

	split := ctorSplit{}
	for _, ctor := range all {
		if containsCtor(heads, ctor) {
			split.present = append(split.present, ctor)
		} else {
			split.missing = append(split.missing, ctor)
		}
	}
	return split, nil
}

func (u *usefulness) headConstructors(matrix []row) []Constructor {
	var heads []Constructor
	for _, r := range matrix {
		pat := u.arena.Get(r.pats[0])
		if pat == nil || pat.Ctor.Kind == CtorWild {
			continue
		}
		if !containsCtor(heads, pat.Ctor) {
			heads = append(heads, pat.Ctor)
		}
	}
	return heads
}

func containsCtor(ctors []Constructor, c Constructor) bool {
	for _, other := range ctors {
		if other.Equal(c) {
			return true
		}
	}
	return false
}

// constructorsOf lists every constructor of a type, or reports the type as
// infinite (no finite constructor enumeration exists).
func (u *usefulness) constructorsOf(ty types.TypeID) ([]Constructor, bool, error) {
	t, ok := u.cx.Types.Lookup(ty)
	if !ok || t.Kind == types.KindInvalid {
		return nil, false, ErrUnresolvedType
	}
	switch t.Kind {
	case types.KindBool:
		return []Constructor{
			{Kind: CtorBool, Bool: false},
			{Kind: CtorBool, Bool: true},
		}, false, nil
	case types.KindUnit, types.KindTuple:
		return []Constructor{{Kind: CtorTuple}}, false, nil
	case types.KindReference:
		return []Constructor{{Kind: CtorRef}}, false, nil
	case types.KindAdt:
		decl := u.cx.Decls.Get(t.Decl)
		if decl == nil {
			return nil, false, ErrUnresolvedType
		}
		if decl.Kind != types.DeclEnum {
			return []Constructor{{Kind: CtorStruct}}, false, nil
		}
		ctors := make([]Constructor, 0, len(decl.Variants))
		for i := range decl.Variants {
			ctors = append(ctors, Constructor{Kind: CtorVariant, Variant: uint32(i)})
		}
		if u.validity == MaybeInvalid && len(ctors) == 0 {
			// No valid constructors but invalid values must be covered:
			// only a wildcard can do that.
			return nil, true, nil
		}
		return ctors, false, nil
	case types.KindNever:
		if u.validity == MaybeInvalid {
			return nil, true, nil
		}
		return nil, false, nil
	default:
		// int/uint/float/string: no finite enumeration.
		return nil, true, nil
	}
}

// ctorFields returns the arity and field types of a constructor applied at
// the given type.
func (u *usefulness) ctorFields(ctor Constructor, ty types.TypeID) (int, []types.TypeID, error) {
	t, ok := u.cx.Types.Lookup(ty)
	if !ok {
		return 0, nil, ErrUnresolvedType
	}
	switch ctor.Kind {
	case CtorWild, CtorBool, CtorLit:
		return 0, nil, nil
	case CtorRef:
		return 1, []types.TypeID{t.Elem}, nil
	case CtorTuple:
		elems := u.cx.Types.TupleElems(ty)
		return len(elems), elems, nil
	case CtorStruct:
		fields := u.cx.Decls.FieldsOf(types.StructVariant(t.Decl))
		return len(fields), fieldTypes(fields), nil
	case CtorVariant:
		decl := u.cx.Decls.Get(t.Decl)
		if decl == nil || int(ctor.Variant) >= len(decl.Variants) {
			return 0, nil, ErrUnresolvedType
		}
		fields := decl.Variants[ctor.Variant].Fields
		return len(fields), fieldTypes(fields), nil
	default:
		return 0, nil, ErrUnresolvedType
	}
}

func fieldTypes(fields []types.Field) []types.TypeID {
	tys := make([]types.TypeID, len(fields))
	for i, f := range fields {
		tys[i] = f.Type
	}
	return tys
}

// specialize filters the matrix to rows compatible with ctor and replaces
// each head with its fields.
func (u *usefulness) specialize(matrix []row, ctor Constructor, arity int, fieldTys []types.TypeID) []row {
	var out []row
	for _, r := range matrix {
		pat := u.arena.Get(r.pats[0])
		if pat == nil {
			continue
		}
		switch {
		case pat.Ctor.Kind == CtorWild:
			pats := make([]PatIdx, 0, arity+len(r.pats)-1)
			pats = append(pats, u.wildcardFields(fieldTys)...)
			pats = append(pats, r.pats[1:]...)
			out = append(out, row{pats: pats})
		case pat.Ctor.Equal(ctor):
			pats := make([]PatIdx, 0, arity+len(r.pats)-1)
			pats = append(pats, pat.Fields...)
			pats = append(pats, r.pats[1:]...)
			out = append(out, row{pats: pats})
		}
	}
	return out
}

// defaultMatrix keeps only wildcard-headed rows, with heads stripped.
func (u *usefulness) defaultMatrix(matrix []row) []row {
	var out []row
	for _, r := range matrix {
		pat := u.arena.Get(r.pats[0])
		if pat != nil && pat.Ctor.Kind == CtorWild {
			out = append(out, row{pats: r.pats[1:]})
		}
	}
	return out
}

func (u *usefulness) wildcardFields(fieldTys []types.TypeID) []PatIdx {
	fields := make([]PatIdx, len(fieldTys))
	for i, fty := range fieldTys {
		fields[i] = u.arena.Wildcard(fty)
	}
	return fields
}

// applyCtor folds a witness stack back under a constructor: the first arity
// entries become the constructor's fields.
func (u *usefulness) applyCtor(ctor Constructor, ty types.TypeID, arity int, stack []PatIdx) []PatIdx {
	fields := make([]PatIdx, arity)
	copy(fields, stack[:arity])
	witness := u.arena.Alloc(DeconstructedPat{Ctor: ctor, Fields: fields, Ty: ty})
	return append([]PatIdx{witness}, stack[arity:]...)
}

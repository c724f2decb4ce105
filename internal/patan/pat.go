package patan

import (
	"fmt"

	"fortio.org/safecast"

	"vetch/internal/types"
)

// PatIdx identifies a deconstructed pattern inside an Arena.
type PatIdx uint32

// NoPatIdx marks the absence of a pattern.
const NoPatIdx PatIdx = 0

// IsValid reports whether the index refers to an allocated pattern.
func (idx PatIdx) IsValid() bool { return idx != NoPatIdx }

// Arena owns every DeconstructedPat and witness of one match validation.
// It is created per validation call and discarded with it, which bounds
// peak memory to a single pattern matrix.
type Arena struct {
	pats []DeconstructedPat
}

// NewArena creates an empty pattern arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc stores a pattern and returns its index (1-based).
func (a *Arena) Alloc(p DeconstructedPat) PatIdx {
	lenPats, err := safecast.Conv[uint32](len(a.pats))
	if err != nil {
		panic(fmt.Errorf("len(pats) overflow: %w", err))
	}
	a.pats = append(a.pats, p)
	return PatIdx(lenPats + 1)
}

// Get returns the pattern for an index, or nil for invalid indices.
func (a *Arena) Get(idx PatIdx) *DeconstructedPat {
	if !idx.IsValid() || int(idx) > len(a.pats) {
		return nil
	}
	return &a.pats[idx-1]
}

// Len returns the number of allocated patterns.
func (a *Arena) Len() int { return len(a.pats) }

// CtorKind enumerates pattern-matrix constructors.
type CtorKind uint8

const (
	// CtorWild matches anything (wildcards and bindings lower to this).
	CtorWild CtorKind = iota
	// CtorStruct is the single constructor of a struct or union type.
	CtorStruct
	// CtorVariant is one enum constructor.
	CtorVariant
	// CtorTuple is the single constructor of a tuple (or unit) type.
	CtorTuple
	// CtorRef is the single constructor of a reference type.
	CtorRef
	// CtorBool matches one boolean value.
	CtorBool
	// CtorLit matches one opaque literal of an infinite type.
	CtorLit
)

// Constructor identifies one way a value of some type can be built.
type Constructor struct {
	Kind    CtorKind
	Variant uint32 // CtorVariant: 0-based enum constructor index
	Bool    bool   // CtorBool
	Lit     string // CtorLit: literal text, compared verbatim
}

// Equal reports whether two constructors cover the same shape.
func (c Constructor) Equal(other Constructor) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case CtorVariant:
		return c.Variant == other.Variant
	case CtorBool:
		return c.Bool == other.Bool
	case CtorLit:
		return c.Lit == other.Lit
	default:
		return true
	}
}

// DeconstructedPat is the canonical lowered form of a pattern: a constructor
// applied to positional sub-patterns. Witness patterns share this shape.
type DeconstructedPat struct {
	Ctor   Constructor
	Fields []PatIdx
	Ty     types.TypeID
}

// Wildcard allocates a wildcard pattern of the given type.
func (a *Arena) Wildcard(ty types.TypeID) PatIdx {
	return a.Alloc(DeconstructedPat{Ctor: Constructor{Kind: CtorWild}, Ty: ty})
}

// SurfacePat is a witness hoisted back into a displayable shape. Names are
// resolved eagerly so rendering needs no further context.
type SurfacePat struct {
	Kind       CtorKind
	Name       string // type or constructor name for structs/variants
	Lit        string // literal text for CtorBool/CtorLit
	Fields     []SurfacePat
	FieldNames []string // set for record-style fields, empty for positional
}

// HoistWitness converts an arena witness into a SurfacePat tree.
func HoistWitness(cx *Ctx, a *Arena, idx PatIdx) SurfacePat {
	pat := a.Get(idx)
	if pat == nil {
		return SurfacePat{Kind: CtorWild}
	}
	sp := SurfacePat{Kind: pat.Ctor.Kind}
	switch pat.Ctor.Kind {
	case CtorWild:
		return sp
	case CtorBool:
		if pat.Ctor.Bool {
			sp.Lit = "true"
		} else {
			sp.Lit = "false"
		}
		return sp
	case CtorLit:
		sp.Lit = pat.Ctor.Lit
		return sp
	case CtorStruct:
		if decl, ok := cx.Types.AsAdt(pat.Ty); ok {
			sp.Name = declName(cx, decl)
			sp.FieldNames = fieldNames(cx.Decls.FieldsOf(types.StructVariant(decl)))
		}
	case CtorVariant:
		if decl, ok := cx.Types.AsAdt(pat.Ty); ok {
			v := types.EnumVariantID(decl, int(pat.Ctor.Variant))
			sp.Name = cx.Decls.VariantName(v)
			if d := cx.Decls.Get(decl); d != nil && int(pat.Ctor.Variant) < len(d.Variants) {
				if !d.Variants[pat.Ctor.Variant].Tuple {
					sp.FieldNames = fieldNames(d.Variants[pat.Ctor.Variant].Fields)
				}
			}
		}
	}
	for _, f := range pat.Fields {
		sp.Fields = append(sp.Fields, HoistWitness(cx, a, f))
	}
	return sp
}

func declName(cx *Ctx, decl types.DeclID) string {
	if d := cx.Decls.Get(decl); d != nil {
		return d.Name
	}
	return "?"
}

func fieldNames(fields []types.Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

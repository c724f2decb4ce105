package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Unit   TypeID
	Never  TypeID
	Bool   TypeID
	String TypeID
	Int    TypeID
	Uint   TypeID
	Float  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types      []Type
	index      map[Type]TypeID
	tupleElems [][]TypeID
	builtins   Builtins
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 64),
	}
	in.internRaw(Type{Kind: KindInvalid}) // reserve id 0 as sentinel
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Never = in.Intern(Type{Kind: KindNever})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Int = in.Intern(MakeInt(WidthAny))
	in.builtins.Uint = in.Intern(MakeUint(WidthAny))
	in.builtins.Float = in.Intern(MakeFloat(WidthAny))
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// InternTuple interns a tuple type over the given element types.
func (in *Interner) InternTuple(elems []TypeID) TypeID {
	lenTuples, err := safecast.Conv[uint32](len(in.tupleElems))
	if err != nil {
		panic(fmt.Errorf("len(tupleElems) overflow: %w", err))
	}
	t := Type{Kind: KindTuple, Extra: lenTuples}
	if len(elems) > 0 {
		t.Elem = elems[0]
	}
	// Tuples with identical element lists still get distinct Extra slots;
	// dedup by scanning existing tuples first.
	for id, existing := range in.types {
		if existing.Kind != KindTuple {
			continue
		}
		if tupleEqual(in.tupleElems[existing.Extra], elems) {
			return TypeID(id)
		}
	}
	in.tupleElems = append(in.tupleElems, append([]TypeID(nil), elems...))
	return in.internRaw(t)
}

// TupleElems returns the element types of an interned tuple type.
func (in *Interner) TupleElems(id TypeID) []TypeID {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindTuple || int(t.Extra) >= len(in.tupleElems) {
		return nil
	}
	return in.tupleElems[t.Extra]
}

func tupleEqual(a, b []TypeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// AsReference unwraps a reference type, returning its referent.
func (in *Interner) AsReference(id TypeID) (TypeID, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindReference {
		return NoTypeID, false
	}
	return t.Elem, true
}

// AsAdt returns the declaration behind a nominal type.
func (in *Interner) AsAdt(id TypeID) (DeclID, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindAdt {
		return NoDeclID, false
	}
	return t.Decl, true
}

// IsNever reports whether the type is the bottom type.
func (in *Interner) IsNever(id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindNever
}

// IsUnknown reports whether the id carries no usable type information.
func (in *Interner) IsUnknown(id TypeID) bool {
	t, ok := in.Lookup(id)
	return !ok || t.Kind == KindInvalid
}

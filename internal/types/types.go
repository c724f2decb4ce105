package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type (unresolved inference slot).
const NoTypeID TypeID = 0

// IsValid reports whether the id refers to an interned type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	// KindNever is the bottom type: expressions of this type never produce
	// a value (panic, return, infinite loop results).
	KindNever
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindReference
	// KindAdt covers structs, enums and unions declared in a Decls registry.
	KindAdt
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindNever:
		return "never"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindReference:
		return "reference"
	case KindAdt:
		return "adt"
	case KindTuple:
		return "tuple"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers/floats.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Elem    TypeID // referent for references, first element for tuples
	Decl    DeclID // declaration for ADTs
	Extra   uint32 // tuple payload id (index into interner tuple storage)
	Width   Width  // numeric precision
	Mutable bool   // for references
}

// MakeInt describes a signed integer (WidthAny for plain "int").
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned integer type.
func MakeUint(width Width) Type {
	return Type{Kind: KindUint, Width: width}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Type {
	return Type{Kind: KindFloat, Width: width}
}

// MakeReference describes &T or &mut T depending on the mutable flag.
func MakeReference(elem TypeID, mutable bool) Type {
	return Type{Kind: KindReference, Elem: elem, Mutable: mutable}
}

// MakeAdt describes a nominal struct/enum/union type.
func MakeAdt(decl DeclID) Type {
	return Type{Kind: KindAdt, Decl: decl}
}

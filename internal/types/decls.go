package types

import (
	"fmt"

	"fortio.org/safecast"
)

// DeclID identifies a struct/enum/union declaration inside a Decls registry.
type DeclID uint32

// NoDeclID marks the absence of a declaration.
const NoDeclID DeclID = 0

// IsValid reports whether the id refers to a registered declaration.
func (id DeclID) IsValid() bool { return id != NoDeclID }

// DeclKind enumerates the supported nominal declaration kinds.
type DeclKind uint8

const (
	DeclStruct DeclKind = iota
	DeclEnum
	DeclUnion
)

func (k DeclKind) String() string {
	switch k {
	case DeclStruct:
		return "struct"
	case DeclEnum:
		return "enum"
	case DeclUnion:
		return "union"
	default:
		return fmt.Sprintf("DeclKind(%d)", k)
	}
}

// Field is a declared field of a struct, union or enum variant.
type Field struct {
	Name string
	Type TypeID
}

// EnumVariant is one constructor of an enum declaration.
type EnumVariant struct {
	Name   string
	Fields []Field // empty for unit variants
	Tuple  bool    // tuple variant: fields are positional
}

// Decl describes one nominal type declaration.
type Decl struct {
	Kind     DeclKind
	Name     string
	Fields   []Field       // struct / union fields
	Variants []EnumVariant // enum constructors
}

// Decls is an append-only registry of nominal declarations, shared read-only
// across bodies once building is done.
type Decls struct {
	decls []Decl
}

// NewDecls creates an empty registry.
func NewDecls() *Decls {
	return &Decls{}
}

func (d *Decls) add(decl Decl) DeclID {
	lenDecls, err := safecast.Conv[uint32](len(d.decls))
	if err != nil {
		panic(fmt.Errorf("len(decls) overflow: %w", err))
	}
	d.decls = append(d.decls, decl)
	return DeclID(lenDecls + 1)
}

// AddStruct registers a struct declaration with ordered fields.
func (d *Decls) AddStruct(name string, fields ...Field) DeclID {
	return d.add(Decl{Kind: DeclStruct, Name: name, Fields: fields})
}

// AddUnion registers a union declaration with ordered fields.
func (d *Decls) AddUnion(name string, fields ...Field) DeclID {
	return d.add(Decl{Kind: DeclUnion, Name: name, Fields: fields})
}

// AddEnum registers an enum declaration with ordered variants.
func (d *Decls) AddEnum(name string, variants ...EnumVariant) DeclID {
	return d.add(Decl{Kind: DeclEnum, Name: name, Variants: variants})
}

// Get returns the declaration for an id, or nil if the id is invalid.
func (d *Decls) Get(id DeclID) *Decl {
	if !id.IsValid() || int(id) > len(d.decls) {
		return nil
	}
	return &d.decls[id-1]
}

// VariantID identifies a struct, union, or one enum variant: the unit of
// field-completeness checking. For enums Variant is the 1-based constructor
// index; 0 addresses the declaration's own field list (structs and unions).
type VariantID struct {
	Decl    DeclID
	Variant uint32
}

// NoVariantID marks the absence of a variant resolution.
var NoVariantID = VariantID{}

// IsValid reports whether the variant references a declaration.
func (v VariantID) IsValid() bool { return v.Decl.IsValid() }

// StructVariant addresses a struct or union declaration's field list.
func StructVariant(decl DeclID) VariantID {
	return VariantID{Decl: decl}
}

// EnumVariantID addresses the idx-th (0-based) constructor of an enum.
func EnumVariantID(decl DeclID, idx int) VariantID {
	return VariantID{Decl: decl, Variant: uint32(idx) + 1}
}

// FieldsOf returns the ordered declared fields of a variant.
func (d *Decls) FieldsOf(v VariantID) []Field {
	decl := d.Get(v.Decl)
	if decl == nil {
		return nil
	}
	if v.Variant == 0 {
		return decl.Fields
	}
	if decl.Kind != DeclEnum || int(v.Variant) > len(decl.Variants) {
		return nil
	}
	return decl.Variants[v.Variant-1].Fields
}

// IsUnion reports whether the variant addresses a union declaration.
func (d *Decls) IsUnion(v VariantID) bool {
	decl := d.Get(v.Decl)
	return decl != nil && decl.Kind == DeclUnion
}

// VariantName returns a printable name for the variant (enum constructors
// are rendered as Enum::Ctor).
func (d *Decls) VariantName(v VariantID) string {
	decl := d.Get(v.Decl)
	if decl == nil {
		return "?"
	}
	if v.Variant == 0 || decl.Kind != DeclEnum {
		return decl.Name
	}
	if int(v.Variant) > len(decl.Variants) {
		return decl.Name
	}
	return decl.Name + "::" + decl.Variants[v.Variant-1].Name
}

package hir

import (
	"vetch/internal/source"
)

// PatKind enumerates HIR pattern kinds.
type PatKind uint8

const (
	// PatWild is the wildcard pattern `_`.
	PatWild PatKind = iota
	// PatBind binds a name, optionally over a sub-pattern (name @ sub).
	PatBind
	// PatLit matches a literal value.
	PatLit
	// PatRecord destructures named fields of a struct or record variant.
	PatRecord
	// PatVariant matches an enum constructor with positional sub-patterns.
	PatVariant
	// PatTuple destructures a tuple.
	PatTuple
	// PatRef matches behind a reference.
	PatRef
	// PatOr matches any of its alternatives.
	PatOr
)

// String returns a human-readable name for the pattern kind.
func (k PatKind) String() string {
	switch k {
	case PatWild:
		return "Wild"
	case PatBind:
		return "Bind"
	case PatLit:
		return "Lit"
	case PatRecord:
		return "Record"
	case PatVariant:
		return "Variant"
	case PatTuple:
		return "Tuple"
	case PatRef:
		return "Ref"
	case PatOr:
		return "Or"
	default:
		return "Unknown"
	}
}

// Pat represents an HIR pattern node.
type Pat struct {
	Kind PatKind
	Span source.Span
	Data PatData
}

// PatData is the interface for pattern-specific payloads.
type PatData interface {
	patData()
}

// WildData holds data for PatWild.
type WildData struct{}

func (WildData) patData() {}

// BindData holds data for PatBind. Sub is NoPatID for plain bindings.
type BindData struct {
	Name string
	Sub  PatID
}

func (BindData) patData() {}

// LitPatData holds data for PatLit.
type LitPatData struct {
	Kind LiteralKind
	Text string
}

func (LitPatData) patData() {}

// RecordFieldPat is one named field of a record pattern.
type RecordFieldPat struct {
	Name string
	Pat  PatID
}

// RecordPatData holds data for PatRecord. Ellipsis marks a trailing `..`
// rest pattern that intentionally leaves remaining fields unmatched.
type RecordPatData struct {
	Path     string
	Fields   []RecordFieldPat
	Ellipsis bool
}

func (RecordPatData) patData() {}

// VariantPatData holds data for PatVariant. The constructor itself is
// resolved by inference; Args are positional sub-patterns.
type VariantPatData struct {
	Path string
	Args []PatID
}

func (VariantPatData) patData() {}

// TuplePatData holds data for PatTuple.
type TuplePatData struct {
	Elems []PatID
}

func (TuplePatData) patData() {}

// RefPatData holds data for PatRef.
type RefPatData struct {
	Inner PatID
}

func (RefPatData) patData() {}

// OrPatData holds data for PatOr.
type OrPatData struct {
	Alts []PatID
}

func (OrPatData) patData() {}

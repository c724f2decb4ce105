// Package display renders internal types and hoisted witness patterns as
// user-facing text for diagnostic messages.
package display

import (
	"fmt"
	"strings"

	"vetch/internal/patan"
	"vetch/internal/types"
)

// Type renders a TypeID to display text.
func Type(in *types.Interner, decls *types.Decls, id types.TypeID) string {
	t, ok := in.Lookup(id)
	if !ok || t.Kind == types.KindInvalid {
		return "{unknown}"
	}
	switch t.Kind {
	case types.KindUnit:
		return "()"
	case types.KindNever:
		return "!"
	case types.KindBool:
		return "bool"
	case types.KindString:
		return "string"
	case types.KindInt:
		return numericName("int", t.Width)
	case types.KindUint:
		return numericName("uint", t.Width)
	case types.KindFloat:
		return numericName("float", t.Width)
	case types.KindReference:
		if t.Mutable {
			return "&mut " + Type(in, decls, t.Elem)
		}
		return "&" + Type(in, decls, t.Elem)
	case types.KindTuple:
		elems := in.TupleElems(id)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = Type(in, decls, e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case types.KindAdt:
		if d := decls.Get(t.Decl); d != nil {
			return d.Name
		}
		return "{unknown}"
	default:
		return fmt.Sprintf("{%s}", t.Kind)
	}
}

func numericName(base string, w types.Width) string {
	if w == types.WidthAny {
		return base
	}
	return fmt.Sprintf("%s%d", base, w)
}

// Pattern renders a hoisted witness pattern to display text.
func Pattern(sp patan.SurfacePat) string {
	var sb strings.Builder
	writePattern(&sb, sp)
	return sb.String()
}

func writePattern(sb *strings.Builder, sp patan.SurfacePat) {
	switch sp.Kind {
	case patan.CtorWild:
		sb.WriteByte('_')
	case patan.CtorBool, patan.CtorLit:
		sb.WriteString(sp.Lit)
	case patan.CtorRef:
		sb.WriteByte('&')
		if len(sp.Fields) > 0 {
			writePattern(sb, sp.Fields[0])
		} else {
			sb.WriteByte('_')
		}
	case patan.CtorTuple:
		sb.WriteByte('(')
		for i, f := range sp.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			writePattern(sb, f)
		}
		sb.WriteByte(')')
	case patan.CtorStruct, patan.CtorVariant:
		if sp.Name != "" {
			sb.WriteString(sp.Name)
		} else {
			sb.WriteByte('_')
		}
		if len(sp.Fields) == 0 {
			return
		}
		if len(sp.FieldNames) == len(sp.Fields) {
			sb.WriteString(" { ")
			for i, f := range sp.Fields {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(sp.FieldNames[i])
				sb.WriteString(": ")
				writePattern(sb, f)
			}
			sb.WriteString(" }")
			return
		}
		sb.WriteByte('(')
		for i, f := range sp.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			writePattern(sb, f)
		}
		sb.WriteByte(')')
	default:
		sb.WriteByte('_')
	}
}

package bodylint

import (
	"vetch/internal/hir"
	"vetch/internal/infer"
	"vetch/internal/types"
)

// RecordLiteralMissingFields compares a record literal's explicit fields
// against its resolved variant's declaration. It returns the variant, the
// omitted field names in declaration order, and whether the literal claims
// completeness (no spread in value position, no `..` in assignee position).
// ok is false for non-record expressions, unions, unresolved variants and
// literals with nothing missing.
func RecordLiteralMissingFields(decls *types.Decls, inference *infer.Result, id hir.ExprID, expr *hir.Expr) (variant types.VariantID, missing []string, exhaustive, ok bool) {
	data, isRecord := expr.Data.(hir.RecordLitData)
	if expr.Kind != hir.ExprRecordLit || !isRecord {
		return types.NoVariantID, nil, false, false
	}
	if data.IsAssignee {
		exhaustive = !data.Ellipsis
	} else {
		exhaustive = !data.Spread.IsValid()
	}

	variant, resolved := inference.VariantForExpr(id)
	if !resolved || decls.IsUnion(variant) {
		return types.NoVariantID, nil, false, false
	}

	specified := make(map[string]struct{}, len(data.Fields))
	for _, f := range data.Fields {
		specified[f.Name] = struct{}{}
	}
	missing = missingFieldNames(decls.FieldsOf(variant), specified)
	if len(missing) == 0 {
		return types.NoVariantID, nil, false, false
	}
	return variant, missing, exhaustive, true
}

// RecordPatternMissingFields is the pattern counterpart of
// RecordLiteralMissingFields; a pattern claims completeness when it has no
// `..` rest pattern.
func RecordPatternMissingFields(decls *types.Decls, inference *infer.Result, id hir.PatID, pat *hir.Pat) (variant types.VariantID, missing []string, exhaustive, ok bool) {
	data, isRecord := pat.Data.(hir.RecordPatData)
	if pat.Kind != hir.PatRecord || !isRecord {
		return types.NoVariantID, nil, false, false
	}
	exhaustive = !data.Ellipsis

	variant, resolved := inference.VariantForPat(id)
	if !resolved || decls.IsUnion(variant) {
		return types.NoVariantID, nil, false, false
	}

	specified := make(map[string]struct{}, len(data.Fields))
	for _, f := range data.Fields {
		specified[f.Name] = struct{}{}
	}
	missing = missingFieldNames(decls.FieldsOf(variant), specified)
	if len(missing) == 0 {
		return types.NoVariantID, nil, false, false
	}
	return variant, missing, exhaustive, true
}

// missingFieldNames returns declared-minus-specified, preserving declaration
// order.
func missingFieldNames(declared []types.Field, specified map[string]struct{}) []string {
	var missing []string
	for _, f := range declared {
		if _, present := specified[f.Name]; !present {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

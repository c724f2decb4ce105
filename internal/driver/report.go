// Package driver runs the body-validation pass over many owners and maps
// the node-id findings onto spans, bags and the disk cache.
package driver

import (
	"fmt"
	"strings"

	"vetch/internal/bodylint"
	"vetch/internal/diag"
	"vetch/internal/hir"
	"vetch/internal/project"
	"vetch/internal/source"
	"vetch/internal/types"
)

// RenderBody converts pass findings into span-carrying diagnostics and
// feeds them to the reporter, honoring the manifest's disabled-lints list.
func RenderBody(rep diag.Reporter, body *hir.Body, decls *types.Decls, findings []bodylint.Diagnostic, cfg *project.Config) {
	for _, finding := range findings {
		code, sev, span, msg := renderFinding(body, decls, finding)
		if cfg != nil && !cfg.LintEnabled(code) {
			continue
		}
		rep.Report(code, sev, span, msg, nil)
	}
}

func renderFinding(body *hir.Body, decls *types.Decls, finding bodylint.Diagnostic) (diag.Code, diag.Severity, source.Span, string) {
	switch data := finding.Data.(type) {
	case bodylint.RecordMissingFieldsData:
		span := source.Span{}
		if data.Expr.IsValid() {
			span = exprSpan(body, data.Expr)
		} else {
			span = patSpan(body, data.Pat)
		}
		msg := fmt.Sprintf("missing structure fields of `%s`: %s",
			decls.VariantName(data.Variant), strings.Join(data.MissingFields, ", "))
		return diag.LintMissingFields, diag.SevError, span, msg
	case bodylint.ReplaceFilterMapNextWithFindMapData:
		return diag.LintFilterMapNext, diag.SevWarning, exprSpan(body, data.MethodCall),
			"replace filter_map(..).next() with find_map(..)"
	case bodylint.MissingMatchArmsData:
		return diag.LintMissingMatchArms, diag.SevError, exprSpan(body, data.Match),
			"missing match arm: " + data.UncoveredPatterns
	case bodylint.RemoveTrailingReturnData:
		return diag.LintTrailingReturn, diag.SevWarning, exprSpan(body, data.Return),
			"remove trailing `return`"
	case bodylint.RemoveUnnecessaryElseData:
		return diag.LintUnnecessaryElse, diag.SevWarning, exprSpan(body, data.If),
			"remove unnecessary else block"
	default:
		return diag.UnknownCode, diag.SevInfo, source.Span{}, finding.Kind.String()
	}
}

func exprSpan(body *hir.Body, id hir.ExprID) source.Span {
	if expr := body.Expr(id); expr != nil {
		return expr.Span
	}
	return source.Span{}
}

func patSpan(body *hir.Body, id hir.PatID) source.Span {
	if pat := body.Pat(id); pat != nil {
		return pat.Span
	}
	return source.Span{}
}

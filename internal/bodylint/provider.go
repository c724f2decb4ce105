package bodylint

import (
	"vetch/internal/hir"
	"vetch/internal/infer"
	"vetch/internal/langitems"
	"vetch/internal/types"
)

// Provider supplies the pre-computed, read-only inputs of the pass. The
// surrounding analysis layer owns the caches; this pass only reads.
type Provider interface {
	// Body returns the expression/pattern trees of a definition,
	// or nil when the owner has no body.
	Body(owner hir.OwnerID) *hir.Body
	// Infer returns the inference result for the owner's body,
	// or nil when inference has not run.
	Infer(owner hir.OwnerID) *infer.Result
	// Types returns the shared type interner.
	Types() *types.Interner
	// Decls returns the shared declaration registry.
	Decls() *types.Decls
	// LangItems returns the well-known-item registry of the owning crate.
	LangItems() *langitems.Registry
}

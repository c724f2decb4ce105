// Package fixture builds small hand-constructed bodies with matching
// inference results. It stands in for the front end in tests and in the
// demo command: bodies are assembled bottom-up exactly the way a lowering
// phase would produce them.
package fixture

import (
	"vetch/internal/hir"
	"vetch/internal/infer"
	"vetch/internal/langitems"
	"vetch/internal/source"
	"vetch/internal/types"
)

// Workspace aggregates everything a body-validation run needs. It
// implements bodylint.Provider.
type Workspace struct {
	Files    *source.FileSet
	Interner *types.Interner
	Registry *types.Decls
	Items    *langitems.Registry

	bodies map[hir.OwnerID]*hir.Body
	infers map[hir.OwnerID]*infer.Result
	names  map[hir.OwnerID]string
	order  []hir.OwnerID
	nextID hir.OwnerID
}

// NewWorkspace creates an empty workspace with fresh shared registries.
func NewWorkspace() *Workspace {
	return &Workspace{
		Files:    source.NewFileSet(),
		Interner: types.NewInterner(),
		Registry: types.NewDecls(),
		Items:    langitems.NewRegistry(),
		bodies:   make(map[hir.OwnerID]*hir.Body),
		infers:   make(map[hir.OwnerID]*infer.Result),
		names:    make(map[hir.OwnerID]string),
	}
}

// NewOwner reserves a fresh owner id under a display name.
func (ws *Workspace) NewOwner(name string) hir.OwnerID {
	ws.nextID++
	id := ws.nextID
	ws.names[id] = name
	ws.order = append(ws.order, id)
	return id
}

// SetBody attaches the finished body and inference result of an owner.
func (ws *Workspace) SetBody(owner hir.OwnerID, body *hir.Body, result *infer.Result) {
	ws.bodies[owner] = body
	ws.infers[owner] = result
}

// Owners lists every owner in registration order.
func (ws *Workspace) Owners() []hir.OwnerID {
	return ws.order
}

// Name returns the display name of an owner.
func (ws *Workspace) Name(owner hir.OwnerID) string {
	return ws.names[owner]
}

// Body implements bodylint.Provider.
func (ws *Workspace) Body(owner hir.OwnerID) *hir.Body {
	return ws.bodies[owner]
}

// Infer implements bodylint.Provider.
func (ws *Workspace) Infer(owner hir.OwnerID) *infer.Result {
	return ws.infers[owner]
}

// Types implements bodylint.Provider.
func (ws *Workspace) Types() *types.Interner {
	return ws.Interner
}

// Decls implements bodylint.Provider.
func (ws *Workspace) Decls() *types.Decls {
	return ws.Registry
}

// LangItems implements bodylint.Provider.
func (ws *Workspace) LangItems() *langitems.Registry {
	return ws.Items
}

// StdIterator registers an Iterator trait with the members the chain lint
// resolves, and binds the IteratorNext lang item. It returns the FuncIDs of
// next, filter_map and map in that order.
func StdIterator(items *langitems.Registry) (next, filterMap, mapFn hir.FuncID) {
	trait := items.AddTrait("Iterator")
	next = items.AddTraitMethod(trait, "next")
	filterMap = items.AddTraitMethod(trait, "filter_map")
	mapFn = items.AddTraitMethod(trait, "map")
	items.SetLangItem(langitems.ItemIteratorNext, next)
	return next, filterMap, mapFn
}

// Package langitems maps well-known trait methods to stable function ids.
//
// The front end registers traits and their members while lowering the
// standard library; analysis passes then resolve items like Iterator::next
// without knowing how name resolution works.
package langitems

import (
	"fmt"

	"fortio.org/safecast"

	"vetch/internal/hir"
)

// Item tags well-known library items.
type Item uint8

const (
	// ItemIteratorNext is the Iterator::next method.
	ItemIteratorNext Item = iota
)

func (it Item) String() string {
	switch it {
	case ItemIteratorNext:
		return "IteratorNext"
	default:
		return fmt.Sprintf("Item(%d)", it)
	}
}

// TraitID identifies a registered trait.
type TraitID uint32

// NoTraitID marks the absence of a trait.
const NoTraitID TraitID = 0

// IsValid reports whether the id refers to a registered trait.
func (id TraitID) IsValid() bool { return id != NoTraitID }

type trait struct {
	name    string
	members map[string]hir.FuncID
}

// Registry stores traits, their members, and lang-item bindings for one
// crate context. Populated once during lowering, read-only afterwards.
type Registry struct {
	traits    []trait
	items     map[Item]hir.FuncID
	container map[hir.FuncID]TraitID
	nextFunc  hir.FuncID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		items:     make(map[Item]hir.FuncID),
		container: make(map[hir.FuncID]TraitID),
	}
}

// AddTrait registers a trait by name.
func (r *Registry) AddTrait(name string) TraitID {
	lenTraits, err := safecast.Conv[uint32](len(r.traits))
	if err != nil {
		panic(fmt.Errorf("len(traits) overflow: %w", err))
	}
	r.traits = append(r.traits, trait{name: name, members: make(map[string]hir.FuncID)})
	return TraitID(lenTraits + 1)
}

// AddTraitMethod registers a method under a trait and returns its FuncID.
func (r *Registry) AddTraitMethod(id TraitID, name string) hir.FuncID {
	if !id.IsValid() || int(id) > len(r.traits) {
		panic("langitems: invalid TraitID")
	}
	r.nextFunc++
	fn := r.nextFunc
	r.traits[id-1].members[name] = fn
	r.container[fn] = id
	return fn
}

// SetLangItem binds a well-known item tag to a function.
func (r *Registry) SetLangItem(item Item, fn hir.FuncID) {
	r.items[item] = fn
}

// Resolve returns the function bound to a lang-item tag.
func (r *Registry) Resolve(item Item) (hir.FuncID, bool) {
	fn, ok := r.items[item]
	return fn, ok
}

// Container returns the trait a function is a member of.
func (r *Registry) Container(fn hir.FuncID) (TraitID, bool) {
	id, ok := r.container[fn]
	return id, ok
}

// TraitMember looks up a trait method by name.
func (r *Registry) TraitMember(id TraitID, name string) (hir.FuncID, bool) {
	if !id.IsValid() || int(id) > len(r.traits) {
		return hir.NoFuncID, false
	}
	fn, ok := r.traits[id-1].members[name]
	return fn, ok
}

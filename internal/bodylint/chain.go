package bodylint

import (
	"vetch/internal/hir"
	"vetch/internal/langitems"
)

// chainState is the explicit state of the filter_map/next recognizer.
type chainState uint8

const (
	// chainIdle: no filter_map call seen since the last reset.
	chainIdle chainState = iota
	// chainPendingFilterMap: the previous call-like node was filter_map.
	chainPendingFilterMap
)

// filterMapNextChecker recognizes the immediate two-call chain
// `.filter_map(..).next()` anywhere in a body. It is instantiated lazily on
// the first call-like node and reused for the rest of the traversal.
//
// Memory is limited to the single most recent filter_map call, so a broken
// chain (any other call in between) resets the machine and never fires.
type filterMapNextChecker struct {
	filterMapFn hir.FuncID
	nextFn      hir.FuncID
	state       chainState
	pendingCall hir.ExprID
}

// newFilterMapNextChecker resolves Iterator::next through the lang-item
// registry and filter_map through the same trait's member list. If either
// resolution fails the checker stays inert.
func newFilterMapNextChecker(items *langitems.Registry) *filterMapNextChecker {
	c := &filterMapNextChecker{}
	if items == nil {
		return c
	}
	next, ok := items.Resolve(langitems.ItemIteratorNext)
	if !ok {
		return c
	}
	c.nextFn = next
	if trait, ok := items.Container(next); ok {
		if filterMap, ok := items.TraitMember(trait, "filter_map"); ok {
			c.filterMapFn = filterMap
		}
	}
	return c
}

// check feeds one resolved call into the machine and reports whether the
// anti-pattern completed at this call site.
func (c *filterMapNextChecker) check(callID, receiver hir.ExprID, callee hir.FuncID) bool {
	if !c.filterMapFn.IsValid() || !c.nextFn.IsValid() {
		return false
	}

	if callee == c.filterMapFn {
		c.state = chainPendingFilterMap
		c.pendingCall = callID
		return false
	}

	if callee == c.nextFn && c.state == chainPendingFilterMap && receiver == c.pendingCall {
		c.reset()
		return true
	}

	c.reset()
	return false
}

func (c *filterMapNextChecker) reset() {
	c.state = chainIdle
	c.pendingCall = hir.NoExprID
}

// Package hir models the typed body of one function, closure or static
// initializer: an expression tree and a pattern tree stored in append-only
// arenas with stable integer ids.
//
// A Body is built bottom-up exactly once through a Builder and is immutable
// afterwards. Child references always point at already-allocated nodes, so
// the trees are acyclic by construction. Analysis passes iterate nodes in
// storage order, which makes their output deterministic.
package hir

// ExprID identifies an expression node within a Body.
type ExprID uint32

// PatID identifies a pattern node within a Body.
type PatID uint32

// OwnerID identifies the definition (function, static, const) a body
// belongs to. Owners are assigned by the surrounding analysis layer.
type OwnerID uint32

// FuncID identifies a resolved function or trait method.
type FuncID uint32

// Invalid ID constants (zero is sentinel).
const (
	NoExprID  ExprID  = 0
	NoPatID   PatID   = 0
	NoOwnerID OwnerID = 0
	NoFuncID  FuncID  = 0
)

// IsValid reports whether the ID is valid (non-zero).
func (id ExprID) IsValid() bool  { return id != NoExprID }
func (id PatID) IsValid() bool   { return id != NoPatID }
func (id OwnerID) IsValid() bool { return id != NoOwnerID }
func (id FuncID) IsValid() bool  { return id != NoFuncID }

// OwnerKind distinguishes body owners. Some checks only apply to plain
// functions (trailing-return runs on function bodies, not static
// initializers).
type OwnerKind uint8

const (
	OwnerFunc OwnerKind = iota
	OwnerStatic
	OwnerConst
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerFunc:
		return "fn"
	case OwnerStatic:
		return "static"
	case OwnerConst:
		return "const"
	default:
		return "owner?"
	}
}

// Package patan implements pattern usefulness analysis.
//
// Callers lower source patterns into arena-held DeconstructedPats, build a
// matrix of match arms and ask ComputeUsefulness whether the matrix covers
// every value of the scrutinee type. The answer comes back as witness
// patterns: concrete shapes no arm covers. The decision procedure is the
// classic constructor-splitting/specialization algorithm; everything outside
// this package treats it as a black box behind that interface.
package patan

import (
	"errors"

	"vetch/internal/types"
)

// Validity restricts which scrutinee values the analysis must account for.
type Validity uint8

const (
	// ValidOnly assumes the scrutinee holds a valid (non-bottom) value.
	// Types without valid inhabitants need no arms under this constraint.
	ValidOnly Validity = iota
	// MaybeInvalid demands coverage even for uninhabited types.
	MaybeInvalid
)

// Analysis failure modes. Callers are expected to abstain on any error.
var (
	// ErrUnresolvedType means a type needed during splitting could not be
	// resolved to a concrete shape.
	ErrUnresolvedType = errors.New("patan: unresolved type in match analysis")
	// ErrComplexityLimit means the matrix exceeded the analysis budget.
	ErrComplexityLimit = errors.New("patan: match analysis complexity limit reached")
)

// Ctx carries the read-only type information the analysis consults.
type Ctx struct {
	Types *types.Interner
	Decls *types.Decls
}

// MatchArm is one row of the matrix: a lowered pattern plus whether the
// source arm carried a guard. Guarded arms never count as unconditionally
// covering their shape.
type MatchArm struct {
	Pat      PatIdx
	HasGuard bool
}

// Report is the outcome of a usefulness computation.
type Report struct {
	// NonExhaustivenessWitnesses lists uncovered value shapes, allocated in
	// the arena the caller supplied. Empty means the match is exhaustive.
	NonExhaustivenessWitnesses []PatIdx
}

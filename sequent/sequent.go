// Package sequent implements the sequent data structure: left/right
// formula multisets-as-sets, fresh-name generation, axiom detection, and
// the sibling bookkeeping used by the proof-search engine in package
// prover.
package sequent

import (
	"fmt"
	"sort"
	"strings"

	"seqprove/term"
	"seqprove/unify"
)

// FormulaSet is a set of formulas keyed by their structural hash, with a
// small collision bucket per key. Design Notes §9 recommends deriving a
// sequent's identity from a content hash over its formulas rather than
// materializing a canonical string, to avoid the cost and ambiguity of
// string-keyed sets; FormulaSet is that data structure.
type FormulaSet struct {
	buckets map[uint64][]term.Formula
	size    int
}

// NewFormulaSet builds a FormulaSet from the given formulas, de-duplicating
// structurally equal members.
func NewFormulaSet(fs ...term.Formula) FormulaSet {
	s := FormulaSet{buckets: map[uint64][]term.Formula{}}
	for _, f := range fs {
		s.Add(f)
	}
	return s
}

// Add inserts f if not already present (structural equality).
func (s *FormulaSet) Add(f term.Formula) {
	if s.buckets == nil {
		s.buckets = map[uint64][]term.Formula{}
	}
	h := f.Hash()
	for _, existing := range s.buckets[h] {
		if existing.Equal(f) {
			return
		}
	}
	s.buckets[h] = append(s.buckets[h], f)
	s.size++
}

// Remove deletes f if present.
func (s *FormulaSet) Remove(f term.Formula) {
	h := f.Hash()
	bucket := s.buckets[h]
	for i, existing := range bucket {
		if existing.Equal(f) {
			s.buckets[h] = append(bucket[:i], bucket[i+1:]...)
			s.size--
			return
		}
	}
}

// Contains reports whether f is a member.
func (s FormulaSet) Contains(f term.Formula) bool {
	for _, existing := range s.buckets[f.Hash()] {
		if existing.Equal(f) {
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (s FormulaSet) Len() int { return s.size }

// Slice returns the members in no particular guaranteed order. Callers
// that need determinism should sort by String().
func (s FormulaSet) Slice() []term.Formula {
	out := make([]term.Formula, 0, s.size)
	for _, bucket := range s.buckets {
		out = append(out, bucket...)
	}
	return out
}

// Clone returns an independent copy.
func (s FormulaSet) Clone() FormulaSet {
	out := FormulaSet{buckets: make(map[uint64][]term.Formula, len(s.buckets)), size: s.size}
	for h, bucket := range s.buckets {
		cp := make([]term.Formula, len(bucket))
		copy(cp, bucket)
		out.buckets[h] = cp
	}
	return out
}

// Intersects reports whether s and other share any structurally equal
// member.
func (s FormulaSet) Intersects(other FormulaSet) bool {
	small, big := s, other
	if small.size > big.size {
		small, big = big, small
	}
	for _, bucket := range small.buckets {
		for _, f := range bucket {
			if big.Contains(f) {
				return true
			}
		}
	}
	return false
}

// fv/ft over every formula in the set.
func (s FormulaSet) fv() term.VarSet {
	out := term.VarSet{}
	for _, bucket := range s.buckets {
		for _, f := range bucket {
			out = out.Union(f.FV())
		}
	}
	return out
}

func (s FormulaSet) ft() term.VarSet {
	out := term.VarSet{}
	for _, bucket := range s.buckets {
		for _, f := range bucket {
			out = out.Union(f.FT())
		}
	}
	return out
}

// Sequent is a judgement Left ⊢ Right, optionally tied to a sibling group
// of peer sequents that must be simultaneously closable by one unifier.
//
// ID is assigned by the owning search (package prover) when the sequent is
// born and is used only for sibling-group membership; it plays no part in
// structural identity (Equal/Hash below, per spec.md §4.3: "siblings are
// not part of identity", and likewise IDs aren't).
type Sequent struct {
	ID      int
	Left    FormulaSet
	Right   FormulaSet
	GroupID int // 0 means no sibling group
}

// New builds a sequent with no sibling group (GroupID 0, ID 0); the owning
// search assigns both when it enqueues the sequent.
func New(left, right FormulaSet) Sequent {
	return Sequent{Left: left, Right: right}
}

// FV is the union of free variables over both sides.
func (s Sequent) FV() term.VarSet { return s.Left.fv().Union(s.Right.fv()) }

// FT is the union of free unification terms over both sides.
func (s Sequent) FT() term.VarSet { return s.Left.ft().Union(s.Right.ft()) }

// FreshVariableName returns the lowest "v1", "v2", ... not already free in
// the sequent, per original_source/rules.py's getUnusedVariableName.
func (s Sequent) FreshVariableName() string {
	fv := s.FV()
	for i := 1; ; i++ {
		name := fmt.Sprintf("v%d", i)
		if !fv.Has(name) {
			return name
		}
	}
}

// FreshUnificationName returns the lowest "t1", "t2", ... not already used
// as a unification variable in the sequent.
func (s Sequent) FreshUnificationName() string {
	ft := s.FT()
	for i := 1; ; i++ {
		name := fmt.Sprintf("t%d", i)
		if !ft.Has(name) {
			return name
		}
	}
}

// IsAxiomatic reports whether some formula appears on both sides.
func (s Sequent) IsAxiomatic() bool {
	return s.Left.Intersects(s.Right)
}

// UnifiablePairs returns every (l, r) with l in Left, r in Right for which
// unify.Unify(l, r) succeeds.
func (s Sequent) UnifiablePairs() []unify.Pair {
	var pairs []unify.Pair
	for _, l := range s.Left.Slice() {
		for _, r := range s.Right.Slice() {
			if _, ok := unify.Unify(l, r); ok {
				pairs = append(pairs, unify.Pair{Left: l, Right: r})
			}
		}
	}
	return pairs
}

// Equal is structural equality: the left sets and right sets are equal as
// sets. Sibling membership and ID are not part of identity.
func (s Sequent) Equal(other Sequent) bool {
	if s.Left.Len() != other.Left.Len() || s.Right.Len() != other.Right.Len() {
		return false
	}
	for _, f := range s.Left.Slice() {
		if !other.Left.Contains(f) {
			return false
		}
	}
	for _, f := range s.Right.Slice() {
		if !other.Right.Contains(f) {
			return false
		}
	}
	return true
}

// Hash is a stable content hash over the sorted multiset of hashed
// formulas on each side (Design Notes §9), used as the visited-set key.
func (s Sequent) Hash() uint64 {
	left := sortedHashes(s.Left)
	right := sortedHashes(s.Right)
	const offsetBasis = uint64(1469598103934665603)
	const prime = uint64(1099511628211)
	h := offsetBasis
	mix := func(x uint64) {
		h ^= x
		h *= prime
	}
	mix(uint64('L'))
	for _, v := range left {
		mix(v)
	}
	mix(uint64('R'))
	for _, v := range right {
		mix(v)
	}
	return h
}

func sortedHashes(s FormulaSet) []uint64 {
	out := make([]uint64, 0, s.Len())
	for _, f := range s.Slice() {
		out = append(out, f.Hash())
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders "L1, L2, ... ⊢ R1, R2, ...", the canonical form spec.md
// §6 recommends.
func (s Sequent) String() string {
	left := formulaStrings(s.Left)
	right := formulaStrings(s.Right)
	var b strings.Builder
	if len(left) > 0 {
		b.WriteString(strings.Join(left, ", "))
		b.WriteByte(' ')
	}
	b.WriteString("⊢")
	if len(right) > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Join(right, ", "))
	}
	return b.String()
}

func formulaStrings(s FormulaSet) []string {
	fs := s.Slice()
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	sort.Strings(out)
	return out
}

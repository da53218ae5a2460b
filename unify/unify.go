// Package unify implements Robinson-style syntactic unification over the
// term algebra in package term.
package unify

import "seqprove/term"

// Substitution maps unification-variable names to the terms they are bound
// to. It is not required to be idempotent or fully composed — callers are
// expected to re-apply it before each new unification call, which is what
// Unify and UnifyList do internally.
type Substitution map[string]term.Formula

// Apply substitutes every unification variable in f that has a binding in s.
func (s Substitution) Apply(f term.Formula) term.Formula {
	for name, value := range s {
		f = f.Replace(term.UnificationTerm{Name: name}, value)
	}
	return f
}

func (s Substitution) copy() Substitution {
	out := make(Substitution, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func (s Substitution) merge(other Substitution) Substitution {
	out := s.copy()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Unify attempts to solve the single equation a = b, returning a
// most-general substitution or false on failure. It follows
// original_source/rules.py's unify exactly:
//
//   - a unification variable unifies with anything not containing it
//     (occurs check), binding itself to the other side;
//   - two Variables unify iff they are the same name;
//   - two Functions or two Predicates unify iff same name/arity, with
//     their argument lists unified pairwise, threading the substitution
//     through each successive pair;
//   - anything else fails.
func Unify(a, b term.Formula) (Substitution, bool) {
	if av, ok := a.(term.UnificationTerm); ok {
		if b.Occurs(av) {
			return nil, false
		}
		return Substitution{av.Name: b}, true
	}
	if bv, ok := b.(term.UnificationTerm); ok {
		if a.Occurs(bv) {
			return nil, false
		}
		return Substitution{bv.Name: a}, true
	}

	if av, aok := a.(term.Variable); aok {
		if bv, bok := b.(term.Variable); bok {
			if av.Name == bv.Name {
				return Substitution{}, true
			}
		}
		return nil, false
	}
	if _, bok := b.(term.Variable); bok {
		return nil, false
	}

	if af, aok := a.(term.Function); aok {
		bf, bok := b.(term.Function)
		if !bok || af.Name != bf.Name || len(af.Args) != len(bf.Args) {
			return nil, false
		}
		return unifyArgs(af.Args, bf.Args)
	}
	if ap, aok := a.(term.Predicate); aok {
		bp, bok := b.(term.Predicate)
		if !bok || ap.Name != bp.Name || len(ap.Args) != len(bp.Args) {
			return nil, false
		}
		return unifyArgs(ap.Args, bp.Args)
	}

	return nil, false
}

func unifyArgs(as, bs []term.Formula) (Substitution, bool) {
	sub := Substitution{}
	for i := range as {
		a := sub.Apply(as[i])
		b := sub.Apply(bs[i])
		next, ok := Unify(a, b)
		if !ok {
			return nil, false
		}
		sub = sub.merge(next)
	}
	return sub, true
}

// Pair is an equation to solve, as produced by sequent.UnifiablePairs.
type Pair struct {
	Left, Right term.Formula
}

// UnifyList accumulates a most-general substitution across an arbitrary
// list of equations, re-applying the substitution built so far to each
// successive pair before unifying it.
func UnifyList(pairs []Pair) (Substitution, bool) {
	sub := Substitution{}
	for _, p := range pairs {
		a := sub.Apply(p.Left)
		b := sub.Apply(p.Right)
		next, ok := Unify(a, b)
		if !ok {
			return nil, false
		}
		sub = sub.merge(next)
	}
	return sub, true
}

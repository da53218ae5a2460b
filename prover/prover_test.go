package prover

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"seqprove/sequent"
	"seqprove/term"
)

func pr(name string, args ...term.Formula) term.Formula { return term.Predicate{Name: name, Args: args} }

func boundedCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestProveIdentity(t *testing.T) {
	// P => P
	p := pr("P")
	f := term.Implies{A: p, B: p}

	provable, err := Prove(boundedCtx(t), f, nil)
	require.NoError(t, err)
	require.True(t, provable, "P => P should be a tautology")
}

func TestProveExcludedMiddle(t *testing.T) {
	// P or not P
	p := pr("P")
	f := term.Or{A: p, B: term.Not{Formula: p}}

	provable, err := Prove(boundedCtx(t), f, nil)
	require.NoError(t, err)
	require.True(t, provable, "P or not P should be a tautology")
}

func TestProveDeMorgan(t *testing.T) {
	// not (P and Q) => (not P or not Q)
	p, q := pr("P"), pr("Q")
	f := term.Implies{
		A: term.Not{Formula: term.And{A: p, B: q}},
		B: term.Or{A: term.Not{Formula: p}, B: term.Not{Formula: q}},
	}

	provable, err := Prove(boundedCtx(t), f, nil)
	require.NoError(t, err)
	require.True(t, provable, "De Morgan's law should be provable")
}

func TestProveDrinkerParadox(t *testing.T) {
	// exists x. (D(x) => forall y. D(y))
	x, y := term.Variable{Name: "x"}, term.Variable{Name: "y"}
	f := term.ThereExists{
		Var: x,
		Body: term.Implies{
			A: pr("D", x),
			B: term.ForAll{Var: y, Body: pr("D", y)},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	provable, err := Prove(ctx, f, nil)
	require.NoError(t, err)
	require.True(t, provable, "the drinker paradox should be provable")
}

func TestProveConjunctionWithNegationIsNotProvable(t *testing.T) {
	// P and not P: run a bounded number of steps and expect it never closes.
	p := pr("P")
	f := term.And{A: p, B: term.Not{Formula: p}}

	goal := sequent.New(sequent.NewFormulaSet(), sequent.NewFormulaSet(f))
	search := NewSearch(goal, nil)
	for i := 0; i < 200; i++ {
		st := search.Step()
		require.False(t, st.Done && st.Provable, "P and not P must never be provable")
		if st.Done {
			return
		}
	}
}

func TestProveOrDisproveFindsFalsehood(t *testing.T) {
	p := pr("P")
	f := term.And{A: p, B: term.Not{Formula: p}}

	verdict, err := ProveOrDisprove(boundedCtx(t), f, nil)
	require.NoError(t, err)
	require.Equal(t, False, verdict)
}

func TestProveOrDisproveFindsTruth(t *testing.T) {
	p := pr("P")
	f := term.Or{A: p, B: term.Not{Formula: p}}

	verdict, err := ProveOrDisprove(boundedCtx(t), f, nil)
	require.NoError(t, err)
	require.Equal(t, True, verdict)
}

func TestProveOrDisproveBareAtomIsUnknownWithinBudget(t *testing.T) {
	// A bare, unquantified atom is neither provable nor refutable: both
	// searches get stuck (Step E) almost immediately.
	f := pr("P")

	verdict, err := ProveOrDisprove(boundedCtx(t), f, nil)
	require.NoError(t, err)
	require.Equal(t, Unknown, verdict)
}

func TestQuantifierSwapIsNotProvableWithinStepBudget(t *testing.T) {
	// forall x exists y. R(x,y) => exists y forall x. R(x,y) is not a
	// tautology; within a bounded number of steps the search must not
	// report it provable.
	x, y := term.Variable{Name: "x"}, term.Variable{Name: "y"}
	f := term.Implies{
		A: term.ForAll{Var: x, Body: term.ThereExists{Var: y, Body: pr("R", x, y)}},
		B: term.ThereExists{Var: y, Body: term.ForAll{Var: x, Body: pr("R", x, y)}},
	}

	goal := sequent.New(sequent.NewFormulaSet(), sequent.NewFormulaSet(f))
	search := NewSearch(goal, nil)
	for i := 0; i < 500; i++ {
		st := search.Step()
		require.False(t, st.Done && st.Provable, "quantifier-swap should not be provable")
		if st.Done {
			break
		}
	}
}

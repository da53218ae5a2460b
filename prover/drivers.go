package prover

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"seqprove/sequent"
	"seqprove/term"
)

// Verdict is the tri-valued result of ProveOrDisprove (spec.md §6).
type Verdict int

const (
	Unknown Verdict = iota
	True
	False
)

func (v Verdict) String() string {
	switch v {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// ProveSequent runs the search on seq to completion and returns its
// verdict (spec.md §4.5). It blocks until ctx is done or the search
// terminates; on unprovable-but-nonterminating formulas it only returns
// via ctx cancellation, matching §7: non-termination is expected behavior,
// bounded only by the caller.
func ProveSequent(ctx context.Context, seq sequent.Sequent, log hclog.Logger) (bool, error) {
	search := NewSearch(seq, log)
	status, err := search.Run(ctx)
	if err != nil {
		return false, err
	}
	return status.Provable, nil
}

// Prove wraps formula into Sequent({}, {formula}, none) and proves it
// (spec.md §4.5).
func Prove(ctx context.Context, formula term.Formula, log hclog.Logger) (bool, error) {
	goal := sequent.New(sequent.NewFormulaSet(), sequent.NewFormulaSet(formula))
	return ProveSequent(ctx, goal, log)
}

// ProveOrDisprove races formula against its negation, one Step each per
// turn, exactly as original_source/rules.py's proveOrDisproveFormula
// round-robins two generators. It returns True if formula is provable,
// False if ¬formula is provable, and Unknown if both searches get stuck
// within ctx's bound.
func ProveOrDisprove(ctx context.Context, formula term.Formula, log hclog.Logger) (Verdict, error) {
	positive := NewSearch(sequent.New(sequent.NewFormulaSet(), sequent.NewFormulaSet(formula)), log)
	negative := NewSearch(sequent.New(sequent.NewFormulaSet(), sequent.NewFormulaSet(term.Not{Formula: formula})), log)

	for positive != nil || negative != nil {
		select {
		case <-ctx.Done():
			return Unknown, ctx.Err()
		default:
		}

		if positive != nil {
			if st := positive.Step(); st.Done {
				if st.Provable {
					return True, nil
				}
				positive = nil
			}
		}
		if negative != nil {
			if st := negative.Step(); st.Done {
				if st.Provable {
					return False, nil
				}
				negative = nil
			}
		}
	}
	return Unknown, nil
}

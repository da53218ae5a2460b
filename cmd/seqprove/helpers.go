package main

import (
	"seqprove/llm"
	"seqprove/sequent"
	"seqprove/term"
)

// wrapGoal mirrors prover.Prove's Sequent({}, {formula}, none) wrapping,
// for the case where the CLI was handed a bare formula rather than a
// fully-formed sequent (spec.md §4.5).
func wrapGoal(f term.Formula) sequent.Sequent {
	return sequent.New(sequent.NewFormulaSet(), sequent.NewFormulaSet(f))
}

func newLLMClient() *llm.Client {
	return llm.NewClient()
}

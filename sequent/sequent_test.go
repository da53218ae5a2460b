package sequent

import (
	"testing"

	"seqprove/term"
)

func atom(name string) term.Formula { return term.Predicate{Name: name} }

func TestAxiomaticSequent(t *testing.T) {
	seq := New(NewFormulaSet(atom("A")), NewFormulaSet(atom("A")))
	if !seq.IsAxiomatic() {
		t.Fatal("{A} ⊢ {A} should be axiomatic")
	}
}

func TestNonAxiomaticSequent(t *testing.T) {
	seq := New(NewFormulaSet(atom("A")), NewFormulaSet(atom("B")))
	if seq.IsAxiomatic() {
		t.Fatal("{A} ⊢ {B} should not be axiomatic")
	}
}

func TestEqualityIgnoresOrderAndDuplicates(t *testing.T) {
	a := New(NewFormulaSet(atom("A"), atom("B")), NewFormulaSet(atom("C")))
	b := New(NewFormulaSet(atom("B"), atom("A"), atom("A")), NewFormulaSet(atom("C")))
	if !a.Equal(b) {
		t.Fatal("sequent equality should ignore insertion order and duplicates")
	}
	if a.Hash() != b.Hash() {
		t.Fatal("equal sequents should hash identically")
	}
}

func TestEqualityIgnoresGroupID(t *testing.T) {
	a := New(NewFormulaSet(atom("A")), NewFormulaSet(atom("B")))
	b := a
	b.GroupID = 7
	b.ID = 99
	if !a.Equal(b) {
		t.Fatal("sibling/ID bookkeeping should not affect structural equality")
	}
}

func TestFreshVariableName(t *testing.T) {
	seq := New(NewFormulaSet(term.Predicate{Name: "P", Args: []term.Formula{term.Variable{Name: "v1"}}}), NewFormulaSet())
	if got := seq.FreshVariableName(); got != "v2" {
		t.Fatalf("expected v2 (v1 already free), got %s", got)
	}
}

func TestFreshUnificationName(t *testing.T) {
	seq := New(NewFormulaSet(term.Predicate{Name: "P", Args: []term.Formula{term.UnificationTerm{Name: "t1"}}}), NewFormulaSet())
	if got := seq.FreshUnificationName(); got != "t2" {
		t.Fatalf("expected t2 (t1 already used), got %s", got)
	}
}

func TestUnifiablePairs(t *testing.T) {
	left := term.Predicate{Name: "P", Args: []term.Formula{term.UnificationTerm{Name: "t1"}}}
	right := term.Predicate{Name: "P", Args: []term.Formula{term.Function{Name: "a"}}}
	mismatched := term.Predicate{Name: "Q", Args: nil}

	seq := New(NewFormulaSet(left), NewFormulaSet(right, mismatched))
	pairs := seq.UnifiablePairs()
	if len(pairs) != 1 {
		t.Fatalf("expected exactly one unifiable pair, got %d", len(pairs))
	}
	if !pairs[0].Left.Equal(left) || !pairs[0].Right.Equal(right) {
		t.Fatalf("unexpected pair: %+v", pairs[0])
	}
}

func TestFormulaSetAddRemoveDedup(t *testing.T) {
	s := NewFormulaSet()
	s.Add(atom("A"))
	s.Add(atom("A"))
	if s.Len() != 1 {
		t.Fatalf("expected duplicate add to be a no-op, got size %d", s.Len())
	}
	s.Remove(atom("A"))
	if s.Len() != 0 {
		t.Fatalf("expected removal to empty the set, got size %d", s.Len())
	}
}

func TestStringRendersTurnstile(t *testing.T) {
	seq := New(NewFormulaSet(atom("A")), NewFormulaSet(atom("B")))
	got := seq.String()
	if got != "A() ⊢ B()" {
		t.Fatalf("unexpected rendering: %q", got)
	}
}

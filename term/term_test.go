package term

import "testing"

func p(name string, args ...Formula) Formula { return Predicate{Name: name, Args: args} }

func TestReplaceIdentity(t *testing.T) {
	f := p("P", Variable{Name: "x"})
	got := f.Replace(Variable{Name: "x"}, Variable{Name: "x"})
	if !got.Equal(f) {
		t.Fatalf("replace(x, x) changed the term: %v", got)
	}
}

func TestForAllReplaceShadowsBoundVariable(t *testing.T) {
	body := p("P", Variable{Name: "x"})
	q := ForAll{Var: Variable{Name: "x"}, Body: body}

	got := q.Replace(Variable{Name: "x"}, Function{Name: "a"})
	if !got.Equal(q) {
		t.Fatalf("ForAll(v, body).replace(v, _) should be unchanged, got %v", got)
	}
}

func TestThereExistsReplaceShadowsBoundVariable(t *testing.T) {
	body := p("P", Variable{Name: "y"})
	q := ThereExists{Var: Variable{Name: "y"}, Body: body}

	got := q.Replace(Variable{Name: "y"}, Function{Name: "a"})
	if !got.Equal(q) {
		t.Fatalf("ThereExists(v, body).replace(v, _) should be unchanged, got %v", got)
	}
}

func TestReplaceRecursesIntoCompoundForms(t *testing.T) {
	a := p("P", Variable{Name: "x"})
	b := p("Q", Variable{Name: "x"})

	cases := []struct {
		name string
		in   Formula
		want Formula
	}{
		{"not", Not{Formula: a}, Not{Formula: p("P", Variable{Name: "z"})}},
		{"and", And{A: a, B: b}, And{A: p("P", Variable{Name: "z"}), B: p("Q", Variable{Name: "z"})}},
		{"or", Or{A: a, B: b}, Or{A: p("P", Variable{Name: "z"}), B: p("Q", Variable{Name: "z"})}},
		{"implies", Implies{A: a, B: b}, Implies{A: p("P", Variable{Name: "z"}), B: p("Q", Variable{Name: "z"})}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Replace(Variable{Name: "x"}, Variable{Name: "z"})
			if !got.Equal(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOccurs(t *testing.T) {
	x := UnificationTerm{Name: "t1"}
	fx := Function{Name: "f", Args: []Formula{x}}
	if !fx.Occurs(x) {
		t.Fatal("expected f(t1) to contain t1")
	}
	if fx.Occurs(UnificationTerm{Name: "t2"}) {
		t.Fatal("did not expect f(t1) to contain t2")
	}
}

func TestEqualityIgnoresNothingStructural(t *testing.T) {
	a := p("P", Variable{Name: "x"}, Function{Name: "f", Args: []Formula{Variable{Name: "y"}}})
	b := p("P", Variable{Name: "x"}, Function{Name: "f", Args: []Formula{Variable{Name: "y"}}})
	c := p("P", Variable{Name: "x"}, Function{Name: "f", Args: []Formula{Variable{Name: "z"}}})

	if !a.Equal(b) {
		t.Fatal("expected structurally identical terms to be equal")
	}
	if a.Equal(c) {
		t.Fatal("did not expect terms differing in an argument to be equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatal("expected equal terms to hash identically")
	}
}

func TestFVAndFT(t *testing.T) {
	f := ForAll{
		Var:  Variable{Name: "x"},
		Body: p("P", Variable{Name: "x"}, Variable{Name: "y"}, UnificationTerm{Name: "t1"}),
	}
	fv := f.FV()
	if fv.Has("x") {
		t.Fatal("x is bound by ForAll, should not be free")
	}
	if !fv.Has("y") {
		t.Fatal("y should be free")
	}
	ft := f.FT()
	if !ft.Has("t1") {
		t.Fatal("t1 should be a free unification term")
	}
}

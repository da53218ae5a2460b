// Package term implements the term algebra: object variables, unification
// variables, function terms, predicate atoms, and the propositional and
// quantifier connectives that build up a first-order formula.
package term

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// Formula is the tagged union of every term/formula variant. Every
// operation the algebra exposes (FV, FT, Occurs, Replace, Equal, Hash,
// String) is implemented by each variant directly rather than through a
// central dispatcher, so a new variant does not satisfy Formula until it
// implements all of them. The type switches over Formula in packages
// unify and prover are not checked for exhaustiveness by the compiler.
type Formula interface {
	// FV returns the object variables free in the term.
	FV() VarSet
	// FT returns the unification variables occurring anywhere in the term.
	FT() VarSet
	// Occurs reports whether the atomic term x appears anywhere inside
	// the receiver. x must be a Variable or UnificationTerm.
	Occurs(x Formula) bool
	// Replace returns a copy with every free occurrence of old replaced
	// by new, honoring binder scope (ForAll/ThereExists shadow their
	// own bound variable).
	Replace(old, new Formula) Formula
	// Equal is structural equality.
	Equal(other Formula) bool
	// Hash is a stable structural hash, suitable for set/map keys.
	Hash() uint64
	// String renders the term/formula for diagnostics and the printer.
	String() string
}

// VarSet is a set of variable/unification-term names.
type VarSet map[string]struct{}

// Union returns a new VarSet containing every name in s or other.
func (s VarSet) Union(other VarSet) VarSet {
	out := make(VarSet, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

// Has reports whether name is a member.
func (s VarSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func single(name string) VarSet {
	return VarSet{name: {}}
}

func hashString(tag byte, parts ...string) uint64 {
	f := fnv.New64a()
	f.Write([]byte{tag})
	for _, p := range parts {
		f.Write([]byte(p))
		f.Write([]byte{0})
	}
	return f.Sum64()
}

func hashChildren(tag byte, name string, children []Formula) uint64 {
	f := fnv.New64a()
	f.Write([]byte{tag})
	f.Write([]byte(name))
	f.Write([]byte{0})
	for _, c := range children {
		var buf [8]byte
		h := c.Hash()
		for i := range buf {
			buf[i] = byte(h >> (8 * i))
		}
		f.Write(buf[:])
	}
	return f.Sum64()
}

// --- Variable -------------------------------------------------------------

// Variable is a bound or free object variable.
type Variable struct {
	Name string
}

func (v Variable) FV() VarSet           { return single(v.Name) }
func (v Variable) FT() VarSet           { return VarSet{} }
func (v Variable) Occurs(x Formula) bool {
	if other, ok := x.(Variable); ok {
		return other.Name == v.Name
	}
	return false
}

func (v Variable) Replace(old, new Formula) Formula {
	if o, ok := old.(Variable); ok && o.Name == v.Name {
		return new
	}
	return v
}

func (v Variable) Equal(other Formula) bool {
	o, ok := other.(Variable)
	return ok && o.Name == v.Name
}

func (v Variable) Hash() uint64   { return hashString('v', v.Name) }
func (v Variable) String() string { return v.Name }

// --- UnificationTerm --------------------------------------------------------

// UnificationTerm is a metavariable introduced by left-∀/right-∃ reduction,
// later bound by unification when closing a branch.
type UnificationTerm struct {
	Name string
}

func (t UnificationTerm) FV() VarSet { return VarSet{} }
func (t UnificationTerm) FT() VarSet { return single(t.Name) }

func (t UnificationTerm) Occurs(x Formula) bool {
	if other, ok := x.(UnificationTerm); ok {
		return other.Name == t.Name
	}
	return false
}

func (t UnificationTerm) Replace(old, new Formula) Formula {
	if o, ok := old.(UnificationTerm); ok && o.Name == t.Name {
		return new
	}
	return t
}

func (t UnificationTerm) Equal(other Formula) bool {
	o, ok := other.(UnificationTerm)
	return ok && o.Name == t.Name
}

func (t UnificationTerm) Hash() uint64   { return hashString('t', t.Name) }
func (t UnificationTerm) String() string { return "?" + t.Name }

// --- Function ---------------------------------------------------------------

// Function is an n-ary term constructor (n >= 0).
type Function struct {
	Name string
	Args []Formula
}

func (f Function) FV() VarSet {
	result := VarSet{}
	for _, a := range f.Args {
		result = result.Union(a.FV())
	}
	return result
}

func (f Function) FT() VarSet {
	result := VarSet{}
	for _, a := range f.Args {
		result = result.Union(a.FT())
	}
	return result
}

func (f Function) Occurs(x Formula) bool {
	for _, a := range f.Args {
		if a.Occurs(x) {
			return true
		}
	}
	return false
}

func (f Function) Replace(old, new Formula) Formula {
	args := make([]Formula, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.Replace(old, new)
	}
	return Function{Name: f.Name, Args: args}
}

func (f Function) Equal(other Formula) bool {
	o, ok := other.(Function)
	if !ok || o.Name != f.Name || len(o.Args) != len(f.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (f Function) Hash() uint64 { return hashChildren('F', f.Name, f.Args) }

func (f Function) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(parts, ", "))
}

// --- Predicate ----------------------------------------------------------------

// Predicate is an atomic formula: a predicate symbol applied to terms.
type Predicate struct {
	Name string
	Args []Formula
}

func (p Predicate) FV() VarSet {
	result := VarSet{}
	for _, a := range p.Args {
		result = result.Union(a.FV())
	}
	return result
}

func (p Predicate) FT() VarSet {
	result := VarSet{}
	for _, a := range p.Args {
		result = result.Union(a.FT())
	}
	return result
}

func (p Predicate) Occurs(x Formula) bool {
	for _, a := range p.Args {
		if a.Occurs(x) {
			return true
		}
	}
	return false
}

func (p Predicate) Replace(old, new Formula) Formula {
	args := make([]Formula, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.Replace(old, new)
	}
	return Predicate{Name: p.Name, Args: args}
}

func (p Predicate) Equal(other Formula) bool {
	o, ok := other.(Predicate)
	if !ok || o.Name != p.Name || len(o.Args) != len(p.Args) {
		return false
	}
	for i := range p.Args {
		if !p.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (p Predicate) Hash() uint64 { return hashChildren('P', p.Name, p.Args) }

func (p Predicate) String() string {
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(parts, ", "))
}

// --- Not -----------------------------------------------------------------------

// Not is formula negation.
type Not struct {
	Formula Formula
}

func (n Not) FV() VarSet           { return n.Formula.FV() }
func (n Not) FT() VarSet           { return n.Formula.FT() }
func (n Not) Occurs(x Formula) bool { return n.Formula.Occurs(x) }

func (n Not) Replace(old, new Formula) Formula {
	return Not{Formula: n.Formula.Replace(old, new)}
}

func (n Not) Equal(other Formula) bool {
	o, ok := other.(Not)
	return ok && n.Formula.Equal(o.Formula)
}

func (n Not) Hash() uint64   { return hashChildren('~', "", []Formula{n.Formula}) }
func (n Not) String() string { return "¬" + n.Formula.String() }

// --- And / Or / Implies ---------------------------------------------------------

// And is conjunction.
type And struct{ A, B Formula }

func (f And) FV() VarSet            { return f.A.FV().Union(f.B.FV()) }
func (f And) FT() VarSet            { return f.A.FT().Union(f.B.FT()) }
func (f And) Occurs(x Formula) bool { return f.A.Occurs(x) || f.B.Occurs(x) }
func (f And) Replace(old, new Formula) Formula {
	return And{A: f.A.Replace(old, new), B: f.B.Replace(old, new)}
}
func (f And) Equal(other Formula) bool {
	o, ok := other.(And)
	return ok && f.A.Equal(o.A) && f.B.Equal(o.B)
}
func (f And) Hash() uint64   { return hashChildren('&', "", []Formula{f.A, f.B}) }
func (f And) String() string { return "(" + f.A.String() + " ∧ " + f.B.String() + ")" }

// Or is disjunction.
type Or struct{ A, B Formula }

func (f Or) FV() VarSet            { return f.A.FV().Union(f.B.FV()) }
func (f Or) FT() VarSet            { return f.A.FT().Union(f.B.FT()) }
func (f Or) Occurs(x Formula) bool { return f.A.Occurs(x) || f.B.Occurs(x) }
func (f Or) Replace(old, new Formula) Formula {
	return Or{A: f.A.Replace(old, new), B: f.B.Replace(old, new)}
}
func (f Or) Equal(other Formula) bool {
	o, ok := other.(Or)
	return ok && f.A.Equal(o.A) && f.B.Equal(o.B)
}
func (f Or) Hash() uint64   { return hashChildren('|', "", []Formula{f.A, f.B}) }
func (f Or) String() string { return "(" + f.A.String() + " ∨ " + f.B.String() + ")" }

// Implies is material implication.
type Implies struct{ A, B Formula }

func (f Implies) FV() VarSet            { return f.A.FV().Union(f.B.FV()) }
func (f Implies) FT() VarSet            { return f.A.FT().Union(f.B.FT()) }
func (f Implies) Occurs(x Formula) bool { return f.A.Occurs(x) || f.B.Occurs(x) }
func (f Implies) Replace(old, new Formula) Formula {
	return Implies{A: f.A.Replace(old, new), B: f.B.Replace(old, new)}
}
func (f Implies) Equal(other Formula) bool {
	o, ok := other.(Implies)
	return ok && f.A.Equal(o.A) && f.B.Equal(o.B)
}
func (f Implies) Hash() uint64   { return hashChildren('>', "", []Formula{f.A, f.B}) }
func (f Implies) String() string { return "(" + f.A.String() + " ⇒ " + f.B.String() + ")" }

// --- ForAll / ThereExists ---------------------------------------------------------

// ForAll is universal quantification over Var.
type ForAll struct {
	Var  Variable
	Body Formula
}

func (q ForAll) FV() VarSet {
	fv := q.Body.FV()
	delete(fv, q.Var.Name)
	return fv
}
func (q ForAll) FT() VarSet            { return q.Body.FT() }
func (q ForAll) Occurs(x Formula) bool { return q.Body.Occurs(x) }

func (q ForAll) Replace(old, new Formula) Formula {
	if o, ok := old.(Variable); ok && o.Name == q.Var.Name {
		return q
	}
	return ForAll{Var: q.Var, Body: q.Body.Replace(old, new)}
}

func (q ForAll) Equal(other Formula) bool {
	o, ok := other.(ForAll)
	return ok && q.Var.Name == o.Var.Name && q.Body.Equal(o.Body)
}

func (q ForAll) Hash() uint64 {
	return hashChildren('A', q.Var.Name, []Formula{q.Body})
}

func (q ForAll) String() string { return "∀" + q.Var.Name + ". " + q.Body.String() }

// ThereExists is existential quantification over Var.
type ThereExists struct {
	Var  Variable
	Body Formula
}

func (q ThereExists) FV() VarSet {
	fv := q.Body.FV()
	delete(fv, q.Var.Name)
	return fv
}
func (q ThereExists) FT() VarSet            { return q.Body.FT() }
func (q ThereExists) Occurs(x Formula) bool { return q.Body.Occurs(x) }

func (q ThereExists) Replace(old, new Formula) Formula {
	if o, ok := old.(Variable); ok && o.Name == q.Var.Name {
		return q
	}
	return ThereExists{Var: q.Var, Body: q.Body.Replace(old, new)}
}

func (q ThereExists) Equal(other Formula) bool {
	o, ok := other.(ThereExists)
	return ok && q.Var.Name == o.Var.Name && q.Body.Equal(o.Body)
}

func (q ThereExists) Hash() uint64 {
	return hashChildren('E', q.Var.Name, []Formula{q.Body})
}

func (q ThereExists) String() string { return "∃" + q.Var.Name + ". " + q.Body.String() }

// SortedNames returns the names of s in ascending order, useful for
// deterministic diagnostics and tests.
func SortedNames(s VarSet) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Package prover implements the fair, breadth-first proof-search engine
// described in spec.md §4.4: axiom detection, sibling-group closure via
// unification, propositional/quantifier-atomic reduction, and
// depth-fairness-controlled quantifier instantiation.
package prover

import (
	"context"
	"sort"

	"github.com/hashicorp/go-hclog"

	"seqprove/sequent"
	"seqprove/term"
	"seqprove/unify"
)

// Status is the result of one Step: either the search is still running, or
// it has concluded with a verdict. This is the explicit state-machine
// reframing of original_source/rules.py's yield-based generator, per
// spec.md Design Notes §9 ("model it as an explicit state machine object
// with a step() method").
type Status struct {
	Done     bool
	Provable bool
}

var running = Status{}

func done(provable bool) Status { return Status{Done: true, Provable: provable} }

// siblingGroup is the arena record for one sibling set: the set of
// sequents descended from a common quantifier instantiation that must be
// simultaneously closable by one unifier (spec.md §3 "Ownership of
// siblings"; Design Notes §9 "sibling set — shared mutable graph").
type siblingGroup struct {
	members map[int]sequent.Sequent
}

// depthTable tracks, per quantifier formula, how many times it has been
// instantiated — the fairness counter of spec.md §4.4 Step D.
type depthTable struct {
	buckets map[uint64][]depthEntry
}

type depthEntry struct {
	formula term.Formula
	depth   int
}

func newDepthTable() *depthTable { return &depthTable{buckets: map[uint64][]depthEntry{}} }

func (d *depthTable) get(f term.Formula) (int, bool) {
	for _, e := range d.buckets[f.Hash()] {
		if e.formula.Equal(f) {
			return e.depth, true
		}
	}
	return 0, false
}

func (d *depthTable) increment(f term.Formula) {
	h := f.Hash()
	bucket := d.buckets[h]
	for i, e := range bucket {
		if e.formula.Equal(f) {
			bucket[i].depth++
			return
		}
	}
	d.buckets[h] = append(bucket, depthEntry{formula: f, depth: 1})
}

// Search is one proof-search run: a frontier, a visited set for
// deduplication under sequent equality, a fairness table, and the sibling
// arena. It is single-threaded and cooperative (spec.md §5): Step does a
// bounded amount of work and returns, so a driver can interleave two
// Searches (see ProveOrDisprove).
type Search struct {
	frontier []sequent.Sequent
	visited  map[uint64][]sequent.Sequent
	depths   *depthTable
	groups   map[int]*siblingGroup

	nextSeqID   int
	nextGroupID int

	log hclog.Logger
}

// NewSearch creates a Search whose frontier is initialized with goal. A
// nil logger is replaced with a discarding logger.
func NewSearch(goal sequent.Sequent, log hclog.Logger) *Search {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	s := &Search{
		visited: map[uint64][]sequent.Sequent{},
		depths:  newDepthTable(),
		groups:  map[int]*siblingGroup{},
		log:     log,
	}
	goal.ID = s.nextSeqID
	s.nextSeqID++
	s.frontier = append(s.frontier, goal)
	s.markVisited(goal)
	return s
}

func (s *Search) markVisited(seq sequent.Sequent) {
	h := seq.Hash()
	s.visited[h] = append(s.visited[h], seq)
}

func (s *Search) isVisited(seq sequent.Sequent) bool {
	for _, v := range s.visited[seq.Hash()] {
		if v.Equal(seq) {
			return true
		}
	}
	return false
}

func (s *Search) newGroup() int {
	s.nextGroupID++
	s.groups[s.nextGroupID] = &siblingGroup{members: map[int]sequent.Sequent{}}
	return s.nextGroupID
}

// enqueue admits a freshly reduced child into the frontier if it is not
// already visited, tagging it with groupID (0 for none) and registering
// it with that group's arena entry.
func (s *Search) enqueue(child sequent.Sequent, groupID int) {
	if s.isVisited(child) {
		return
	}
	child.ID = s.nextSeqID
	s.nextSeqID++
	child.GroupID = groupID
	s.markVisited(child)
	s.frontier = append(s.frontier, child)
	if groupID != 0 {
		s.groups[groupID].members[child.ID] = child
	}
}

func (s *Search) removeFromFrontier(id int) {
	for i, f := range s.frontier {
		if f.ID == id {
			s.frontier = append(s.frontier[:i], s.frontier[i+1:]...)
			return
		}
	}
}

// Step advances the search by processing exactly one frontier sequent
// through spec.md §4.4 Steps A–E, or reports completion if the frontier is
// empty.
func (s *Search) Step() Status {
	if len(s.frontier) == 0 {
		return done(true)
	}

	cur := s.frontier[0]
	s.frontier = s.frontier[1:]

	// Step A — axiom check.
	if cur.IsAxiomatic() {
		s.log.Trace("discharged axiomatic sequent", "sequent", cur.String())
		return running
	}

	// Step B — sibling closure.
	if cur.GroupID != 0 {
		if group, ok := s.groups[cur.GroupID]; ok {
			if s.trySiblingClosure(cur, group) {
				return running
			}
		}
	}

	// Step C — propositional / ∃-left / ∀-right reductions.
	if children, ok := reduceLeft(cur); ok {
		for _, c := range children {
			s.enqueue(c, cur.GroupID)
		}
		return running
	}
	if children, ok := reduceRight(cur); ok {
		for _, c := range children {
			s.enqueue(c, cur.GroupID)
		}
		return running
	}

	// Step D — quantifier instantiation (fairness).
	if s.instantiateQuantifier(cur) {
		return running
	}

	// Step E — stuck.
	s.log.Debug("search stuck", "sequent", cur.String())
	return done(false)
}

// trySiblingClosure implements spec.md §4.4 Step B. It returns true if the
// whole group closed (cur and its peers are discharged together).
func (s *Search) trySiblingClosure(cur sequent.Sequent, group *siblingGroup) bool {
	ids := make([]int, 0, len(group.members))
	for id := range group.members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	pairLists := make([][]unify.Pair, len(ids))
	anyEmpty := false
	for i, id := range ids {
		pairs := group.members[id].UnifiablePairs()
		pairLists[i] = pairs
		if len(pairs) == 0 {
			anyEmpty = true
		}
	}

	if !anyEmpty {
		if _, ok := firstUnifyingCombo(pairLists); ok {
			for _, id := range ids {
				s.removeFromFrontier(id)
			}
			delete(s.groups, cur.GroupID)
			s.log.Trace("sibling group closed", "group", cur.GroupID, "members", len(ids))
			return true
		}
		// No combination unifies yet; more reduction may expose one later.
		return false
	}

	// Some sibling has zero candidates: cur unlinks itself and continues.
	delete(group.members, cur.ID)
	return false
}

// firstUnifyingCombo walks the Cartesian product of per-sibling choices in
// lexicographic order of indices, returning the first combination whose
// pairs unify simultaneously.
func firstUnifyingCombo(pairLists [][]unify.Pair) ([]unify.Pair, bool) {
	index := make([]int, len(pairLists))
	for {
		chosen := make([]unify.Pair, len(pairLists))
		for i, idx := range index {
			chosen[i] = pairLists[i][idx]
		}
		if _, ok := unify.UnifyList(chosen); ok {
			return chosen, true
		}

		pos := len(pairLists) - 1
		for pos >= 0 {
			index[pos]++
			if index[pos] < len(pairLists[pos]) {
				break
			}
			index[pos] = 0
			pos--
		}
		if pos < 0 {
			return nil, false
		}
	}
}

func sortedFormulas(set sequent.FormulaSet) []term.Formula {
	fs := set.Slice()
	sort.Slice(fs, func(i, j int) bool { return fs[i].String() < fs[j].String() })
	return fs
}

// reduceLeft scans the left side for the first non-atomic formula (other
// than ForAll, deferred to Step D) and applies its rule, per the Position
// "Left" rows of spec.md §4.4's reduction table.
func reduceLeft(cur sequent.Sequent) ([]sequent.Sequent, bool) {
	for _, f := range sortedFormulas(cur.Left) {
		switch v := f.(type) {
		case term.Variable, term.Function, term.Predicate, term.ForAll:
			continue

		case term.Not:
			left := cur.Left.Clone()
			left.Remove(f)
			right := cur.Right.Clone()
			right.Add(v.Formula)
			return []sequent.Sequent{sequent.New(left, right)}, true

		case term.And:
			left := cur.Left.Clone()
			left.Remove(f)
			left.Add(v.A)
			left.Add(v.B)
			return []sequent.Sequent{sequent.New(left, cur.Right.Clone())}, true

		case term.Or:
			leftA := cur.Left.Clone()
			leftA.Remove(f)
			leftA.Add(v.A)
			leftB := cur.Left.Clone()
			leftB.Remove(f)
			leftB.Add(v.B)
			return []sequent.Sequent{
				sequent.New(leftA, cur.Right.Clone()),
				sequent.New(leftB, cur.Right.Clone()),
			}, true

		case term.Implies:
			leftA := cur.Left.Clone()
			leftA.Remove(f)
			rightA := cur.Right.Clone()
			rightA.Add(v.A)
			leftB := cur.Left.Clone()
			leftB.Remove(f)
			leftB.Add(v.B)
			return []sequent.Sequent{
				sequent.New(leftA, rightA),
				sequent.New(leftB, cur.Right.Clone()),
			}, true

		case term.ThereExists:
			fresh := term.Variable{Name: cur.FreshVariableName()}
			left := cur.Left.Clone()
			left.Remove(f)
			left.Add(v.Body.Replace(v.Var, fresh))
			return []sequent.Sequent{sequent.New(left, cur.Right.Clone())}, true
		}
	}
	return nil, false
}

// reduceRight scans the right side for the first non-atomic formula (other
// than ThereExists, deferred to Step D) and applies its rule, per the
// Position "Right" rows of spec.md §4.4's reduction table.
func reduceRight(cur sequent.Sequent) ([]sequent.Sequent, bool) {
	for _, f := range sortedFormulas(cur.Right) {
		switch v := f.(type) {
		case term.Variable, term.Function, term.Predicate, term.ThereExists:
			continue

		case term.Not:
			right := cur.Right.Clone()
			right.Remove(f)
			left := cur.Left.Clone()
			left.Add(v.Formula)
			return []sequent.Sequent{sequent.New(left, right)}, true

		case term.And:
			rightA := cur.Right.Clone()
			rightA.Remove(f)
			rightA.Add(v.A)
			rightB := cur.Right.Clone()
			rightB.Remove(f)
			rightB.Add(v.B)
			return []sequent.Sequent{
				sequent.New(cur.Left.Clone(), rightA),
				sequent.New(cur.Left.Clone(), rightB),
			}, true

		case term.Or:
			right := cur.Right.Clone()
			right.Remove(f)
			right.Add(v.A)
			right.Add(v.B)
			return []sequent.Sequent{sequent.New(cur.Left.Clone(), right)}, true

		case term.Implies:
			left := cur.Left.Clone()
			left.Add(v.A)
			right := cur.Right.Clone()
			right.Remove(f)
			right.Add(v.B)
			return []sequent.Sequent{sequent.New(left, right)}, true

		case term.ForAll:
			fresh := term.Variable{Name: cur.FreshVariableName()}
			right := cur.Right.Clone()
			right.Remove(f)
			right.Add(v.Body.Replace(v.Var, fresh))
			return []sequent.Sequent{sequent.New(cur.Left.Clone(), right)}, true
		}
	}
	return nil, false
}

// instantiateQuantifier implements spec.md §4.4 Step D: among ForAll-left
// and ThereExists-right formulas, instantiate the one with the smallest
// recorded depth (0 if never seen), breaking ties in favor of the left
// rule — the fairness discipline that guarantees refutation completeness.
func (s *Search) instantiateQuantifier(cur sequent.Sequent) bool {
	var leftFormula term.Formula
	leftDepth := -1
	for _, f := range sortedFormulas(cur.Left) {
		fa, ok := f.(term.ForAll)
		if !ok {
			continue
		}
		depth, _ := s.depths.get(fa)
		if leftDepth == -1 || depth < leftDepth {
			leftFormula = fa
			leftDepth = depth
		}
	}

	var rightFormula term.Formula
	rightDepth := -1
	for _, f := range sortedFormulas(cur.Right) {
		ex, ok := f.(term.ThereExists)
		if !ok {
			continue
		}
		depth, _ := s.depths.get(ex)
		if rightDepth == -1 || depth < rightDepth {
			rightFormula = ex
			rightDepth = depth
		}
	}

	applyLeft, applyRight := false, false
	switch {
	case leftFormula != nil && rightFormula == nil:
		applyLeft = true
	case leftFormula == nil && rightFormula != nil:
		applyRight = true
	case leftFormula != nil && rightFormula != nil:
		if leftDepth <= rightDepth {
			applyLeft = true
		} else {
			applyRight = true
		}
	default:
		return false
	}

	groupID := cur.GroupID
	if groupID == 0 {
		groupID = s.newGroup()
	}

	if applyLeft {
		fa := leftFormula.(term.ForAll)
		s.depths.increment(fa)
		fresh := term.UnificationTerm{Name: cur.FreshUnificationName()}
		left := cur.Left.Clone()
		left.Add(fa.Body.Replace(fa.Var, fresh))
		s.enqueue(sequent.New(left, cur.Right.Clone()), groupID)
		return true
	}

	ex := rightFormula.(term.ThereExists)
	s.depths.increment(ex)
	fresh := term.UnificationTerm{Name: cur.FreshUnificationName()}
	right := cur.Right.Clone()
	right.Add(ex.Body.Replace(ex.Var, fresh))
	s.enqueue(sequent.New(cur.Left.Clone(), right), groupID)
	return true
}

// Run drives the search to completion, yielding one Step per loop and
// honoring ctx cancellation between steps (spec.md §5/§7: the core has no
// internal bounds; callers impose wall-clock or step-count limits via
// context).
func (s *Search) Run(ctx context.Context) (Status, error) {
	for {
		select {
		case <-ctx.Done():
			return Status{}, ctx.Err()
		default:
		}
		st := s.Step()
		if st.Done {
			return st, nil
		}
	}
}

// Package parser is the external surface-syntax collaborator spec.md §6
// describes: it turns a JSON encoding of a formula into the term.Formula
// AST the core consumes. The core itself never imports this package.
//
// The wire format generalizes the teacher's ParseInput/parseLiteral (which
// split "Predicate(arg1, arg2)" strings by hand) into explicit tagged
// JSON objects, read with tidwall/gjson:
//
//	{"var": "x"}
//	{"uvar": "t1"}
//	{"fn": "f", "args": [...]}
//	{"pred": "P", "args": [...]}
//	{"not": F}
//	{"and": [F, F]}
//	{"or": [F, F]}
//	{"implies": [F, F]}
//	{"forall": {"var": "x", "body": F}}
//	{"exists": {"var": "x", "body": F}}
package parser

import (
	"fmt"
	"unicode"

	"github.com/tidwall/gjson"

	"seqprove/sequent"
	"seqprove/term"
)

// ErrMalformedFormula is returned when the JSON does not match any known
// formula shape.
var ErrMalformedFormula = fmt.Errorf("malformed formula")

// validIdentifier requires a leading letter or underscore followed by
// letters, digits, or underscores, generalizing the teacher's
// isSingleLowerLetter single-rune check to arbitrary names. A glob pattern
// like "[a-zA-Z_]*" cannot express "every rune in this class" (its "*" is
// an unrestricted any-sequence wildcard), so each rune is checked by hand.
func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// ParseFormula decodes a single JSON-encoded formula.
func ParseFormula(data []byte) (term.Formula, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedFormula)
	}
	return parseValue(gjson.ParseBytes(data))
}

// ParseSequent decodes {"left": [...], "right": [...]} into a
// sequent.Sequent with no sibling group, ready to hand to
// prover.ProveSequent.
func ParseSequent(data []byte) (sequent.Sequent, error) {
	if !gjson.ValidBytes(data) {
		return sequent.Sequent{}, fmt.Errorf("%w: invalid JSON", ErrMalformedFormula)
	}
	root := gjson.ParseBytes(data)
	if !root.Get("left").Exists() && !root.Get("right").Exists() {
		return sequent.Sequent{}, fmt.Errorf("%w: expected a \"left\" or \"right\" key", ErrMalformedFormula)
	}
	left := sequent.NewFormulaSet()
	right := sequent.NewFormulaSet()

	var parseErr error
	root.Get("left").ForEach(func(_, v gjson.Result) bool {
		f, err := parseValue(v)
		if err != nil {
			parseErr = err
			return false
		}
		left.Add(f)
		return true
	})
	if parseErr != nil {
		return sequent.Sequent{}, parseErr
	}
	root.Get("right").ForEach(func(_, v gjson.Result) bool {
		f, err := parseValue(v)
		if err != nil {
			parseErr = err
			return false
		}
		right.Add(f)
		return true
	})
	if parseErr != nil {
		return sequent.Sequent{}, parseErr
	}
	return sequent.New(left, right), nil
}

func parseValue(v gjson.Result) (term.Formula, error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrMalformedFormula, v.Type)
	}

	if name := v.Get("var"); name.Exists() {
		if !validIdentifier(name.String()) {
			return nil, fmt.Errorf("%w: bad variable name %q", ErrMalformedFormula, name.String())
		}
		return term.Variable{Name: name.String()}, nil
	}
	if name := v.Get("uvar"); name.Exists() {
		if !validIdentifier(name.String()) {
			return nil, fmt.Errorf("%w: bad unification-term name %q", ErrMalformedFormula, name.String())
		}
		return term.UnificationTerm{Name: name.String()}, nil
	}
	if name := v.Get("fn"); name.Exists() {
		args, err := parseArgs(v.Get("args"))
		if err != nil {
			return nil, err
		}
		return term.Function{Name: name.String(), Args: args}, nil
	}
	if name := v.Get("pred"); name.Exists() {
		args, err := parseArgs(v.Get("args"))
		if err != nil {
			return nil, err
		}
		return term.Predicate{Name: name.String(), Args: args}, nil
	}
	if sub := v.Get("not"); sub.Exists() {
		f, err := parseValue(sub)
		if err != nil {
			return nil, err
		}
		return term.Not{Formula: f}, nil
	}
	if pair := v.Get("and"); pair.Exists() {
		a, b, err := parsePair(pair)
		if err != nil {
			return nil, err
		}
		return term.And{A: a, B: b}, nil
	}
	if pair := v.Get("or"); pair.Exists() {
		a, b, err := parsePair(pair)
		if err != nil {
			return nil, err
		}
		return term.Or{A: a, B: b}, nil
	}
	if pair := v.Get("implies"); pair.Exists() {
		a, b, err := parsePair(pair)
		if err != nil {
			return nil, err
		}
		return term.Implies{A: a, B: b}, nil
	}
	if q := v.Get("forall"); q.Exists() {
		variable, body, err := parseBinder(q)
		if err != nil {
			return nil, err
		}
		return term.ForAll{Var: variable, Body: body}, nil
	}
	if q := v.Get("exists"); q.Exists() {
		variable, body, err := parseBinder(q)
		if err != nil {
			return nil, err
		}
		return term.ThereExists{Var: variable, Body: body}, nil
	}

	return nil, fmt.Errorf("%w: unrecognized shape %s", ErrMalformedFormula, v.Raw)
}

func parseArgs(arr gjson.Result) ([]term.Formula, error) {
	if !arr.Exists() {
		return nil, nil
	}
	if !arr.IsArray() {
		return nil, fmt.Errorf("%w: args must be an array", ErrMalformedFormula)
	}
	var args []term.Formula
	var parseErr error
	arr.ForEach(func(_, v gjson.Result) bool {
		f, err := parseValue(v)
		if err != nil {
			parseErr = err
			return false
		}
		args = append(args, f)
		return true
	})
	return args, parseErr
}

func parsePair(arr gjson.Result) (term.Formula, term.Formula, error) {
	if !arr.IsArray() || len(arr.Array()) != 2 {
		return nil, nil, fmt.Errorf("%w: expected a 2-element array", ErrMalformedFormula)
	}
	elems := arr.Array()
	a, err := parseValue(elems[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := parseValue(elems[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func parseBinder(obj gjson.Result) (term.Variable, term.Formula, error) {
	name := obj.Get("var")
	if !name.Exists() || !validIdentifier(name.String()) {
		return term.Variable{}, nil, fmt.Errorf("%w: binder missing a valid var", ErrMalformedFormula)
	}
	bodyVal := obj.Get("body")
	if !bodyVal.Exists() {
		return term.Variable{}, nil, fmt.Errorf("%w: binder missing body", ErrMalformedFormula)
	}
	body, err := parseValue(bodyVal)
	if err != nil {
		return term.Variable{}, nil, err
	}
	return term.Variable{Name: name.String()}, body, nil
}

// Package printer is the external pretty-printing collaborator spec.md §6
// describes: it renders sequents and proof traces for human/CLI
// consumption. The core never imports it.
package printer

import (
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"seqprove/sequent"
)

// Sequent renders the canonical "L1, L2, ... ⊢ R1, R2, ..." form spec.md
// §6 recommends. It delegates to sequent.Sequent.String, which already
// implements that rule from original_source/rules.py's Sequent.__str__.
func Sequent(seq sequent.Sequent) string {
	return seq.String()
}

// Step is one recorded reduction in a proof trace: the rule applied, the
// sequent it was applied to, and the sequent(s) it produced.
type Step struct {
	Rule string
	From string
	To   []string
}

// Trace is the full record of a search, suitable for --json output.
type Trace struct {
	Verdict string
	Steps   []Step
}

// RenderText renders a trace the way the teacher's formatShortLog does:
// a verdict line followed by one line per step.
func RenderText(t Trace) string {
	var b strings.Builder
	fmt.Fprintf(&b, "verdict: %s\n", t.Verdict)
	for i, step := range t.Steps {
		fmt.Fprintf(&b, "step %d [%s]\n    from: %s\n", i+1, step.Rule, step.From)
		for _, to := range step.To {
			fmt.Fprintf(&b, "    to:   %s\n", to)
		}
	}
	return b.String()
}

// RenderJSON builds a JSON document for t using sjson (teacher dependency,
// reused for its original purpose: building JSON without a fixed struct
// schema) and formats it for terminal display with tidwall/pretty.
func RenderJSON(t Trace) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	doc, err = sjson.SetBytes(doc, "verdict", t.Verdict)
	if err != nil {
		return nil, err
	}
	for i, step := range t.Steps {
		prefix := fmt.Sprintf("steps.%d", i)
		if doc, err = sjson.SetBytes(doc, prefix+".rule", step.Rule); err != nil {
			return nil, err
		}
		if doc, err = sjson.SetBytes(doc, prefix+".from", step.From); err != nil {
			return nil, err
		}
		if doc, err = sjson.SetBytes(doc, prefix+".to", step.To); err != nil {
			return nil, err
		}
	}
	return pretty.Pretty(doc), nil
}

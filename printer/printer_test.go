package printer

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"seqprove/sequent"
	"seqprove/term"
)

func TestSequentDelegatesToString(t *testing.T) {
	seq := sequent.New(
		sequent.NewFormulaSet(term.Predicate{Name: "A"}),
		sequent.NewFormulaSet(term.Predicate{Name: "B"}),
	)
	if Sequent(seq) != seq.String() {
		t.Fatalf("printer.Sequent should delegate to Sequent.String")
	}
}

func TestRenderTextIncludesVerdictAndSteps(t *testing.T) {
	trace := Trace{
		Verdict: "provable",
		Steps: []Step{
			{Rule: "and-left", From: "A, B ⊢", To: []string{"A, B, C ⊢"}},
		},
	}
	text := RenderText(trace)
	if !strings.Contains(text, "verdict: provable") {
		t.Fatalf("expected verdict line, got %q", text)
	}
	if !strings.Contains(text, "and-left") || !strings.Contains(text, "A, B ⊢") {
		t.Fatalf("expected step detail, got %q", text)
	}
}

func TestRenderJSONRoundTripsThroughGJSON(t *testing.T) {
	trace := Trace{
		Verdict: "not provable",
		Steps: []Step{
			{Rule: "or-right", From: "⊢ A or B", To: []string{"⊢ A, B"}},
		},
	}
	out, err := RenderJSON(trace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := gjson.GetBytes(out, "verdict").String(); got != "not provable" {
		t.Fatalf("verdict = %q", got)
	}
	if got := gjson.GetBytes(out, "steps.0.rule").String(); got != "or-right" {
		t.Fatalf("steps.0.rule = %q", got)
	}
	if got := gjson.GetBytes(out, "steps.0.to.0").String(); got != "⊢ A, B" {
		t.Fatalf("steps.0.to.0 = %q", got)
	}
}

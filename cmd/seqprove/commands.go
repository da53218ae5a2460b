package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"seqprove/parser"
	"seqprove/printer"
	"seqprove/prover"
)

func readInput(path string) ([]byte, error) {
	if path == "-" || path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// boundedContext builds a context.Context that is cancelled after timeout,
// the caller-side bound spec.md §5/§7 requires since the core imposes none
// internally.
func boundedContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// ProveCommand runs prover.ProveSequent on a formula or sequent read from
// a file (or stdin).
type ProveCommand struct {
	log hclog.Logger
}

func (c *ProveCommand) Synopsis() string { return "Prove a formula or sequent" }

func (c *ProveCommand) Help() string {
	return "Usage: seqprove prove [-timeout=30s] [-json] <file|->\n\n" +
		"Reads a JSON-encoded sequent ({\"left\": [...], \"right\": [...]}) or,\n" +
		"failing that, a single bare tagged formula (e.g. {\"pred\": \"P\"}) taken\n" +
		"as the goal of an empty-left sequent, and reports provable/not provable."
}

func (c *ProveCommand) Run(args []string) int {
	fs := flag.NewFlagSet("prove", flag.ContinueOnError)
	timeout := fs.Duration("timeout", 30*time.Second, "wall-clock bound on the search")
	jsonOut := fs.Bool("json", false, "emit a JSON trace instead of text")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	data, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	seq, err := parser.ParseSequent(data)
	if err != nil {
		if f, ferr := parser.ParseFormula(data); ferr == nil {
			seq, err = wrapGoal(f), nil
		} else {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	ctx, cancel := boundedContext(*timeout)
	defer cancel()

	c.log.Debug("proving", "sequent", printer.Sequent(seq))
	provable, err := prover.ProveSequent(ctx, seq, c.log)
	verdict := "not provable within bound"
	if err == nil && provable {
		verdict = "provable"
	} else if err != nil {
		verdict = "unknown (" + err.Error() + ")"
	}

	trace := printer.Trace{Verdict: verdict}
	if *jsonOut {
		out, err := printer.RenderJSON(trace)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(string(out))
	} else {
		fmt.Print(printer.RenderText(trace))
	}
	return 0
}

// DisproveCommand runs prover.ProveOrDisprove.
type DisproveCommand struct {
	log hclog.Logger
}

func (c *DisproveCommand) Synopsis() string { return "Prove, disprove, or give up on a formula" }

func (c *DisproveCommand) Help() string {
	return "Usage: seqprove disprove [-timeout=30s] <file|->\n\n" +
		"Races a formula against its negation and reports true/false/unknown."
}

func (c *DisproveCommand) Run(args []string) int {
	fs := flag.NewFlagSet("disprove", flag.ContinueOnError)
	timeout := fs.Duration("timeout", 30*time.Second, "wall-clock bound on the search")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	data, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	formula, err := parser.ParseFormula(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := boundedContext(*timeout)
	defer cancel()

	verdict, err := prover.ProveOrDisprove(ctx, formula, c.log)
	if err != nil {
		fmt.Println(prover.Unknown.String())
		return 0
	}
	fmt.Println(verdict.String())
	return 0
}

// ExplainCommand asks the optional LLM collaborator to narrate a
// previously rendered trace.
type ExplainCommand struct {
	log hclog.Logger
}

func (c *ExplainCommand) Synopsis() string { return "Explain a rendered proof trace via an LLM" }

func (c *ExplainCommand) Help() string {
	return "Usage: seqprove explain <file|->\n\n" +
		"Reads a rendered trace (as produced by 'seqprove prove -json') and\n" +
		"asks the configured LLM endpoint for a plain-English explanation."
}

func (c *ExplainCommand) Run(args []string) int {
	fs := flag.NewFlagSet("explain", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	data, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	client := newLLMClient()
	explanation, err := client.Explain(context.Background(), string(data))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(explanation)
	return 0
}

// Command seqprove is the batch CLI driver for the sequent prover. It is
// an external collaborator (spec.md §1: "any interactive REPL or batch CLI"
// is out of the core's scope) built the way hashicorp-nomad's command
// package structures its CLI: one cli.Command per subcommand, registered
// with github.com/hashicorp/cli, logging through go-hclog.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/cli"

	"seqprove/internal/logging"
)

func main() {
	log := logging.New("seqprove", os.Getenv("SEQPROVE_LOG_LEVEL"))

	app := cli.NewCLI("seqprove", "0.1.0")
	app.Args = os.Args[1:]
	app.Commands = map[string]cli.CommandFactory{
		"prove":    func() (cli.Command, error) { return &ProveCommand{log: log}, nil },
		"disprove": func() (cli.Command, error) { return &DisproveCommand{log: log}, nil },
		"explain":  func() (cli.Command, error) { return &ExplainCommand{log: log}, nil },
	}

	exitCode, err := app.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode)
}

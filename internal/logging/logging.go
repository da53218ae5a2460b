// Package logging provides the structured logger used across the CLI and
// the proof-search driver. The teacher repo logs with bare fmt.Println;
// this module carries the ambient logging stack from hashicorp-nomad's
// command package instead, since a complete CLI needs leveled, named
// loggers rather than unconditional stdout writes.
package logging

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// New returns a named hclog.Logger writing to stderr at the given level
// ("trace", "debug", "info", "warn", "error"; unrecognized values fall
// back to "info").
func New(name string, level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		Output:     os.Stderr,
		JSONFormat: false,
	})
}

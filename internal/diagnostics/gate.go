// Package diagnostics verifies required external tools before a run
// starts.
package diagnostics

import (
	"os/exec"

	"github.com/sabhz/scribe/internal/transcribe"
)

// Gate checks environment prerequisites. It runs before any path or device
// resolution so a broken setup fails fast with one clear message.
type Gate struct {
	lookPath func(file string) (string, error)
	run      func(path string, args ...string) error
}

// NewGate builds a gate using real OS dependencies.
func NewGate() *Gate {
	return &Gate{
		lookPath: exec.LookPath,
		run: func(path string, args ...string) error {
			return exec.Command(path, args...).Run()
		},
	}
}

// EnsureFFmpeg verifies ffmpeg is installed and runnable via a trivial
// -version call. Both engines rely on ffmpeg to decode media, so failing
// here avoids a model load that would die with a confusing engine error.
func (g *Gate) EnsureFFmpeg() error {
	missing := &transcribe.DependencyMissingError{
		Tool:   "ffmpeg",
		Remedy: "Install it and ensure it's on $PATH.",
	}

	path, err := g.lookPath("ffmpeg")
	if err != nil {
		return missing
	}
	if err := g.run(path, "-version"); err != nil {
		return missing
	}
	return nil
}

// NewGateForTests creates a gate with injectable dependencies.
func NewGateForTests(
	lookPath func(file string) (string, error),
	run func(path string, args ...string) error,
) *Gate {
	return &Gate{lookPath: lookPath, run: run}
}

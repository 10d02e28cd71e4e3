// Package transcribe converts media files to text through one of two
// interchangeable speech-to-text engines.
//
// Supported backends:
//   - whisper: openai-whisper CLI (default)
//   - faster: faster-whisper via the whisper-ctranslate2 CLI
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Request describes one transcription job. InputPath must point at an
// existing file; callers verify existence before building a Request.
// An empty Language means the engine auto-detects; it is never replaced
// with a default.
type Request struct {
	InputPath string
	Model     string
	Language  string
	Device    Device
	Backend   string
}

// Segment is one span of transcribed text as produced by an engine.
// Segment boundaries never surface past this package.
type Segment struct {
	Text string
}

// Engine is one speech-to-text implementation invoked as an external
// process.
type Engine interface {
	// Check verifies the engine is installed and runnable.
	Check() error
	// Transcribe runs the engine against the request's media file on the
	// given device and returns transcript segments in order. The call
	// blocks for the whole file.
	Transcribe(ctx context.Context, req Request, device Device) ([]Segment, error)
}

// Backends lists the supported engine identifiers. The first is the
// default.
func Backends() []string {
	return []string{"whisper", "faster"}
}

// Dispatcher resolves a device and an engine for each request and
// normalizes engine output and failures into one uniform contract.
type Dispatcher struct {
	engines map[string]Engine
	probe   func() bool
}

// NewDispatcher builds a dispatcher over the real engines.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		engines: map[string]Engine{
			"whisper": newWhisperEngine(),
			"faster":  newFasterEngine(),
		},
		probe: cudaAvailable,
	}
}

// Run transcribes one file and returns the flattened transcript text.
// Every failure is either a *DependencyMissingError or a *TranscribeError;
// raw engine errors never escape.
func (d *Dispatcher) Run(ctx context.Context, req Request) (string, error) {
	device := resolveDevice(req.Device, d.probe)

	engine, ok := d.engines[req.Backend]
	if !ok {
		return "", &TranscribeError{
			Backend: req.Backend,
			Err:     fmt.Errorf("unknown backend (supported: %s)", strings.Join(Backends(), ", ")),
		}
	}

	if err := engine.Check(); err != nil {
		var dep *DependencyMissingError
		if errors.As(err, &dep) {
			return "", err
		}
		return "", &TranscribeError{Backend: req.Backend, Err: err}
	}

	segments, err := engine.Transcribe(ctx, req, device)
	if err != nil {
		return "", &TranscribeError{Backend: req.Backend, Err: err}
	}

	return flatten(segments), nil
}

// flatten joins segments in original order without separators and trims the
// result once. Engines keep inter-segment spacing inside the segment text
// itself.
func flatten(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return strings.TrimSpace(b.String())
}

// NewDispatcherForTests constructs a dispatcher with injectable engines and
// accelerator probe.
func NewDispatcherForTests(engines map[string]Engine, probe func() bool) *Dispatcher {
	return &Dispatcher{engines: engines, probe: probe}
}

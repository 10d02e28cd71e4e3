package transcribe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// whisperEngine invokes the openai-whisper CLI as an external process.
type whisperEngine struct {
	lookPath  func(file string) (string, error)
	runner    commandRunner
	mkdirTemp func(dir, pattern string) (string, error)
	removeAll func(path string) error
	readFile  func(name string) ([]byte, error)
}

// newWhisperEngine creates a whisper engine using real OS dependencies.
func newWhisperEngine() *whisperEngine {
	return &whisperEngine{
		lookPath:  exec.LookPath,
		runner:    &execRunner{},
		mkdirTemp: os.MkdirTemp,
		removeAll: os.RemoveAll,
		readFile:  os.ReadFile,
	}
}

// Check verifies the whisper CLI is on PATH.
func (e *whisperEngine) Check() error {
	if _, err := e.lookPath("whisper"); err != nil {
		return &DependencyMissingError{
			Tool:   "openai-whisper",
			Remedy: "Try: pip install -U openai-whisper",
		}
	}
	return nil
}

// Transcribe runs openai-whisper against one media file and returns its
// transcript segments. The engine writes its output into a scratch
// directory that is removed before returning.
func (e *whisperEngine) Transcribe(ctx context.Context, req Request, device Device) ([]Segment, error) {
	outDir, err := e.mkdirTemp("", "scribe-whisper-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer e.removeAll(outDir)

	result, err := e.runner.Run(ctx, "whisper", whisperArgs(req, device, outDir)...)
	if err != nil {
		return nil, runFailure("whisper", result, err)
	}

	return readSegments(e.readFile, outDir, req.InputPath)
}

// whisperArgs builds the CLI invocation for one run. Language is passed
// through only when the user set one, so the engine's own auto-detection
// applies otherwise. CPU runs disable fp16, which openai-whisper supports
// only on GPU.
func whisperArgs(req Request, device Device, outDir string) []string {
	args := []string{
		req.InputPath,
		"--model", req.Model,
		"--device", string(device),
		"--output_format", "json",
		"--output_dir", outDir,
		"--verbose", "False",
		"--condition_on_previous_text", "False",
	}
	if device == DeviceCPU {
		args = append(args, "--fp16", "False")
	}
	if req.Language != "" {
		args = append(args, "--language", req.Language)
	}
	return args
}

// newWhisperEngineForTests creates a whisper engine with injectable
// dependencies.
func newWhisperEngineForTests(
	lookPath func(file string) (string, error),
	runner commandRunner,
	mkdirTemp func(dir, pattern string) (string, error),
	removeAll func(path string) error,
	readFile func(name string) ([]byte, error),
) *whisperEngine {
	return &whisperEngine{
		lookPath:  lookPath,
		runner:    runner,
		mkdirTemp: mkdirTemp,
		removeAll: removeAll,
		readFile:  readFile,
	}
}

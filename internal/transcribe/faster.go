package transcribe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// fasterEngine invokes faster-whisper through the whisper-ctranslate2 CLI.
type fasterEngine struct {
	lookPath  func(file string) (string, error)
	runner    commandRunner
	mkdirTemp func(dir, pattern string) (string, error)
	removeAll func(path string) error
	readFile  func(name string) ([]byte, error)
}

// newFasterEngine creates a faster-whisper engine using real OS
// dependencies.
func newFasterEngine() *fasterEngine {
	return &fasterEngine{
		lookPath:  exec.LookPath,
		runner:    &execRunner{},
		mkdirTemp: os.MkdirTemp,
		removeAll: os.RemoveAll,
		readFile:  os.ReadFile,
	}
}

// Check verifies the whisper-ctranslate2 CLI is on PATH.
func (e *fasterEngine) Check() error {
	if _, err := e.lookPath("whisper-ctranslate2"); err != nil {
		return &DependencyMissingError{
			Tool:   "whisper-ctranslate2",
			Remedy: "Try: pip install whisper-ctranslate2",
		}
	}
	return nil
}

// Transcribe runs faster-whisper against one media file and returns its
// transcript segments.
func (e *fasterEngine) Transcribe(ctx context.Context, req Request, device Device) ([]Segment, error) {
	outDir, err := e.mkdirTemp("", "scribe-faster-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer e.removeAll(outDir)

	result, err := e.runner.Run(ctx, "whisper-ctranslate2", fasterArgs(req, device, outDir)...)
	if err != nil {
		return nil, runFailure("whisper-ctranslate2", result, err)
	}

	return readSegments(e.readFile, outDir, req.InputPath)
}

// fasterArgs builds the CLI invocation for one run. The compute type
// follows the device: float16 on CUDA, int8 quantization on CPU.
func fasterArgs(req Request, device Device, outDir string) []string {
	computeType := "int8"
	if device == DeviceCUDA {
		computeType = "float16"
	}

	args := []string{
		req.InputPath,
		"--model", req.Model,
		"--device", string(device),
		"--compute_type", computeType,
		"--output_format", "json",
		"--output_dir", outDir,
		"--vad_filter", "True",
		"--condition_on_previous_text", "False",
	}
	if req.Language != "" {
		args = append(args, "--language", req.Language)
	}
	return args
}

// newFasterEngineForTests creates a faster-whisper engine with injectable
// dependencies.
func newFasterEngineForTests(
	lookPath func(file string) (string, error),
	runner commandRunner,
	mkdirTemp func(dir, pattern string) (string, error),
	removeAll func(path string) error,
	readFile func(name string) ([]byte, error),
) *fasterEngine {
	return &fasterEngine{
		lookPath:  lookPath,
		runner:    runner,
		mkdirTemp: mkdirTemp,
		removeAll: removeAll,
		readFile:  readFile,
	}
}

package transcribe

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestWhisperCheck_MissingBinary(t *testing.T) {
	engine := newWhisperEngineForTests(
		func(string) (string, error) { return "", errors.New("not found") },
		nil, nil, nil, nil,
	)

	err := engine.Check()
	if err == nil {
		t.Fatal("Check should fail when whisper is not on PATH")
	}

	var dep *DependencyMissingError
	if !errors.As(err, &dep) {
		t.Fatalf("expected *DependencyMissingError, got %T", err)
	}
	if !strings.Contains(err.Error(), "pip install -U openai-whisper") {
		t.Errorf("remedy should name the openai-whisper install, got %q", err.Error())
	}
}

func TestWhisperCheck_BinaryPresent(t *testing.T) {
	engine := newWhisperEngineForTests(
		func(name string) (string, error) { return "/usr/local/bin/" + name, nil },
		nil, nil, nil, nil,
	)

	if err := engine.Check(); err != nil {
		t.Fatalf("Check should pass when whisper is on PATH: %v", err)
	}
}

func TestWhisperArgs_CPUDisablesFP16(t *testing.T) {
	req := Request{InputPath: "media/clip.mp4", Model: "small"}

	args := whisperArgs(req, DeviceCPU, "/tmp/out")
	if !hasFlagValue(args, "--device", "cpu") {
		t.Errorf("expected --device cpu, got %v", args)
	}
	if !hasFlagValue(args, "--fp16", "False") {
		t.Errorf("expected --fp16 False on cpu, got %v", args)
	}
}

func TestWhisperArgs_CUDAKeepsFP16(t *testing.T) {
	req := Request{InputPath: "media/clip.mp4", Model: "small"}

	args := whisperArgs(req, DeviceCUDA, "/tmp/out")
	if !hasFlagValue(args, "--device", "cuda") {
		t.Errorf("expected --device cuda, got %v", args)
	}
	for _, arg := range args {
		if arg == "--fp16" {
			t.Errorf("--fp16 should not be set on cuda, got %v", args)
		}
	}
}

func TestWhisperArgs_LanguageOmittedWhenUnset(t *testing.T) {
	req := Request{InputPath: "clip.mp4", Model: "small"}

	for _, arg := range whisperArgs(req, DeviceCPU, "/tmp/out") {
		if arg == "--language" {
			t.Fatal("--language must be omitted so the engine auto-detects")
		}
	}

	req.Language = "en"
	if !hasFlagValue(whisperArgs(req, DeviceCPU, "/tmp/out"), "--language", "en") {
		t.Error("--language en should be passed through when set")
	}
}

func TestWhisperTranscribe_ReadsEngineJSON(t *testing.T) {
	outDir := t.TempDir()
	runner := &fakeRunner{}
	engine := newWhisperEngineForTests(
		func(name string) (string, error) { return "/usr/local/bin/" + name, nil },
		runner,
		func(dir, pattern string) (string, error) { return outDir, nil },
		func(string) error { return nil },
		func(name string) ([]byte, error) {
			if name != filepath.Join(outDir, "clip.json") {
				t.Fatalf("unexpected read: %s", name)
			}
			return []byte(`{"text": "hi", "segments": [{"text": "hi"}]}`), nil
		},
	)

	segments, err := engine.Transcribe(context.Background(), Request{InputPath: "media/clip.mp4", Model: "small"}, DeviceCPU)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if len(segments) != 1 || segments[0].Text != "hi" {
		t.Errorf("unexpected segments: %+v", segments)
	}
	if runner.gotName != "whisper" {
		t.Errorf("expected whisper invocation, got %s", runner.gotName)
	}
	if !hasFlagValue(runner.gotArgs, "--output_dir", outDir) {
		t.Errorf("engine should write into the scratch directory, got %v", runner.gotArgs)
	}
}

func TestWhisperTranscribe_EngineExitFailure(t *testing.T) {
	runner := &fakeRunner{
		result: commandResult{Stderr: "RuntimeError: bad file", ExitCode: 1},
		err:    errors.New("exit status 1"),
	}
	engine := newWhisperEngineForTests(
		func(name string) (string, error) { return "/usr/local/bin/" + name, nil },
		runner,
		func(dir, pattern string) (string, error) { return t.TempDir(), nil },
		func(string) error { return nil },
		nil,
	)

	_, err := engine.Transcribe(context.Background(), Request{InputPath: "clip.mp4", Model: "small"}, DeviceCPU)
	if err == nil {
		t.Fatal("Transcribe should fail when the engine exits non-zero")
	}
	if !strings.Contains(err.Error(), "bad file") {
		t.Errorf("expected engine stderr in error, got %q", err.Error())
	}
}

// hasFlagValue reports whether args contains flag immediately followed by
// value.
func hasFlagValue(args []string, flag, value string) bool {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

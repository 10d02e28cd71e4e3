package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// commandResult is an internal process execution response.
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner abstracts process execution for testability.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (commandResult, error)
}

// execRunner executes commands via os/exec.
type execRunner struct{}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := commandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}

	return result, nil
}

// engineOutput is the JSON document both engine CLIs write next to the
// transcript when invoked with --output_format json.
type engineOutput struct {
	Text     string `json:"text"`
	Segments []struct {
		Text string `json:"text"`
	} `json:"segments"`
}

// readSegments loads the <input stem>.json file an engine wrote into outDir
// and returns its segments in original order. Engines that produced no
// segment list fall back to the flat text field as a single segment.
func readSegments(readFile func(name string) ([]byte, error), outDir, inputPath string) ([]Segment, error) {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	jsonPath := filepath.Join(outDir, stem+".json")

	data, err := readFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("engine completed but wrote no transcript: %w", err)
	}

	var out engineOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse engine output %s: %w", jsonPath, err)
	}

	if len(out.Segments) == 0 {
		return []Segment{{Text: out.Text}}, nil
	}

	segments := make([]Segment, 0, len(out.Segments))
	for _, s := range out.Segments {
		segments = append(segments, Segment{Text: s.Text})
	}
	return segments, nil
}

// runFailure condenses a failed engine invocation into a single line,
// preferring the engine's own final stderr line over the exec error.
func runFailure(name string, result commandResult, err error) error {
	if line := lastLine(result.Stderr); line != "" {
		return fmt.Errorf("%s exited with status %d: %s", name, result.ExitCode, line)
	}
	return fmt.Errorf("%s: %w", name, err)
}

func lastLine(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

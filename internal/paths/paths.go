// Package paths implements the input and output location conventions for
// transcription runs.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NotFoundError reports that a resolved input file does not exist. The
// message enumerates every location that was considered.
type NotFoundError struct {
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return "input not found, tried: " + strings.Join(e.Candidates, ", ")
}

// ResolveInput maps what the user typed to the file a run should read.
//
// An existing file is used as given. A value with a directory component is
// also used as given, leaving the existence check to the caller so the
// error can name the exact path. A bare filename is looked up under inDir.
func ResolveInput(userValue, inDir string) string {
	if isFile(userValue) {
		return userValue
	}
	if filepath.Base(userValue) != userValue {
		return userValue
	}
	return filepath.Join(inDir, userValue)
}

// InputCandidates lists every location ResolveInput may have produced for
// userValue, in the order they were considered.
func InputCandidates(userValue, inDir string) []string {
	candidates := []string{userValue}
	if filepath.Base(userValue) == userValue {
		candidates = append(candidates, filepath.Join(inDir, userValue))
	}
	return candidates
}

// ResolveOutput decides where the transcript for inputPath goes and makes
// sure the target directory exists.
//
// An outputValue with a directory component is used as-is. A bare filename
// goes under outDir. An empty outputValue derives "<input stem>.txt" under
// outDir.
func ResolveOutput(inputPath, outputValue, outDir string) (string, error) {
	if outputValue != "" {
		if filepath.Base(outputValue) != outputValue {
			dir := filepath.Dir(outputValue)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
			}
			return outputValue, nil
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory %s: %w", outDir, err)
		}
		return filepath.Join(outDir, outputValue), nil
	}

	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}
	return filepath.Join(outDir, stem+".txt"), nil
}

// WriteTranscript stores text at path as UTF-8, ensuring a non-empty
// transcript ends with exactly one trailing newline. An empty transcript
// produces an empty file.
func WriteTranscript(path, text string) error {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}

// IsFile reports whether path refers to an existing regular file.
func IsFile(path string) bool {
	return isFile(path)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

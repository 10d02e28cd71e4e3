package transcribe

import "fmt"

// DependencyMissingError reports a required external tool that is not
// installed or not runnable. Remedy tells the user how to fix it.
type DependencyMissingError struct {
	Tool   string
	Remedy string
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("%s not found. %s", e.Tool, e.Remedy)
}

// TranscribeError reports a failure inside a backend engine. The backend
// name is always part of the message so failures stay attributable to the
// engine that produced them.
type TranscribeError struct {
	Backend string
	Err     error
}

func (e *TranscribeError) Error() string {
	return fmt.Sprintf("transcription failed (%s): %v", e.Backend, e.Err)
}

func (e *TranscribeError) Unwrap() error {
	return e.Err
}

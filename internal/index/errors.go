package index

import (
	"errors"
	"fmt"
)

var (
	// ErrSummarizerUnavailable covers transport failures and non-success
	// responses from the summarizer.
	ErrSummarizerUnavailable = errors.New("summarizer unavailable")
	// ErrSummarizerMalformed means the summarizer answered but the result
	// could not be parsed into the expected fields.
	ErrSummarizerMalformed = errors.New("summarizer returned malformed output")
	// ErrNotText is returned for files that are not valid UTF-8 text.
	ErrNotText = errors.New("file is not UTF-8 text")
	// ErrNoRelevantFiles means the model picked no files for a request.
	ErrNoRelevantFiles = errors.New("no relevant files identified")
)

// ReadError reports a file that could not be read or vanished mid-scan.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

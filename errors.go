package webm

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Errors returned by Segment, Cluster, Track,
// CuePoint, Cues, SeekHead and SegmentInfo wrap one of these via
// fmt.Errorf("%w: ...", ErrXxx), so callers can discriminate failure
// kinds with errors.Is. Two exceptions: the exported element writers
// (WriteUintElement and its siblings) return the Writer's own error
// unwrapped, leaving the wrapping to their callers, and the internal
// size checks (an element or reserved region whose written byte count
// disagrees with its prediction) return a plain error that wraps none
// of these.
var (
	// ErrInvalidArgument marks a precondition violated at an API
	// boundary: out-of-range stereo mode, track number, or relative
	// timecode.
	ErrInvalidArgument = errors.New("webm: invalid argument")

	// ErrWriterFailure wraps an error returned by the caller-supplied
	// Writer.
	ErrWriterFailure = errors.New("webm: writer failure")

	// ErrStateError marks an operation invoked in the wrong lifecycle
	// state: AddFrame after Finalize, Finalize called twice, and
	// similar.
	ErrStateError = errors.New("webm: invalid state")
)

func wrapWriterErr(err error) error {
	return fmt.Errorf("%w: %w", ErrWriterFailure, err)
}

package rag

import "errors"

// Failure classes surfaced across the service boundary. Provider-specific
// errors are translated into one of these before leaving the package, so
// callers classify with errors.Is instead of inspecting SDK types.
var (
	// ErrNotReady reports a question asked before any video was processed.
	ErrNotReady = errors.New("no video has been processed yet")

	// ErrEmptyTranscript reports an ingestion whose transcript produced no passages.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrUpstream reports a dependent service failure, from transcription,
	// embedding or generation. The provider message is kept in the wrap.
	ErrUpstream = errors.New("upstream service failure")
)

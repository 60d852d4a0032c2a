package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNoSourcesEnabled indicates every station source is disabled;
	// the catalog is empty by configuration, not by failure.
	ErrNoSourcesEnabled = errors.New("no station sources enabled")

	// ErrStreamUnreachable indicates the stream endpoint could not be
	// reached or did not produce playable audio.
	ErrStreamUnreachable = errors.New("stream is unreachable")

	// ErrPlaybackRejected indicates the player refused to start the stream.
	ErrPlaybackRejected = errors.New("playback was rejected")
)

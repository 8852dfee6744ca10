package adaptor

import (
	"errors"
	"fmt"
)

// Common adaptor errors that can be checked with errors.Is.
var (
	// ErrNoMatch is returned when a search yields no result.
	ErrNoMatch = errors.New("adaptor: no matching track")

	// ErrMalformedResponse is returned when the service answers with a body
	// that lacks a field the adaptor depends on.
	ErrMalformedResponse = errors.New("adaptor: malformed response")

	// ErrTransport is returned for network failures, non-2xx answers and timeouts.
	ErrTransport = errors.New("adaptor: transport failure")

	// ErrMissingIdentifier is returned when a track lacks the adaptor's ChannelIDs entry
	// and the adaptor is configured to reject such playlists.
	ErrMissingIdentifier = errors.New("adaptor: missing track identifier")

	// ErrUnknownAdaptor is returned when no adaptor with the requested name is registered.
	ErrUnknownAdaptor = errors.New("adaptor: unknown adaptor")

	// ErrNoRoute is returned when no adaptor's determinator matches a reference.
	ErrNoRoute = errors.New("adaptor: no adaptor for reference")
)

// AdaptorError wraps an error with the adaptor and operation that produced it.
// The underlying sentinel stays reachable through errors.Is and errors.As.
type AdaptorError struct {
	// Adaptor is the name of the adaptor that returned the error (e.g., "bugs").
	Adaptor string

	// Operation is the failing operation (e.g., "findSongId", "getPlaylistContent").
	Operation string

	// Ref identifies the input (query, share id, playlist name) if applicable.
	Ref string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *AdaptorError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s: %s %q: %v", e.Adaptor, e.Operation, e.Ref, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Adaptor, e.Operation, e.Err)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *AdaptorError) Unwrap() error {
	return e.Err
}

// NewNoMatchError creates an AdaptorError for an empty search result.
func NewNoMatchError(adaptor, operation, ref string) error {
	return &AdaptorError{
		Adaptor:   adaptor,
		Operation: operation,
		Ref:       ref,
		Err:       ErrNoMatch,
	}
}

// NewMalformedError creates an AdaptorError for a response missing the named field.
func NewMalformedError(adaptor, operation, ref, field string) error {
	return &AdaptorError{
		Adaptor:   adaptor,
		Operation: operation,
		Ref:       ref,
		Err:       fmt.Errorf("%w: %s", ErrMalformedResponse, field),
	}
}

// NewTransportError creates an AdaptorError for a failed round trip.
func NewTransportError(adaptor, operation, ref string, cause error) error {
	return &AdaptorError{
		Adaptor:   adaptor,
		Operation: operation,
		Ref:       ref,
		Err:       fmt.Errorf("%w: %w", ErrTransport, cause),
	}
}

// NewMissingIdentifierError creates an AdaptorError for a track without an identifier.
func NewMissingIdentifierError(adaptor, playlist string, index int) error {
	return &AdaptorError{
		Adaptor:   adaptor,
		Operation: "generateURL",
		Ref:       playlist,
		Err:       fmt.Errorf("%w: tracks[%d]", ErrMissingIdentifier, index),
	}
}

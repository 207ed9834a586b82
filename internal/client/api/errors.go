package api

import "errors"

// Sentinel errors returned by Client implementations and by the layers built
// on top of them. Callers match them with errors.Is.
var (
	// ErrUnauthorized means there is no usable session token, or the server
	// rejected the one we sent.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the addressed entity does not exist server-side.
	ErrNotFound = errors.New("not found")

	// ErrValidation means a request was rejected locally before any network
	// call: empty content, missing required id.
	ErrValidation = errors.New("validation error")

	// ErrConflict means an identical mutation is already in flight and the
	// new attempt was ignored.
	ErrConflict = errors.New("mutation already in flight")

	// ErrMalformedResponse means the server reported success but the payload
	// did not match any recognized shape.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrRemote wraps any other transport or server failure; the server
	// message, when present, is carried in the wrapping error.
	ErrRemote = errors.New("remote failure")
)

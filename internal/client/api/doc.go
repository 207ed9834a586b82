// Package api contains the transport layer of the Nearby client.
//
// The package provides:
//  1. A transport-agnostic contract (the Client interface) covering every
//     backend operation the client performs: login, current-user and profile
//     lookup, the post feed, per-user posts, comment trees, comment creation
//     and contact management.
//  2. A concrete HTTP/JSON implementation (HTTPClient) that attaches the
//     session token from a TokenSource as a Bearer header, tags requests
//     with an X-Request-Id, and normalizes the backend's inconsistent
//     response envelopes into the models package types.
//
// # Error Handling
//
// Failures are exposed as sentinel errors matched with errors.Is:
// ErrUnauthorized, ErrNotFound, ErrValidation, ErrConflict,
// ErrMalformedResponse and ErrRemote. A missing token short-circuits to
// ErrUnauthorized without a network call; a success status whose payload has
// no recognizable shape yields ErrMalformedResponse so callers can fall back
// to a refetch.
package api

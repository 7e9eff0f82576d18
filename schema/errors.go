package schema

import "errors"

// === Compilation errors ===
var (
	// ErrInvalidDocument is returned when a schema document cannot be decoded.
	ErrInvalidDocument = errors.New("schema: invalid document")

	// ErrInvalidRegex is returned when a pattern or patternProperties key does not compile.
	ErrInvalidRegex = errors.New("schema: invalid regular expression")

	// ErrNoLoaderRegistered is returned when no loader is registered for a $ref's URL scheme.
	ErrNoLoaderRegistered = errors.New("schema: no loader registered for scheme")

	// ErrRefNotFound is returned when a $ref's JSON pointer does not resolve within its document.
	ErrRefNotFound = errors.New("schema: reference not found")

	// ErrExternalFetch is returned when an external $ref document cannot be fetched.
	ErrExternalFetch = errors.New("schema: external reference fetch failed")
)

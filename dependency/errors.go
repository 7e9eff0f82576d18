package dependency

import "errors"

var (
	// ErrUnknownLocation is returned when a dependency's location is not one of remote/local/project.
	ErrUnknownLocation = errors.New("dependency: unknown location")

	// ErrMalformedSpec is returned when a short-form spec string cannot be parsed.
	ErrMalformedSpec = errors.New("dependency: malformed spec")

	// ErrInvalidVersion is returned when a spec's version token fails the semver format.
	ErrInvalidVersion = errors.New("dependency: invalid version")

	// ErrEmptyScope is returned when a long-form dependency declares no scope.
	ErrEmptyScope = errors.New("dependency: scope must not be empty")

	// ErrVersionConflict is returned when two non-equal dependencies share group:name with differing versions.
	ErrVersionConflict = errors.New("dependency: version conflict")
)

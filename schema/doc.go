// Package schema implements a JSON-Schema-like validator used to check
// both the project descriptor and task-specific configuration sections.
//
// A Schema is compiled once from a JSON document and then reused to
// validate any number of values. Validation never mutates the schema;
// each call returns a fresh *Result carrying the outcome and, on
// failure, a human-readable message citing the failing constraint and
// a JSON-pointer path into the instance.
package schema

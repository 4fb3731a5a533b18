// Package errors provides unified error handling for fixturekit.
// It implements a structured error type with machine-readable codes,
// HTTP status mapping, and a JSON response envelope.
package errors

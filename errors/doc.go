// Package errors provides the structured error type used by the dikit
// container. Every failure carries a machine-readable code, a message naming
// the offending type, optional details and an optional cause.
package errors

// Package errors provides the structured error type shared by every lego
// package. Errors carry a machine-readable code, a human-readable message,
// optional details and an underlying cause, and map onto CLI exit codes.
package errors

// Package apperrors defines structured application error types and exit
// codes, allowing a clear distinction between error classes (configuration,
// invalid input, calculation) while carrying the underlying cause.
//
// All wrapping types implement Unwrap so errors.Is and errors.As see through
// them.
package apperrors

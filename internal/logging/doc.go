// Package logging provides a unified logging interface for the Kendall
// benchmark. It abstracts the underlying logging implementation, allowing
// consistent structured logging across components while supporting both a
// zerolog backend and the standard library logger.
package logging

// Package format renders durations, byte counts, speedups and progress for
// terminal output. Functions here perform no I/O.
package format

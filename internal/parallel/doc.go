// Package parallel provides the fixed-size worker pool used to fan out
// independent index-addressed tasks and join their results.
package parallel

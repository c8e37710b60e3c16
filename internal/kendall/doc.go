// Package kendall computes Kendall's tau-a rank correlation between two
// equal-length samples by brute-force pairwise comparison.
//
// Every unordered pair {i, j} with i < j is classified by the sign of
// (x[i]-x[j])*(y[i]-y[j]): positive is concordant, negative is discordant,
// zero is a tie and counts in neither bucket. The coefficient is
//
//	tau = (C - D) / (n(n-1)/2)
//
// with no tie correction. Serial runs the nested loop directly; Parallel
// dispatches one task per index i to a fresh fixed-size worker pool and sums
// the per-index counts after all tasks have joined.
package kendall

package kendall

// PartialCount holds the concordant and discordant pairs formed between one
// index i and every later index j > i.
type PartialCount struct {
	Concordant int64
	Discordant int64
}

// Add returns the component-wise sum of two partial counts.
func (p PartialCount) Add(q PartialCount) PartialCount {
	return PartialCount{
		Concordant: p.Concordant + q.Concordant,
		Discordant: p.Discordant + q.Discordant,
	}
}

// CountPairs classifies the pairs {i, j} for every j in (i, len(x)).
//
// The test is the literal sign of the product of differences, so values that
// differ only near machine epsilon may land in either bucket. i must be a
// valid index and y must be at least as long as x.
func CountPairs(i int, x, y []float64) PartialCount {
	var pc PartialCount
	xi, yi := x[i], y[i]
	for j := i + 1; j < len(x); j++ {
		p := (xi - x[j]) * (yi - y[j])
		if p > 0 {
			pc.Concordant++
		} else if p < 0 {
			pc.Discordant++
		}
	}
	return pc
}

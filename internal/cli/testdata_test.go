package cli

import (
	"time"

	"github.com/agbru/kendallbench/internal/kendall"
	"github.com/agbru/kendallbench/internal/orchestration"
)

// testSeries returns a small sweep with a serial baseline and two parallel
// configurations.
func testSeries() orchestration.Series {
	res := kendall.Result{Tau: 0.2, Concordant: 6, Discordant: 4, N: 5}
	return orchestration.Series{
		Size: 5,
		Seed: 42,
		Serial: orchestration.Sample{
			Label: "serial", Workers: 1, Result: res,
			Durations: []time.Duration{100 * time.Millisecond},
			Mean:      100 * time.Millisecond,
		},
		Parallel: []orchestration.Sample{
			{
				Label: "parallel(2)", Workers: 2, Result: res,
				Durations: []time.Duration{50 * time.Millisecond},
				Mean:      50 * time.Millisecond,
			},
			{
				Label: "parallel(3)", Workers: 3, Result: res,
				Durations: []time.Duration{200 * time.Millisecond, 300 * time.Millisecond},
				Mean:      250 * time.Millisecond, StdDev: 70 * time.Millisecond,
			},
		},
	}
}

package kendall

import (
	"errors"
	"math"
	"testing"
)

type scenario struct {
	name           string
	x, y           []float64
	wantConcordant int64
	wantDiscordant int64
	wantTau        float64
}

func scenarios() []scenario {
	return []scenario{
		{
			name:           "all concordant",
			x:              []float64{1, 2, 3, 4},
			y:              []float64{1, 2, 3, 4},
			wantConcordant: 6,
			wantTau:        1.0,
		},
		{
			name:           "all discordant",
			x:              []float64{1, 2, 3, 4},
			y:              []float64{4, 3, 2, 1},
			wantDiscordant: 6,
			wantTau:        -1.0,
		},
		{
			name:           "ties in both",
			x:              []float64{1, 1, 2},
			y:              []float64{1, 2, 2},
			wantConcordant: 1,
			wantTau:        1.0 / 3.0,
		},
		{
			name:    "every pair tied",
			x:       []float64{7, 7, 7},
			y:       []float64{1, 2, 3},
			wantTau: 0,
		},
		{
			name:           "mixed",
			x:              []float64{1, 2, 3, 4, 5},
			y:              []float64{3, 1, 4, 5, 2},
			wantConcordant: 6,
			wantDiscordant: 4,
			wantTau:        0.2,
		},
	}
}

func TestCountPairs(t *testing.T) {
	t.Parallel()
	x := []float64{1, 2, 3, 4}
	y := []float64{1, 3, 2, 4}

	tests := []struct {
		i    int
		want PartialCount
	}{
		{0, PartialCount{Concordant: 3}},
		{1, PartialCount{Concordant: 1, Discordant: 1}},
		{2, PartialCount{Concordant: 1}},
		{3, PartialCount{}},
	}
	for _, tt := range tests {
		if got := CountPairs(tt.i, x, y); got != tt.want {
			t.Errorf("CountPairs(%d) = %+v, want %+v", tt.i, got, tt.want)
		}
	}
}

func TestCountPairs_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	x := []float64{3, 1, 2}
	y := []float64{9, 8, 7}
	CountPairs(0, x, y)
	if x[0] != 3 || x[1] != 1 || x[2] != 2 || y[0] != 9 || y[1] != 8 || y[2] != 7 {
		t.Errorf("inputs were mutated: x=%v y=%v", x, y)
	}
}

func TestSerial_Scenarios(t *testing.T) {
	t.Parallel()
	for _, sc := range scenarios() {
		t.Run(sc.name, func(t *testing.T) {
			t.Parallel()
			res, err := Serial(sc.x, sc.y)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			checkResult(t, res, sc)
		})
	}
}

func TestParallel_Scenarios(t *testing.T) {
	t.Parallel()
	for _, sc := range scenarios() {
		for _, workers := range []int{1, 2, 3, 8} {
			res, err := Parallel(sc.x, sc.y, workers)
			if err != nil {
				t.Fatalf("%s workers=%d: unexpected error: %v", sc.name, workers, err)
			}
			checkResult(t, res, sc)
		}
	}
}

func checkResult(t *testing.T, res Result, sc scenario) {
	t.Helper()
	if res.Concordant != sc.wantConcordant {
		t.Errorf("%s: concordant = %d, want %d", sc.name, res.Concordant, sc.wantConcordant)
	}
	if res.Discordant != sc.wantDiscordant {
		t.Errorf("%s: discordant = %d, want %d", sc.name, res.Discordant, sc.wantDiscordant)
	}
	if res.Tau != sc.wantTau {
		t.Errorf("%s: tau = %v, want %v", sc.name, res.Tau, sc.wantTau)
	}
	if res.N != len(sc.x) {
		t.Errorf("%s: N = %d, want %d", sc.name, res.N, len(sc.x))
	}
}

func TestInvalidInput_LengthMismatch(t *testing.T) {
	t.Parallel()
	x := []float64{1, 2, 3}
	y := []float64{1, 2, 3, 4}

	run := map[string]func() (Result, error){
		"serial":   func() (Result, error) { return Serial(x, y) },
		"parallel": func() (Result, error) { return Parallel(x, y, 4) },
	}
	for name, fn := range run {
		res, err := fn()
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: err = %v, want ErrInvalidInput", name, err)
		}
		var inErr *InvalidInputError
		if !errors.As(err, &inErr) {
			t.Fatalf("%s: expected *InvalidInputError, got %T", name, err)
		}
		if inErr.LenX != 3 || inErr.LenY != 4 {
			t.Errorf("%s: lengths = (%d, %d), want (3, 4)", name, inErr.LenX, inErr.LenY)
		}
		if res != (Result{}) {
			t.Errorf("%s: expected zero result, got %+v", name, res)
		}
	}
}

func TestParallel_RejectsNonPositiveWorkers(t *testing.T) {
	t.Parallel()
	for _, workers := range []int{0, -3} {
		_, err := Parallel([]float64{1, 2}, []float64{2, 1}, workers)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("workers=%d: err = %v, want ErrInvalidInput", workers, err)
		}
	}
}

// TestDegenerateInput documents that fewer than two observations produce
// NaN from the 0/0 normalizer rather than an error.
func TestDegenerateInput(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 1} {
		x := make([]float64, n)
		y := make([]float64, n)
		s, err := Serial(x, y)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		p, err := Parallel(x, y, 2)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if !math.IsNaN(s.Tau) || !math.IsNaN(p.Tau) {
			t.Errorf("n=%d: expected NaN, got serial=%v parallel=%v", n, s.Tau, p.Tau)
		}
		if s.Concordant != 0 || s.Discordant != 0 || p.Concordant != 0 || p.Discordant != 0 {
			t.Errorf("n=%d: expected zero counts", n)
		}
	}
}

func TestResult_PairsAndTies(t *testing.T) {
	t.Parallel()
	res, err := Serial([]float64{1, 1, 2}, []float64{1, 2, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Pairs() != 3 {
		t.Errorf("Pairs = %d, want 3", res.Pairs())
	}
	if res.Ties() != 2 {
		t.Errorf("Ties = %d, want 2", res.Ties())
	}
}

func TestElapsedIsReported(t *testing.T) {
	t.Parallel()
	x := make([]float64, 300)
	y := make([]float64, 300)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64((i * 7) % 300)
	}
	s, err := Serial(x, y)
	if err != nil {
		t.Fatal(err)
	}
	p, err := Parallel(x, y, 2)
	if err != nil {
		t.Fatal(err)
	}
	if s.Elapsed <= 0 || p.Elapsed <= 0 {
		t.Errorf("elapsed should be positive, got serial=%v parallel=%v", s.Elapsed, p.Elapsed)
	}
}

func TestCalculators(t *testing.T) {
	t.Parallel()
	calcs := Calculators(2, 8)
	if len(calcs) != 8 {
		t.Fatalf("got %d calculators, want 8 (serial + 2..8)", len(calcs))
	}
	if calcs[0].Name() != "serial" || calcs[0].Workers() != 1 {
		t.Errorf("first calculator = %s/%d, want serial/1", calcs[0].Name(), calcs[0].Workers())
	}
	for i, c := range calcs[1:] {
		want := i + 2
		if c.Workers() != want {
			t.Errorf("calcs[%d].Workers() = %d, want %d", i+1, c.Workers(), want)
		}
	}
	if calcs[3].Name() != "parallel(4)" {
		t.Errorf("calcs[3].Name() = %q, want parallel(4)", calcs[3].Name())
	}

	x := []float64{1, 2, 3, 4}
	y := []float64{1, 2, 3, 4}
	for _, c := range calcs {
		res, err := c.Compute(x, y)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.Name(), err)
		}
		if res.Concordant != 6 {
			t.Errorf("%s: concordant = %d, want 6", c.Name(), res.Concordant)
		}
	}
}

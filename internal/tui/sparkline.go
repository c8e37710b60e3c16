package tui

// sparkBlocks maps eight levels of a percentage onto block elements.
var sparkBlocks = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// History keeps the most recent percentage samples, oldest first.
type History struct {
	data  []float64
	head  int
	count int
}

// NewHistory returns a history holding at most capacity samples.
func NewHistory(capacity int) *History {
	return &History{data: make([]float64, max(capacity, 1))}
}

// Push records a sample, dropping the oldest when full.
func (h *History) Push(v float64) {
	h.data[h.head] = v
	h.head = (h.head + 1) % len(h.data)
	if h.count < len(h.data) {
		h.count++
	}
}

func (h *History) Len() int { return h.count }

// Last returns the newest sample, or 0 when empty.
func (h *History) Last() float64 {
	if h.count == 0 {
		return 0
	}
	return h.data[(h.head-1+len(h.data))%len(h.data)]
}

// Values returns the samples in chronological order.
func (h *History) Values() []float64 {
	out := make([]float64, h.count)
	start := (h.head - h.count + len(h.data)) % len(h.data)
	for i := range out {
		out[i] = h.data[(start+i)%len(h.data)]
	}
	return out
}

// Resize changes the capacity, keeping the newest samples that fit.
func (h *History) Resize(capacity int) {
	capacity = max(capacity, 1)
	if capacity == len(h.data) {
		return
	}
	values := h.Values()
	if len(values) > capacity {
		values = values[len(values)-capacity:]
	}
	h.data = make([]float64, capacity)
	h.head, h.count = 0, 0
	for _, v := range values {
		h.Push(v)
	}
}

func (h *History) Reset() {
	h.head, h.count = 0, 0
}

// Sparkline renders percentages in [0, 100] as one block per sample.
// Values outside the range are clamped.
func Sparkline(values []float64) string {
	runes := make([]rune, len(values))
	for i, v := range values {
		v = min(max(v, 0), 100)
		runes[i] = sparkBlocks[min(int(v/100*7), 7)]
	}
	return string(runes)
}

package liveness

import "sync"

// History is the bounded rolling window of recent samples. When full the
// oldest sample is evicted.
type History struct {
	mu       sync.Mutex
	capacity int
	samples  []Sample
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultConfig().HistorySize
	}
	return &History{capacity: capacity, samples: make([]Sample, 0, capacity)}
}

func (h *History) Push(sample Sample) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.samples) == h.capacity {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.capacity-1]
	}
	h.samples = append(h.samples, sample)
}

// Samples returns a copy of the window, oldest first.
func (h *History) Samples() []Sample {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Sample, len(h.samples))
	copy(out, h.samples)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.samples)
}

func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = h.samples[:0]
}

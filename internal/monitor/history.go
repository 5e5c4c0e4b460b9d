package monitor

// DefaultTrendCapacity is the default number of samples kept per trend.
const DefaultTrendCapacity = 10

// TrendBuffer is a fixed-size circular buffer of integer percentages.
// Appending at capacity evicts the oldest value. It is owned by a single
// RunContext and is not safe for concurrent use; readers get copies.
type TrendBuffer struct {
	data  []int
	head  int
	count int
	size  int
}

// NewTrendBuffer creates a buffer holding at most capacity values.
// A non-positive capacity falls back to DefaultTrendCapacity.
func NewTrendBuffer(capacity int) *TrendBuffer {
	if capacity <= 0 {
		capacity = DefaultTrendCapacity
	}
	return &TrendBuffer{
		data: make([]int, capacity),
		size: capacity,
	}
}

// Append adds a value, overwriting the oldest once the buffer is full.
func (b *TrendBuffer) Append(value int) {
	b.data[b.head] = value
	b.head = (b.head + 1) % b.size
	if b.count < b.size {
		b.count++
	}
}

// Snapshot returns every stored value, oldest first, as an independent copy.
// An empty buffer yields an empty, non-nil slice.
func (b *TrendBuffer) Snapshot() []int {
	return b.last(b.count)
}

// Len returns the number of stored values.
func (b *TrendBuffer) Len() int {
	return b.count
}

// Cap returns the fixed capacity.
func (b *TrendBuffer) Cap() int {
	return b.size
}

// last returns the newest n values in chronological order.
func (b *TrendBuffer) last(n int) []int {
	if n > b.count {
		n = b.count
	}
	if n <= 0 {
		return []int{}
	}

	result := make([]int, n)

	// head is the next write position, so the newest value sits at head-1.
	start := (b.head - n + b.size) % b.size
	for i := 0; i < n; i++ {
		result[i] = b.data[(start+i)%b.size]
	}
	return result
}

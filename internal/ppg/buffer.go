package ppg

// WindowSize is the smoothing window capacity per channel.
const WindowSize = 10

// Channel selects one of the two PPG intensity channels.
type Channel int

// The two channels of the MAX30102.
const (
	Red Channel = iota
	IR
)

// ring is a fixed-capacity circular history with a wrap-around write cursor.
// Slots are zero-initialized, so the ring is always "full".
// Not safe for concurrent use — caller must synchronize.
type ring struct {
	slots  [WindowSize]int64
	cursor int // next write position
}

func (r *ring) push(v int64) {
	r.slots[r.cursor] = v
	r.cursor = (r.cursor + 1) % WindowSize
}

func (r *ring) average() int64 {
	var sum int64
	for _, v := range r.slots {
		sum += v
	}
	return sum / WindowSize
}

// Buffer holds the last WindowSize raw samples per channel and computes
// moving averages over them. Until WindowSize pushes have occurred on a
// channel, its average is biased toward zero by the untouched slots; callers
// tolerate this warm-up artifact rather than correcting for it.
type Buffer struct {
	red ring
	ir  ring
}

// NewBuffer creates a Buffer with both channel windows zeroed.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Push overwrites the slot at the channel's write cursor and advances it.
func (b *Buffer) Push(ch Channel, v int64) {
	b.channel(ch).push(v)
}

// Average returns the arithmetic mean over all WindowSize slots of the
// channel. It is recomputed in full on every call and has no side effects.
func (b *Buffer) Average(ch Channel) int64 {
	return b.channel(ch).average()
}

func (b *Buffer) channel(ch Channel) *ring {
	if ch == Red {
		return &b.red
	}
	return &b.ir
}

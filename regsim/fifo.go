package regsim

// FIFODepth is the depth of the TX and RX FIFOs on the SiFive UART.
const FIFODepth uint8 = 8

// fifo is a byte ring of FIFODepth entries. head and tail are free-running;
// used is their difference, so the depth must be a power of two.
type fifo struct {
	buf  [FIFODepth]byte
	head uint8
	tail uint8
}

// Used returns how many bytes are queued.
func (f *fifo) Used() uint8 { return f.head - f.tail }

// Full reports whether Put would fail.
func (f *fifo) Full() bool { return f.Used() == FIFODepth }

// Put queues b. It returns false, dropping b, if the FIFO is full.
func (f *fifo) Put(b byte) bool {
	if f.Full() {
		return false
	}
	f.buf[f.head%FIFODepth] = b
	f.head++
	return true
}

// Get dequeues the oldest byte, or returns (0, false) if empty.
func (f *fifo) Get() (byte, bool) {
	if f.Used() == 0 {
		return 0, false
	}
	b := f.buf[f.tail%FIFODepth]
	f.tail++
	return b, true
}

// Clear empties the FIFO.
func (f *fifo) Clear() {
	f.head = 0
	f.tail = 0
}

package regsim

import (
	"sync"

	"github.com/jangala-dev/tinygo-sifiveuart/internal/reg"
)

// Device models a SiFive UART behind its registers: TX and RX FIFOs of
// FIFODepth bytes, the enable bits, and IP computed from the watermarks.
// The host side feeds the RX line with Inject and drains the TX line with
// Transmitted. It is safe for concurrent use by the driver and the host side.
type Device struct {
	mu sync.Mutex

	txctrl uint32
	rxctrl uint32
	ie     uint32
	div    uint32

	tx fifo
	rx fifo

	txDropped int
	rxDropped int
}

// NewDevice returns a device in its reset state: everything disabled, both
// FIFOs empty.
func NewDevice() *Device { return &Device{} }

// Read32 implements the register read side.
func (d *Device) Read32(off uintptr) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch off {
	case reg.TXDATA:
		if d.tx.Full() {
			return reg.TXDATA_FULL
		}
		return 0
	case reg.RXDATA:
		b, ok := d.rx.Get()
		if !ok {
			return reg.RXDATA_EMPTY
		}
		return uint32(b)
	case reg.TXCTRL:
		return d.txctrl
	case reg.RXCTRL:
		return d.rxctrl
	case reg.IE:
		return d.ie
	case reg.IP:
		return d.pending()
	case reg.DIV:
		return d.div
	}
	index(off)
	return 0
}

// Write32 implements the register write side. Writes to RXDATA and IP are
// ignored, as are TXDATA writes while TX is disabled or the FIFO is full.
func (d *Device) Write32(off uintptr, v uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch off {
	case reg.TXDATA:
		if d.txctrl&reg.TXCTRL_TXEN == 0 || !d.tx.Put(byte(v&reg.DataMask)) {
			d.txDropped++
		}
	case reg.TXCTRL:
		d.txctrl = v
	case reg.RXCTRL:
		d.rxctrl = v
	case reg.IE:
		d.ie = v
	case reg.DIV:
		d.div = v
	case reg.RXDATA, reg.IP:
	default:
		index(off)
	}
}

// pending computes IP. Must be called with d.mu held.
func (d *Device) pending() uint32 {
	var ip uint32
	if uint32(d.tx.Used()) < reg.CntOf(d.txctrl) {
		ip |= reg.IP_TXWM
	}
	if uint32(d.rx.Used()) > reg.CntOf(d.rxctrl) {
		ip |= reg.IP_RXWM
	}
	return ip
}

// Pending returns the interrupt pending flags an interrupt controller would
// see: IP masked by IE.
func (d *Device) Pending() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending() & d.ie
}

// Inject puts p on the RX line. Bytes that arrive while RX is disabled or
// the RX FIFO is full are lost, as an overrun would lose them. It returns the
// number of bytes that reached the FIFO.
func (d *Device) Inject(p []byte) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, b := range p {
		if d.rxctrl&reg.RXCTRL_RXEN == 0 || !d.rx.Put(b) {
			d.rxDropped++
			continue
		}
		n++
	}
	return n
}

// Transmitted drains the TX FIFO onto the line and returns what was sent.
func (d *Device) Transmitted() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []byte
	for {
		b, ok := d.tx.Get()
		if !ok {
			return out
		}
		out = append(out, b)
	}
}

// Dropped returns the number of TXDATA writes and RX line bytes that were lost.
func (d *Device) Dropped() (tx, rx int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txDropped, d.rxDropped
}

// Snapshot is the visible register state of a Device plus its FIFO levels.
type Snapshot struct {
	TXCTRL uint32
	RXCTRL uint32
	IE     uint32
	IP     uint32 // unmasked
	DIV    uint32

	TxLevel uint8
	RxLevel uint8
}

// Snapshot returns the current register state without touching the FIFOs.
func (d *Device) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{
		TXCTRL:  d.txctrl,
		RXCTRL:  d.rxctrl,
		IE:      d.ie,
		IP:      d.pending(),
		DIV:     d.div,
		TxLevel: d.tx.Used(),
		RxLevel: d.rx.Used(),
	}
}

// Reset returns the device to its reset state.
func (d *Device) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.txctrl, d.rxctrl, d.ie, d.div = 0, 0, 0, 0
	d.tx.Clear()
	d.rx.Clear()
	d.txDropped, d.rxDropped = 0, 0
}

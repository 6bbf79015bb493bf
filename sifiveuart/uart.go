// Package sifiveuart drives the SiFive MMIO UART found on the FE310, FU540 and
// FU740. The peripheral has no blocking primitive, only a status bit packed
// into the data registers, so every transfer is a bounded poll: SendByte and
// ReceiveByte give up after a fixed number of status reads instead of hanging
// on hardware that never answers.
//
// A UART is a handle on one register block. It keeps no state of its own
// besides the block's address and the retry budget, and it does no locking:
// exactly one handle should exist per block, and callers sharing it between
// the main loop and an interrupt handler must synchronise externally.
package sifiveuart

import (
	"github.com/jangala-dev/tinygo-sifiveuart/internal/reg"
)

// DefaultRetryBudget is the number of status reads SendByte and ReceiveByte
// make before giving up.
const DefaultRetryBudget = 1000

// Watermark levels programmed at construction. The tx condition holds while
// fewer than txWatermark bytes are queued, the rx condition while more than
// rxWatermark bytes are queued.
const (
	txWatermark = 1
	rxWatermark = 6
)

// Config holds the driver settings. The zero value selects the defaults.
type Config struct {
	// RetryBudget is the number of status polls per SendByte/ReceiveByte.
	// Zero means DefaultRetryBudget.
	RetryBudget int
}

// UART is a handle on one SiFive UART register block.
type UART struct {
	base   uintptr // zero when bound to caller-supplied Registers
	regs   Registers
	budget int

	stats Stats
}

// New binds a UART to the register block at base and enables transmit and
// receive with the fixed watermark levels. The baud rate is left as it is;
// call SetBaud once the bus clock is known.
//
// The address is trusted: it must be mapped, 4-byte aligned, outside the Go
// heap and owned by the caller for the lifetime of the UART. The only error is
// ErrInvalidConfig.
func New(base uintptr, cfg Config) (*UART, error) {
	u, err := newUART(newMMIO(base), cfg)
	if err != nil {
		return nil, err
	}
	u.base = base
	return u, nil
}

// NewRegisters is New over an arbitrary register block, such as a simulated
// one from package regsim.
func NewRegisters(regs Registers, cfg Config) (*UART, error) {
	if regs == nil {
		return nil, ErrInvalidConfig
	}
	return newUART(regs, cfg)
}

func newUART(regs Registers, cfg Config) (*UART, error) {
	if cfg.RetryBudget < 0 {
		return nil, ErrInvalidConfig
	}
	if cfg.RetryBudget == 0 {
		cfg.RetryBudget = DefaultRetryBudget
	}
	u := &UART{regs: regs, budget: cfg.RetryBudget}

	// Enable TX; the tx watermark condition fires when the FIFO drops below 1.
	u.regs.Write32(reg.TXCTRL, reg.Cnt(txWatermark)|reg.TXCTRL_TXEN)
	// Enable RX; the rx watermark condition fires when the FIFO rises above 6.
	u.regs.Write32(reg.RXCTRL, reg.Cnt(rxWatermark)|reg.RXCTRL_RXEN)

	return u, nil
}

// BaseAddress returns the base the UART was bound to by New, or zero for a
// UART created with NewRegisters.
func (u *UART) BaseAddress() uintptr { return u.base }

// RetryBudget returns the number of status polls per transfer.
func (u *UART) RetryBudget() int { return u.budget }

// Size returns the size of the register block in bytes.
func (u *UART) Size() uintptr { return reg.Span }

// SetBaud programs DIV with busFreq/baud, truncated. Both are in Hz.
// A zero baud returns ErrZeroBaud and leaves DIV untouched.
func (u *UART) SetBaud(baud, busFreq uint32) error {
	if baud == 0 {
		return ErrZeroBaud
	}
	u.regs.Write32(reg.DIV, busFreq/baud)
	return nil
}

// SetTxWatermarkInterrupt sets or clears the tx watermark interrupt enable.
// Other IE bits are preserved. Servicing the interrupt is up to the caller.
func (u *UART) SetTxWatermarkInterrupt(enabled bool) {
	u.setIE(reg.IE_TXWM, enabled)
}

// SetRxWatermarkInterrupt sets or clears the rx watermark interrupt enable.
// Other IE bits are preserved.
func (u *UART) SetRxWatermarkInterrupt(enabled bool) {
	u.setIE(reg.IE_RXWM, enabled)
}

func (u *UART) setIE(bit uint32, enabled bool) {
	ie := u.regs.Read32(reg.IE)
	if enabled {
		ie |= bit
	} else {
		ie &^= bit
	}
	u.regs.Write32(reg.IE, ie)
}

// SendByte queues b in the TX FIFO. It polls TXDATA up to the retry budget
// and returns ErrTxNotEmpty if the FIFO stayed full, in which case nothing
// was written.
func (u *UART) SendByte(b byte) error {
	for i := 0; i < u.budget; i++ {
		u.dbgPoll()
		if !u.txFull() {
			u.regs.Write32(reg.TXDATA, uint32(b))
			u.dbgSent()
			return nil
		}
	}
	u.dbgTxTimeout()
	return ErrTxNotEmpty
}

// ReceiveByte takes one byte from the RX FIFO. It polls RXDATA up to the
// retry budget and returns ErrDataNotReady if nothing arrived.
func (u *UART) ReceiveByte() (byte, error) {
	for i := 0; i < u.budget; i++ {
		u.dbgPoll()
		if b, ok := u.tryReceive(); ok {
			return b, nil
		}
	}
	u.dbgRxTimeout()
	return 0, ErrDataNotReady
}

// tryReceive makes a single RXDATA read. The empty flag and the data share
// the word, and reading a non-empty RXDATA pops the FIFO, so the decision and
// the byte must come from the same read.
func (u *UART) tryReceive() (byte, bool) {
	v := u.regs.Read32(reg.RXDATA)
	if v&reg.RXDATA_EMPTY != 0 {
		return 0, false
	}
	u.dbgRecv()
	return byte(v & reg.DataMask), true
}

// txFull reports the TX FIFO full flag from one TXDATA read.
func (u *UART) txFull() bool {
	return u.regs.Read32(reg.TXDATA)&reg.TXDATA_FULL != 0
}

// WriteByte implements io.ByteWriter with SendByte.
func (u *UART) WriteByte(c byte) error {
	return u.SendByte(c)
}

// ReadByte implements io.ByteReader with ReceiveByte.
func (u *UART) ReadByte() (byte, error) {
	return u.ReceiveByte()
}

// Write implements io.Writer. Bytes are sent in order with SendByte; on the
// first fault Write stops and returns the number of bytes queued so far.
func (u *UART) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := u.SendByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// Read implements io.Reader. The first byte is waited for with ReceiveByte;
// after that Read keeps copying while a single RXDATA read finds data.
// It returns 0, ErrDataNotReady if nothing arrived within the budget.
func (u *UART) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b, err := u.ReceiveByte()
	if err != nil {
		return 0, err
	}
	p[0] = b
	n := 1
	for n < len(p) {
		b, ok := u.tryReceive()
		if !ok {
			break
		}
		p[n] = b
		n++
	}
	return n, nil
}

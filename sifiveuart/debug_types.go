//go:build sifiveuartdebug

package sifiveuart

import (
	"sync/atomic"

	"github.com/jangala-dev/tinygo-sifiveuart/internal/reg"
)

// Stats holds counters since the last reset.
type Stats struct {
	Polls         uint32 // status register reads in poll loops
	BytesSent     uint32 // bytes written to TXDATA
	BytesReceived uint32 // bytes taken from RXDATA
	TxTimeouts    uint32 // SendByte returned ErrTxNotEmpty
	RxTimeouts    uint32 // ReceiveByte returned ErrDataNotReady
	CtxTimeouts   uint32 // *Context helpers gave up on ctx
}

func (u *UART) DebugReset() {
	u.stats = Stats{}
}

func (u *UART) DebugStats() Stats {
	return Stats{
		Polls:         atomic.LoadUint32(&u.stats.Polls),
		BytesSent:     atomic.LoadUint32(&u.stats.BytesSent),
		BytesReceived: atomic.LoadUint32(&u.stats.BytesReceived),
		TxTimeouts:    atomic.LoadUint32(&u.stats.TxTimeouts),
		RxTimeouts:    atomic.LoadUint32(&u.stats.RxTimeouts),
		CtxTimeouts:   atomic.LoadUint32(&u.stats.CtxTimeouts),
	}
}

// Regs is a snapshot of the control registers. TXDATA and RXDATA are left
// out because reading RXDATA pops the FIFO; IP belongs to the interrupt
// handler.
type Regs struct {
	TXCTRL uint32
	RXCTRL uint32
	IE     uint32
	DIV    uint32
}

func (u *UART) DebugRegs() Regs {
	return Regs{
		TXCTRL: u.regs.Read32(reg.TXCTRL),
		RXCTRL: u.regs.Read32(reg.RXCTRL),
		IE:     u.regs.Read32(reg.IE),
		DIV:    u.regs.Read32(reg.DIV),
	}
}

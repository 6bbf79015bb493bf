// Package reg holds the register map of the SiFive MMIO UART (FE310, FU540,
// FU740). Offsets are in bytes from the base of the register block.
package reg

// Count is the number of 32-bit registers in the block.
const Count = 7

// Span is the size of the register block in bytes.
const Span = Count * 4

// Register offsets.
const (
	TXDATA uintptr = 0 * 4 // transmit data; read bit 31: FIFO full
	RXDATA uintptr = 1 * 4 // receive data; read bit 31: FIFO empty
	TXCTRL uintptr = 2 * 4 // transmit control
	RXCTRL uintptr = 3 * 4 // receive control
	IE     uintptr = 4 * 4 // interrupt enable
	IP     uintptr = 5 * 4 // interrupt pending (read only)
	DIV    uintptr = 6 * 4 // baud rate divisor
)

// Control and status bits.
const (
	IE_TXWM uint32 = 1 << 0 // tx watermark interrupt enable
	IE_RXWM uint32 = 1 << 1 // rx watermark interrupt enable

	IP_TXWM uint32 = 1 << 0
	IP_RXWM uint32 = 1 << 1

	TXCTRL_TXEN uint32 = 1 << 0
	RXCTRL_RXEN uint32 = 1 << 0

	TXDATA_FULL  uint32 = 1 << 31
	RXDATA_EMPTY uint32 = 1 << 31

	DataMask uint32 = 0xff
)

// Watermark counts live in bits 16 and up of TXCTRL/RXCTRL.
const (
	CntPos  = 16
	CntMask = 0x7 << CntPos
)

// Cnt encodes a watermark level for TXCTRL/RXCTRL.
func Cnt(level uint32) uint32 { return level << CntPos & CntMask }

// CntOf extracts the watermark level from a TXCTRL/RXCTRL value.
func CntOf(v uint32) uint32 { return v & CntMask >> CntPos }

// Index returns the register index for an offset, or -1 if off does not name
// one of the registers.
func Index(off uintptr) int {
	if off%4 != 0 || off >= Span {
		return -1
	}
	return int(off / 4)
}

// Name returns the datasheet name of the register at off.
func Name(off uintptr) string {
	switch off {
	case TXDATA:
		return "txdata"
	case RXDATA:
		return "rxdata"
	case TXCTRL:
		return "txctrl"
	case RXCTRL:
		return "rxctrl"
	case IE:
		return "ie"
	case IP:
		return "ip"
	case DIV:
		return "div"
	}
	return "?"
}

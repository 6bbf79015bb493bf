package sifiveuart

import (
	"unsafe"

	"github.com/jangala-dev/tinygo-sifiveuart/internal/reg"
)

// Registers is word access to a UART register block. Offsets are bytes from
// the start of the block and are always one of the seven register offsets.
//
// Every call must reach the device: implementations may not cache, merge or
// reorder accesses.
type Registers interface {
	Read32(off uintptr) uint32
	Write32(off uintptr, v uint32)
}

// mmio is a Registers bound to a raw base address. Read32/Write32 live in
// mmio_tinygo.go and mmio_host.go.
type mmio struct {
	base unsafe.Pointer
}

// newMMIO turns the caller's integer address into a pointer. This is the
// only place the conversion happens; register offsets are applied with
// unsafe.Add. The address must not point into the Go heap.
func newMMIO(base uintptr) mmio {
	return mmio{base: *(*unsafe.Pointer)(unsafe.Pointer(&base))}
}

// MMIOSpanSize returns the size in bytes of the register block, for callers
// that need to map or reserve the address range.
func MMIOSpanSize() uintptr { return reg.Span }
